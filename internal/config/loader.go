package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// ConfigDir is the default config directory name.
	ConfigDir = ".axobot"
	// ConfigFile is the default config file name.
	ConfigFile = "config.json"
)

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv("AXOBOT_CONFIG")); explicit != "" {
		if strings.HasPrefix(explicit, "~") {
			home, err := resolveHomeDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(home, explicit[1:]), nil
		}
		return explicit, nil
	}
	home, err := resolveHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

func resolveHomeDir() (string, error) {
	if h := strings.TrimSpace(os.Getenv("AXOBOT_HOME")); h != "" {
		if strings.HasPrefix(h, "~") {
			base, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(base, h[1:]), nil
		}
		return h, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return home, nil
}

// Load reads the config file, applies env overrides and fills defaults.
// A missing config file is not an error; defaults are used.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	// Optional .env next to the config file, loaded before envconfig so the
	// overrides behave the same whether they come from the shell or the file.
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return cfg, err
	}

	if strings.TrimSpace(cfg.Paths.DataDir) == "" {
		cfg.Paths.DataDir = filepath.Dir(path)
	}
	if strings.TrimSpace(cfg.Bot.Trigger) == "" {
		cfg.Bot.Trigger = "axosoft"
	}
	if strings.TrimSpace(cfg.Bot.DateFormat) == "" {
		cfg.Bot.DateFormat = "2006-01-02"
	}
	if strings.TrimSpace(cfg.Axosoft.APIVersion) == "" {
		cfg.Axosoft.APIVersion = "/api/v5"
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	groups := []struct {
		prefix string
		target any
	}{
		{"AXOBOT_PATHS", &cfg.Paths},
		{"AXOBOT_BOT", &cfg.Bot},
		{"AXOBOT_AXOSOFT", &cfg.Axosoft},
		{"AXOBOT_CHANNELS", &cfg.Channels.Slack},
		{"AXOBOT_AUDIT", &cfg.Audit},
	}
	for _, g := range groups {
		if err := envconfig.Process(g.prefix, g.target); err != nil {
			return fmt.Errorf("env overrides %s: %w", g.prefix, err)
		}
	}
	return nil
}

// Save writes the config back to disk, creating the directory if needed.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
