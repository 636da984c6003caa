package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Bot.Trigger != "axosoft" {
		t.Errorf("trigger = %q", cfg.Bot.Trigger)
	}
	if cfg.Bot.DateFormat != "2006-01-02" {
		t.Errorf("date format = %q", cfg.Bot.DateFormat)
	}
	if cfg.Axosoft.APIVersion != "/api/v5" {
		t.Errorf("api version = %q", cfg.Axosoft.APIVersion)
	}
	if cfg.Audit.Topic != "axobot.commands" {
		t.Errorf("audit topic = %q", cfg.Audit.Topic)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AXOBOT_CONFIG", filepath.Join(dir, "config.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Trigger != "axosoft" {
		t.Errorf("trigger = %q", cfg.Bot.Trigger)
	}
	if cfg.Paths.DataDir != dir {
		t.Errorf("data dir = %q, want config dir %q", cfg.Paths.DataDir, dir)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"bot":{"trigger":"gitbot"},"axosoft":{"clientId":"abc"},"channels":{"slack":{"enabled":true}}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AXOBOT_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Trigger != "gitbot" {
		t.Errorf("trigger = %q, want gitbot", cfg.Bot.Trigger)
	}
	if cfg.Axosoft.ClientID != "abc" {
		t.Errorf("client id = %q", cfg.Axosoft.ClientID)
	}
	if !cfg.Channels.Slack.Enabled {
		t.Error("slack not enabled")
	}
	// Unset fields still get defaults.
	if cfg.Axosoft.APIVersion != "/api/v5" {
		t.Errorf("api version = %q", cfg.Axosoft.APIVersion)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"bot":{"trigger":"filebot"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AXOBOT_CONFIG", path)
	t.Setenv("AXOBOT_BOT_TRIGGER", "envbot")
	t.Setenv("AXOBOT_AUDIT_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Trigger != "envbot" {
		t.Errorf("trigger = %q, want env override", cfg.Bot.Trigger)
	}
	if !cfg.Audit.Enabled {
		t.Error("audit not enabled via env")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")
	t.Setenv("AXOBOT_CONFIG", path)

	cfg := DefaultConfig()
	cfg.Bot.Trigger = "saved"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Bot.Trigger != "saved" {
		t.Errorf("trigger = %q, want saved", loaded.Bot.Trigger)
	}
}
