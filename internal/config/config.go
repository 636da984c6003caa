// Package config provides configuration types and loading for axobot.
package config

// Config is the root configuration struct.
// Top-level groups: Paths, Bot, Axosoft, Channels, Audit.
type Config struct {
	Paths    PathsConfig    `json:"paths"`
	Bot      BotConfig      `json:"bot"`
	Axosoft  AxosoftConfig  `json:"axosoft"`
	Channels ChannelsConfig `json:"channels"`
	Audit    AuditConfig    `json:"audit"`
}

// ---------------------------------------------------------------------------
// Paths – filesystem locations
// ---------------------------------------------------------------------------

// PathsConfig groups all filesystem path settings.
type PathsConfig struct {
	// DataDir holds the credential/snapshot database. Defaults to the
	// config directory.
	DataDir string `json:"dataDir" envconfig:"DATA_DIR"`
}

// ---------------------------------------------------------------------------
// Bot – command surface behaviour
// ---------------------------------------------------------------------------

// BotConfig groups chat command settings.
type BotConfig struct {
	// Trigger is the word every command starts with.
	Trigger    string `json:"trigger" envconfig:"TRIGGER"`
	DateFormat string `json:"dateFormat" envconfig:"DATE_FORMAT"`
}

// ---------------------------------------------------------------------------
// Axosoft – remote service settings
// ---------------------------------------------------------------------------

// AxosoftConfig groups the Axosoft API settings. The account base URL and
// access token live in the credential store, not here.
type AxosoftConfig struct {
	APIVersion string `json:"apiVersion" envconfig:"API_VERSION"`
	// ClientID identifies the OAuth app when building the authorize URL.
	ClientID string `json:"clientId" envconfig:"CLIENT_ID"`
	// AuthServer receives the OAuth redirect and relays the token back.
	AuthServer string `json:"authServer" envconfig:"AUTH_SERVER"`
}

// ---------------------------------------------------------------------------
// Channels – chat platforms
// ---------------------------------------------------------------------------

// ChannelsConfig contains all channel configurations.
type ChannelsConfig struct {
	Slack SlackConfig `json:"slack"`
}

// SlackConfig configures the Slack channel.
type SlackConfig struct {
	Enabled   bool   `json:"enabled" envconfig:"SLACK_ENABLED"`
	BotToken  string `json:"botToken" envconfig:"SLACK_BOT_TOKEN"`
	AppToken  string `json:"appToken" envconfig:"SLACK_APP_TOKEN"`
	BotUserID string `json:"botUserId" envconfig:"SLACK_BOT_USER_ID"`
}

// ---------------------------------------------------------------------------
// Audit – command event feed
// ---------------------------------------------------------------------------

// AuditConfig configures the optional Kafka command audit feed.
type AuditConfig struct {
	Enabled bool   `json:"enabled" envconfig:"AUDIT_ENABLED"`
	Brokers string `json:"brokers" envconfig:"AUDIT_BROKERS"`
	Topic   string `json:"topic" envconfig:"AUDIT_TOPIC"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Bot: BotConfig{
			Trigger:    "axosoft",
			DateFormat: "2006-01-02",
		},
		Axosoft: AxosoftConfig{
			APIVersion: "/api/v5",
		},
		Audit: AuditConfig{
			Topic: "axobot.commands",
		},
	}
}
