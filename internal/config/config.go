// ABOUTME: Configuration loading and parsing for the guide gateway.
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing.

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete gateway configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Chat     ChatConfig     `yaml:"chat"`
	Sessions SessionsConfig `yaml:"sessions"`
	Vapi     VapiConfig     `yaml:"vapi"`
	CORS     CORSConfig     `yaml:"cors"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server address configuration.
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`

	// BaseURL is the externally reachable URL, used to build the call
	// webhook address handed to the telephony provider.
	BaseURL string `yaml:"base_url"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"-"`

	TokenTTLRaw string `yaml:"token_ttl"`
}

// ChatConfig holds the staged reply timing and the suggestion gate.
type ChatConfig struct {
	WelcomeDelay    time.Duration `yaml:"-"`
	GuidanceDelay   time.Duration `yaml:"-"`
	SuggestionDelay time.Duration `yaml:"-"`

	// SuggestionConfidence gates the follow-up agent suggestion event.
	SuggestionConfidence float64 `yaml:"suggestion_confidence"`

	// Raw string values for YAML unmarshaling
	WelcomeDelayRaw    string `yaml:"welcome_delay"`
	GuidanceDelayRaw   string `yaml:"guidance_delay"`
	SuggestionDelayRaw string `yaml:"suggestion_delay"`
}

// SessionsConfig holds the idle sweep timing.
type SessionsConfig struct {
	SweepInterval time.Duration `yaml:"-"`
	TTL           time.Duration `yaml:"-"`

	SweepIntervalRaw string `yaml:"sweep_interval"`
	TTLRaw           string `yaml:"ttl"`
}

// VapiConfig holds the telephony provider credentials.
type VapiConfig struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	AssistantID   string `yaml:"assistant_id"`
	PhoneNumberID string `yaml:"phone_number_id"`
	WebhookSecret string `yaml:"webhook_secret"`
}

// CORSConfig holds the allowed frontend origin.
type CORSConfig struct {
	AllowedOrigin string `yaml:"allowed_origin"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Chat.SuggestionConfidence < 0 || c.Chat.SuggestionConfidence > 1 {
		return fmt.Errorf("chat.suggestion_confidence must be in [0,1]")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values.
func parseDurations(cfg *Config) error {
	fields := []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{cfg.Auth.TokenTTLRaw, &cfg.Auth.TokenTTL, "auth.token_ttl"},
		{cfg.Chat.WelcomeDelayRaw, &cfg.Chat.WelcomeDelay, "chat.welcome_delay"},
		{cfg.Chat.GuidanceDelayRaw, &cfg.Chat.GuidanceDelay, "chat.guidance_delay"},
		{cfg.Chat.SuggestionDelayRaw, &cfg.Chat.SuggestionDelay, "chat.suggestion_delay"},
		{cfg.Sessions.SweepIntervalRaw, &cfg.Sessions.SweepInterval, "sessions.sweep_interval"},
		{cfg.Sessions.TTLRaw, &cfg.Sessions.TTL, "sessions.ttl"},
	}

	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", f.name, f.raw, err)
		}
		*f.dst = d
	}

	return nil
}
