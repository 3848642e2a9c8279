package config

import (
	"fmt"
	"time"
)

const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultSessionDB      = "userdir.db"
	DefaultRequestTimeout = 10 * time.Second
	DefaultHealthInterval = 30 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config holds runtime settings for the userdir CLI.
//
// HealthInterval of zero disables the connectivity watcher.
type Config struct {
	BaseURL        string
	SessionDB      string
	RequestTimeout time.Duration
	HealthInterval time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.SessionDB = DefaultSessionDB
	c.RequestTimeout = DefaultRequestTimeout
	c.HealthInterval = DefaultHealthInterval
	c.LogLevel = DefaultLogLevel
	c.LogFormat = DefaultLogFormat
}

// Load builds a Config from defaults, then the environment (including a
// .env file in the working directory), then the JSON file named by -c or
// -config, then flags. Later sources win. args excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionDB == "" {
		return fmt.Errorf("session db path must not be empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.HealthInterval < 0 {
		return fmt.Errorf("health interval must not be negative, got %s", c.HealthInterval)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
