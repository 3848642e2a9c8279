package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// envConfig mirrors Config for environment variables. Durations are kept as
// strings so that an explicit "0" can be told apart from an unset variable.
type envConfig struct {
	BaseURL        string `env:"USERDIR_API_URL"`
	SessionDB      string `env:"USERDIR_SESSION_DB"`
	RequestTimeout string `env:"USERDIR_REQUEST_TIMEOUT"`
	HealthInterval string `env:"USERDIR_HEALTH_INTERVAL"`
	LogLevel       string `env:"USERDIR_LOG_LEVEL"`
	LogFormat      string `env:"USERDIR_LOG_FORMAT"`
}

// parseEnv overlays cfg with USERDIR_* variables. Files (default ".env") are
// loaded first without overriding variables already set; a missing file is
// not an error.
func parseEnv(cfg *Config, files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var ec envConfig
	if err := env.Load(&ec, nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	setString(&cfg.BaseURL, ec.BaseURL)
	setString(&cfg.SessionDB, ec.SessionDB)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogFormat, ec.LogFormat)

	if err := setDuration(&cfg.RequestTimeout, "USERDIR_REQUEST_TIMEOUT", ec.RequestTimeout); err != nil {
		return err
	}
	return setDuration(&cfg.HealthInterval, "USERDIR_HEALTH_INTERVAL", ec.HealthInterval)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}
