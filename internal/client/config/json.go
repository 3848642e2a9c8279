package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userdir/internal/flagx"
	"github.com/dmitrijs2005/userdir/internal/timex"
)

// jsonConfig is the on-disk shape. Absent keys leave the current value
// alone, so every field is a pointer.
type jsonConfig struct {
	BaseURL        *string         `json:"api_url"`
	SessionDB      *string         `json:"session_db"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	HealthInterval *timex.Duration `json:"health_interval"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
}

// parseJSON overlays cfg with the file named by -c / -config in args. No
// flag means no file.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.SessionDB != nil {
		cfg.SessionDB = *jc.SessionDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.HealthInterval != nil {
		cfg.HealthInterval = jc.HealthInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	return nil
}
