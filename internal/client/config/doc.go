// Package config loads runtime configuration for the userdir CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: USERDIR_* variables, with a .env file in the working
//     directory filling in anything not already set.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8080",
//	  "session_db": "userdir.db",
//	  "request_timeout": "10s",
//	  "health_interval": "30s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
