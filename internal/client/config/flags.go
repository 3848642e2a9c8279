package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/userdir/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string     service base URL
//	-d string     session database path
//	-t duration   per-request timeout
//	-i duration   health check interval, 0 disables
//	-l string     log level
//
// Flags owned by other layers (-c, -config) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("userdir", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "service base URL")
	fs.StringVar(&cfg.SessionDB, "d", cfg.SessionDB, "session database path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.DurationVar(&cfg.HealthInterval, "i", cfg.HealthInterval, "health check interval (0 disables)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	return fs.Parse(args)
}
