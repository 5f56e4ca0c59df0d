package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/flagx"
)

var ownFlags = []string{"-a", "-p", "-d", "-s", "-r", "-i", "-l"}

// parseFlags overlays cfg with the flags listed in the package doc. Other
// arguments are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("nyaysetu", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.ProxyOrigin, "p", cfg.ProxyOrigin, "reverse proxy origin for an empty base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "store backend (sqlite, redis, memory)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
	return nil
}
