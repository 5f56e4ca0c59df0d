package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/kvstore"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the NyaySetu CLI.
type Config struct {
	APIBaseURL           string        `env:"API_BASE_URL, overwrite"`
	ProxyOrigin          string        `env:"PROXY_ORIGIN, overwrite"`
	JitsiBaseURL         string        `env:"JITSI_BASE_URL, overwrite"`
	DataDir              string        `env:"DATA_DIR, overwrite"`
	StoreBackend         string        `env:"STORE_BACKEND, overwrite"`
	RedisAddr            string        `env:"REDIS_ADDR, overwrite"`
	RedisPrefix          string        `env:"REDIS_PREFIX, overwrite"`
	OnlineCheckInterval  time.Duration `env:"ONLINE_CHECK_INTERVAL, overwrite"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT, overwrite"`
	PollInterval         time.Duration `env:"POLL_INTERVAL, overwrite"`
	PollMaxAttempts      int           `env:"POLL_MAX_ATTEMPTS, overwrite"`
	BannerNoticeDuration time.Duration `env:"BANNER_NOTICE_DURATION, overwrite"`
	LogLevel             string        `env:"LOG_LEVEL, overwrite"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "NYAYSETU_"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.JitsiBaseURL = "https://meet.jit.si"
	c.DataDir = ".nyaysetu"
	c.StoreBackend = kvstore.BackendSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "nyaysetu:"
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.PollInterval = 2 * time.Second
	c.PollMaxAttempts = 30
	c.BannerNoticeDuration = 3 * time.Second
	c.LogLevel = "info"
}

// Validate rejects settings the client cannot run with. An empty
// APIBaseURL needs a ProxyOrigin to route its bare paths.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" && c.ProxyOrigin == "" {
		return fmt.Errorf("%w: empty api base url needs a proxy origin", common.ErrInvalidArgument)
	}
	if c.ProxyOrigin != "" {
		if u, err := url.Parse(c.ProxyOrigin); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: proxy origin %q", common.ErrInvalidArgument, c.ProxyOrigin)
		}
	}
	switch c.StoreBackend {
	case kvstore.BackendSQLite, kvstore.BackendRedis, kvstore.BackendMemory:
	default:
		return fmt.Errorf("%w: store backend %q", common.ErrInvalidArgument, c.StoreBackend)
	}
	if c.OnlineCheckInterval <= 0 || c.PollInterval <= 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: intervals must be positive", common.ErrInvalidArgument)
	}
	if c.PollMaxAttempts < 1 {
		return fmt.Errorf("%w: poll attempts %d", common.ErrInvalidArgument, c.PollMaxAttempts)
	}
	return nil
}

// Load builds a Config from defaults, the JSON file named in args, the
// environment seen through lookup, and finally args themselves.
func Load(ctx context.Context, args []string, lookup envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(ctx, cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads from the process arguments and environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	return Load(ctx, os.Args[1:], envconfig.OsLookuper())
}

func parseEnv(ctx context.Context, cfg *Config, lookup envconfig.Lookuper) error {
	if lookup == nil {
		return nil
	}
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookup),
	})
	if err != nil {
		return fmt.Errorf("env config: %w", err)
	}
	return nil
}
