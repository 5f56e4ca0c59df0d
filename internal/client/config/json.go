package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/flagx"
	"github.com/nyaysetu/nyaysetu-client/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key apart from an explicit zero value.
type JsonConfig struct {
	APIBaseURL           *string         `json:"api_base_url"`
	ProxyOrigin          *string         `json:"proxy_origin"`
	JitsiBaseURL         *string         `json:"jitsi_base_url"`
	DataDir              *string         `json:"data_dir"`
	StoreBackend         *string         `json:"store_backend"`
	RedisAddr            *string         `json:"redis_addr"`
	RedisPrefix          *string         `json:"redis_prefix"`
	OnlineCheckInterval  *timex.Duration `json:"online_check_interval"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	PollInterval         *timex.Duration `json:"poll_interval"`
	PollMaxAttempts      *int            `json:"poll_max_attempts"`
	BannerNoticeDuration *timex.Duration `json:"banner_notice_duration"`
	LogLevel             *string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	jc.apply(cfg)
	return nil
}

func (jc JsonConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.ProxyOrigin, jc.ProxyOrigin)
	setString(&cfg.JitsiBaseURL, jc.JitsiBaseURL)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.StoreBackend, jc.StoreBackend)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.PollInterval, jc.PollInterval)
	setDuration(&cfg.BannerNoticeDuration, jc.BannerNoticeDuration)
	if jc.PollMaxAttempts != nil {
		cfg.PollMaxAttempts = *jc.PollMaxAttempts
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
