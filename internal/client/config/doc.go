// Package config loads runtime configuration for the NyaySetu CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables prefixed NYAYSETU_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL ("" sends bare paths to the proxy origin)
//	-p string   reverse proxy origin, required when the base URL is empty
//	-d string   data directory for the local store and caches
//	-s string   store backend: sqlite, redis or memory
//	-r string   redis address for the redis backend
//	-i int      online status check interval (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds. A key that is absent leaves the earlier value in place; an
// explicit empty api_base_url is kept and then needs proxy_origin.
//
//	{
//	  "api_base_url": "https://nyaysetu.example.in",
//	  "data_dir": ".nyaysetu",
//	  "store_backend": "sqlite",
//	  "online_check_interval": "5s",
//	  "poll_interval": "2s",
//	  "poll_max_attempts": 30
//	}
package config
