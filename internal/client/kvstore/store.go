// Package kvstore is the client's persistent key-value store: the place the
// session credential, the offline queue and persisted UI flags live.
//
// Values are plain strings. Structured values are serialised by their owners
// (session, offline) before they reach the store.
//
// Three backends are provided:
//   - SQLiteStore: the default, a single-file database under the data dir.
//   - RedisStore:  a shared store for multi-process or kiosk deployments.
//   - MemoryStore: ephemeral, used by tests and the "memory" backend.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = common.ErrNotFound

// Store is a string key-value store.
//
// Get returns ErrNotFound (matchable with errors.Is) for missing keys.
// Delete is idempotent. SetMany writes all pairs atomically where the
// backend allows it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	SQLitePath  string
	RedisAddr   string
	RedisPrefix string
}

// Open returns the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		return OpenSQLite(ctx, opts.SQLitePath)
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping %s: %w", opts.RedisAddr, err)
		}
		return NewRedisStore(rdb, opts.RedisPrefix), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", common.ErrInvalidArgument, opts.Backend)
	}
}

// IsNotFound reports whether err means the key was absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
