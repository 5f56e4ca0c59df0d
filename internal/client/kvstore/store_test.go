package kvstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(rdb, "nyaysetu:")
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	r, _ := newRedis(t)
	return map[string]Store{
		"sqlite": newSQLite(t),
		"redis":  r,
		"memory": NewMemoryStore(),
	}
}

func TestStore_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "absent")
			require.ErrorIs(t, err, ErrNotFound)
			assert.True(t, IsNotFound(err))

			require.NoError(t, s.Set(ctx, "k", "old"))
			require.NoError(t, s.Set(ctx, "k", "new"))
			v, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "new", v)

			require.NoError(t, s.SetMany(ctx, map[string]string{
				common.TokenKey: "abc",
				common.UserKey:  `{"id":"1"}`,
			}))
			v, err = s.Get(ctx, common.UserKey)
			require.NoError(t, err)
			assert.Equal(t, `{"id":"1"}`, v)

			require.NoError(t, s.Delete(ctx, common.TokenKey, common.UserKey))
			_, err = s.Get(ctx, common.TokenKey)
			assert.ErrorIs(t, err, ErrNotFound)

			// deleting again is a no-op
			require.NoError(t, s.Delete(ctx, common.TokenKey))
			require.NoError(t, s.Delete(ctx))
		})
	}
}

func TestStore_EmptyStringIsAValue(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "blank", ""))
			v, err := s.Get(ctx, "blank")
			require.NoError(t, err)
			assert.Equal(t, "", v)
		})
	}
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	s, mr := newRedis(t)
	require.NoError(t, s.Set(context.Background(), "token", "abc"))

	got, err := mr.Get("nyaysetu:token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
	assert.False(t, mr.Exists("token"))
}

func TestRedisStore_ServerDownWrapsError(t *testing.T) {
	s, mr := newRedis(t)
	mr.Close()

	_, err := s.Get(context.Background(), "token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get kv[token]")
}

func TestSQLiteStore_ClosedDBErrorsWrapped(t *testing.T) {
	s := newSQLite(t)
	require.NoError(t, s.Close())
	ctx := context.Background()

	_, err := s.Get(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get kv[k]")

	err = s.Set(ctx, "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set kv[k]")

	require.Error(t, s.SetMany(ctx, map[string]string{"a": "b"}))
	require.Error(t, s.Delete(ctx, "k"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "o.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	mr := miniredis.RunT(t)
	s, err = Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Backend: "etcd"})
	require.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(context.Background(), Options{Backend: BackendRedis, RedisAddr: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}
