package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nyaysetu/nyaysetu-client/internal/safex"
)

// CacheStorage is a set of named caches.
type CacheStorage interface {
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// ClearAllCaches deletes every named cache. Each deletion is attempted even
// if an earlier one fails; the result is true only if all succeeded.
func ClearAllCaches(ctx context.Context, cs CacheStorage) bool {
	if cs == nil {
		return false
	}
	names, err := safex.TryOrDefault(func() ([]string, error) { return cs.Keys(ctx) }, nil)
	if err != nil {
		return false
	}
	all := true
	for _, name := range names {
		ok, _ := safex.Succeeded(func() error { return cs.Delete(ctx, name) })
		all = all && ok
	}
	return all
}

// DirCaches treats each subdirectory of Root as one cache.
type DirCaches struct {
	Root string
}

func (d DirCaches) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read caches %s: %w", d.Root, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (d DirCaches) Delete(_ context.Context, name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid cache name %q", name)
	}
	return os.RemoveAll(filepath.Join(d.Root, name))
}
