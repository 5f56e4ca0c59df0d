package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// responseCache keeps the last good copy of read-only listings so they can
// be shown while offline. Each bucket is a directory under root, which makes
// it one named cache for platform.DirCaches.
type responseCache struct {
	root string
}

const bucketAPI = "api"

func (c responseCache) save(bucket, name string, v any) error {
	dir := filepath.Join(c.root, bucket)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name+".json"), b, 0o600)
}

func (c responseCache) load(bucket, name string, v any) bool {
	b, err := os.ReadFile(filepath.Join(c.root, bucket, name+".json"))
	if err != nil {
		return false
	}
	return json.Unmarshal(b, v) == nil
}
