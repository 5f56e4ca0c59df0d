package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedEstimator struct {
	e   Estimate
	err error
}

func (f fixedEstimator) Estimate(context.Context) (Estimate, error) { return f.e, f.err }

type panickyEstimator struct{}

func (panickyEstimator) Estimate(context.Context) (Estimate, error) { panic("no storage api") }

func TestGetStorageUsage(t *testing.T) {
	tests := []struct {
		name string
		est  StorageEstimator
		want *StorageUsage
	}{
		{"nil estimator", nil, nil},
		{"failing estimator", fixedEstimator{err: errors.New("denied")}, nil},
		{"panicking estimator", panickyEstimator{}, nil},
		{"zero quota", fixedEstimator{e: Estimate{}}, &StorageUsage{}},
		{
			"rounded",
			fixedEstimator{e: Estimate{Usage: 1 << 20, Quota: 3 << 20}},
			&StorageUsage{UsageBytes: 1 << 20, QuotaBytes: 3 << 20, PercentUsed: 33.33, UsageMB: 1, QuotaMB: 3},
		},
		{
			"usage without quota",
			fixedEstimator{e: Estimate{Usage: 1536 * 1024}},
			&StorageUsage{UsageBytes: 1536 * 1024, UsageMB: 1.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetStorageUsage(context.Background(), tt.est))
		})
	}
}

func TestDiskEstimator(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nyaysetu.db"), make([]byte, 4096), 0o600))

	e, err := DiskEstimator{Dir: dir}.Estimate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), e.Usage)
	assert.GreaterOrEqual(t, e.Quota, e.Usage)

	_, err = DiskEstimator{Dir: filepath.Join(dir, "missing")}.Estimate(context.Background())
	assert.Error(t, err)
}

type fakeCaches struct {
	names   []string
	keysErr error
	fail    map[string]bool
	deleted []string
}

func (f *fakeCaches) Keys(context.Context) ([]string, error) { return f.names, f.keysErr }

func (f *fakeCaches) Delete(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	if f.fail[name] {
		return errors.New("locked")
	}
	return nil
}

func TestClearAllCaches(t *testing.T) {
	ctx := context.Background()

	cs := &fakeCaches{names: []string{"v1", "v2"}, fail: map[string]bool{"v2": true}}
	assert.False(t, ClearAllCaches(ctx, cs))
	assert.Equal(t, []string{"v1", "v2"}, cs.deleted)

	cs = &fakeCaches{names: []string{"v2", "v1"}, fail: map[string]bool{"v2": true}}
	assert.False(t, ClearAllCaches(ctx, cs))
	assert.Equal(t, []string{"v2", "v1"}, cs.deleted)

	assert.True(t, ClearAllCaches(ctx, &fakeCaches{names: []string{"a"}}))
	assert.True(t, ClearAllCaches(ctx, &fakeCaches{}))
	assert.False(t, ClearAllCaches(ctx, &fakeCaches{keysErr: errors.New("no cache api")}))
	assert.False(t, ClearAllCaches(ctx, nil))
}

func TestDirCaches(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	for _, n := range []string{"documents", "thumbnails"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, n, "sub"), 0o700))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o600))

	dc := DirCaches{Root: root}
	names, err := dc.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"documents", "thumbnails"}, names)

	assert.True(t, ClearAllCaches(ctx, dc))
	names, err = dc.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.FileExists(t, filepath.Join(root, "stray.txt"))

	assert.Error(t, dc.Delete(ctx, "../escape"))

	names, err = DirCaches{Root: filepath.Join(root, "missing")}.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

type fakeHost struct {
	installed, online bool
	perm              string
}

func (f fakeHost) Installed() bool                { return f.installed }
func (f fakeHost) Online() bool                   { return f.online }
func (f fakeHost) NotificationPermission() string { return f.perm }

type staticConn bool

func (s staticConn) Online() bool { return bool(s) }

func TestHostProbes(t *testing.T) {
	assert.False(t, IsInstalled(nil))
	assert.False(t, IsOnline(nil))
	assert.Equal(t, PermissionUnsupported, NotificationPermission(nil))

	h := fakeHost{installed: true, online: true, perm: PermissionGranted}
	assert.True(t, IsInstalled(h))
	assert.True(t, IsOnline(h))
	assert.Equal(t, PermissionGranted, NotificationPermission(h))
	assert.Equal(t, PermissionUnsupported, NotificationPermission(fakeHost{perm: "prompt"}))
}

func TestTerminalHost(t *testing.T) {
	dir := t.TempDir()
	h := TerminalHost{DataDir: dir, Conn: staticConn(true)}
	assert.True(t, IsInstalled(h))
	assert.True(t, IsOnline(h))
	assert.Equal(t, PermissionDefault, NotificationPermission(h))

	f, err := os.CreateTemp(dir, "out")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	h.Out = f
	assert.Equal(t, PermissionDenied, NotificationPermission(h))

	assert.False(t, IsInstalled(TerminalHost{DataDir: filepath.Join(dir, "nope")}))
	assert.False(t, IsOnline(TerminalHost{}))
}
