// Package platform wraps host capabilities the client may or may not have:
// storage estimates, named caches and host probes. Every helper degrades to
// nil, false or "unsupported" instead of returning an error.
package platform

import (
	"context"
	"fmt"
	"math"

	"github.com/nyaysetu/nyaysetu-client/internal/filex"
	"github.com/nyaysetu/nyaysetu-client/internal/safex"
	"github.com/shirou/gopsutil/v3/disk"
)

const bytesPerMB = 1024 * 1024

// Estimate is a raw usage/quota pair in bytes.
type Estimate struct {
	Usage uint64
	Quota uint64
}

type StorageEstimator interface {
	Estimate(ctx context.Context) (Estimate, error)
}

type StorageUsage struct {
	UsageBytes  uint64  `json:"usage"`
	QuotaBytes  uint64  `json:"quota"`
	PercentUsed float64 `json:"percentUsed"`
	UsageMB     float64 `json:"usageMB"`
	QuotaMB     float64 `json:"quotaMB"`
}

// GetStorageUsage returns nil when est is nil or fails. A zero quota yields
// zero percent.
func GetStorageUsage(ctx context.Context, est StorageEstimator) *StorageUsage {
	if est == nil {
		return nil
	}
	usage, _ := safex.TryOrDefault(func() (*StorageUsage, error) {
		e, err := est.Estimate(ctx)
		if err != nil {
			return nil, err
		}
		u := &StorageUsage{
			UsageBytes: e.Usage,
			QuotaBytes: e.Quota,
			UsageMB:    round2(float64(e.Usage) / bytesPerMB),
			QuotaMB:    round2(float64(e.Quota) / bytesPerMB),
		}
		if e.Quota > 0 {
			u.PercentUsed = round2(float64(e.Usage) / float64(e.Quota) * 100)
		}
		return u, nil
	}, nil)
	return usage
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// DiskEstimator reports the bytes held under Dir against the space that
// could still be used on its filesystem.
type DiskEstimator struct {
	Dir string
}

func (d DiskEstimator) Estimate(ctx context.Context) (Estimate, error) {
	used, err := filex.DirSize(d.Dir)
	if err != nil {
		return Estimate{}, err
	}
	st, err := disk.UsageWithContext(ctx, d.Dir)
	if err != nil {
		return Estimate{}, fmt.Errorf("disk usage %s: %w", d.Dir, err)
	}
	return Estimate{Usage: used, Quota: used + st.Free}, nil
}
