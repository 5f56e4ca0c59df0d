package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/config"
	"github.com/nyaysetu/nyaysetu-client/internal/client/platform"
)

func (a *App) Queue(ctx context.Context) error {
	entries := a.actions.Pending(ctx)
	if len(entries) == 0 {
		a.println("Offline queue is empty")
		return nil
	}
	for i, e := range entries {
		var head struct {
			Op string `json:"op"`
		}
		_ = json.Unmarshal(e.Payload, &head)
		a.printf("%d. %s  %s\n", i+1, e.Time().Local().Format(time.DateTime), head.Op)
	}
	return nil
}

func (a *App) Drain(ctx context.Context) error {
	res := a.actions.Drain(ctx)
	a.printf("Replayed %d, rejected %d, unreadable %d, still pending %d\n", res.Replayed, res.Rejected, res.Corrupt, res.Kept)
	return nil
}

func (a *App) ClearQueue(ctx context.Context) error {
	if !a.actions.Discard(ctx) {
		a.println("Could not clear the offline queue")
		return nil
	}
	a.println("Offline queue cleared")
	return nil
}

func (a *App) Storage(ctx context.Context) error {
	u := platform.GetStorageUsage(ctx, a.estimator)
	if u == nil {
		a.println("Storage estimate unavailable")
		return nil
	}
	a.printf("Using %.2f MB of %.2f MB (%.2f%%)\n", u.UsageMB, u.QuotaMB, u.PercentUsed)
	return nil
}

func (a *App) ClearCache(ctx context.Context) error {
	if platform.ClearAllCaches(ctx, a.caches) {
		a.println("Caches cleared")
	} else {
		a.println("Some caches could not be cleared")
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	mode := a.currentMode()
	if mode == "" {
		mode = ModeOffline
		if a.detector.Online() {
			mode = ModeOnline
		}
	}
	a.printf("Mode:          %s\n", mode)
	a.printf("Banner:        %s\n", a.banner.State())
	a.printf("Backend:       %s\n", displayBase(a.config))
	a.printf("Queued:        %d\n", len(a.actions.Pending(ctx)))
	a.printf("Installed:     %t\n", platform.IsInstalled(a.host))
	a.printf("Reachable:     %t\n", platform.IsOnline(a.host))
	a.printf("Notifications: %s\n", platform.NotificationPermission(a.host))
	return nil
}

func (a *App) Dismiss(ctx context.Context) error {
	a.banner.Dismiss(ctx)
	a.println("Offline banner dismissed until the connection returns")
	return nil
}

func displayBase(c *config.Config) string {
	if c.APIBaseURL == "" {
		return c.ProxyOrigin + " (proxy)"
	}
	return c.APIBaseURL
}
