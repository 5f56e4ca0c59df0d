package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/kvstore"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/nyaysetu/nyaysetu-client/internal/logging"
)

type BannerState int

const (
	BannerHidden BannerState = iota
	BannerOffline
	BannerBackOnline
)

func (s BannerState) String() string {
	switch s {
	case BannerOffline:
		return "offline"
	case BannerBackOnline:
		return "back online"
	default:
		return "hidden"
	}
}

const DefaultNoticeDuration = 3 * time.Second

// Banner derives offline-banner visibility from detector transitions.
// Going offline shows the banner unless the user dismissed it; coming back
// shows a notice for a while and clears the dismissal.
type Banner struct {
	kv     kvstore.Store
	log    logging.Logger
	notice time.Duration

	// afterFunc schedules the notice timeout; replaced in tests.
	afterFunc func(time.Duration, func()) (stop func() bool)

	mu        sync.Mutex
	state     BannerState
	dismissed bool
	stopTimer func() bool
	listeners []func(BannerState)
	closed    bool
}

// NewBanner reads the persisted dismissal flag once and attaches to det.
func NewBanner(ctx context.Context, det *Detector, kv kvstore.Store, notice time.Duration, log logging.Logger) *Banner {
	if log == nil {
		log = logging.Nop()
	}
	if notice <= 0 {
		notice = DefaultNoticeDuration
	}
	b := &Banner{
		kv:     kv,
		log:    log,
		notice: notice,
		afterFunc: func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		},
	}

	if kv != nil {
		v, err := kv.Get(ctx, common.BannerDismissedKey)
		if err != nil && !kvstore.IsNotFound(err) {
			log.Warn(ctx, "read banner flag", "error", err)
		}
		b.dismissed = common.IsTruthyFlag(v)
	}
	if !det.Online() && !b.dismissed {
		b.state = BannerOffline
	}

	det.OnChange(func(online bool) { b.transition(context.Background(), online) })
	return b
}

func (b *Banner) State() BannerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// OnChange registers fn for every visible state change.
func (b *Banner) OnChange(fn func(BannerState)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Dismiss hides the offline banner and persists the choice until the next
// reconnect.
func (b *Banner) Dismiss(ctx context.Context) {
	if b.kv != nil {
		if err := b.kv.Set(ctx, common.BannerDismissedKey, common.BannerDismissedFlag); err != nil {
			b.log.Warn(ctx, "persist banner flag", "error", err)
		}
	}
	b.mu.Lock()
	b.dismissed = true
	changed := b.state == BannerOffline
	if changed {
		b.state = BannerHidden
	}
	b.mu.Unlock()
	if changed {
		b.emit(BannerHidden)
	}
}

func (b *Banner) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.stopTimer != nil {
		b.stopTimer()
		b.stopTimer = nil
	}
}

func (b *Banner) transition(ctx context.Context, online bool) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if b.stopTimer != nil {
		b.stopTimer()
		b.stopTimer = nil
	}

	var next BannerState
	clearFlag := false
	if online {
		next = BannerBackOnline
		clearFlag = b.dismissed
		b.dismissed = false
		b.stopTimer = b.afterFunc(b.notice, b.hideNotice)
	} else if !b.dismissed {
		next = BannerOffline
	}
	changed := next != b.state
	b.state = next
	b.mu.Unlock()

	if clearFlag && b.kv != nil {
		if err := b.kv.Delete(ctx, common.BannerDismissedKey); err != nil {
			b.log.Warn(ctx, "clear banner flag", "error", err)
		}
	}
	if changed {
		b.emit(next)
	}
}

func (b *Banner) hideNotice() {
	b.mu.Lock()
	if b.closed || b.state != BannerBackOnline {
		b.mu.Unlock()
		return
	}
	b.state = BannerHidden
	b.stopTimer = nil
	b.mu.Unlock()
	b.emit(BannerHidden)
}

func (b *Banner) emit(s BannerState) {
	b.mu.Lock()
	ls := append([]func(BannerState){}, b.listeners...)
	b.mu.Unlock()
	for _, fn := range ls {
		fn(s)
	}
}
