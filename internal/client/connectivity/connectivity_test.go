package connectivity

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/kvstore"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	online       bool
	onOnline     func()
	onOffline    func()
	unsubscribed int
}

func (f *fakeSource) Online() bool { return f.online }

func (f *fakeSource) Subscribe(onOnline, onOffline func()) func() {
	f.onOnline, f.onOffline = onOnline, onOffline
	return func() { f.unsubscribed++ }
}

func (f *fakeSource) goOnline()  { f.online = true; f.onOnline() }
func (f *fakeSource) goOffline() { f.online = false; f.onOffline() }

func TestDetector_NotifiesOncePerTransition(t *testing.T) {
	src := &fakeSource{online: true}
	d := NewDetector(src)

	var got []bool
	d.OnChange(func(online bool) { got = append(got, online) })

	src.goOffline()
	src.goOnline()

	assert.Equal(t, []bool{false, true}, got)
	assert.True(t, d.Online())
	assert.False(t, d.Previous())
}

func TestDetector_RepeatedSignalIsNotATransition(t *testing.T) {
	src := &fakeSource{online: true}
	d := NewDetector(src)

	calls := 0
	d.OnChange(func(bool) { calls++ })

	src.goOnline()
	src.goOffline()
	src.goOffline()

	assert.Equal(t, 1, calls)
}

func TestDetector_ListenerOrder(t *testing.T) {
	src := &fakeSource{online: true}
	d := NewDetector(src)

	var order []string
	d.OnChange(func(bool) { order = append(order, "first") })
	d.OnChange(func(bool) { order = append(order, "second") })
	src.goOffline()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDetector_CloseStopsNotifications(t *testing.T) {
	src := &fakeSource{online: true}
	d := NewDetector(src)

	calls := 0
	d.OnChange(func(bool) { calls++ })
	d.Close()
	d.Close()

	src.goOffline()
	assert.Zero(t, calls)
	assert.Equal(t, 1, src.unsubscribed)
	assert.True(t, d.Online())
}

func TestDetector_CloseWaitsForRunningListener(t *testing.T) {
	src := &fakeSource{online: true}
	d := NewDetector(src)

	entered := make(chan struct{})
	release := make(chan struct{})
	var second atomic.Bool
	d.OnChange(func(bool) {
		close(entered)
		<-release
	})
	d.OnChange(func(bool) { second.Store(true) })

	go src.goOffline()
	<-entered

	closed := make(chan struct{})
	go func() {
		d.Close()
		close(closed)
	}()
	require.Eventually(t, d.isClosed, time.Second, time.Millisecond)

	select {
	case <-closed:
		t.Fatal("Close returned while a listener was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return after the listener finished")
	}
	assert.False(t, second.Load(), "no listener runs once Close has started")
}

func TestDetector_InitialStateFromSource(t *testing.T) {
	d := NewDetector(&fakeSource{online: false})
	assert.False(t, d.Online())
	assert.False(t, d.Previous())

	assert.True(t, NewDetector(nil).Online())
}

func TestPingSource_EdgesOnly(t *testing.T) {
	var fail atomic.Bool
	p := NewPingSource(func(context.Context) error {
		if fail.Load() {
			return errors.New("unreachable")
		}
		return nil
	}, time.Hour, nil)

	var events []string
	unsub := p.Subscribe(func() { events = append(events, "online") }, func() { events = append(events, "offline") })

	ctx := context.Background()
	assert.True(t, p.Check(ctx))
	fail.Store(true)
	assert.False(t, p.Check(ctx))
	assert.False(t, p.Check(ctx))
	fail.Store(false)
	assert.True(t, p.Check(ctx))

	assert.Equal(t, []string{"offline", "online"}, events)

	unsub()
	fail.Store(true)
	p.Check(ctx)
	assert.Len(t, events, 2)
	assert.False(t, p.Online())
}

func TestPingSource_DrivesDetector(t *testing.T) {
	var fail atomic.Bool
	p := NewPingSource(func(context.Context) error {
		if fail.Load() {
			return errors.New("down")
		}
		return nil
	}, time.Hour, nil)
	d := NewDetector(p)

	var got []bool
	d.OnChange(func(online bool) { got = append(got, online) })

	fail.Store(true)
	p.Check(context.Background())
	fail.Store(false)
	p.Check(context.Background())

	assert.Equal(t, []bool{false, true}, got)
}

func TestPingSource_RunStopsOnCancel(t *testing.T) {
	var probes atomic.Int32
	p := NewPingSource(func(context.Context) error {
		probes.Add(1)
		return nil
	}, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return probes.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type manualTimer struct {
	fire    func()
	stopped int
}

func (m *manualTimer) afterFunc(_ time.Duration, f func()) func() bool {
	m.fire = f
	return func() bool { m.stopped++; return true }
}

func newTestBanner(t *testing.T, src *fakeSource, kv kvstore.Store) (*Banner, *manualTimer) {
	t.Helper()
	b := NewBanner(context.Background(), NewDetector(src), kv, time.Second, nil)
	mt := &manualTimer{}
	b.afterFunc = mt.afterFunc
	return b, mt
}

func TestBanner_OfflineThenBackOnlineThenHidden(t *testing.T) {
	src := &fakeSource{online: true}
	b, mt := newTestBanner(t, src, kvstore.NewMemoryStore())

	var seen []BannerState
	b.OnChange(func(s BannerState) { seen = append(seen, s) })

	assert.Equal(t, BannerHidden, b.State())
	src.goOffline()
	assert.Equal(t, BannerOffline, b.State())
	src.goOnline()
	assert.Equal(t, BannerBackOnline, b.State())

	require.NotNil(t, mt.fire)
	mt.fire()
	assert.Equal(t, BannerHidden, b.State())
	assert.Equal(t, []BannerState{BannerOffline, BannerBackOnline, BannerHidden}, seen)
}

func TestBanner_StartsVisibleWhenOffline(t *testing.T) {
	b, _ := newTestBanner(t, &fakeSource{online: false}, kvstore.NewMemoryStore())
	assert.Equal(t, BannerOffline, b.State())
}

func TestBanner_PersistedDismissal(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   BannerState
	}{
		{"exact", "true", BannerHidden},
		{"padded", "  true\n", BannerHidden},
		{"other", "yes", BannerOffline},
		{"uppercase", "TRUE", BannerOffline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMemoryStore()
			require.NoError(t, kv.Set(context.Background(), common.BannerDismissedKey, tt.stored))
			b, _ := newTestBanner(t, &fakeSource{online: false}, kv)
			assert.Equal(t, tt.want, b.State())
		})
	}
}

func TestBanner_DismissPersistsUntilReconnect(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	src := &fakeSource{online: true}
	b, _ := newTestBanner(t, src, kv)

	src.goOffline()
	b.Dismiss(ctx)
	assert.Equal(t, BannerHidden, b.State())
	v, err := kv.Get(ctx, common.BannerDismissedKey)
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	src.goOnline()
	assert.Equal(t, BannerBackOnline, b.State())
	_, err = kv.Get(ctx, common.BannerDismissedKey)
	assert.True(t, kvstore.IsNotFound(err))

	src.goOffline()
	assert.Equal(t, BannerOffline, b.State())
}

func TestBanner_OfflineCancelsPendingNotice(t *testing.T) {
	src := &fakeSource{online: false}
	b, mt := newTestBanner(t, src, nil)

	src.goOnline()
	src.goOffline()
	assert.Equal(t, 1, mt.stopped)

	mt.fire()
	assert.Equal(t, BannerOffline, b.State())
}

func TestBanner_CloseStopsTimerAndUpdates(t *testing.T) {
	src := &fakeSource{online: false}
	b, mt := newTestBanner(t, src, nil)

	src.goOnline()
	b.Close()
	assert.Equal(t, 1, mt.stopped)

	src.goOffline()
	assert.Equal(t, BannerBackOnline, b.State())
}
