// Package connectivity tracks whether the backend is reachable and turns
// raw online/offline signals into edge notifications and banner state.
package connectivity

import (
	"slices"
	"sync"
)

// Source is the platform network-status signal.
type Source interface {
	Online() bool
	// Subscribe registers transition callbacks and returns a function that
	// removes them.
	Subscribe(onOnline, onOffline func()) (unsubscribe func())
}

// Detector mirrors a Source and remembers the previous state. Listeners run
// synchronously, in registration order, once per real transition.
type Detector struct {
	// notifying is held for a whole transition, listener calls included.
	notifying sync.Mutex

	mu          sync.Mutex
	online      bool
	previous    bool
	listeners   []func(online bool)
	unsubscribe func()
	closed      bool
}

// NewDetector reads the initial state from src. A nil src is treated as
// permanently online.
func NewDetector(src Source) *Detector {
	d := &Detector{online: true, previous: true}
	if src == nil {
		return d
	}
	d.online = src.Online()
	d.previous = d.online
	d.unsubscribe = src.Subscribe(func() { d.set(true) }, func() { d.set(false) })
	return d
}

func (d *Detector) OnChange(fn func(online bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

func (d *Detector) Online() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.online
}

// Previous is the state before the latest transition.
func (d *Detector) Previous() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.previous
}

// Close detaches from the source and waits for a notification in flight to
// finish; no listener runs after it returns. It is safe to call more than
// once but must not be called from a listener.
func (d *Detector) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	unsub := d.unsubscribe
	d.listeners = nil
	d.mu.Unlock()

	if unsub != nil {
		unsub()
	}

	d.notifying.Lock()
	d.notifying.Unlock()
}

func (d *Detector) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Detector) set(online bool) {
	d.notifying.Lock()
	defer d.notifying.Unlock()

	d.mu.Lock()
	if d.closed || d.online == online {
		d.mu.Unlock()
		return
	}
	d.previous = d.online
	d.online = online
	ls := slices.Clone(d.listeners)
	d.mu.Unlock()

	for _, fn := range ls {
		if d.isClosed() {
			return
		}
		fn(online)
	}
}
