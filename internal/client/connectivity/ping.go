package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/logging"
)

const defaultProbeTimeout = 3 * time.Second

// ProbeFunc reports reachability; nil means online.
type ProbeFunc func(ctx context.Context) error

type subscriber struct {
	onOnline  func()
	onOffline func()
}

// PingSource is a Source for hosts without a native network signal: it
// probes the backend on a ticker and fires subscribers on edges only.
type PingSource struct {
	probe    ProbeFunc
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger

	mu     sync.Mutex
	online bool
	subs   map[int]subscriber
	nextID int
}

// NewPingSource starts in the online state; the first failed probe flips it.
func NewPingSource(probe ProbeFunc, interval time.Duration, log logging.Logger) *PingSource {
	if log == nil {
		log = logging.Nop()
	}
	return &PingSource{
		probe:    probe,
		interval: interval,
		timeout:  defaultProbeTimeout,
		log:      log,
		online:   true,
		subs:     make(map[int]subscriber),
	}
}

func (p *PingSource) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online
}

func (p *PingSource) Subscribe(onOnline, onOffline func()) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = subscriber{onOnline: onOnline, onOffline: onOffline}
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Check probes once and returns the resulting state.
func (p *PingSource) Check(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, p.timeout)
	err := p.probe(pctx)
	cancel()

	online := err == nil
	if err != nil {
		p.log.Debug(ctx, "backend probe failed", "error", err)
	}

	p.mu.Lock()
	if p.online == online {
		p.mu.Unlock()
		return online
	}
	p.online = online
	subs := make([]subscriber, 0, len(p.subs))
	for id := 0; id < p.nextID; id++ {
		if s, ok := p.subs[id]; ok {
			subs = append(subs, s)
		}
	}
	p.mu.Unlock()

	p.log.Info(ctx, "connectivity changed", "online", online)
	for _, s := range subs {
		if online && s.onOnline != nil {
			s.onOnline()
		}
		if !online && s.onOffline != nil {
			s.onOffline()
		}
	}
	return online
}

// Run probes immediately and then every interval until ctx is done.
func (p *PingSource) Run(ctx context.Context) {
	p.Check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
