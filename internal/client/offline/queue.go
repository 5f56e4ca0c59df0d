// Package offline persists actions attempted while the backend was
// unreachable so they can be replayed later.
//
// The queue is a JSON array stored under a single key. Operations never
// return errors: storage or encoding failures degrade to false or an empty
// slice and are logged. A sequence that could not be read is never
// rewritten.
package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/kvstore"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/nyaysetu/nyaysetu-client/internal/logging"
	"github.com/nyaysetu/nyaysetu-client/internal/safex"
)

// Entry is one queued action with its enqueue time in epoch milliseconds.
type Entry struct {
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// Decode unmarshals the payload into v.
func (e Entry) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

type Queue struct {
	kv  kvstore.Store
	log logging.Logger
	now func() time.Time
	mu  sync.Mutex
}

type Option func(*Queue)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

func NewQueue(kv kvstore.Store, log logging.Logger, opts ...Option) *Queue {
	if log == nil {
		log = logging.Nop()
	}
	q := &Queue{kv: kv, log: log, now: time.Now}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Enqueue appends action and rewrites the stored sequence.
func (q *Queue) Enqueue(ctx context.Context, action any) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	ok, err := safex.Succeeded(func() error {
		payload, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("encode action: %w", err)
		}
		entries, err := q.load(ctx)
		if err != nil {
			return err
		}
		return q.write(ctx, append(entries, Entry{Payload: payload, Timestamp: q.now().UnixMilli()}))
	})
	if !ok {
		q.log.Warn(ctx, "offline enqueue failed", "error", err)
	}
	return ok
}

// PeekAll returns the queued entries oldest first. A missing or corrupt
// value reads as empty.
func (q *Queue) PeekAll(ctx context.Context) []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.read(ctx)
}

func (q *Queue) Len(ctx context.Context) int {
	return len(q.PeekAll(ctx))
}

// Clear drops the whole sequence.
func (q *Queue) Clear(ctx context.Context) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.clear(ctx)
}

// Take removes and returns every entry in one step.
func (q *Queue) Take(ctx context.Context) []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		q.log.Warn(ctx, "offline take failed", "error", err)
		return nil
	}
	if len(entries) > 0 && !q.clear(ctx) {
		return nil
	}
	return entries
}

// Prepend puts entries back ahead of anything queued since they were taken,
// keeping their original timestamps.
func (q *Queue) Prepend(ctx context.Context, entries []Entry) bool {
	if len(entries) == 0 {
		return true
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	ok, err := safex.Succeeded(func() error {
		queued, err := q.load(ctx)
		if err != nil {
			return err
		}
		return q.write(ctx, append(append([]Entry{}, entries...), queued...))
	})
	if !ok {
		q.log.Warn(ctx, "offline requeue failed", "error", err, "entries", len(entries))
	}
	return ok
}

func (q *Queue) read(ctx context.Context) []Entry {
	entries, err := q.load(ctx)
	if err != nil {
		q.log.Warn(ctx, "offline queue unreadable, treating as empty", "error", err)
		return []Entry{}
	}
	return entries
}

// load returns the stored sequence. A missing key or corrupt JSON reads as
// empty; a failing store is reported as an error.
func (q *Queue) load(ctx context.Context) ([]Entry, error) {
	raw, err := safex.TryOrDefault(func() (string, error) {
		if q.kv == nil {
			return "", common.ErrNotFound
		}
		return q.kv.Get(ctx, common.OfflineQueueKey)
	}, "")
	switch {
	case kvstore.IsNotFound(err):
		return []Entry{}, nil
	case err != nil:
		return nil, fmt.Errorf("read offline queue: %w", err)
	}

	var out []Entry
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		q.log.Warn(ctx, "offline queue corrupt, treating as empty", "error", err)
		return []Entry{}, nil
	}
	if out == nil {
		out = []Entry{}
	}
	return out, nil
}

func (q *Queue) write(ctx context.Context, entries []Entry) error {
	if q.kv == nil {
		return fmt.Errorf("%w: no storage", common.ErrInvalidArgument)
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode offline queue: %w", err)
	}
	return q.kv.Set(ctx, common.OfflineQueueKey, string(data))
}

func (q *Queue) clear(ctx context.Context) bool {
	ok, err := safex.Succeeded(func() error {
		if q.kv == nil {
			return fmt.Errorf("%w: no storage", common.ErrInvalidArgument)
		}
		return q.kv.Delete(ctx, common.OfflineQueueKey)
	})
	if !ok {
		q.log.Warn(ctx, "offline queue clear failed", "error", err)
	}
	return ok
}

// QueueOfflineAction enqueues action on the queue stored in kv.
func QueueOfflineAction(ctx context.Context, kv kvstore.Store, action any) bool {
	return NewQueue(kv, nil).Enqueue(ctx, action)
}

func GetOfflineQueue(ctx context.Context, kv kvstore.Store) []Entry {
	return NewQueue(kv, nil).PeekAll(ctx)
}

func ClearOfflineQueue(ctx context.Context, kv kvstore.Store) bool {
	return NewQueue(kv, nil).Clear(ctx)
}
