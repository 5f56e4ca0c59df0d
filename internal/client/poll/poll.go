// Package poll repeats a completion check at a fixed interval until it
// reports done, fails, runs out of attempts or its context is cancelled.
//
// Each call is independent: there is no shared scheduler, and cancelling
// the context stops the pending timer immediately.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/sethvargo/go-retry"
)

// ErrAttemptsExhausted is returned when every attempt reported not-done.
var ErrAttemptsExhausted = errors.New("poll: attempts exhausted")

var errNotDone = errors.New("not done")

// CheckFunc performs one attempt. It returns done=true with the final value,
// done=false to try again, or an error to stop immediately.
type CheckFunc[T any] func(ctx context.Context) (value T, done bool, err error)

// Until runs check at most maxAttempts times, interval apart, starting now.
func Until[T any](ctx context.Context, interval time.Duration, maxAttempts int, check CheckFunc[T]) (T, error) {
	var result T

	if interval <= 0 || maxAttempts < 1 {
		return result, fmt.Errorf("%w: poll interval %s, attempts %d", common.ErrInvalidArgument, interval, maxAttempts)
	}

	backoff := retry.WithMaxRetries(uint64(maxAttempts-1), retry.NewConstant(interval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, done, err := check(ctx)
		if err != nil {
			return err
		}
		if !done {
			return retry.RetryableError(errNotDone)
		}
		result = v
		return nil
	})

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, errNotDone):
		var zero T
		return zero, ErrAttemptsExhausted
	default:
		var zero T
		return zero, err
	}
}
