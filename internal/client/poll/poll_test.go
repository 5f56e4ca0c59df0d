package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntil_ReturnsFirstDoneValue(t *testing.T) {
	calls := 0
	v, err := Until(context.Background(), time.Millisecond, 5, func(ctx context.Context) (string, bool, error) {
		calls++
		if calls < 3 {
			return "", false, nil
		}
		return "COMPLETED", true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", v)
	assert.Equal(t, 3, calls)
}

func TestUntil_Exhausted(t *testing.T) {
	calls := 0
	_, err := Until(context.Background(), time.Millisecond, 4, func(ctx context.Context) (int, bool, error) {
		calls++
		return 0, false, nil
	})
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 4, calls)
}

func TestUntil_SingleAttempt(t *testing.T) {
	calls := 0
	_, err := Until(context.Background(), time.Hour, 1, func(ctx context.Context) (int, bool, error) {
		calls++
		return 0, false, nil
	})
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 1, calls)
}

func TestUntil_CheckErrorIsTerminal(t *testing.T) {
	boom := errors.New("job failed")
	calls := 0
	_, err := Until(context.Background(), time.Millisecond, 10, func(ctx context.Context) (int, bool, error) {
		calls++
		return 0, false, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestUntil_CancelStopsWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := Until(ctx, time.Hour, 100, func(ctx context.Context) (int, bool, error) {
			return 0, false, nil
		})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Until did not return after cancel")
	}
}

func TestUntil_InvalidArguments(t *testing.T) {
	check := func(ctx context.Context) (int, bool, error) { return 1, true, nil }

	_, err := Until(context.Background(), 0, 3, check)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = Until(context.Background(), time.Second, 0, check)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}
