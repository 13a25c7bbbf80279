package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/retry"
)

func fastConfig(attempts int) retry.Config {
	return retry.Config{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestDo(t *testing.T) {
	t.Run("successfully returns after a transient failure", func(t *testing.T) {
		calls := 0
		var retried []int
		cfg := fastConfig(3)
		cfg.OnRetry = func(attempt int, err error, nextDelay time.Duration) {
			retried = append(retried, attempt)
		}

		err := retry.Do(context.Background(), cfg, "smtp", func(ctx context.Context) error {
			calls++
			if calls < 2 {
				return errors.New("temporary")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, []int{1}, retried)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		sentinel := errors.New("down")

		err := retry.Do(context.Background(), fastConfig(3), "postgres", func(ctx context.Context) error {
			calls++
			return sentinel
		})

		assert.ErrorIs(t, err, sentinel)
		assert.Contains(t, err.Error(), "postgres: max retry attempts (3) exceeded")
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := retry.Do(ctx, fastConfig(5), "redis", func(ctx context.Context) error {
			calls++
			return nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, calls)
	})
}
