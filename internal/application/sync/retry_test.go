package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("returns after first success", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 2, Delay: time.Millisecond}

		calls := 0
		attempts, err := policy.Do(ctx, func(context.Context) error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries up to the configured bound", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 2, Delay: time.Millisecond}

		calls := 0
		wantErr := errors.New("boom")
		attempts, err := policy.Do(ctx, func(context.Context) error {
			calls++
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, 3, calls)
	})

	t.Run("succeeds on a later attempt", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 2, Delay: time.Millisecond}

		calls := 0
		attempts, err := policy.Do(ctx, func(context.Context) error {
			calls++
			if calls < 2 {
				return errors.New("transient")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("terminal error stops after one attempt", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 2, Delay: time.Millisecond}

		calls := 0
		wantErr := errors.New("already there")
		attempts, err := policy.Do(ctx, func(context.Context) error {
			calls++
			return Terminal(wantErr)
		})

		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
	})

	t.Run("terminal error unwraps to the original", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 1, Delay: time.Millisecond}

		_, err := policy.Do(ctx, func(context.Context) error {
			return Terminal(ErrAlreadyImported)
		})

		assert.Equal(t, ErrAlreadyImported, err)
	})

	t.Run("zero retries means a single attempt", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 0, Delay: time.Millisecond}

		calls := 0
		attempts, err := policy.Do(ctx, func(context.Context) error {
			calls++
			return errors.New("boom")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
	})

	t.Run("negative retries normalizes to one attempt", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: -5}
		assert.Equal(t, 1, policy.Attempts())
	})

	t.Run("cancelled context stops between attempts", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 5, Delay: time.Minute}

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		calls := 0
		attempts, err := policy.Do(cancelCtx, func(context.Context) error {
			calls++
			return errors.New("boom")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
	})
}
