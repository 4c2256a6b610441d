package sync

import (
	"context"
	"errors"
	"time"
)

// terminalError marks an error that must not be retried
type terminalError struct {
	err error
}

func (e terminalError) Error() string { return e.err.Error() }
func (e terminalError) Unwrap() error { return e.err }

// Terminal wraps err so that Do returns it immediately, skipping any
// remaining attempts. Used for outcomes more attempts cannot change, like
// an order that already exists locally.
func Terminal(err error) error {
	return terminalError{err: err}
}

// RetryPolicy is the single retry policy used for per-order work: one initial
// attempt plus MaxRetries retries, a fixed delay apart.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// Attempts returns the total number of attempts the policy allows
func (p RetryPolicy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return 1 + p.MaxRetries
}

// Do runs fn up to Attempts() times, sleeping Delay between attempts. It
// returns the attempt count together with the last error, nil once fn
// succeeds. A Terminal error or context cancellation stops the loop early.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	attempts := p.Attempts()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return attempt, nil
		}
		var terminal terminalError
		if errors.As(lastErr, &terminal) {
			return attempt, terminal.err
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return attempt, lastErr
		case <-time.After(p.Delay):
		}
	}
	return attempts, lastErr
}
