// Package backoff retries startup operations with capped exponential backoff.
package backoff

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// MaxDelay caps the delay between attempts.
const MaxDelay = 16 * time.Second

// Retry calls fn up to attempts times, sleeping Delay(n) after the n-th failure.
// It returns the number of the successful attempt. A non-positive attempts value
// means a single try.
func Retry(ctx context.Context, attempts int, op string, fn func(ctx context.Context) error) (int, error) {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return attempt, nil
		}

		if attempt < attempts {
			delay := Delay(attempt)
			slog.Warn(op+" failed, retrying",
				"attempt", attempt,
				"max_attempts", attempts,
				"backoff", delay,
				"error", lastErr,
			)
			if !sleep(ctx, delay) {
				return attempt, fmt.Errorf("%s cancelled: %w", op, ctx.Err())
			}
		}
	}

	return attempts, fmt.Errorf("%s after %d attempts: %w", op, attempts, lastErr)
}

// Delay returns the backoff after the given failed attempt: 1s, 2s, 4s ... MaxDelay.
func Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 5 {
		return MaxDelay
	}
	d := time.Duration(1<<(attempt-1)) * time.Second
	if d > MaxDelay {
		d = MaxDelay
	}
	return d
}

// sleep waits for d or context cancellation. Returns false if cancelled.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
