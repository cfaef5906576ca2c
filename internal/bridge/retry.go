package bridge

import (
	"context"
	"log/slog"
	"time"
)

// Retry runs op up to attempts times, sleeping a constant delay between
// failed attempts. There is no backoff growth: delivery failures here are
// short destination hiccups, not load shedding. Returns nil as soon as op
// succeeds; after the final failed attempt the last error is returned.
// Each failed attempt emits one warn log carrying the attempt index.
func Retry(ctx context.Context, attempts int, delay time.Duration, logger *slog.Logger, op func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		logger.Warn("attempt failed", "attempt", attempt, "err", lastErr)

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return lastErr
}
