package enrich

import (
	"context"
	"log/slog"
	"time"
)

// Retry runs an operation up to maxAttempts times with a fixed delay between
// attempts. The first attempt runs immediately; the delay is applied before
// each retry. Returns the error from the last attempt if all attempts fail.
// The same policy drives the rating and enrichment calls.
func Retry(ctx context.Context, operation func() error, maxAttempts int, delay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if attempt > 1 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		slog.Debug("operation failed, will retry", "attempt", attempt, "maxAttempts", maxAttempts, "error", lastErr)
	}

	return lastErr
}
