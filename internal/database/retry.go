package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const defaultRetries = 5

// retryBackoff is the wait after the given failed attempt
var retryBackoff = func(attempt int) time.Duration {
	return time.Second * time.Duration(attempt)
}

// Retry calls fn until it succeeds, at most attempts times, waiting a
// linearly growing delay between calls. A non-positive attempts uses the
// default of 5. It gives up early when ctx is done.
func Retry(ctx context.Context, attempts int, op string, fn func() error) error {
	if attempts <= 0 {
		attempts = defaultRetries
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		slog.Warn("database not ready",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(retryBackoff(attempt)):
		}
	}
	return fmt.Errorf("%s: giving up after %d attempts: %w", op, attempts, err)
}
