package services

import (
	"context"
	"fmt"
	"time"
)

const retryBaseDelay = 500 * time.Millisecond

// retry calls fn up to attempts times, waiting 500ms, 1s, 1.5s... between
// calls. It gives up early when ctx is done.
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}

		wait := time.Duration(i+1) * retryBaseDelay
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
