package interviews

import (
	"context"
	"time"
)

// withRetry runs op up to maxAttempts times with bounded exponential backoff.
// Each call type in the executor carries its own budget. Retries stop early
// when shouldRetry rejects the error or the context is done.
func withRetry(ctx context.Context, maxAttempts int, baseDelay time.Duration, shouldRetry func(error) bool, op func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if attempt == maxAttempts || (shouldRetry != nil && !shouldRetry(err)) {
			return err
		}

		delay := baseDelay << (attempt - 1)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
