package importer

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"
)

const (
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// retryableErrnos are the transient local filesystem failures worth another
// attempt.
var retryableErrnos = []error{syscall.EBUSY, syscall.EAGAIN, syscall.EINTR, syscall.ETXTBSY}

// retryWithBackoff runs fn until it succeeds, fails with an error
// isRetryableError rejects, or maxRetries retries are spent. The wait between
// attempts doubles up to maxBackoff. Attempts never overlap.
func retryWithBackoff(ctx context.Context, operation string, fn func() error) error {
	wait := initialBackoff
	var err error
	for attempt := range maxRetries + 1 {
		if attempt > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%s: %w after %d attempts: %w", operation, ctx.Err(), attempt, err)
			case <-timer.C:
			}
			wait = min(2*wait, maxBackoff)
		}

		if err = fn(); err == nil {
			return nil
		}
		if !isRetryableError(err) {
			return fmt.Errorf("%s: %w", operation, err)
		}
	}
	return fmt.Errorf("%s: giving up after %d attempts: %w", operation, maxRetries+1, err)
}

// isRetryableError reports whether err wraps one of retryableErrnos.
func isRetryableError(err error) bool {
	for _, target := range retryableErrnos {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
