package csvfile

import (
	"errors"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// OpenRetrier retries transient statement-file open errors with exponential
// backoff. Only the open path retries; appends surface their first failure.
type OpenRetrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	log             zerolog.Logger
}

// NewOpenRetrier creates a retrier with default settings.
func NewOpenRetrier(log zerolog.Logger) *OpenRetrier {
	return &OpenRetrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  5 * time.Second,
		log:             log,
	}
}

// Retry executes operation, retrying on transient errors until the retry or
// elapsed-time cap is hit.
func (r *OpenRetrier) Retry(operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isTransientOpenError(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.log.Warn().
			Err(err).
			Int("retry", retryCount).
			Msg("transient statement open error, retrying")

		return err
	}, b)
}

// isTransientOpenError checks for errno values that can clear on their own:
// interrupted syscalls and descriptor exhaustion.
func isTransientOpenError(err error) bool {
	transient := []syscall.Errno{
		syscall.EINTR,
		syscall.EAGAIN,
		syscall.EMFILE,
		syscall.ENFILE,
	}
	for _, code := range transient {
		if errors.Is(err, code) {
			return true
		}
	}
	return false
}
