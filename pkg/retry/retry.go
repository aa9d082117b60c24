// Package retry re-runs an operation with exponential backoff and jitter.
// Used to ride out transient filesystem errors when the roster file is rewritten.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// markedError carries the caller's verdict on whether err is worth retrying.
type markedError struct {
	err   error
	retry bool
}

func (e *markedError) Error() string { return e.err.Error() }
func (e *markedError) Unwrap() error { return e.err }

// Retryable marks err as transient. Only marked errors are retried.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &markedError{err: err, retry: true}
}

// Permanent marks err as final; Do returns it at once.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &markedError{err: err}
}

// Retrier runs an operation up to attempts times, doubling the pause
// between tries up to maxDelay.
type Retrier struct {
	attempts int
	delay    time.Duration
	maxDelay time.Duration
	jitter   float64
}

// FileWriteRetrier returns a Retrier tuned for rewriting a local file:
// a few quick attempts, since a user is waiting at the prompt.
// attempts below 1 means a single try.
func FileWriteRetrier(attempts int) *Retrier {
	return &Retrier{
		attempts: max(attempts, 1),
		delay:    50 * time.Millisecond,
		maxDelay: time.Second,
		jitter:   0.05,
	}
}

// Do calls op until it succeeds, returns an error not marked Retryable,
// runs out of attempts or ctx is done. The returned error is unmarked.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	delay := r.delay

	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return unmark(lastErr)
			}
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		var marked *markedError
		if !errors.As(lastErr, &marked) || !marked.retry || attempt == r.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return unmark(lastErr)
		case <-time.After(r.withJitter(delay)):
		}
		delay = min(delay*2, r.maxDelay)
	}

	return unmark(lastErr)
}

func (r *Retrier) withJitter(d time.Duration) time.Duration {
	if r.jitter <= 0 || d <= 0 {
		return d
	}
	return d + time.Duration(float64(d)*r.jitter*(rand.Float64()*2-1))
}

func unmark(err error) error {
	var marked *markedError
	if errors.As(err, &marked) {
		return marked.err
	}
	return err
}
