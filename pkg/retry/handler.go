package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
	"github.com/rohmanhakim/mauvaise-langue/pkg/timeutil"
)

// Retry executes fn up to MaxAttempts times, applying exponential backoff
// with jitter between attempts. Only retryable errors trigger another attempt.
// A cancelled ctx stops the wait between attempts.
//
// MaxAttempts of 1 runs fn exactly once, which is how callers opt out of retrying.
func Retry[T any](ctx context.Context, retryParam RetryParam, fn func() (T, failure.ClassifiedError)) Result[T] {
	var lastErr failure.ClassifiedError
	var zero T

	if retryParam.MaxAttempts < 1 {
		return Result[T]{
			value: zero,
			err: &RetryError{
				Message:   "max attempt cannot be 0",
				Cause:     ErrZeroAttempt,
				Retryable: true,
			},
		}
	}

	rng := rand.New(rand.NewSource(retryParam.RandomSeed))

	for attempt := 1; attempt <= retryParam.MaxAttempts; attempt++ {
		value, err := fn()
		if err == nil {
			return Result[T]{value: value, attempts: attempt}
		}
		lastErr = err

		if !isErrorRetryable(err) {
			return Result[T]{value: zero, err: err, attempts: attempt}
		}

		// a single-attempt budget surfaces the task error unchanged
		if retryParam.MaxAttempts == 1 {
			return Result[T]{value: zero, err: err, attempts: attempt}
		}

		if attempt == retryParam.MaxAttempts {
			break
		}

		backoffDelay := timeutil.ExponentialBackoffDelay(
			attempt,
			retryParam.Jitter,
			rng,
			retryParam.BackoffParam,
		)

		timer := time.NewTimer(backoffDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result[T]{
				value: zero,
				err: &RetryError{
					Message:   ctx.Err().Error(),
					Cause:     ErrCancelled,
					Retryable: false,
					Last:      lastErr,
				},
				attempts: attempt,
			}
		case <-timer.C:
		}
	}

	return Result[T]{
		value: zero,
		err: &RetryError{
			Message:   fmt.Sprintf("exhausted %d attempts. Last error: %v", retryParam.MaxAttempts, lastErr),
			Cause:     ErrExhaustedAttempts,
			Retryable: true,
			Last:      lastErr,
		},
		attempts: retryParam.MaxAttempts,
	}
}

// isErrorRetryable checks if an error should be retried.
// Errors that do not say otherwise are treated as retryable.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}
	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}
	return true
}
