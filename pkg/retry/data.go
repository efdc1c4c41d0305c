package retry

import (
	"time"

	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
	"github.com/rohmanhakim/mauvaise-langue/pkg/timeutil"
)

// RetryParam holds the parameters for retry logic.
// These parameters are passed from outside (e.g., config) and should not
// be known by the retry handler internally.
type RetryParam struct {
	Jitter       time.Duration
	RandomSeed   int64
	MaxAttempts  int
	BackoffParam timeutil.BackoffParam
}

// NewRetryParam creates a new RetryParam with the given settings.
func NewRetryParam(
	jitter time.Duration,
	randomSeed int64,
	maxAttempts int,
	backoffParam timeutil.BackoffParam,
) RetryParam {
	return RetryParam{
		Jitter:       jitter,
		RandomSeed:   randomSeed,
		MaxAttempts:  maxAttempts,
		BackoffParam: backoffParam,
	}
}

// Result is the outcome of a retried task: the value of the last attempt,
// its error (nil on success) and how many attempts were made.
type Result[T any] struct {
	value    T
	err      failure.ClassifiedError
	attempts int
}

func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() failure.ClassifiedError {
	return r.err
}

func (r Result[T]) Attempts() int {
	return r.attempts
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

func (r Result[T]) IsFailure() bool {
	return r.err != nil
}
