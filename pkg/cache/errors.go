package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks failures to reach a remote cache backend.
var ErrNetwork = errors.New("network error")

// RetryableError marks a transient failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err so [RetryWithBackoff] retries it. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryAttempts bounds the calls RetryWithBackoff makes.
const retryAttempts = 3

// retryDelay is the wait before the first retry. It doubles after each one.
var retryDelay = time.Second

// RetryWithBackoff calls fn until it succeeds, returns an error that is not
// [Retryable], or has failed retryAttempts times. It returns ctx.Err() if
// ctx ends while waiting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
