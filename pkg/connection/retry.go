package connection

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAttemptsExhausted is returned by Retry when every attempt failed.
var ErrAttemptsExhausted = errors.New("connection: attempts exhausted")

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err so that Retry returns it without trying again.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Retry calls fn until it succeeds, returns a Permanent error, ctx ends or
// attempts calls have failed. attempts <= 0 means no limit. The backoff is
// reset after a success.
//
// The returned error wraps the last failure of fn. When attempts run out it
// also wraps ErrAttemptsExhausted; when ctx ends it also wraps ctx.Err().
func Retry(ctx context.Context, b *Backoff, attempts int, fn func(ctx context.Context) error) error {
	if b == nil {
		b = NewBackoff()
	}

	var last error
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			if last == nil {
				return err
			}
			return fmt.Errorf("%w: %w", err, last)
		}

		last = fn(ctx)
		if last == nil {
			b.Reset()
			return nil
		}
		var p *permanentError
		if errors.As(last, &p) {
			return p.err
		}
		if attempts > 0 && n >= attempts {
			return fmt.Errorf("%w after %d: %w", ErrAttemptsExhausted, n, last)
		}

		timer := time.NewTimer(b.Next())
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ctx.Err(), last)
		case <-timer.C:
		}
	}
}
