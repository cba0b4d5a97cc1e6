// Package retry provides the reissue loop for blocking system calls
// that can fail with an interrupted-call error.
package retry

import (
	"context"
	"errors"
	"fmt"
)

// PermanentError wraps an error to signal that reissuing the call will
// not help.  Return [Permanent](err) from the operation function to
// stop the loop immediately.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as non-retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err has been marked as permanent.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// MaxInterrupts bounds the reissue loop so a stream of signals cannot
// spin it forever.
const MaxInterrupts = 1024

// OnInterrupt executes fn, reissuing it while it fails with an
// interrupted-call error.  Any other failure, a permanent marker, or
// context cancellation ends the loop.  The attempt parameter passed to
// fn is 1-based.
func OnInterrupt(ctx context.Context, interrupted func(error) bool, fn func(attempt int) error) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("retry cancelled: %w", err)
		}

		err := fn(attempt)
		if err == nil {
			return nil
		}
		if IsPermanent(err) {
			return errors.Unwrap(err)
		}
		if !interrupted(err) {
			return err
		}
		if attempt >= MaxInterrupts {
			return fmt.Errorf("interrupted %d times: %w", attempt, err)
		}
	}
}
