package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected per-instrument conditions. Both are
// recoverable: the batch records them and moves on.
var (
	// ErrNoData means the provider has no rows for the requested range.
	// Normal for illiquid or far-dated contracts.
	ErrNoData = errors.New("no data available for range")

	// ErrInvalidInstrument means the provider does not know the identifier.
	// Normal for not-yet-listed forward expiries.
	ErrInvalidInstrument = errors.New("invalid instrument")
)

// TransientError wraps a failure worth retrying: network trouble, provider
// busy, request timeout.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient provider error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// FatalError wraps a failure that makes the whole session unusable, such as
// a rejected app key. Issuing further requests is pointless.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal provider error: %v", e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Transient wraps err as retryable.
func Transient(err error) error {
	return &TransientError{Err: err}
}

// Fatal wraps err as session-fatal.
func Fatal(err error) error {
	return &FatalError{Err: err}
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// IsFatal reports whether err is (or wraps) a FatalError.
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}
