package store

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable matches every failure to reach or commit to the
	// durable medium.
	ErrUnavailable = errors.New("store unavailable")

	// ErrClosed is returned after Close. It also matches ErrUnavailable.
	ErrClosed = &UnavailableError{Op: "use", Err: errors.New("store is closed")}

	// ErrInvalidLimit is returned by ListRecent for a non-positive limit.
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

// UnavailableError reports a failed store operation. No partial row is
// visible when Insert returns one.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnavailable) true for any UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return err
	}
	return &UnavailableError{Op: op, Err: err}
}
