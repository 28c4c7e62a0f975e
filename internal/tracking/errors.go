package tracking

import "fmt"

// ValidationError names the first offending field of a rejected payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a store failure on the submit path.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persist tracking event: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
