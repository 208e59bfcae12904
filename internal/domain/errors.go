package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// ErrUserNotFound signals an unknown user id. Propagated to the
	// caller, never retried.
	ErrUserNotFound = errors.New("user not found")

	// ErrHabitNotFound signals an unknown habit id for a known user.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrPersistence wraps record-store failures. The due-habit
	// selector surfaces these per user without aborting other users.
	ErrPersistence = errors.New("record store failure")
)

// ValidationError rejects malformed schedule or check-in input before
// any state mutation. The stored habit is left untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for a field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
