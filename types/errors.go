package types

import (
	"errors"
	"fmt"
)

// ValidationError reports a single malformed or out-of-range input field.
// It is always recoverable: the caller can correct the offending field and
// retry, and stored state is never touched when one is returned.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an operation that referenced a task id that does not
// exist, either because it was deleted or because it never existed.
type NotFoundError struct {
	ID int64 `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

var (
	// ErrInvalidPattern signals a recurrence pattern that reached the
	// recurrence engine without passing creation-time validation. It is a
	// programming defect, not a user-facing condition.
	ErrInvalidPattern = errors.New("invalid recurrence pattern")

	// ErrTaskLimitReached is returned when creating a task would exceed the
	// configured capacity of the in-memory collection.
	ErrTaskLimitReached = errors.New("task limit reached")
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
