package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist or is not visible to
// the requesting owner
var ErrNotFound = errors.New("record not found")

// ValidationError marks input that was rejected before any store call
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError wraps a message as a ValidationError
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GoalRecalcError reports that an investment mutation succeeded but the
// follow-up recalculation of a linked goal's invested amount failed. The
// affected goal's cached value is stale until the next successful recalc;
// callers should surface this distinctly so the user can retry.
type GoalRecalcError struct {
	GoalID uuid.UUID
	Err    error
}

func (e *GoalRecalcError) Error() string {
	return fmt.Sprintf("investment change saved, but recalculating goal %s failed: %v", e.GoalID, e.Err)
}

func (e *GoalRecalcError) Unwrap() error {
	return e.Err
}
