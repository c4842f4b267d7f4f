package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity is not found.
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when attempting to create a duplicate entity.
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrConflict is returned when a follow-up is submitted to a session that
	// already has a run in progress. At most one run per session at a time.
	ErrConflict = errors.New("session already has a run in progress")

	// ErrNotCancellable is returned when cancelling a session that has no
	// pending or in-progress run.
	ErrNotCancellable = errors.New("session is not in a cancellable state")
)

// ValidationError wraps field-specific validation errors.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
