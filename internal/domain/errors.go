package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidStatus is returned when a task status is not a known value.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidPriority is returned when a task priority is not a known value.
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a validation failure on a specific field.
// It wraps one of the sentinel errors above so callers can keep using
// errors.Is while still seeing which field was at fault.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// IsValidationError reports whether the error is any of the domain
// validation errors, including the entity-level sentinels declared in
// user.go and task.go.
func IsValidationError(err error) bool {
	validationErrors := []error{
		ErrValidation,
		ErrInvalidID,
		ErrInvalidEmail,
		ErrInvalidStatus,
		ErrInvalidPriority,
		ErrEmptyUserID,
		ErrEmptyEmail,
		ErrEmptyNickname,
		ErrNicknameTooShort,
		ErrNicknameTooLong,
		ErrPasswordTooShort,
		ErrPasswordTooLong,
		ErrEmptyPassword,
		ErrEmptyTaskID,
		ErrNilAuthor,
		ErrEmptyTitle,
		ErrTitleTooLong,
		ErrCommentTooLong,
	}
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
