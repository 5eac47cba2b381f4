package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDate is returned when a date is not in MM-DD-YYYY form
	// or does not name a real calendar day.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidID is returned when an ID is not a valid sequence id.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
// If msg is empty the standard missing-parameter message is used.
func NewValidationError(field, msg string, err error) *ValidationError {
	if msg == "" {
		msg = ParamErrorMessage(field)
	}
	return &ValidationError{Field: field, Message: msg, Err: err}
}

// ParamErrorMessage formats the message reported for a missing or invalid parameter.
func ParamErrorMessage(field string) string {
	return fmt.Sprintf("Missing or invalid request parameter(s): [%s] must be defined and non-empty", field)
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes both ErrValidation and the underlying cause to errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}
