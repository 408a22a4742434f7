// Package apperr defines the sentinel errors shared across the service.
package apperr

import "errors"

var (
	// ErrNotFound signals that a delete or lookup target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals that the development gate is closed. Its text
	// is surfaced verbatim as the gate's response body.
	ErrForbidden = errors.New("Not available in production")
	// ErrValidation signals a missing or malformed required input field.
	ErrValidation = errors.New("validation failed")
)
