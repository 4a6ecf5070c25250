// internal/app/system/apierror/apierror.go

// Package apierror defines the status-coded error taxonomy every handler
// and consistency operation speaks. Errors propagate verbatim from the
// first failing step to the transport boundary, where respond maps them
// to the JSON error envelope.
package apierror

import (
	"errors"
	"net/http"
)

// FieldError is one path-tagged sub-error in an error response.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error carries an HTTP status, a user-facing message, and optional
// per-field sub-errors.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string { return e.Message }

// New builds an Error with an explicit status.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest flags a business-rule violation or malformed request.
func BadRequest(message string) *Error { return New(http.StatusBadRequest, message) }

// Unauthorized flags bad credentials, a role mismatch, or a token-pair
// mismatch.
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

// Forbidden flags an invalid or expired token.
func Forbidden(message string) *Error { return New(http.StatusForbidden, message) }

// NotFound flags an absent referenced entity.
func NotFound(message string) *Error { return New(http.StatusNotFound, message) }

// Conflict flags a uniqueness violation.
func Conflict(message string) *Error { return New(http.StatusConflict, message) }

// Internal flags an unexpected failure.
func Internal(message string) *Error { return New(http.StatusInternalServerError, message) }

// Validation bundles per-field failures into a single BadRequest.
func Validation(fields []FieldError) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "Validation error",
		Fields:  fields,
	}
}

// From extracts an *Error from err, or nil if err is not one.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
