// internal/app/system/inputval/inputval.go

// Package inputval collects request-field validation failures into the
// path-tagged sub-errors the error envelope carries. Handlers build an
// Errors, run their checks, and bail with Err() before touching storage.
package inputval

import (
	"github.com/dalemusser/waffle/pantry/validate"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
)

// Errors accumulates field failures in declaration order.
type Errors struct {
	fields []apierror.FieldError
}

// Add records a failure for path.
func (e *Errors) Add(path, message string) {
	e.fields = append(e.fields, apierror.FieldError{Path: path, Message: message})
}

// Require records a failure when value is empty.
func (e *Errors) Require(path, value, message string) {
	if value == "" {
		e.Add(path, message)
	}
}

// RequireEmail records a failure when value is empty or not a
// syntactically valid address.
func (e *Errors) RequireEmail(path, value string) {
	if value == "" || !validate.SimpleEmailValid(value) {
		e.Add(path, "a valid email address is required")
	}
}

// MinLen records a failure when value is shorter than n characters.
// Empty values are left to Require so a missing field reports once.
func (e *Errors) MinLen(path, value string, n int, message string) {
	if value != "" && len(value) < n {
		e.Add(path, message)
	}
}

// Positive records a failure when v is not strictly greater than zero.
func (e *Errors) Positive(path string, v float64, message string) {
	if v <= 0 {
		e.Add(path, message)
	}
}

// Err returns a Validation apierror carrying every recorded failure, or
// nil when all checks passed.
func (e *Errors) Err() error {
	if len(e.fields) == 0 {
		return nil
	}
	return apierror.Validation(e.fields)
}
