package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"bad request", BadRequest("nope"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("nope"), http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"not found", NotFound("nope"), http.StatusNotFound},
		{"conflict", Conflict("nope"), http.StatusConflict},
		{"internal", Internal("nope"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.want {
				t.Errorf("status: got %d, want %d", tt.err.Status, tt.want)
			}
			if tt.err.Error() != "nope" {
				t.Errorf("message: got %q, want %q", tt.err.Error(), "nope")
			}
		})
	}
}

func TestValidation(t *testing.T) {
	fields := []FieldError{
		{Path: "email", Message: "email is required"},
		{Path: "name.firstName", Message: "first name is required"},
	}
	err := Validation(fields)

	if err.Status != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", err.Status, http.StatusBadRequest)
	}
	if len(err.Fields) != 2 {
		t.Fatalf("fields: got %d, want 2", len(err.Fields))
	}
	if err.Fields[1].Path != "name.firstName" {
		t.Errorf("path: got %q", err.Fields[1].Path)
	}
}

func TestFrom(t *testing.T) {
	if got := From(errors.New("plain")); got != nil {
		t.Errorf("From(plain error) = %v, want nil", got)
	}

	orig := NotFound("User not found")
	if got := From(orig); got != orig {
		t.Errorf("From(api error) = %v, want original", got)
	}

	// Wrapped errors still resolve.
	wrapped := fmt.Errorf("create user: %w", orig)
	if got := From(wrapped); got != orig {
		t.Errorf("From(wrapped) = %v, want original", got)
	}
}
