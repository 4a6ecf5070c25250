// internal/app/system/respond/respond.go

// Package respond writes the uniform JSON envelopes for every endpoint.
//
// Success: {success:true, message, data, meta?}
// Failure: {success:false, message, errorMessages:[{path,message}], stack?}
// The stack field only appears outside production.
package respond

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"go.uber.org/zap"
)

// Meta carries pagination metadata for list responses.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Meta    *Meta  `json:"meta,omitempty"`
	Data    any    `json:"data"`
}

type errorBody struct {
	Success       bool                  `json:"success"`
	Message       string                `json:"message"`
	ErrorMessages []apierror.FieldError `json:"errorMessages"`
	Stack         string                `json:"stack,omitempty"`
}

// Writer owns environment-dependent behavior (stack traces) and logging.
type Writer struct {
	Log  *zap.Logger
	Prod bool
}

// NewWriter builds a Writer. prod suppresses stack traces in error bodies.
func NewWriter(log *zap.Logger, prod bool) *Writer {
	return &Writer{Log: log, Prod: prod}
}

// OK writes a 200 success envelope.
func (wr *Writer) OK(w http.ResponseWriter, message string, data any) {
	wr.Success(w, http.StatusOK, message, data, nil)
}

// Created writes a 201 success envelope.
func (wr *Writer) Created(w http.ResponseWriter, message string, data any) {
	wr.Success(w, http.StatusCreated, message, data, nil)
}

// List writes a 200 success envelope with pagination meta.
func (wr *Writer) List(w http.ResponseWriter, message string, data any, meta Meta) {
	wr.Success(w, http.StatusOK, message, data, &meta)
}

// Success writes an arbitrary success envelope.
func (wr *Writer) Success(w http.ResponseWriter, status int, message string, data any, meta *Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successBody{
		Success: true,
		Message: message,
		Meta:    meta,
		Data:    data,
	})
}

// Error maps err onto the error envelope. apierror values keep their
// status and field errors; anything else becomes a 500 with a generic
// message, logged with the original error.
func (wr *Writer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong!"
	var fields []apierror.FieldError

	if ae := apierror.From(err); ae != nil {
		status = ae.Status
		message = ae.Message
		fields = ae.Fields
	}

	if fields == nil && message != "" {
		fields = []apierror.FieldError{{Path: "", Message: message}}
	}

	if status >= http.StatusInternalServerError {
		wr.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}

	body := errorBody{
		Success:       false,
		Message:       message,
		ErrorMessages: fields,
	}
	if !wr.Prod {
		body.Stack = err.Error() + "\n" + string(debug.Stack())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// NotFoundHandler answers unmatched routes with the error envelope.
func (wr *Writer) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(errorBody{
			Success: false,
			Message: "API Not Found",
			ErrorMessages: []apierror.FieldError{
				{Path: r.URL.Path, Message: "API Not Found"},
			},
		})
	}
}
