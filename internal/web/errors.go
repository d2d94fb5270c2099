// Package web exposes the resource API over HTTP: routing, handlers,
// the error mapper, and the server lifecycle.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/RamiObaid92/AIProjectTest/internal/validation"
)

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Error  ErrorDetail `json:"error"`
	Status int         `json:"status"`
}

// ErrorDetail carries the machine-readable code and human message
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) // Failures are visible in the access log status
}

// writeError writes a standard error response
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:  ErrorDetail{Code: code, Message: message},
		Status: status,
	})
}

// writeValidationErrors maps a validation result onto a 400 response
// carrying the complete error list; clients must be shown every entry,
// not just the first
func writeValidationErrors(w http.ResponseWriter, result *validation.Result) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "VALIDATION_FAILED",
			Message: "The payload failed validation",
			Details: map[string]any{"errors": result.Errors},
		},
		Status: http.StatusBadRequest,
	})
}

// isUnknownType reports whether the result is the single unknown-type
// error, which maps to 404 rather than 400
func isUnknownType(result *validation.Result) bool {
	return len(result.Errors) == 1 && result.Errors[0].Code == validation.CodeUnknownType
}

// notFound writes a 404 response
func notFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	writeError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// badRequest writes a 400 response
func badRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	writeError(w, http.StatusBadRequest, "BAD_REQUEST", message)
}

// internalError writes a 500 response without leaking the cause
func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"An internal server error occurred")
}
