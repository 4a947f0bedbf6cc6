// Package apierror defines the error envelope returned by every failing endpoint.
package apierror

import (
	"encoding/json"
	"net/http"
)

// Error is a structured API error. The envelope exposes only the message;
// the HTTP status travels out of band.
type Error struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// ToJSON renders the {"error": "<message>"} envelope.
func (e *Error) ToJSON() []byte {
	data, _ := json.Marshal(e)
	return data
}

// New creates an error with an explicit status code.
func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized creates a 401 Unauthorized error.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "authentication required"
	}
	return New(http.StatusUnauthorized, message)
}

// Forbidden creates a 403 Forbidden error.
func Forbidden(message string) *Error {
	if message == "" {
		message = "access denied"
	}
	return New(http.StatusForbidden, message)
}

// NotFound creates a 404 Not Found error.
func NotFound(message string) *Error {
	if message == "" {
		message = "resource not found"
	}
	return New(http.StatusNotFound, message)
}

// InternalError creates a 500 Internal Server Error.
func InternalError(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return New(http.StatusInternalServerError, message)
}
