package errors

import (
	"net/http"
)

// APIError is an error carrying the HTTP status and message to respond with.
// Only Message is serialized; Internal stays in the logs.
type APIError struct {
	Status   int    `json:"-"`
	Message  string `json:"error"`
	Internal error  `json:"-"`
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the original error
func (e *APIError) Unwrap() error {
	return e.Internal
}

func New(status int, message string, internal error) *APIError {
	return &APIError{
		Status:   status,
		Message:  message,
		Internal: internal,
	}
}

func BadRequest(message string, internal error) *APIError {
	return New(http.StatusBadRequest, message, internal)
}

func Unauthorized(message string, internal error) *APIError {
	return New(http.StatusUnauthorized, message, internal)
}

func Forbidden(message string, internal error) *APIError {
	return New(http.StatusForbidden, message, internal)
}

func NotFound(message string, internal error) *APIError {
	return New(http.StatusNotFound, message, internal)
}

func UnprocessableEntity(message string, internal error) *APIError {
	return New(http.StatusUnprocessableEntity, message, internal)
}

func Internal(internal error) *APIError {
	return New(http.StatusInternalServerError, "Internal server error", internal)
}

// NewValidationError wraps a binding failure as a 400 naming the bad input
func NewValidationError(internal error) *APIError {
	msg := "Invalid input"
	if internal != nil {
		msg = "Invalid input: " + internal.Error()
	}
	return New(http.StatusBadRequest, msg, internal)
}
