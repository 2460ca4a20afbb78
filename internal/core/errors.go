package core

import (
	"fmt"
	"net/http"
)

// ErrorType represents the type of error that occurred
type ErrorType string

const (
	// ErrorTypeInvalidRequest indicates a client error (4xx)
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
	// ErrorTypeAuthentication indicates an authentication error (401)
	ErrorTypeAuthentication ErrorType = "authentication_error"
	// ErrorTypeNotFound indicates that no backend could resolve the title (404)
	ErrorTypeNotFound ErrorType = "not_found_error"
	// ErrorTypeBackend indicates an upstream backend error (502)
	ErrorTypeBackend ErrorType = "backend_error"
	// ErrorTypeInternal indicates an unexpected internal error (500)
	ErrorTypeInternal ErrorType = "internal_error"
)

// ResolveError is the base error type for all service errors.
type ResolveError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Backend    string    `json:"backend,omitempty"`
	// Original error for debugging (not exposed to clients)
	Err error `json:"-"`
}

// Error implements the error interface
func (e *ResolveError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Backend, e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode returns the appropriate HTTP status code for this error
func (e *ResolveError) HTTPStatusCode() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}
	switch e.Type {
	case ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case ErrorTypeAuthentication:
		return http.StatusUnauthorized
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeBackend:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ToJSON converts the error to a JSON-compatible map
func (e *ResolveError) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"type":    e.Type,
			"message": e.Message,
		},
	}
}

// NewInvalidRequestError creates a new invalid request error (400)
func NewInvalidRequestError(message string, err error) *ResolveError {
	return &ResolveError{
		Type:       ErrorTypeInvalidRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

// NewAuthenticationError creates a new authentication error (401)
func NewAuthenticationError(message string) *ResolveError {
	return &ResolveError{
		Type:       ErrorTypeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewNotFoundError creates a new not found error (404)
func NewNotFoundError(message string) *ResolveError {
	return &ResolveError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewBackendError creates a new upstream backend error (502)
func NewBackendError(backend string, message string, err error) *ResolveError {
	return &ResolveError{
		Type:       ErrorTypeBackend,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Backend:    backend,
		Err:        err,
	}
}
