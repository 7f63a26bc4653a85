package errors

import (
	"fmt"
	"net/http"
)

// ErrorType categorizes pipeline failures.
type ErrorType string

const (
	// ErrorTypeValidation covers malformed client input, including images the
	// model judged not to be a floor plan. User-correctable.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeUpstream covers transport or service failures from the AI
	// provider.
	ErrorTypeUpstream ErrorType = "upstream"
	// ErrorTypeTimeout is an upstream call that exceeded its deadline.
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeResponse means the AI returned output that failed parsing or
	// shape validation. An upstream quality issue, never a client error.
	ErrorTypeResponse ErrorType = "response"
	// ErrorTypeConfig is a missing or invalid process configuration.
	ErrorTypeConfig ErrorType = "config"
)

// AppError is a structured application error. Message is safe to show to
// clients; Cause carries internal detail and stays in server-side logs.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUpstreamError creates a new upstream error
func NewUpstreamError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUpstream,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewTimeoutError creates a new timeout error. An expired upstream call is
// surfaced the same way as any other upstream failure.
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewResponseError creates a new response validation error
func NewResponseError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeResponse,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewConfigError creates a new configuration error
func NewConfigError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeConfig,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// ClientMessage extracts the user-facing message from an error. Anything that
// is not an AppError collapses to a generic message so internal detail never
// reaches the wire.
func ClientMessage(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Message
	}
	return "Failed to generate Vastu analysis."
}
