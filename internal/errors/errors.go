package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeNotAuthenticated   = "NOT_AUTHENTICATED"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Business logic errors
	ErrCodeRejected = "REJECTED"

	// Transport errors
	ErrCodeNetwork       = "NETWORK_ERROR"
	ErrCodeDecode        = "DECODE_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeMissingScope  = "MISSING_SCOPE"
)

// APIError is a failure reported by the board API or raised by the client
// while talking to it. Status is zero when no HTTP response was received.
type APIError struct {
	Status  int         `json:"status,omitempty"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`

	cause error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// Is matches any APIError carrying the same code, so callers can write
// errors.Is(err, ErrUnauthorized) regardless of the server message.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Predefined errors
var (
	ErrUnauthorized     = NewAPIError(ErrCodeUnauthorized, "Authentication required")
	ErrNotAuthenticated = NewAPIError(ErrCodeNotAuthenticated, "No active session")
	ErrNotFound         = NewAPIError(ErrCodeNotFound, "Resource not found")
	ErrInvalidInput     = NewAPIError(ErrCodeInvalidInput, "Invalid request body")
	ErrRejected         = NewAPIError(ErrCodeRejected, "Request rejected")
	ErrNetwork          = NewAPIError(ErrCodeNetwork, "Network error")
	ErrDecode           = NewAPIError(ErrCodeDecode, "Malformed response")
	ErrMissingScope     = NewAPIError(ErrCodeMissingScope, "Scope identifier not set")
)

// FromStatus builds the error for a non-2xx HTTP response.
func FromStatus(status int, message string) *APIError {
	return &APIError{Status: status, Code: codeForStatus(status), Message: message}
}

// Network wraps a failure where no HTTP response was received.
func Network(cause error) *APIError {
	return &APIError{Code: ErrCodeNetwork, Message: "Network error", cause: cause}
}

// Decode wraps a failure to decode a response payload.
func Decode(cause error) *APIError {
	return &APIError{Code: ErrCodeDecode, Message: "Malformed response", cause: cause}
}

// Rejected builds the error for a 2xx envelope carrying success=false.
func Rejected(message string) *APIError {
	if message == "" {
		message = "Request rejected"
	}
	return &APIError{Status: http.StatusOK, Code: ErrCodeRejected, Message: message}
}

// Invalid builds a local validation failure.
func Invalid(message string, details interface{}) *APIError {
	return NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details)
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeInvalidInput
	default:
		return ErrCodeInternalError
	}
}
