// Package errors provides the unified failure classification for auto-qa.
// It implements structured error types with error codes, HTTP status mapping,
// and retryable detection following RFC 7807.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if resubmitting the interaction can succeed.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Constructors, one per failure classification ---

// Unauthorized creates a new AppError for a rejected API token.
func Unauthorized(service string) *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: fmt.Sprintf("%s rejected the API token. Check that the token is correct.", service),
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
		Details: map[string]any{"service": service},
	}
}

// BadRequest creates a new AppError for rejected submission parameters.
func BadRequest(reason string) *AppError {
	return &AppError{
		Code: ErrCodeBadRequest, Message: fmt.Sprintf("The remote service rejected the request: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// Unreachable creates a new AppError for a connection-level failure.
func Unreachable(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeUnreachable, Message: fmt.Sprintf("Unable to reach %s. Verify network connectivity and try again.", service),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// MalformedResponse creates a new AppError for an unparseable response body.
// The raw body is carried in the details for diagnostics.
func MalformedResponse(operation string, rawBody []byte, cause error) *AppError {
	return &AppError{
		Code: ErrCodeMalformedResponse, Message: fmt.Sprintf("The %s response could not be parsed.", operation),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"operation": operation, "raw_body": string(rawBody)},
		Cause:   cause,
	}
}

// RemoteFailed creates a new AppError for an explicitly reported processing failure.
func RemoteFailed(reason string) *AppError {
	return &AppError{
		Code: ErrCodeRemoteFailed, Message: fmt.Sprintf("The remote service reported processing failure: %s", reason),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"reason": reason},
	}
}

// EmptyResult creates a new AppError for a processed interaction with no transcript content.
func EmptyResult(interactionID string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyResult, Message: "Processing completed but the transcript contains no segments.",
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"interaction_id": interactionID},
	}
}

// TimedOut creates a new AppError for an exceeded wait budget.
func TimedOut(budget string) *AppError {
	return &AppError{
		Code: ErrCodeTimedOut, Message: fmt.Sprintf("Processing did not complete within %s.", budget),
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"budget": budget},
	}
}

// Cancelled creates a new AppError for a caller-initiated abort.
func Cancelled() *AppError {
	return &AppError{
		Code: ErrCodeCancelled, Message: "The operation was cancelled by the caller.",
		HTTPStatus: 499, Retryable: false,
	}
}

// InvalidInput creates a new AppError for invalid caller input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
