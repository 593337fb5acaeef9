package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Remote transport errors
const (
	// ErrCodeUnauthorized indicates the remote service rejected the API token.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeBadRequest indicates the remote service rejected the submission parameters.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	// ErrCodeUnreachable indicates a connection-level failure reaching the remote service.
	ErrCodeUnreachable ErrorCode = "UNREACHABLE"
	// ErrCodeMalformedResponse indicates the remote response body was not parseable.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
)

// Processing outcome errors
const (
	// ErrCodeRemoteFailed indicates the remote service reported processing failure.
	ErrCodeRemoteFailed ErrorCode = "REMOTE_FAILED"
	// ErrCodeEmptyResult indicates processing succeeded but produced no usable transcript.
	ErrCodeEmptyResult ErrorCode = "EMPTY_RESULT"
	// ErrCodeTimedOut indicates the wait budget was exceeded while still in progress.
	ErrCodeTimedOut ErrorCode = "TIMED_OUT"
	// ErrCodeCancelled indicates the caller aborted the run.
	ErrCodeCancelled ErrorCode = "CANCELLED"
)

// Local errors
const (
	// ErrCodeInvalidInput indicates the caller's input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeUnreachable: true,
	ErrCodeTimedOut:    true,
}

// IsRetryableCode reports whether resubmitting the whole interaction may succeed.
// Per-call retries are never performed; this only informs the caller.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
