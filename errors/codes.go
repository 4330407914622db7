package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Provider errors
const (
	// ErrCodeUnsupportedProvider indicates the provider id is unknown or
	// lacks the requested capability.
	ErrCodeUnsupportedProvider ErrorCode = "UNSUPPORTED_PROVIDER"
	// ErrCodeWrongProcess indicates a capability that only runs in the
	// host process was requested from a UI process.
	ErrCodeWrongProcess ErrorCode = "WRONG_PROCESS"
	// ErrCodeInvalidAPIKey indicates a backend rejected the API key.
	ErrCodeInvalidAPIKey ErrorCode = "INVALID_API_KEY"
)

// Availability errors (retryable)
const (
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrCodeExternalService    ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Request errors
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodeExternalService:    true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
