package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Provider/attempt errors (retryable)
const (
	// ErrCodeProviderUnavailable indicates the provider backend is temporarily unavailable.
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates a failed connection to a provider backend.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates a provider call timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the provider rejected the call due to rate limiting.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Orchestration errors
const (
	// ErrCodeUnsupportedOperation indicates a provider does not implement the requested operation.
	ErrCodeUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"
	// ErrCodeNoEligibleProviders indicates the filter and capability check left no providers to try.
	ErrCodeNoEligibleProviders ErrorCode = "NO_ELIGIBLE_PROVIDERS"
	// ErrCodeAllProvidersFailed indicates every eligible provider exhausted its retries.
	ErrCodeAllProvidersFailed ErrorCode = "ALL_PROVIDERS_FAILED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidConfig indicates the engine configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeProviderUnavailable: true,
	ErrCodeConnectionFailed:    true,
	ErrCodeTimeout:             true,
	ErrCodeRateLimited:         true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
