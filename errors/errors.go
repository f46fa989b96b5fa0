// Package errors provides structured error types for the failover engine.
// It implements machine-readable error codes, retryable detection, and
// retry-after hint propagation from provider errors to the retry loop.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// RetryAfterHint, when positive, is the wait the provider asked for
	// before the next attempt. It overrides any computed backoff delay.
	RetryAfterHint time.Duration `json:"retry_after,omitempty"`
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

// RetryAfter reports the provider-requested wait before the next attempt.
func (e *AppError) RetryAfter() time.Duration { return e.RetryAfterHint }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithRetryAfter sets the retry-after hint and returns the receiver.
func (e *AppError) WithRetryAfter(d time.Duration) *AppError {
	e.RetryAfterHint = d
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
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
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// AsAppError extracts an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// --- Common Error Constructors ---

// ProviderUnavailable creates a new AppError for a provider that is temporarily unavailable.
func ProviderUnavailable(provider string) *AppError {
	return &AppError{
		Code: ErrCodeProviderUnavailable, Message: fmt.Sprintf("Provider %s is temporarily unavailable.", provider),
		Retryable: true,
		Details:   map[string]any{"provider": provider},
	}
}

// ConnectionFailed creates a new AppError for a failed connection to a provider.
func ConnectionFailed(provider string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to provider %s.", provider),
		Retryable: true,
		Details:   map[string]any{"provider": provider},
	}
}

// Timeout creates a new AppError for a provider call that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The call took too long.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// RateLimited creates a new AppError for a rate-limited provider call.
// retryAfter may be zero when the provider gave no hint.
func RateLimited(retryAfter time.Duration) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests.",
		Retryable: true, RetryAfterHint: retryAfter,
	}
}

// UnsupportedOperation creates a new AppError for an operation a provider does not implement.
func UnsupportedOperation(provider, operation string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedOperation, Message: fmt.Sprintf("Provider %s does not support operation %s.", provider, operation),
		Retryable: false,
		Details:   map[string]any{"provider": provider, "operation": operation},
	}
}

// NoEligibleProviders creates a new AppError for a call with no providers to try.
func NoEligibleProviders(operation string) *AppError {
	return &AppError{
		Code: ErrCodeNoEligibleProviders, Message: fmt.Sprintf("No eligible providers for operation %s.", operation),
		Retryable: false,
		Details:   map[string]any{"operation": operation},
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// InvalidConfig creates a new AppError for an invalid engine configuration.
func InvalidConfig(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: reason,
		Retryable: false,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}
