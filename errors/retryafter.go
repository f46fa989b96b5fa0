package errors

import (
	"errors"
	"net/http"
	"strconv"
	"time"
)

// retryAfterProvider is implemented by errors that carry an explicit
// wait-before-retry hint, such as a translated Retry-After header.
type retryAfterProvider interface {
	RetryAfter() time.Duration
}

// headerProvider is implemented by errors that expose the HTTP response
// headers of the failed call.
type headerProvider interface {
	Headers() http.Header
}

// RetryAfter walks the error chain looking for a retry-after hint.
// It checks for an explicit RetryAfter() duration first, then for HTTP
// headers carrying a standard Retry-After value. Returns false when no
// positive hint is found.
func RetryAfter(err error) (time.Duration, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if rp, ok := e.(retryAfterProvider); ok {
			if d := rp.RetryAfter(); d > 0 {
				return d, true
			}
		}
		if hp, ok := e.(headerProvider); ok {
			if d := ParseRetryAfterHeader(hp.Headers()); d > 0 {
				return d, true
			}
		}
	}
	return 0, false
}

// ParseRetryAfterHeader translates a standard Retry-After header into a
// duration. Both delta-seconds and HTTP-date forms are handled. Returns 0
// when the header is absent or unparseable.
func ParseRetryAfterHeader(headers http.Header) time.Duration {
	retryAfter := headers.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
		if seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		return 0
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}
