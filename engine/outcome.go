package engine

import (
	"fmt"
	"strings"
	"time"
)

// AttemptRecord describes one failed provider attempt.
type AttemptRecord struct {
	// Provider is the provider name.
	Provider string
	// Operation is the operation name.
	Operation string
	// Attempt is the 0-based attempt index within the provider's loop.
	Attempt int
	// Duration is how long the attempt took.
	Duration time.Duration
	// Err is the failure returned by the provider callable.
	Err error
}

// AggregateError is the terminal failure of a sequential or
// concurrent-first-success call: every eligible provider exhausted its
// retries, or no provider was eligible at all (Attempts is then empty).
type AggregateError struct {
	// Operation is the requested operation name.
	Operation string
	// Attempts holds every failed attempt in provider-then-attempt order.
	Attempts []AttemptRecord
}

// Error returns a summary of the aggregate failure.
func (e *AggregateError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("operation %q: no eligible providers", e.Operation)
	}

	providers := make([]string, 0, 4)
	seen := make(map[string]bool, 4)
	for _, a := range e.Attempts {
		if !seen[a.Provider] {
			seen[a.Provider] = true
			providers = append(providers, a.Provider)
		}
	}
	return fmt.Sprintf("operation %q: all providers failed after %d attempts (%s)",
		e.Operation, len(e.Attempts), strings.Join(providers, ", "))
}

// Unwrap exposes the attempt errors to errors.Is / errors.As.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		if a.Err != nil {
			errs = append(errs, a.Err)
		}
	}
	return errs
}

// Result is one provider's outcome in a concurrent-collect-all call.
type Result[O any] struct {
	// Provider is the provider name.
	Provider string
	// OK reports whether the provider's attempt loop succeeded.
	OK bool
	// Value is the success payload when OK is true.
	Value O
	// Err is the last attempt's failure when OK is false.
	Err error
	// Attempts holds the provider's failed attempts.
	Attempts []AttemptRecord
}

// HookContext carries attempt metadata into lifecycle hooks.
type HookContext struct {
	// CallID identifies one engine call across all its attempts.
	CallID string
	// Provider is the provider name. Empty for all-failed notifications.
	Provider string
	// Operation is the operation name.
	Operation string
	// Attempt is the 0-based attempt index.
	Attempt int
	// Duration is how long the attempt took.
	Duration time.Duration
	// Delay is the wait before the next attempt. Failure hooks only.
	Delay time.Duration
}

// Hooks are optional lifecycle callbacks supplied at engine construction.
// Every hook is best-effort: panics inside a hook are swallowed and never
// reach the engine or its caller.
type Hooks[I, O any] struct {
	// OnProviderSuccess fires after a successful attempt.
	OnProviderSuccess func(hc HookContext, input I, output O)
	// OnProviderFail fires after every failed attempt.
	OnProviderFail func(hc HookContext, input I, err error)
	// OnAllFailed fires exactly once when a sequential or
	// concurrent-first-success call exhausts every eligible provider.
	OnAllFailed func(hc HookContext, input I, attempts []AttemptRecord)
}

func (h Hooks[I, O]) success(hc HookContext, input I, output O) {
	if h.OnProviderSuccess == nil {
		return
	}
	defer func() { _ = recover() }()
	h.OnProviderSuccess(hc, input, output)
}

func (h Hooks[I, O]) fail(hc HookContext, input I, err error) {
	if h.OnProviderFail == nil {
		return
	}
	defer func() { _ = recover() }()
	h.OnProviderFail(hc, input, err)
}

func (h Hooks[I, O]) allFailed(hc HookContext, input I, attempts []AttemptRecord) {
	if h.OnAllFailed == nil {
		return
	}
	defer func() { _ = recover() }()
	h.OnAllFailed(hc, input, attempts)
}
