package provider

import "context"

// DefaultOperation is the synthetic operation name bound to Single
// providers. A Single provider supports exactly this one operation.
const DefaultOperation = "execute"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique name within one engine instance.
	Name() string
}

// Operation is one asynchronous capability of a provider.
type Operation[I, O any] func(ctx context.Context, input I) (O, error)

// Single is a legacy one-capability provider. Its single callable is
// registered under DefaultOperation.
type Single[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Multi is a provider exposing several named operations.
type Multi[I, O any] interface {
	Provider
	Operations() map[string]Operation[I, O]
}

// BeforeAttempter is optionally implemented by providers that want a
// notification before each attempt. Best-effort: panics are swallowed.
type BeforeAttempter interface {
	BeforeAttempt(ctx context.Context, operation string)
}

// AfterAttempter is optionally implemented by providers that want a
// notification after each attempt. Best-effort: panics are swallowed.
type AfterAttempter interface {
	AfterAttempt(ctx context.Context, operation string, err error)
}
