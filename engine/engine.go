package engine

import (
	"github.com/ekarabulut/failover/errors"
	"github.com/ekarabulut/failover/logger"
	"github.com/ekarabulut/failover/observability"
	"github.com/ekarabulut/failover/policy"
	"github.com/ekarabulut/failover/provider"
)

// Config assembles one engine instance. Providers and policies are
// immutable for the engine's lifetime; the engine never owns provider
// lifecycle, it only invokes them.
type Config[I, O any] struct {
	// Providers lists the backends in priority order.
	Providers []provider.Entry[I, O]
	// Policies holds the layered retry configuration.
	Policies policy.Config
	// Hooks are optional lifecycle callbacks.
	Hooks Hooks[I, O]
	// Logger overrides the default component logger.
	Logger *logger.Logger
	// Metrics, when set, records attempt and call instruments.
	Metrics *observability.Metrics
	// Tracing enables a span per call and per attempt.
	Tracing bool
}

// Engine orchestrates one logical operation across a prioritized set of
// interchangeable providers, absorbing transient failure with retries,
// backoff, and fallback.
type Engine[I, O any] struct {
	registry *provider.Registry[I, O]
	policies policy.Config
	hooks    Hooks[I, O]
	log      *logger.Logger
	metrics  *observability.Metrics
	tracing  bool
}

// New builds an engine from config. Provider declarations are normalized
// once here; heterogeneous shapes are rejected with an error.
func New[I, O any](cfg Config[I, O]) (*Engine[I, O], error) {
	if len(cfg.Providers) == 0 {
		return nil, errors.InvalidConfig("at least one provider is required")
	}

	registry, err := provider.NewRegistry(cfg.Providers)
	if err != nil {
		return nil, errors.InvalidConfig("invalid provider declaration").WithCause(err)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Get("engine")
	}

	return &Engine[I, O]{
		registry: registry,
		policies: cfg.Policies,
		hooks:    cfg.Hooks,
		log:      log,
		metrics:  cfg.Metrics,
		tracing:  cfg.Tracing,
	}, nil
}

// Providers returns the registered provider names in priority order.
func (e *Engine[I, O]) Providers() []string {
	ps := e.registry.Providers()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name()
	}
	return names
}

// Supports reports whether any registered provider supports operation.
func (e *Engine[I, O]) Supports(operation string) bool {
	return len(e.registry.Eligible(operation, nil)) > 0
}

// CallOption customizes a single engine call.
type CallOption func(*callOptions)

type callOptions struct {
	nameFilter []string
}

// WithProviders restricts a call to the named providers. Order of the
// names does not matter; priority stays declaration order.
func WithProviders(names ...string) CallOption {
	return func(o *callOptions) {
		o.nameFilter = names
	}
}

func applyOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// eligible intersects the call's name filter with the providers that
// support the operation, preserving declaration order.
func (e *Engine[I, O]) eligible(operation string, opts callOptions) []*provider.Normalized[I, O] {
	return e.registry.Eligible(operation, opts.nameFilter)
}
