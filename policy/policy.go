package policy

import (
	"time"

	"github.com/ekarabulut/failover/backoff"
)

// Hardcoded defaults applied when every layer omits a field.
const (
	DefaultMaxRetry  = 0
	DefaultBaseDelay = 200 * time.Millisecond
	DefaultMaxDelay  = 5 * time.Second
)

// DefaultBackoff is the backoff kind used when no layer specifies one.
const DefaultBackoff = backoff.FullJitter

// RetryPolicy is one layer of retry configuration. All fields are optional;
// a nil field defers to the next layer during resolution.
type RetryPolicy struct {
	// MaxRetry is the number of attempts beyond the first (non-negative).
	MaxRetry *int
	// BaseDelay is the starting delay for the backoff curve.
	BaseDelay *time.Duration
	// MaxDelay caps computed delays.
	MaxDelay *time.Duration
	// Backoff selects the delay growth curve.
	Backoff *backoff.Kind
}

// Config holds the three policy layers. It is immutable once the engine
// is constructed.
type Config struct {
	// Default applies when no more specific layer covers a field.
	Default *RetryPolicy
	// PerOperation maps operation name to a policy layer.
	PerOperation map[string]RetryPolicy
	// PerProvider maps provider name to a policy layer.
	PerProvider map[string]RetryPolicy
}

// Effective is a fully resolved policy: every field is present.
type Effective struct {
	MaxRetry  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Backoff   backoff.Kind
}

// Resolve merges the policy layers for one (operation, provider) pair.
// inline is the policy attached to the provider at registration time.
// Each field resolves independently through the precedence chain
// perProvider > perOperation > inline > cfg.Default > hardcoded defaults.
func Resolve(operation, providerName string, cfg Config, inline *RetryPolicy) Effective {
	layers := make([]*RetryPolicy, 0, 4)

	if p, ok := cfg.PerProvider[providerName]; ok {
		layers = append(layers, &p)
	}
	if p, ok := cfg.PerOperation[operation]; ok {
		layers = append(layers, &p)
	}
	if inline != nil {
		layers = append(layers, inline)
	}
	if cfg.Default != nil {
		layers = append(layers, cfg.Default)
	}

	eff := Effective{
		MaxRetry:  DefaultMaxRetry,
		BaseDelay: DefaultBaseDelay,
		MaxDelay:  DefaultMaxDelay,
		Backoff:   DefaultBackoff,
	}

	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		if layer.MaxRetry != nil {
			eff.MaxRetry = *layer.MaxRetry
		}
		if layer.BaseDelay != nil {
			eff.BaseDelay = *layer.BaseDelay
		}
		if layer.MaxDelay != nil {
			eff.MaxDelay = *layer.MaxDelay
		}
		if layer.Backoff != nil {
			eff.Backoff = *layer.Backoff
		}
	}

	if eff.MaxRetry < 0 {
		eff.MaxRetry = 0
	}

	return eff
}
