package provider

import (
	"context"
	"fmt"

	"github.com/ekarabulut/failover/policy"
)

// Entry declares one provider at engine construction time, in priority
// order, with an optional inline retry policy.
type Entry[I, O any] struct {
	// Provider must be a Single[I, O] or a Multi[I, O].
	Provider Provider
	// Policy is the optional inline retry policy for this provider.
	Policy *policy.RetryPolicy
}

// Normalized is the uniform internal representation of a provider: the
// single/multi distinction is resolved once at registration, not at call
// time. Immutable after construction.
type Normalized[I, O any] struct {
	name    string
	isMulti bool
	ops     map[string]Operation[I, O]
	policy  *policy.RetryPolicy
	before  BeforeAttempter
	after   AfterAttempter
}

// Normalize converts heterogeneous provider declarations into the uniform
// representation, preserving declaration order. That order is the priority
// order for sequential execution and the iteration order for concurrent
// execution; it is never reordered by success or failure history.
func Normalize[I, O any](entries []Entry[I, O]) ([]*Normalized[I, O], error) {
	out := make([]*Normalized[I, O], 0, len(entries))
	for i, e := range entries {
		n, err := normalizeOne(e)
		if err != nil {
			return nil, fmt.Errorf("provider entry %d: %w", i, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func normalizeOne[I, O any](e Entry[I, O]) (*Normalized[I, O], error) {
	if e.Provider == nil {
		return nil, fmt.Errorf("nil provider")
	}

	n := &Normalized[I, O]{
		name:   e.Provider.Name(),
		policy: e.Policy,
	}
	if n.name == "" {
		return nil, fmt.Errorf("provider has empty name")
	}

	switch p := e.Provider.(type) {
	case Multi[I, O]:
		declared := p.Operations()
		if len(declared) == 0 {
			return nil, fmt.Errorf("provider %q declares no operations", n.name)
		}
		n.isMulti = true
		n.ops = make(map[string]Operation[I, O], len(declared))
		for op, fn := range declared {
			if fn == nil {
				return nil, fmt.Errorf("provider %q: nil callable for operation %q", n.name, op)
			}
			n.ops[op] = fn
		}
	case Single[I, O]:
		n.ops = map[string]Operation[I, O]{
			DefaultOperation: p.Execute,
		}
	default:
		return nil, fmt.Errorf("provider %q implements neither Single nor Multi", n.name)
	}

	if b, ok := e.Provider.(BeforeAttempter); ok {
		n.before = b
	}
	if a, ok := e.Provider.(AfterAttempter); ok {
		n.after = a
	}

	return n, nil
}

// Name returns the provider name.
func (n *Normalized[I, O]) Name() string { return n.name }

// IsMulti reports whether the provider declared multiple operations.
func (n *Normalized[I, O]) IsMulti() bool { return n.isMulti }

// Policy returns the inline retry policy, or nil.
func (n *Normalized[I, O]) Policy() *policy.RetryPolicy { return n.policy }

// Supports reports whether the provider declares a callable for operation.
func (n *Normalized[I, O]) Supports(operation string) bool {
	_, ok := n.ops[operation]
	return ok
}

// Operations returns the declared operation names.
func (n *Normalized[I, O]) Operations() []string {
	names := make([]string, 0, len(n.ops))
	for op := range n.ops {
		names = append(names, op)
	}
	return names
}

// Invoke dispatches one attempt to the provider's callable for operation.
// Per-provider before/after hooks fire around the call; they are
// best-effort and never affect the result.
func (n *Normalized[I, O]) Invoke(ctx context.Context, operation string, input I) (O, error) {
	fn, ok := n.ops[operation]
	if !ok {
		var zero O
		return zero, fmt.Errorf("provider %q does not support operation %q", n.name, operation)
	}

	if n.before != nil {
		guard(func() { n.before.BeforeAttempt(ctx, operation) })
	}

	out, err := fn(ctx, input)

	if n.after != nil {
		guard(func() { n.after.AfterAttempt(ctx, operation, err) })
	}

	return out, err
}

// guard runs a best-effort hook, discarding any panic.
func guard(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
