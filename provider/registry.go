package provider

// Registry holds normalized providers in declaration order. Duplicate
// names follow a last-registered-wins rule: the earlier registration is
// dropped from the order and the later one keeps its own position.
type Registry[I, O any] struct {
	ordered []*Normalized[I, O]
	index   map[string]*Normalized[I, O]
}

// NewRegistry normalizes the given entries into a Registry.
func NewRegistry[I, O any](entries []Entry[I, O]) (*Registry[I, O], error) {
	normalized, err := Normalize(entries)
	if err != nil {
		return nil, err
	}

	r := &Registry[I, O]{
		ordered: make([]*Normalized[I, O], 0, len(normalized)),
		index:   make(map[string]*Normalized[I, O], len(normalized)),
	}
	for _, n := range normalized {
		if _, dup := r.index[n.Name()]; dup {
			r.remove(n.Name())
		}
		r.ordered = append(r.ordered, n)
		r.index[n.Name()] = n
	}
	return r, nil
}

func (r *Registry[I, O]) remove(name string) {
	for i, n := range r.ordered {
		if n.Name() == name {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered providers.
func (r *Registry[I, O]) Len() int { return len(r.ordered) }

// Providers returns the providers in declaration order.
func (r *Registry[I, O]) Providers() []*Normalized[I, O] {
	out := make([]*Normalized[I, O], len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get returns a provider by name.
func (r *Registry[I, O]) Get(name string) (*Normalized[I, O], bool) {
	n, ok := r.index[name]
	return n, ok
}

// Eligible returns, in declaration order, the providers that pass the
// name allow-list (nil means all) and support the requested operation.
func (r *Registry[I, O]) Eligible(operation string, nameFilter []string) []*Normalized[I, O] {
	var allowed map[string]bool
	if nameFilter != nil {
		allowed = make(map[string]bool, len(nameFilter))
		for _, name := range nameFilter {
			allowed[name] = true
		}
	}

	var out []*Normalized[I, O]
	for _, n := range r.ordered {
		if allowed != nil && !allowed[n.Name()] {
			continue
		}
		if !n.Supports(operation) {
			continue
		}
		out = append(out, n)
	}
	return out
}
