package search

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/platinummonkey/flowsearch/pkg/flow"
)

// Registry maps each component kind to exactly one Matcher and dispatches
// components to it. Registration happens once at startup; dispatch reads an
// immutable snapshot and takes no lock.
type Registry struct {
	mu       sync.Mutex
	matchers atomic.Pointer[map[flow.Kind]Matcher]
	frozen   atomic.Bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	r := &Registry{}
	empty := make(map[flow.Kind]Matcher)
	r.matchers.Store(&empty)
	return r
}

// Register adds the matcher for kind. A second matcher for the same kind is a
// configuration error.
func (r *Registry) Register(kind flow.Kind, matcher Matcher) error {
	if kind == "" {
		return fmt.Errorf("%w: empty kind", ErrInvalidMatcher)
	}
	if matcher == nil {
		return fmt.Errorf("%w: nil matcher for %s", ErrInvalidMatcher, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot register %s", ErrRegistryFrozen, kind)
	}

	current := *r.matchers.Load()
	if _, exists := current[kind]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMatcher, kind)
	}

	next := make(map[flow.Kind]Matcher, len(current)+1)
	for k, m := range current {
		next[k] = m
	}
	next[kind] = matcher
	r.matchers.Store(&next)
	return nil
}

// MustRegister is like Register but panics on error. Intended for static wiring.
func (r *Registry) MustRegister(kind flow.Kind, matcher Matcher) {
	if err := r.Register(kind, matcher); err != nil {
		panic(err)
	}
}

// Freeze ends startup; later registrations fail with ErrRegistryFrozen
func (r *Registry) Freeze() {
	r.frozen.Store(true)
}

// Frozen reports whether the registry was frozen
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Has returns true if a matcher is registered for kind
func (r *Registry) Has(kind flow.Kind) bool {
	_, ok := (*r.matchers.Load())[kind]
	return ok
}

// Kinds returns the registered kinds in sorted order
func (r *Registry) Kinds() []flow.Kind {
	current := *r.matchers.Load()
	kinds := make([]flow.Kind, 0, len(current))
	for k := range current {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Len returns the number of registered kinds
func (r *Registry) Len() int {
	return len(*r.matchers.Load())
}

// Dispatch runs the matcher registered for the component's kind and returns the
// labeled matches in inspection order. No match yields an empty, non-nil slice.
// A kind without a matcher fails with ErrUnsupportedComponentKind.
func (r *Registry) Dispatch(component flow.Component, query *Query) ([]string, error) {
	if query == nil {
		return nil, fmt.Errorf("%w: nil query", ErrInvalidQuery)
	}
	if component == nil {
		return nil, fmt.Errorf("%w: nil component", ErrUnsupportedComponentKind)
	}

	kind := component.Kind()
	matcher, ok := (*r.matchers.Load())[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedComponentKind, kind)
	}
	if a, ok := matcher.(acceptor); ok && !a.Accepts(component) {
		return nil, fmt.Errorf("%w: %s implemented by %T", ErrUnsupportedComponentKind, kind, component)
	}

	matches := make([]string, 0)
	matcher.Match(component, query, &matches)
	return matches, nil
}

// Match dispatches the component and packages the matches as a Result
func (r *Registry) Match(component flow.Component, query *Query) (*Result, error) {
	matches, err := r.Dispatch(component, query)
	if err != nil {
		return nil, err
	}
	return NewResult(component, matches), nil
}
