package search

import (
	"unicode"
	"unicode/utf8"

	"github.com/platinummonkey/flowsearch/pkg/flow"
)

// AttributeMatcher reports which searchable attributes of a component of type T
// contain the query term. Implementations only read the component and only
// append to matches, and they return the same matches in the same order for the
// same component and query.
type AttributeMatcher[T flow.Component] interface {
	Match(component T, query *Query, matches *[]string)
}

// Matcher is an AttributeMatcher accepting any component, as held by the Registry
type Matcher = AttributeMatcher[flow.Component]

// MatcherFunc adapts a function to an AttributeMatcher
type MatcherFunc[T flow.Component] func(component T, query *Query, matches *[]string)

// Match calls f
func (f MatcherFunc[T]) Match(component T, query *Query, matches *[]string) {
	f(component, query, matches)
}

// acceptor is implemented by matchers that only handle some concrete types
type acceptor interface {
	Accepts(component flow.Component) bool
}

// Typed lifts a matcher for a concrete component type to a Matcher. The registry
// rejects components that are not a T with ErrUnsupportedComponentKind.
func Typed[T flow.Component](m AttributeMatcher[T]) Matcher {
	return typed[T]{m: m}
}

type typed[T flow.Component] struct {
	m AttributeMatcher[T]
}

func (t typed[T]) Match(component flow.Component, query *Query, matches *[]string) {
	if v, ok := component.(T); ok {
		t.m.Match(v, query, matches)
	}
}

func (t typed[T]) Accepts(component flow.Component) bool {
	_, ok := component.(T)
	return ok
}

// Chain runs matchers in the declared order against the same accumulator
func Chain[T flow.Component](matchers ...AttributeMatcher[T]) AttributeMatcher[T] {
	return chain[T](matchers)
}

type chain[T flow.Component] []AttributeMatcher[T]

func (c chain[T]) Match(component T, query *Query, matches *[]string) {
	for _, m := range c {
		m.Match(component, query, matches)
	}
}

func (c chain[T]) Accepts(component flow.Component) bool {
	for _, m := range c {
		if a, ok := any(m).(acceptor); ok && !a.Accepts(component) {
			return false
		}
	}
	return true
}

// AddIfMatching appends "label: value" to matches when value contains term,
// ignoring case. An empty value is an absent attribute and never matches; an
// empty term matches nothing. The original case of value is preserved.
func AddIfMatching(term, value, label string, matches *[]string) {
	if term == "" || value == "" || matches == nil {
		return
	}
	if containsFold(value, term) {
		*matches = append(*matches, label+": "+value)
	}
}

// AddEachMatching applies AddIfMatching to every value under the same label
func AddEachMatching(term string, values []string, label string, matches *[]string) {
	for _, v := range values {
		AddIfMatching(term, v, label, matches)
	}
}

// containsFold reports whether substr occurs in s under Unicode simple case
// folding. Invalid UTF-8 bytes only match the identical byte.
func containsFold(s, substr string) bool {
	for i := 0; i < len(s); {
		if hasPrefixFold(s[i:], substr) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return false
}

func hasPrefixFold(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		pr, pn := utf8.DecodeRuneInString(prefix)
		sr, sn := utf8.DecodeRuneInString(s)
		if (pr == utf8.RuneError && pn == 1) || (sr == utf8.RuneError && sn == 1) {
			if pn != sn || prefix[0] != s[0] {
				return false
			}
		} else if pr != sr && !equalFoldRune(pr, sr) {
			return false
		}
		prefix, s = prefix[pn:], s[sn:]
	}
	return true
}

func equalFoldRune(a, b rune) bool {
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
