package search

import (
	"fmt"
	"sort"
	"strings"
)

// Query is an immutable search request: the term every matcher looks for plus
// optional scoping filters. Filters are not interpreted by matchers.
type Query struct {
	term    string
	filters map[string]string
}

// NewQuery creates a query for term. The term is used verbatim; callers are
// expected to trim it. Blank terms fail with ErrInvalidQuery so that an empty
// search box never floods the results with every component.
func NewQuery(term string, filters map[string]string) (*Query, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: search term is empty", ErrInvalidQuery)
	}

	q := &Query{term: term}
	if len(filters) > 0 {
		q.filters = make(map[string]string, len(filters))
		for k, v := range filters {
			q.filters[strings.ToLower(k)] = v
		}
	}
	return q, nil
}

// Term returns the search term
func (q *Query) Term() string {
	return q.term
}

// Filter returns the value of a scoping filter
func (q *Query) Filter(key string) (string, bool) {
	v, ok := q.filters[strings.ToLower(key)]
	return v, ok
}

// Filters returns a copy of the scoping filters
func (q *Query) Filters() map[string]string {
	out := make(map[string]string, len(q.filters))
	for k, v := range q.filters {
		out[k] = v
	}
	return out
}

// HasFilters returns true if the query carries any scoping filter
func (q *Query) HasFilters() bool {
	return len(q.filters) > 0
}

// String returns a canonical representation, stable across filter ordering
func (q *Query) String() string {
	if len(q.filters) == 0 {
		return q.term
	}

	keys := make([]string, 0, len(q.filters))
	for k := range q.filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%q", k, q.filters[k]))
	}
	parts = append(parts, q.term)
	return strings.Join(parts, " ")
}

// Key returns an unambiguous encoding of the query. Unlike String, a term that
// looks like a filter never collides with a real filter.
func (q *Query) Key() string {
	keys := make([]string, 0, len(q.filters))
	for k := range q.filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%q", q.term)
	for _, k := range keys {
		fmt.Fprintf(&b, " %q=%q", k, q.filters[k])
	}
	return b.String()
}
