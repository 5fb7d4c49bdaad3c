package search

import "github.com/platinummonkey/flowsearch/pkg/flow"

// Result is the match record of one component
type Result struct {
	ID      string    `json:"id"`
	GroupID string    `json:"groupId,omitempty"`
	Name    string    `json:"name"`
	Kind    flow.Kind `json:"kind"`
	Matches []string  `json:"matches"`
}

// NewResult creates the result for a component
func NewResult(component flow.Component, matches []string) *Result {
	if matches == nil {
		matches = []string{}
	}
	return &Result{
		ID:      component.ID(),
		GroupID: component.GroupID(),
		Name:    component.Name(),
		Kind:    component.Kind(),
		Matches: matches,
	}
}

// Matched returns true if any attribute matched
func (r *Result) Matched() bool {
	return len(r.Matches) > 0
}
