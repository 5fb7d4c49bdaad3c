package matchers

import (
	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// LabelMatcher checks the text of a canvas label
type LabelMatcher struct{}

func (LabelMatcher) Match(component *flow.Label, query *search.Query, matches *[]string) {
	search.AddIfMatching(query.Term(), component.Value, "Label", matches)
}

// ParameterContextMatcher checks the parameter context bound to a process group
type ParameterContextMatcher struct{}

func (ParameterContextMatcher) Match(component *flow.ProcessGroup, query *search.Query, matches *[]string) {
	search.AddIfMatching(query.Term(), component.ParameterContext, "Parameter context", matches)
}

// RemoteProcessGroupMatcher checks where a remote process group points
type RemoteProcessGroupMatcher struct{}

func (RemoteProcessGroupMatcher) Match(component *flow.RemoteProcessGroup, query *search.Query, matches *[]string) {
	term := query.Term()

	search.AddIfMatching(term, component.TargetURIs, "URLs", matches)
	search.AddIfMatching(term, component.TransportProtocol, "Transport protocol", matches)
}
