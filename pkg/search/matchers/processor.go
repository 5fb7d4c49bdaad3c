package matchers

import (
	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// ProcessorMetadataMatcher checks what a processor is
type ProcessorMetadataMatcher struct{}

func (ProcessorMetadataMatcher) Match(component *flow.Processor, query *search.Query, matches *[]string) {
	term := query.Term()

	search.AddIfMatching(term, component.Type, "Type", matches)
	search.AddIfMatching(term, component.Bundle, "Bundle", matches)
}

// PropertyMatcher checks configured properties. Values of sensitive properties
// are never reported.
type PropertyMatcher struct{}

func (PropertyMatcher) Match(component *flow.Processor, query *search.Query, matches *[]string) {
	term := query.Term()

	for _, property := range component.Properties {
		search.AddIfMatching(term, property.Name, "Property name", matches)
		if !property.Sensitive {
			search.AddIfMatching(term, property.Value, "Property value", matches)
		}
	}
}

// RelationshipMatcher checks the relationships a processor routes to
type RelationshipMatcher struct{}

func (RelationshipMatcher) Match(component *flow.Processor, query *search.Query, matches *[]string) {
	search.AddEachMatching(query.Term(), component.Relationships, "Relationship", matches)
}

// SchedulingMatcher checks how and where a processor is scheduled
type SchedulingMatcher struct{}

func (SchedulingMatcher) Match(component *flow.Processor, query *search.Query, matches *[]string) {
	term := query.Term()

	search.AddIfMatching(term, component.SchedulingStrategy, "Scheduling strategy", matches)
	search.AddIfMatching(term, component.ExecutionNode, "Execution node", matches)
}
