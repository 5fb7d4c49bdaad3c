package matchers

import (
	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// ConnectionMatcher checks a connection's queue configuration
type ConnectionMatcher struct{}

func (ConnectionMatcher) Match(component *flow.Connection, query *search.Query, matches *[]string) {
	term := query.Term()

	search.AddEachMatching(term, component.Relationships, "Relationship", matches)
	search.AddIfMatching(term, component.FlowFileExpiration, "FlowFile expiration", matches)
	search.AddIfMatching(term, component.BackPressureObjectThreshold, "Back pressure object threshold", matches)
	search.AddIfMatching(term, component.BackPressureDataSizeThreshold, "Back pressure data size threshold", matches)
	search.AddEachMatching(term, component.Prioritizers, "Prioritizer", matches)
}
