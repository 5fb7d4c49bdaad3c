package matchers

import (
	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// ConnectivityMatcher checks the components a connection links: the source
// first, then the destination, each by id, name and comments.
type ConnectivityMatcher struct{}

func (ConnectivityMatcher) Match(component *flow.Connection, query *search.Query, matches *[]string) {
	term := query.Term()

	if source := component.Source(); source != nil {
		search.AddIfMatching(term, source.ID(), "Source id", matches)
		search.AddIfMatching(term, source.Name(), "Source name", matches)
		search.AddIfMatching(term, source.Comments(), "Source comments", matches)
	}

	if destination := component.Destination(); destination != nil {
		search.AddIfMatching(term, destination.ID(), "Destination id", matches)
		search.AddIfMatching(term, destination.Name(), "Destination name", matches)
		search.AddIfMatching(term, destination.Comments(), "Destination comments", matches)
	}
}
