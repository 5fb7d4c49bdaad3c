package matchers

import (
	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// BasicMatcher checks the attributes every component has
type BasicMatcher struct{}

func (BasicMatcher) Match(component flow.Component, query *search.Query, matches *[]string) {
	term := query.Term()

	search.AddIfMatching(term, component.ID(), "Id", matches)
	search.AddIfMatching(term, component.VersionedID(), "Version Control ID", matches)
	search.AddIfMatching(term, component.Name(), "Name", matches)
	search.AddIfMatching(term, component.Comments(), "Comments", matches)
}
