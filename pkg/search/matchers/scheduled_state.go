package matchers

import (
	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// ScheduledStateMatcher checks the human readable run state of processors and ports
type ScheduledStateMatcher struct{}

func (ScheduledStateMatcher) Match(component flow.Schedulable, query *search.Query, matches *[]string) {
	state := component.ScheduledState()
	if state == "" {
		return
	}
	search.AddIfMatching(query.Term(), state.String(), "Scheduled state", matches)
}
