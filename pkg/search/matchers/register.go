package matchers

import (
	"fmt"

	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// Registry interface for registering matchers
type Registry interface {
	Register(kind flow.Kind, matcher search.Matcher) error
}

// Defaults returns the built-in matcher composition for every kind
func Defaults() map[flow.Kind]search.Matcher {
	return map[flow.Kind]search.Matcher{
		flow.KindProcessor: search.Chain[flow.Component](
			BasicMatcher{},
			search.Typed[*flow.Processor](search.Chain[*flow.Processor](
				ProcessorMetadataMatcher{},
				PropertyMatcher{},
				RelationshipMatcher{},
			)),
			search.Typed[flow.Schedulable](ScheduledStateMatcher{}),
			search.Typed[*flow.Processor](SchedulingMatcher{}),
		),
		flow.KindConnection: search.Chain[flow.Component](
			BasicMatcher{},
			search.Typed[*flow.Connection](search.Chain[*flow.Connection](
				ConnectionMatcher{},
				ConnectivityMatcher{},
			)),
		),
		flow.KindInputPort: search.Chain[flow.Component](
			BasicMatcher{},
			search.Typed[flow.Schedulable](ScheduledStateMatcher{}),
		),
		flow.KindOutputPort: search.Chain[flow.Component](
			BasicMatcher{},
			search.Typed[flow.Schedulable](ScheduledStateMatcher{}),
		),
		flow.KindFunnel: BasicMatcher{},
		flow.KindLabel: search.Chain[flow.Component](
			BasicMatcher{},
			search.Typed[*flow.Label](LabelMatcher{}),
		),
		flow.KindProcessGroup: search.Chain[flow.Component](
			BasicMatcher{},
			search.Typed[*flow.ProcessGroup](ParameterContextMatcher{}),
		),
		flow.KindRemoteProcessGroup: search.Chain[flow.Component](
			BasicMatcher{},
			search.Typed[*flow.RemoteProcessGroup](RemoteProcessGroupMatcher{}),
		),
	}
}

// RegisterDefaults registers the built-in matchers for every kind, in canonical
// kind order
func RegisterDefaults(registry Registry) error {
	defaults := Defaults()
	for _, kind := range flow.Kinds() {
		if err := registry.Register(kind, defaults[kind]); err != nil {
			return fmt.Errorf("failed to register %s matcher: %w", kind, err)
		}
	}
	return nil
}

// DefaultRegistry creates a frozen registry holding the built-in matchers
func DefaultRegistry() (*search.Registry, error) {
	registry := search.NewRegistry()
	if err := RegisterDefaults(registry); err != nil {
		return nil, err
	}
	registry.Freeze()
	return registry, nil
}
