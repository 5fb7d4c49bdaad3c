// Package search provides the attribute-matching core of flow search.
//
// # Overview
//
// Given a search term and a flow component, the core determines which
// human-readable attributes of the component contain the term and returns
// labeled match strings for display:
//
//	Source name: Ingest-CSV-Reader
//	Destination comments: writes csv backups
//
// Matching is a case-insensitive substring test. There is no ranking,
// tokenization or fuzzy matching.
//
// # Matchers
//
// An AttributeMatcher[T] knows which attributes of component type T are
// searchable and checks them in a fixed order with AddIfMatching. Matchers for
// specific kinds live in pkg/search/matchers.
//
// # Registry
//
// The Registry holds exactly one Matcher per flow.Kind and dispatches
// components to it:
//
//	registry := search.NewRegistry()
//	registry.MustRegister(flow.KindConnection, search.Typed[*flow.Connection](matchers.ConnectivityMatcher{}))
//	registry.Freeze()
//
//	query, err := search.ParseQuery("csv")
//	if err != nil {
//		return err // search.ErrInvalidQuery
//	}
//
//	matches, err := registry.Dispatch(connection, query)
//	if errors.Is(err, search.ErrUnsupportedComponentKind) {
//		// no matcher for this kind: a wiring defect, not an empty result
//	}
//
// Dispatch is safe for concurrent use once registration is complete.
//
// # Related Packages
//
//   - pkg/flow: Component model read by matchers
//   - pkg/search/matchers: Built-in matchers
//   - pkg/orchestrator: Whole-graph search
package search
