// Package matchers provides the built-in attribute matchers, one composition
// per flow component kind.
//
// Each matcher checks a fixed list of attributes in a fixed order under
// human-readable labels. Matchers that look at related components (for example
// the source and destination of a connection) inspect those components' own
// attributes only and never follow their relations further.
//
// DefaultRegistry wires every built-in matcher:
//
//	registry, err := matchers.DefaultRegistry()
//	if err != nil {
//		return err
//	}
//	matches, err := registry.Dispatch(component, query)
package matchers
