// Package orchestrator runs search queries across a whole flow graph.
//
// A search parses the raw query, narrows the graph to the components selected
// by the kind: and group: filters, and dispatches each component to its
// matcher on a bounded errgroup. Results are grouped by kind, keep graph walk
// order within each group, and are cached per flow revision.
//
//	registry, _ := matchers.DefaultRegistry()
//	orch, _ := orchestrator.New(registry, orchestrator.DefaultConfig(),
//		orchestrator.WithMetrics(metrics),
//		orchestrator.WithLogger(logger),
//	)
//	results, err := orch.Search(ctx, graph, `group:"Error Handling" fail`)
package orchestrator
