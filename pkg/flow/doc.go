// Package flow provides the read-only component model of a dataflow graph.
//
// # Overview
//
// A flow is a tree of process groups. Each group owns processors, connections,
// ports, funnels, labels, remote process groups and child groups. Every element
// implements Component, which exposes the attributes the search facility reads:
// identifier, versioned identifier, display name, comments and parent group.
//
// Optional attributes are represented by the empty string.
//
// # Loading
//
// Flows are described in YAML and loaded into an immutable Graph:
//
//	graph, err := flow.LoadFile("flow.yaml")
//	if err != nil {
//		return err
//	}
//
//	graph.Walk(func(c flow.Component) error {
//		fmt.Printf("%s %s\n", c.Kind(), c.Name())
//		return nil
//	})
//
// Connections reference their endpoints by id. Endpoints are resolved across the
// whole graph when it is built, so a connection may link ports of nested groups.
//
// # Live flows
//
// Store holds the current Graph and swaps it atomically on reload. Watcher reloads
// the Store when the flow file changes on disk.
package flow
