package flow

import (
	"fmt"

	"github.com/google/uuid"
)

// Graph is an immutable, fully resolved flow
type Graph struct {
	root       *ProcessGroup
	revision   string
	components []Component
	index      map[string]Component
	groups     map[string]*ProcessGroup
}

// NewGraph indexes the tree rooted at root, assigns parent groups and resolves
// connection endpoints. The root group must not be modified afterwards.
func NewGraph(root *ProcessGroup) (*Graph, error) {
	if root == nil {
		root = &ProcessGroup{Base: Base{Identifier: "root", DisplayName: "root"}}
	}

	g := &Graph{
		root:     root,
		revision: uuid.NewString(),
		index:    make(map[string]Component),
		groups:   make(map[string]*ProcessGroup),
	}

	if err := g.add(root); err != nil {
		return nil, err
	}
	if err := g.indexGroup(root); err != nil {
		return nil, err
	}
	if err := g.resolveConnections(root); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Graph) add(c Component) error {
	if c.ID() == "" {
		return fmt.Errorf("%w: %s named %q", ErrMissingComponentID, c.Kind(), c.Name())
	}
	if _, exists := g.index[c.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateComponentID, c.ID())
	}
	g.index[c.ID()] = c
	g.components = append(g.components, c)
	return nil
}

// indexGroup walks a group depth-first. Children are indexed before nested groups.
func (g *Graph) indexGroup(group *ProcessGroup) error {
	g.groups[group.ID()] = group

	for _, child := range group.children() {
		setGroup(child, group.ID())
		if err := g.add(child); err != nil {
			return err
		}
	}

	for _, nested := range group.ProcessGroups {
		nested.Group = group.ID()
		if err := g.add(nested); err != nil {
			return err
		}
		if err := g.indexGroup(nested); err != nil {
			return err
		}
	}
	return nil
}

func setGroup(c Component, groupID string) {
	switch v := c.(type) {
	case *Processor:
		v.Group = groupID
	case *Connection:
		v.Group = groupID
	case *InputPort:
		v.Group = groupID
	case *OutputPort:
		v.Group = groupID
	case *Funnel:
		v.Group = groupID
	case *Label:
		v.Group = groupID
	case *RemoteProcessGroup:
		v.Group = groupID
	}
}

func (g *Graph) resolveConnections(group *ProcessGroup) error {
	for _, conn := range group.Connections {
		source, err := g.endpoint(conn, conn.SourceID)
		if err != nil {
			return err
		}
		destination, err := g.endpoint(conn, conn.DestinationID)
		if err != nil {
			return err
		}
		conn.connect(source, destination)
	}

	for _, nested := range group.ProcessGroups {
		if err := g.resolveConnections(nested); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) endpoint(conn *Connection, id string) (Component, error) {
	c, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: connection %s references %q", ErrUnknownEndpoint, conn.ID(), id)
	}
	if !c.Kind().Connectable() {
		return nil, fmt.Errorf("%w: connection %s references %s %s", ErrInvalidEndpoint, conn.ID(), c.Kind(), id)
	}
	return c, nil
}

// Root returns the root process group
func (g *Graph) Root() *ProcessGroup {
	return g.root
}

// Revision identifies this build of the graph. Every load yields a new revision.
func (g *Graph) Revision() string {
	return g.revision
}

// Len returns the number of components, including the root group
func (g *Graph) Len() int {
	return len(g.components)
}

// Lookup retrieves a component by id
func (g *Graph) Lookup(id string) (Component, bool) {
	c, ok := g.index[id]
	return c, ok
}

// Group retrieves a process group by id
func (g *Graph) Group(id string) (*ProcessGroup, bool) {
	group, ok := g.groups[id]
	return group, ok
}

// Components returns every component in walk order
func (g *Graph) Components() []Component {
	out := make([]Component, len(g.components))
	copy(out, g.components)
	return out
}

// Walk calls fn for every component in walk order and stops at the first error
func (g *Graph) Walk(fn func(Component) error) error {
	for _, c := range g.components {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// Within reports whether c is the group groupID or is nested anywhere below it
func (g *Graph) Within(c Component, groupID string) bool {
	if c.ID() == groupID {
		return true
	}
	for parent := c.GroupID(); parent != ""; {
		if parent == groupID {
			return true
		}
		group, ok := g.groups[parent]
		if !ok {
			return false
		}
		parent = group.GroupID()
	}
	return false
}
