package flow

import "strings"

// Kind identifies the type of a flow component
type Kind string

// Component kinds
const (
	KindProcessor          Kind = "processor"
	KindConnection         Kind = "connection"
	KindInputPort          Kind = "input-port"
	KindOutputPort         Kind = "output-port"
	KindFunnel             Kind = "funnel"
	KindLabel              Kind = "label"
	KindProcessGroup       Kind = "process-group"
	KindRemoteProcessGroup Kind = "remote-process-group"
)

// Kinds returns every component kind in canonical order
func Kinds() []Kind {
	return []Kind{
		KindProcessor,
		KindConnection,
		KindInputPort,
		KindOutputPort,
		KindFunnel,
		KindLabel,
		KindProcessGroup,
		KindRemoteProcessGroup,
	}
}

// ParseKind parses a kind name, accepting the canonical form and common aliases
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "processor", "processors":
		return KindProcessor, true
	case "connection", "connections":
		return KindConnection, true
	case "input-port", "input_port", "inputport":
		return KindInputPort, true
	case "output-port", "output_port", "outputport":
		return KindOutputPort, true
	case "funnel", "funnels":
		return KindFunnel, true
	case "label", "labels":
		return KindLabel, true
	case "process-group", "process_group", "processgroup", "group":
		return KindProcessGroup, true
	case "remote-process-group", "remote_process_group", "remoteprocessgroup", "rpg":
		return KindRemoteProcessGroup, true
	default:
		return "", false
	}
}

// Connectable reports whether components of this kind may be a connection endpoint
func (k Kind) Connectable() bool {
	switch k {
	case KindProcessor, KindInputPort, KindOutputPort, KindFunnel:
		return true
	default:
		return false
	}
}

// Component is the read-only view of a flow element
type Component interface {
	Kind() Kind
	ID() string
	VersionedID() string
	Name() string
	Comments() string
	GroupID() string
}

// Schedulable is a component with a scheduled state
type Schedulable interface {
	Component
	ScheduledState() ScheduledState
}

// Base carries the attributes shared by all components
type Base struct {
	Identifier          string `yaml:"id"`
	VersionedIdentifier string `yaml:"versionedId,omitempty"`
	DisplayName         string `yaml:"name,omitempty"`
	Comment             string `yaml:"comments,omitempty"`

	// Parent group, assigned when the graph is built
	Group string `yaml:"-"`
}

func (b *Base) ID() string          { return b.Identifier }
func (b *Base) VersionedID() string { return b.VersionedIdentifier }
func (b *Base) Name() string        { return b.DisplayName }
func (b *Base) Comments() string    { return b.Comment }
func (b *Base) GroupID() string     { return b.Group }

// ScheduledState is the run state of a processor or port
type ScheduledState string

const (
	StateRunning  ScheduledState = "RUNNING"
	StateStopped  ScheduledState = "STOPPED"
	StateDisabled ScheduledState = "DISABLED"
	StateInvalid  ScheduledState = "INVALID"
)

// String returns the human readable form of the state
func (s ScheduledState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	case StateDisabled:
		return "Disabled"
	case StateInvalid:
		return "Invalid"
	default:
		return string(s)
	}
}
