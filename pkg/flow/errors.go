package flow

import "errors"

var (
	// ErrDuplicateComponentID is returned when two components share an id
	ErrDuplicateComponentID = errors.New("duplicate component id")

	// ErrMissingComponentID is returned when a component has no id
	ErrMissingComponentID = errors.New("missing component id")

	// ErrUnknownEndpoint is returned when a connection references a component that does not exist
	ErrUnknownEndpoint = errors.New("unknown connection endpoint")

	// ErrInvalidEndpoint is returned when a connection references a component that cannot be connected
	ErrInvalidEndpoint = errors.New("component cannot be a connection endpoint")

	// ErrNoFlowLoaded is returned when the store has no graph yet
	ErrNoFlowLoaded = errors.New("no flow loaded")
)
