package search

import "errors"

var (
	// ErrInvalidQuery is returned when a search term is empty or blank
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrUnsupportedComponentKind is returned when no matcher is registered for a component's kind
	ErrUnsupportedComponentKind = errors.New("unsupported component kind")

	// ErrDuplicateMatcher is returned when a second matcher is registered for a kind
	ErrDuplicateMatcher = errors.New("matcher already registered for kind")

	// ErrInvalidMatcher is returned when registering a nil matcher or an empty kind
	ErrInvalidMatcher = errors.New("invalid matcher registration")

	// ErrRegistryFrozen is returned when registering after the registry was frozen
	ErrRegistryFrozen = errors.New("matcher registry is frozen")
)
