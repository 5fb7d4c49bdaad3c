package orchestrator

import "errors"

var (
	// ErrNilDispatcher is returned when an orchestrator is built without a dispatcher
	ErrNilDispatcher = errors.New("dispatcher is required")

	// ErrInvalidConfig is returned when the orchestrator configuration is invalid
	ErrInvalidConfig = errors.New("invalid orchestrator config")
)
