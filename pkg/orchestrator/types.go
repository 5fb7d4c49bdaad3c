package orchestrator

import (
	"fmt"
	"time"

	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// Dispatcher matches a single component against a query
type Dispatcher interface {
	Match(component flow.Component, query *search.Query) (*search.Result, error)
}

// Config holds orchestrator configuration
type Config struct {
	// MaxWorkers bounds concurrent dispatches (default: 8)
	MaxWorkers int

	// FailOnUnsupported fails the whole search when a component has no matcher.
	// When false the component is logged, counted and skipped.
	FailOnUnsupported bool

	// Result cache
	CacheEnabled bool
	CacheSize    int
	CacheTTL     time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxWorkers:        8,
		FailOnUnsupported: true,
		CacheEnabled:      true,
		CacheSize:         256,
		CacheTTL:          5 * time.Minute,
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.MaxWorkers < 1 {
		return fmt.Errorf("%w: max workers must be at least 1, got %d", ErrInvalidConfig, c.MaxWorkers)
	}
	if c.CacheEnabled && c.CacheSize < 1 {
		return fmt.Errorf("%w: cache size must be at least 1, got %d", ErrInvalidConfig, c.CacheSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache ttl must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Results holds the matching components of a search grouped by kind. Within
// each group results follow graph walk order.
type Results struct {
	Query    string `json:"query"`
	Revision string `json:"revision"`

	ProcessorResults          []*search.Result `json:"processorResults"`
	ConnectionResults         []*search.Result `json:"connectionResults"`
	InputPortResults          []*search.Result `json:"inputPortResults"`
	OutputPortResults         []*search.Result `json:"outputPortResults"`
	FunnelResults             []*search.Result `json:"funnelResults"`
	LabelResults              []*search.Result `json:"labelResults"`
	ProcessGroupResults       []*search.Result `json:"processGroupResults"`
	RemoteProcessGroupResults []*search.Result `json:"remoteProcessGroupResults"`

	// Skipped counts components without a matcher when unsupported kinds are tolerated
	Skipped int `json:"skipped,omitempty"`
}

func newResults(query *search.Query, revision string) *Results {
	return &Results{
		Query:                     query.String(),
		Revision:                  revision,
		ProcessorResults:          []*search.Result{},
		ConnectionResults:         []*search.Result{},
		InputPortResults:          []*search.Result{},
		OutputPortResults:         []*search.Result{},
		FunnelResults:             []*search.Result{},
		LabelResults:              []*search.Result{},
		ProcessGroupResults:       []*search.Result{},
		RemoteProcessGroupResults: []*search.Result{},
	}
}

// group returns the slot holding results of kind
func (r *Results) group(kind flow.Kind) *[]*search.Result {
	switch kind {
	case flow.KindProcessor:
		return &r.ProcessorResults
	case flow.KindConnection:
		return &r.ConnectionResults
	case flow.KindInputPort:
		return &r.InputPortResults
	case flow.KindOutputPort:
		return &r.OutputPortResults
	case flow.KindFunnel:
		return &r.FunnelResults
	case flow.KindLabel:
		return &r.LabelResults
	case flow.KindProcessGroup:
		return &r.ProcessGroupResults
	case flow.KindRemoteProcessGroup:
		return &r.RemoteProcessGroupResults
	}
	return nil
}

func (r *Results) add(result *search.Result) {
	if slot := r.group(result.Kind); slot != nil {
		*slot = append(*slot, result)
	}
}

// ByKind returns the results of one kind
func (r *Results) ByKind(kind flow.Kind) []*search.Result {
	if slot := r.group(kind); slot != nil {
		return *slot
	}
	return nil
}

// All returns every result, grouped in canonical kind order
func (r *Results) All() []*search.Result {
	var all []*search.Result
	for _, kind := range flow.Kinds() {
		all = append(all, r.ByKind(kind)...)
	}
	return all
}

// Total returns the number of matching components
func (r *Results) Total() int {
	total := 0
	for _, kind := range flow.Kinds() {
		total += len(r.ByKind(kind))
	}
	return total
}
