package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/observability"
	"github.com/platinummonkey/flowsearch/pkg/search"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("flowsearch/orchestrator")

// Orchestrator runs a query against every component of a flow graph
type Orchestrator struct {
	config     *Config
	dispatcher Dispatcher
	cache      *resultCache
	metrics    *observability.Metrics
	log        *logrus.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithMetrics records search metrics
func WithMetrics(metrics *observability.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = metrics
	}
}

// WithLogger sets the logger used for skipped components
func WithLogger(log *logrus.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// New creates an orchestrator dispatching through dispatcher
func New(dispatcher Dispatcher, config *Config, opts ...Option) (*Orchestrator, error) {
	if dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	o := &Orchestrator{
		config:     config,
		dispatcher: dispatcher,
		log:        logrus.New(),
	}
	if config.CacheEnabled {
		o.cache = newResultCache(config.CacheSize, config.CacheTTL)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Search parses raw and runs it against graph
func (o *Orchestrator) Search(ctx context.Context, graph *flow.Graph, raw string) (*Results, error) {
	query, err := search.ParseQuery(raw)
	if err != nil {
		o.metrics.ObserveSearch(observability.SearchStatusInvalid, 0)
		return nil, err
	}
	return o.Run(ctx, graph, query)
}

// Run matches every in-scope component of graph against query. Components
// without any match are left out. Returned results may be shared with the
// cache and must not be modified.
func (o *Orchestrator) Run(ctx context.Context, graph *flow.Graph, query *search.Query) (results *Results, err error) {
	if query == nil {
		return nil, fmt.Errorf("%w: nil query", search.ErrInvalidQuery)
	}
	if graph == nil {
		return nil, flow.ErrNoFlowLoaded
	}

	ctx, span := tracer.Start(ctx, "Search",
		trace.WithAttributes(
			attribute.String("search.query", query.String()),
			attribute.String("flow.revision", graph.Revision()),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		o.metrics.ObserveSearch(status(err), time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "search failed")
			return
		}
		span.SetAttributes(attribute.Int("search.results", results.Total()))
		span.SetStatus(codes.Ok, "search completed")
	}()

	key := cacheKey(graph.Revision(), query)
	if o.cache != nil {
		if cached, ok := o.cache.get(key); ok {
			o.metrics.ObserveCache(true)
			span.SetAttributes(attribute.Bool("search.cache_hit", true))
			return cached, nil
		}
		o.metrics.ObserveCache(false)
	}

	candidates, err := scope(graph, query)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.candidates", len(candidates)))

	slots, skipped, err := o.dispatchAll(ctx, candidates, query)
	if err != nil {
		return nil, err
	}
	o.metrics.ObserveComponents(len(candidates))

	results = newResults(query, graph.Revision())
	results.Skipped = skipped
	for _, result := range slots {
		if result == nil || !result.Matched() {
			continue
		}
		results.add(result)
		o.metrics.ObserveMatch(string(result.Kind))
	}

	if o.cache != nil {
		o.cache.add(key, results)
	}
	return results, nil
}

// dispatchAll matches candidates on a bounded pool, writing each result into
// the slot of its candidate so output order never depends on scheduling
func (o *Orchestrator) dispatchAll(ctx context.Context, candidates []flow.Component, query *search.Query) ([]*search.Result, int, error) {
	slots := make([]*search.Result, len(candidates))
	var skipped atomic.Int64

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.config.MaxWorkers)

	for i, component := range candidates {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() (err error) {
			defer func() {
				if perr := observability.PanicError(recover()); perr != nil {
					err = fmt.Errorf("matcher for %s %q: %w", component.Kind(), component.ID(), perr)
				}
			}()

			result, err := o.dispatcher.Match(component, query)
			if err != nil {
				if errors.Is(err, search.ErrUnsupportedComponentKind) && !o.config.FailOnUnsupported {
					skipped.Add(1)
					o.metrics.ObserveUnsupported(string(component.Kind()))
					o.log.WithError(err).WithField("component", component.ID()).Warn("Skipping component without a matcher")
					return nil
				}
				return err
			}
			slots[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return slots, int(skipped.Load()), nil
}

// scope returns the components selected by the query's kind and group filters,
// in walk order
func scope(graph *flow.Graph, query *search.Query) ([]flow.Component, error) {
	if !query.HasFilters() {
		return graph.Components(), nil
	}

	var kind flow.Kind
	if value, ok := query.Filter(search.FilterKind); ok {
		parsed, ok := flow.ParseKind(value)
		if !ok {
			return nil, fmt.Errorf("%w: unknown kind %q", search.ErrInvalidQuery, value)
		}
		kind = parsed
	}

	var groups []string
	groupValue, scoped := query.Filter(search.FilterGroup)
	if scoped {
		groups = resolveGroups(graph, groupValue)
		if len(groups) == 0 {
			return nil, nil
		}
	}

	var candidates []flow.Component
	err := graph.Walk(func(c flow.Component) error {
		if kind != "" && c.Kind() != kind {
			return nil
		}
		if scoped && !withinAny(graph, c, groups) {
			return nil
		}
		candidates = append(candidates, c)
		return nil
	})
	return candidates, err
}

// resolveGroups finds groups by id, falling back to a case-insensitive name match
func resolveGroups(graph *flow.Graph, value string) []string {
	if _, ok := graph.Group(value); ok {
		return []string{value}
	}

	var ids []string
	_ = graph.Walk(func(c flow.Component) error {
		if c.Kind() == flow.KindProcessGroup && strings.EqualFold(c.Name(), value) {
			ids = append(ids, c.ID())
		}
		return nil
	})
	return ids
}

func withinAny(graph *flow.Graph, c flow.Component, groups []string) bool {
	for _, id := range groups {
		if graph.Within(c, id) {
			return true
		}
	}
	return false
}

// Purge drops every cached result
func (o *Orchestrator) Purge() {
	if o.cache != nil {
		o.cache.purge()
	}
}

// CacheStats returns result cache statistics; zero when caching is disabled
func (o *Orchestrator) CacheStats() CacheStats {
	if o.cache == nil {
		return CacheStats{}
	}
	return o.cache.stats()
}

func status(err error) string {
	switch {
	case err == nil:
		return observability.SearchStatusOK
	case errors.Is(err, search.ErrInvalidQuery):
		return observability.SearchStatusInvalid
	case errors.Is(err, search.ErrUnsupportedComponentKind):
		return observability.SearchStatusUnsupported
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return observability.SearchStatusCanceled
	default:
		return observability.SearchStatusError
	}
}
