package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/httputil"
	"github.com/platinummonkey/flowsearch/pkg/observability"
	"github.com/platinummonkey/flowsearch/pkg/orchestrator"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// GraphSource provides the current flow graph
type GraphSource interface {
	Current() (*flow.Graph, error)
}

// Searcher runs a raw query against a whole graph
type Searcher interface {
	Search(ctx context.Context, graph *flow.Graph, raw string) (*orchestrator.Results, error)
}

// ComponentMatcher matches a single component and lists the kinds it handles
type ComponentMatcher interface {
	Match(component flow.Component, query *search.Query) (*search.Result, error)
	Kinds() []flow.Kind
}

// SearchHandlers provides HTTP handlers for flow search
type SearchHandlers struct {
	flows    GraphSource
	searcher Searcher
	matcher  ComponentMatcher
}

// NewSearchHandlers creates new search handlers
func NewSearchHandlers(flows GraphSource, searcher Searcher, matcher ComponentMatcher) *SearchHandlers {
	return &SearchHandlers{
		flows:    flows,
		searcher: searcher,
		matcher:  matcher,
	}
}

// RegisterRoutes registers search routes
func (h *SearchHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/flow", h.summary).Methods("GET")
	router.HandleFunc("/flow/search-results", h.search).Methods("GET")
	router.HandleFunc("/flow/components/{id}/matches", h.matchComponent).Methods("GET")
	router.HandleFunc("/flow/kinds", h.kinds).Methods("GET")
}

// FlowSummary describes the loaded flow
type FlowSummary struct {
	Revision   string `json:"revision"`
	RootID     string `json:"rootId"`
	RootName   string `json:"rootName"`
	Components int    `json:"components"`
}

// summary handles GET /flow
func (h *SearchHandlers) summary(w http.ResponseWriter, r *http.Request) {
	graph, ok := h.currentGraph(w)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FlowSummary{
		Revision:   graph.Revision(),
		RootID:     graph.Root().ID(),
		RootName:   graph.Root().Name(),
		Components: graph.Len(),
	})
}

// search handles GET /flow/search-results
// Query parameters:
//   - q: search term with optional group: and kind: filters
func (h *SearchHandlers) search(w http.ResponseWriter, r *http.Request) {
	graph, ok := h.currentGraph(w)
	if !ok {
		return
	}

	raw := httputil.ParseQueryString(r, "q", "")
	results, err := h.searcher.Search(r.Context(), graph, raw)
	if err != nil {
		writeSearchError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, results)
}

// matchComponent handles GET /flow/components/{id}/matches
func (h *SearchHandlers) matchComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}
	graph, ok := h.currentGraph(w)
	if !ok {
		return
	}

	component, found := graph.Lookup(id)
	if !found {
		httputil.WriteNotFound(w, fmt.Sprintf("component %q not found", id))
		return
	}

	query, err := search.ParseQuery(httputil.ParseQueryString(r, "q", ""))
	if err != nil {
		writeSearchError(w, r, err)
		return
	}

	result, err := h.matcher.Match(component, query)
	if err != nil {
		writeSearchError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// kinds handles GET /flow/kinds
func (h *SearchHandlers) kinds(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string][]flow.Kind{
		"kinds": h.matcher.Kinds(),
	})
}

func (h *SearchHandlers) currentGraph(w http.ResponseWriter) (*flow.Graph, bool) {
	graph, err := h.flows.Current()
	if err != nil {
		httputil.WriteServiceUnavailable(w, err.Error())
		return nil, false
	}
	return graph, true
}

// statusFor maps search errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, search.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, flow.ErrNoFlowLoaded),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		// includes search.ErrUnsupportedComponentKind, a wiring fault
		return http.StatusInternalServerError
	}
}

func writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		observability.FromContext(r.Context()).WithError(err).Error("Search failed")
	}
	httputil.WriteError(w, status, err)
}
