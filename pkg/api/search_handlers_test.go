package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/httputil"
	"github.com/platinummonkey/flowsearch/pkg/observability"
	"github.com/platinummonkey/flowsearch/pkg/orchestrator"
	"github.com/platinummonkey/flowsearch/pkg/search"
	"github.com/platinummonkey/flowsearch/pkg/search/matchers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func loadedStore(t *testing.T) *flow.Store {
	t.Helper()
	store := flow.NewStore(filepath.Join("..", "flow", "testdata", "flow.yaml"), quietLogger())
	require.NoError(t, store.Reload())
	return store
}

func newHandler(t *testing.T, store *flow.Store, registry *search.Registry, metrics *observability.Metrics) http.Handler {
	t.Helper()
	if registry == nil {
		var err error
		registry, err = matchers.DefaultRegistry()
		require.NoError(t, err)
	}
	orch, err := orchestrator.New(registry, nil, orchestrator.WithMetrics(metrics))
	require.NoError(t, err)
	return NewRouter(NewSearchHandlers(store, orch, registry), quietLogger(), metrics)
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func searchPath(raw string) string {
	return "/flow/search-results?q=" + url.QueryEscape(raw)
}

func TestSearchHandlers_RegisterRoutes(t *testing.T) {
	router := mux.NewRouter()
	NewSearchHandlers(nil, nil, nil).RegisterRoutes(router)

	for _, path := range []string{"/flow", "/flow/search-results", "/flow/components/n1/matches", "/flow/kinds"} {
		t.Run(path, func(t *testing.T) {
			var match mux.RouteMatch
			assert.True(t, router.Match(httptest.NewRequest(http.MethodGet, path, nil), &match))
		})
	}
}

func TestSearch_OK(t *testing.T) {
	handler := newHandler(t, loadedStore(t), nil, nil)

	rec := get(t, handler, searchPath("csv"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(httputil.RequestIDHeader))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{
		"processorResults", "connectionResults", "inputPortResults", "outputPortResults",
		"funnelResults", "labelResults", "processGroupResults", "remoteProcessGroupResults",
	} {
		assert.Contains(t, body, key)
	}
	assert.JSONEq(t, "[]", string(body["funnelResults"]))

	var results orchestrator.Results
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results.ConnectionResults, 2)
	assert.Equal(t, "c1", results.ConnectionResults[0].ID)
	assert.Equal(t, []string{
		"Source name: Ingest-CSV-Reader",
		"Destination comments: writes csv backups",
	}, results.ConnectionResults[0].Matches)
}

func TestSearch_StatusMapping(t *testing.T) {
	processorsOnly := search.NewRegistry()
	processorsOnly.MustRegister(flow.KindProcessor, matchers.Defaults()[flow.KindProcessor])

	tests := []struct {
		name     string
		store    func(t *testing.T) *flow.Store
		registry *search.Registry
		path     string
		status   int
	}{
		{
			name:   "missing term",
			store:  loadedStore,
			path:   "/flow/search-results",
			status: http.StatusBadRequest,
		},
		{
			name:   "filters only",
			store:  loadedStore,
			path:   searchPath("kind:processor"),
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown kind filter",
			store:  loadedStore,
			path:   searchPath("kind:widget csv"),
			status: http.StatusBadRequest,
		},
		{
			name:     "unsupported kind",
			store:    loadedStore,
			registry: processorsOnly,
			path:     searchPath("csv"),
			status:   http.StatusInternalServerError,
		},
		{
			name: "no flow loaded",
			store: func(t *testing.T) *flow.Store {
				return flow.NewStore("", quietLogger())
			},
			path:   searchPath("csv"),
			status: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newHandler(t, tt.store(t), tt.registry, nil)
			rec := get(t, handler, tt.path)
			assert.Equal(t, tt.status, rec.Code)

			var resp httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, rec.Header().Get(httputil.RequestIDHeader), resp.RequestID)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: blank", search.ErrInvalidQuery), http.StatusBadRequest},
		{fmt.Errorf("%w: widget", search.ErrUnsupportedComponentKind), http.StatusInternalServerError},
		{flow.ErrNoFlowLoaded, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFor(tt.err), tt.err.Error())
	}
}

func TestMatchComponent(t *testing.T) {
	handler := newHandler(t, loadedStore(t), nil, nil)

	t.Run("match", func(t *testing.T) {
		rec := get(t, handler, "/flow/components/c1/matches?q=N1")
		require.Equal(t, http.StatusOK, rec.Code)

		var result search.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "c1", result.ID)
		assert.Equal(t, flow.KindConnection, result.Kind)
		assert.Equal(t, []string{"Source id: n1"}, result.Matches)
	})

	t.Run("no match is empty list", func(t *testing.T) {
		rec := get(t, handler, "/flow/components/f1/matches?q=zzz")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"matches":[]`)
	})

	t.Run("unknown component", func(t *testing.T) {
		rec := get(t, handler, "/flow/components/nope/matches?q=x")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid query", func(t *testing.T) {
		rec := get(t, handler, "/flow/components/c1/matches?q=")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestKindsAndSummary(t *testing.T) {
	store := loadedStore(t)
	handler := newHandler(t, store, nil, nil)

	rec := get(t, handler, "/flow/kinds")
	require.Equal(t, http.StatusOK, rec.Code)
	var kinds map[string][]flow.Kind
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kinds))
	assert.Len(t, kinds["kinds"], len(flow.Kinds()))

	rec = get(t, handler, "/flow")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary FlowSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))

	graph, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, FlowSummary{
		Revision:   graph.Revision(),
		RootID:     "root",
		RootName:   "NiFi Flow",
		Components: 13,
	}, summary)
}

func TestRouter_RecordsMetrics(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	handler := newHandler(t, loadedStore(t), nil, metrics)

	get(t, handler, searchPath("csv"))
	get(t, handler, searchPath(""))

	assert.Equal(t, float64(1), testutil.ToFloat64(
		metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/flow/search-results", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/flow/search-results", "400")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		metrics.SearchesTotal.WithLabelValues(observability.SearchStatusOK)))
}
