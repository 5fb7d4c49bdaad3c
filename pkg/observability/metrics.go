package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcome labels
const (
	SearchStatusOK          = "ok"
	SearchStatusInvalid     = "invalid_query"
	SearchStatusUnsupported = "unsupported_kind"
	SearchStatusCanceled    = "canceled"
	SearchStatusError       = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Search metrics
	SearchesTotal          *prometheus.CounterVec
	SearchDuration         prometheus.Histogram
	ComponentsSearched     prometheus.Counter
	ComponentsMatchedTotal *prometheus.CounterVec
	UnsupportedSkipped     *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Flow metrics
	FlowComponents   prometheus.Gauge
	FlowReloadsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowsearch_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flowsearch_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flowsearch_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "path"},
		),

		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowsearch_searches_total",
				Help: "Total number of searches by outcome",
			},
			[]string{"status"},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flowsearch_search_duration_seconds",
				Help:    "Whole-flow search duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
		ComponentsSearched: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flowsearch_components_searched_total",
				Help: "Total number of components dispatched to a matcher",
			},
		),
		ComponentsMatchedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowsearch_components_matched_total",
				Help: "Total number of components with at least one match",
			},
			[]string{"kind"},
		),
		UnsupportedSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowsearch_unsupported_skipped_total",
				Help: "Components skipped because no matcher handles their kind",
			},
			[]string{"kind"},
		),

		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flowsearch_cache_hits_total",
				Help: "Total number of result cache hits",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flowsearch_cache_misses_total",
				Help: "Total number of result cache misses",
			},
		),

		FlowComponents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "flowsearch_flow_components",
				Help: "Number of components in the loaded flow",
			},
		),
		FlowReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowsearch_flow_reloads_total",
				Help: "Total number of flow reloads by outcome",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.SearchesTotal,
		m.SearchDuration,
		m.ComponentsSearched,
		m.ComponentsMatchedTotal,
		m.UnsupportedSkipped,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.FlowComponents,
		m.FlowReloadsTotal,
	)

	return m
}

// ObserveSearch records the outcome and duration of a search. Safe on a nil receiver.
func (m *Metrics) ObserveSearch(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(status).Inc()
	m.SearchDuration.Observe(duration.Seconds())
}

// ObserveComponents records how many components were dispatched
func (m *Metrics) ObserveComponents(searched int) {
	if m == nil {
		return
	}
	m.ComponentsSearched.Add(float64(searched))
}

// ObserveMatch records a component of the given kind that matched
func (m *Metrics) ObserveMatch(kind string) {
	if m == nil {
		return
	}
	m.ComponentsMatchedTotal.WithLabelValues(kind).Inc()
}

// ObserveUnsupported records a component skipped for lack of a matcher
func (m *Metrics) ObserveUnsupported(kind string) {
	if m == nil {
		return
	}
	m.UnsupportedSkipped.WithLabelValues(kind).Inc()
}

// ObserveCache records a result cache lookup
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.Inc()
		return
	}
	m.CacheMissesTotal.Inc()
}

// ObserveReload records a flow reload and the resulting component count
func (m *Metrics) ObserveReload(components int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.FlowReloadsTotal.WithLabelValues("error").Inc()
		return
	}
	m.FlowReloadsTotal.WithLabelValues("ok").Inc()
	m.FlowComponents.Set(float64(components))
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// routePath returns the mux route template so path labels stay bounded
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			path := routePath(r)
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, path).Observe(float64(rw.bytesWritten))
		})
	}
}

// MetricsHandler serves the registry in the Prometheus exposition format
func MetricsHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
