package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/flowsearch/pkg/httputil"
	"github.com/platinummonkey/flowsearch/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter builds the public API handler: search routes behind request ID,
// logging, recovery and, when metrics is non-nil, Prometheus instrumentation.
// The whole router is traced with otelhttp.
func NewRouter(handlers *SearchHandlers, logger logrus.FieldLogger, metrics *observability.Metrics) http.Handler {
	router := mux.NewRouter()
	router.Use(
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(logger),
		httputil.RecoveryMiddleware(logger),
	)
	if metrics != nil {
		router.Use(observability.HTTPMetricsMiddleware(metrics))
	}

	handlers.RegisterRoutes(router)

	return otelhttp.NewHandler(router, "flowsearch",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// NewHealthRouter builds the probe handler served on the health port. The
// metrics endpoint is only registered when registry is non-nil.
func NewHealthRouter(checker *observability.HealthChecker, registry *prometheus.Registry) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", checker.Liveness).Methods("GET")
	router.HandleFunc("/readyz", checker.Readiness).Methods("GET")
	if registry != nil {
		router.Handle("/metrics", observability.MetricsHandler(registry)).Methods("GET")
	}
	return router
}
