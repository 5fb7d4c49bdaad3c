// Package observability provides logrus logging, Prometheus metrics,
// OpenTelemetry tracing, health probes and graceful shutdown.
//
// # Logging
//
//	logger, err := observability.NewLogger("info", observability.FormatJSON, os.Stderr)
//	ctx = observability.WithLogger(ctx, logger)
//	observability.FromContext(ctx).Info("search complete")
//
// FromContext adds the request ID and the active trace and span IDs.
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.ObserveSearch(observability.SearchStatusOK, time.Since(start))
//	router.Handle("/metrics", observability.MetricsHandler(registry))
//
// The Observe helpers are safe on a nil *Metrics.
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(version)
//	checker.Register("flow", true, func(ctx context.Context) error {
//		_, err := store.Current()
//		return err
//	})
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
//		Enabled:     true,
//		Endpoint:    "otel-collector:4317",
//		ServiceName: "flowsearch",
//	}, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
package observability
