package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/platinummonkey/flowsearch/pkg/api"
	"github.com/platinummonkey/flowsearch/pkg/config"
	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/observability"
	"github.com/platinummonkey/flowsearch/pkg/orchestrator"
	"github.com/platinummonkey/flowsearch/pkg/search/matchers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var flowPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve flow search over HTTP",
		Long: `Load a flow file and serve search over HTTP.

Configuration is read from FLOWSEARCH_* environment variables. The flow file is
reloaded when it changes on disk and, when FLOWSEARCH_RELOAD_SCHEDULE is set, on
that cron schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if flowPath != "" {
				cfg.Flow.Path = flowPath
			}
			if root.logLevel != "" {
				cfg.Observability.LogLevel = root.logLevel
			}
			if root.logFormat != "" {
				cfg.Observability.LogFormat = root.logFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVarP(&flowPath, "flow", "f", "", "Flow file (overrides FLOWSEARCH_FLOW_FILE)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	otelProviders, err := observability.InitOTel(ctx, cfg.Observability.OTel(), log)
	if err != nil {
		return err
	}

	var (
		registry *prometheus.Registry
		metrics  *observability.Metrics
	)
	if cfg.Observability.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(registry)
	}

	matcherRegistry, err := matchers.DefaultRegistry()
	if err != nil {
		return err
	}

	searchConfig := cfg.Search
	orch, err := orchestrator.New(matcherRegistry, &searchConfig,
		orchestrator.WithMetrics(metrics),
		orchestrator.WithLogger(log),
	)
	if err != nil {
		return err
	}

	store := newFlowStore(cfg.Flow.Path, orch, metrics, log)
	// Readiness stays failed until a reload succeeds.
	_ = store.Reload()

	if cfg.Flow.Watch {
		watcher := flow.NewWatcher(store, cfg.Flow.WatchDebounce, log)
		go func() {
			defer observability.RecoverPanic(log, "flow watcher")
			if err := watcher.Run(ctx); err != nil {
				log.WithError(err).Error("Flow watcher stopped")
			}
		}()
	}

	checker := observability.NewHealthChecker(Version)
	checker.Register("flow", true, func(context.Context) error {
		_, err := store.Current()
		return err
	})

	handlers := api.NewSearchHandlers(store, orch, matcherRegistry)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handlers, log, metrics),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	healthServer := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler:     api.NewHealthRouter(checker, registry),
		ReadTimeout: cfg.Server.ReadTimeout,
	}

	shutdown := observability.NewShutdownManager(log, cfg.Server.ShutdownTimeout, server, healthServer)
	if otelProviders != nil {
		shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
			return observability.ShutdownOTel(ctx, otelProviders, log)
		})
	}

	if cfg.Flow.ReloadSchedule != "" {
		scheduler, err := flow.ScheduleReloads(store, cfg.Flow.ReloadSchedule, log)
		if err != nil {
			return err
		}
		scheduler.Start()
		shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
			select {
			case <-scheduler.Stop().Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		log.WithField("schedule", cfg.Flow.ReloadSchedule).Info("Scheduled flow reloads")
	}

	errCh := make(chan error, 2)
	for _, srv := range []*http.Server{server, healthServer} {
		go func(srv *http.Server) {
			log.WithField("addr", srv.Addr).Info("Starting HTTP server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv)
	}

	select {
	case err := <-errCh:
		log.WithError(err).Error("HTTP server failed")
		return errors.Join(err, shutdown.Shutdown())
	case <-ctx.Done():
		return shutdown.Wait(ctx)
	}
}

// newFlowStore creates the flow store whose every swap purges cached results and
// whose every reload, successful or not, is recorded in metrics
func newFlowStore(path string, orch *orchestrator.Orchestrator, metrics *observability.Metrics, log *logrus.Logger) *flow.Store {
	store := flow.NewStore(path, log)
	store.OnChange(func(graph *flow.Graph) {
		orch.Purge()
		metrics.ObserveReload(graph.Len(), nil)
	})
	store.OnError(func(err error) {
		metrics.ObserveReload(0, err)
	})
	return store
}
