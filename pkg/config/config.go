package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/observability"
	"github.com/platinummonkey/flowsearch/pkg/orchestrator"
	"github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Flow file configuration
	Flow FlowConfig

	// Search configuration
	Search orchestrator.Config

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// FlowConfig holds the flow file settings
type FlowConfig struct {
	Path          string
	Watch         bool
	WatchDebounce time.Duration

	// ReloadSchedule is a cron expression for periodic reloads; empty disables them
	ReloadSchedule string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel  string
	LogFormat string

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
	OTelSampleRatio    float64
}

// OTel converts the settings for observability.InitOTel
func (c ObservabilityConfig) OTel() observability.OTelConfig {
	return observability.OTelConfig{
		Enabled:        c.OTelEnabled,
		Endpoint:       c.OTelEndpoint,
		ServiceName:    c.OTelServiceName,
		ServiceVersion: c.OTelServiceVersion,
		Insecure:       c.OTelInsecure,
		SampleRatio:    c.OTelSampleRatio,
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Flow:          loadFlowConfig(),
		Search:        loadSearchConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("FLOWSEARCH_HOST", "0.0.0.0"),
		Port:            getEnv("FLOWSEARCH_PORT", "8080"),
		ReadTimeout:     getEnvDuration("FLOWSEARCH_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("FLOWSEARCH_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("FLOWSEARCH_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("FLOWSEARCH_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("FLOWSEARCH_HEALTH_PORT", "9090"),
	}
}

// loadFlowConfig loads flow file configuration from environment
func loadFlowConfig() FlowConfig {
	return FlowConfig{
		Path:          getEnv("FLOWSEARCH_FLOW_FILE", "flow.yaml"),
		Watch:         getEnvBool("FLOWSEARCH_WATCH_FLOW", true),
		WatchDebounce: getEnvDuration("FLOWSEARCH_WATCH_DEBOUNCE", 250*time.Millisecond),

		ReloadSchedule: getEnv("FLOWSEARCH_RELOAD_SCHEDULE", ""),
	}
}

// loadSearchConfig loads search configuration from environment
func loadSearchConfig() orchestrator.Config {
	cfg := orchestrator.DefaultConfig()

	if workers := getEnvInt("FLOWSEARCH_SEARCH_WORKERS", 0); workers > 0 {
		cfg.MaxWorkers = workers
	}
	cfg.FailOnUnsupported = getEnvBool("FLOWSEARCH_FAIL_ON_UNSUPPORTED", cfg.FailOnUnsupported)
	cfg.CacheEnabled = getEnvBool("FLOWSEARCH_CACHE_ENABLED", cfg.CacheEnabled)
	if size := getEnvInt("FLOWSEARCH_CACHE_SIZE", 0); size > 0 {
		cfg.CacheSize = size
	}
	cfg.CacheTTL = getEnvDuration("FLOWSEARCH_CACHE_TTL", cfg.CacheTTL)

	return *cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           strings.ToLower(getEnv("FLOWSEARCH_LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("FLOWSEARCH_LOG_FORMAT", observability.FormatText)),
		MetricsEnabled:     getEnvBool("FLOWSEARCH_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("FLOWSEARCH_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("FLOWSEARCH_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("FLOWSEARCH_OTEL_SERVICE_NAME", "flowsearch"),
		OTelServiceVersion: getEnv("FLOWSEARCH_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("FLOWSEARCH_OTEL_INSECURE", true),
		OTelSampleRatio:    getEnvFloat("FLOWSEARCH_OTEL_SAMPLE_RATIO", 1),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.Flow.Path == "" {
		return fmt.Errorf("flow file is required")
	}
	if c.Flow.Watch && c.Flow.WatchDebounce <= 0 {
		return fmt.Errorf("watch debounce must be positive when watching the flow file")
	}
	if c.Flow.ReloadSchedule != "" {
		if err := flow.ValidateSchedule(c.Flow.ReloadSchedule); err != nil {
			return err
		}
	}

	if err := c.Search.Validate(); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.Observability.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Observability.LogLevel)
	}
	switch c.Observability.LogFormat {
	case observability.FormatJSON, observability.FormatText:
	default:
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Observability.LogFormat)
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns a float environment variable or a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
