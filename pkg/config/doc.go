// Package config loads flowsearch configuration from environment variables.
//
// Server settings:
//
//	FLOWSEARCH_HOST="0.0.0.0"
//	FLOWSEARCH_PORT="8080"
//	FLOWSEARCH_HEALTH_PORT="9090"
//	FLOWSEARCH_READ_TIMEOUT="15s"
//	FLOWSEARCH_SHUTDOWN_TIMEOUT="30s"
//
// Flow settings:
//
//	FLOWSEARCH_FLOW_FILE="/etc/flowsearch/flow.yaml"
//	FLOWSEARCH_WATCH_FLOW="true"
//	FLOWSEARCH_WATCH_DEBOUNCE="250ms"
//
// Search settings:
//
//	FLOWSEARCH_SEARCH_WORKERS="8"
//	FLOWSEARCH_FAIL_ON_UNSUPPORTED="true"
//	FLOWSEARCH_CACHE_ENABLED="true"
//	FLOWSEARCH_CACHE_SIZE="256"
//	FLOWSEARCH_CACHE_TTL="5m"
//
// Observability settings:
//
//	FLOWSEARCH_LOG_LEVEL="info"  # debug, info, warn, error
//	FLOWSEARCH_LOG_FORMAT="text" # text, json
//	FLOWSEARCH_METRICS_ENABLED="true"
//	FLOWSEARCH_OTEL_ENABLED="true"
//	FLOWSEARCH_OTEL_ENDPOINT="otel-collector:4317"
//	FLOWSEARCH_OTEL_SAMPLE_RATIO="0.1"
//
// Unparseable numbers and durations fall back to their defaults.
package config
