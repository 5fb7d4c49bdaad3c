// Package api serves flow search over HTTP.
//
// Public routes:
//
//	GET /flow                          loaded flow summary
//	GET /flow/search-results?q=        whole-flow search, results grouped by kind
//	GET /flow/components/{id}/matches?q=
//	GET /flow/kinds                    kinds with a registered matcher
//
// Probe routes, on the health port:
//
//	GET /healthz
//	GET /readyz
//	GET /metrics
//
// Invalid queries answer 400, a missing flow 503 and a component kind without
// a matcher 500. Error bodies are {"error": "...", "requestId": "..."}.
package api
