// Package middleware provides the HTTP middleware chain for the hydronet API server.
//
// Files are split by concern:
//
//   - recovery.go: panic recovery
//   - request_id.go: request ID generation and propagation
//   - logging.go: structured request logging
//   - cors.go: Cross-Origin Resource Sharing
//   - security_headers.go: response hardening headers
//   - body_limit.go: request body size limit
//   - metrics.go: Prometheus request metrics with bounded route labels
//   - tracing.go: OpenTelemetry server spans
//
// Every middleware has the shape func(http.Handler) http.Handler, so the chain
// can be assembled with Chain:
//
//	handler := middleware.Chain(mux,
//		middleware.PanicRecovery(logger),
//		middleware.RequestID(),
//		middleware.Tracing("hydronet", routes),
//		middleware.Logging(logger),
//	)
package middleware

import "net/http"

// Middleware wraps an http.Handler
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so that the first one listed is the outermost
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			h = middlewares[i](h)
		}
	}
	return h
}
