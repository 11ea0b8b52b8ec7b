package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/hydronet/pkg/api/middleware"
)

// routeTemplates lists every path routes() serves, in RouteLabel form
var routeTemplates = []string{
	"/health",
	"/health/ready",
	"/health/live",
	"/metrics",
	"/api/elements",
	"/api/elements/:id",
	"/api/elements/deck",
	"/api/nodes",
	"/api/dams",
	"/api/dashboard",
	"/api/simulation/run",
	"/api/simulation/runs",
	"/api/simulation/runs/:id/deck",
	"/api/audit/events",
	"/graphql",
}

// routes registers every endpoint on a fresh mux
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("/health", s.healthChecker.HTTPHandler())
	mux.HandleFunc("/health/ready", s.healthChecker.ReadinessHandler())
	mux.HandleFunc("/health/live", s.healthChecker.LivenessHandler())
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	// Network model
	mux.HandleFunc("/api/elements", s.handleElements)
	mux.HandleFunc("/api/elements/", s.handleElement) // /api/elements/{id}, /api/elements/deck
	mux.HandleFunc("/api/nodes", s.handleNodes)
	mux.HandleFunc("/api/dams", s.handleDams)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)

	// Simulation
	mux.HandleFunc("/api/simulation/run", s.handleSimulationRun)
	mux.HandleFunc("/api/simulation/runs", s.handleSimulationRuns)
	mux.HandleFunc("/api/simulation/runs/", s.handleSimulationRunDeck) // /api/simulation/runs/{id}/deck

	// Audit trail
	mux.HandleFunc("/api/audit/events", s.handleAuditEvents)

	// GraphQL endpoint
	mux.Handle("/graphql", s.graphqlHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusNotFound, "Not found")
	})

	return mux
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	cors := &middleware.CORSConfig{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowCredentials: s.cfg.CORS.AllowCredentials,
		MaxAge:           86400,
	}
	routeSet := middleware.NewRouteSet(routeTemplates...)

	return middleware.Chain(s.routes(),
		middleware.PanicRecovery(s.logger),
		middleware.RequestID(),
		middleware.Tracing(s.cfg.Tracing.ServiceName, routeSet),
		middleware.Logging(s.logger),
		middleware.Metrics(s.metrics, routeSet),
		middleware.SecurityHeaders(nil),
		middleware.CORS(cors),
		middleware.BodySizeLimit(s.cfg.Server.MaxBodyBytes),
	)
}
