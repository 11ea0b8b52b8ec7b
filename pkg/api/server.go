// Package api serves the hydronet HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dd0wney/hydronet/pkg/audit"
	"github.com/dd0wney/hydronet/pkg/config"
	"github.com/dd0wney/hydronet/pkg/graphql"
	"github.com/dd0wney/hydronet/pkg/health"
	"github.com/dd0wney/hydronet/pkg/logging"
	"github.com/dd0wney/hydronet/pkg/metrics"
	"github.com/dd0wney/hydronet/pkg/simulation"
	"github.com/dd0wney/hydronet/pkg/storage"
)

// Dependencies are the collaborators a Server is built from. Only Store is
// required; the rest are created with defaults when nil.
type Dependencies struct {
	Store      storage.Store
	Simulation *simulation.Service
	Audit      *audit.AuditLogger
	Health     *health.HealthChecker
	Metrics    *metrics.Registry
	Logger     logging.Logger
}

// Server represents the HTTP API server
type Server struct {
	cfg            *config.Config
	store          storage.Store
	simulation     *simulation.Service
	audit          *audit.AuditLogger
	healthChecker  *health.HealthChecker
	metrics        *metrics.Registry
	graphqlHandler *graphql.GraphQLHandler
	logger         logging.Logger
	startTime      time.Time

	mu         sync.Mutex
	httpServer *http.Server
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Store == nil {
		return nil, errors.New("api: store is required")
	}

	s := &Server{
		cfg:           cfg,
		store:         deps.Store,
		simulation:    deps.Simulation,
		audit:         deps.Audit,
		healthChecker: deps.Health,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		startTime:     time.Now(),
	}

	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	s.logger = s.logger.With(logging.Component("api"))
	if s.metrics == nil {
		s.metrics = metrics.NewRegistry()
	}
	if s.audit == nil {
		s.audit = audit.NewAuditLogger(audit.DefaultBufferSize)
	}
	if s.simulation == nil {
		s.simulation = simulation.NewService(
			s.store,
			simulation.NewSyntheticRunner(cfg.Simulation.Seed),
			simulation.NewHistory(cfg.Simulation.HistorySize),
			s.metrics,
			s.logger,
		)
	}
	if s.healthChecker == nil {
		s.healthChecker = health.NewHealthChecker()
		s.healthChecker.RegisterReadinessCheck("store", health.StoreCheck(storeBackend(s.store), s.store.Ping))
		s.healthChecker.RegisterLivenessCheck("ping", health.SimpleCheck("ping"))
	}

	schema, err := graphql.GenerateSchema(s.store, func(ctx context.Context) (string, error) {
		deck, _, err := s.simulation.Deck(ctx)
		return deck, err
	})
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	s.graphqlHandler = graphql.NewGraphQLHandler(schema)

	return s, nil
}

// Start listens on the configured address and serves until Shutdown.
// A clean shutdown returns nil.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout.Std(),
		WriteTimeout: s.cfg.Server.WriteTimeout.Std(),
		IdleTimeout:  s.cfg.Server.IdleTimeout.Std(),
	}

	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	s.logger.Info("hydronet API server listening", logging.String("addr", ln.Addr().String()))

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	s.logger.Info("hydronet API server shutting down")
	return srv.Shutdown(ctx)
}

// Simulation returns the simulation service the server runs against
func (s *Server) Simulation() *simulation.Service {
	return s.simulation
}

// RefreshMetrics samples model counts, history size and runtime statistics
// into the metrics registry.
func (s *Server) RefreshMetrics(ctx context.Context) {
	s.metrics.UpdateSystemMetrics(s.startTime)
	s.metrics.SetHistorySize(s.simulation.History().Len())
	s.refreshModelMetrics(ctx)
}

func (s *Server) refreshModelMetrics(ctx context.Context) {
	summary, err := s.summarize(ctx)
	if err != nil {
		s.logger.Warn("failed to refresh model metrics", logging.Error(err))
		return
	}
	s.metrics.SetElementCounts(summary.ElementsByType)
	s.metrics.SetSiteCounts(summary.NodeCount, summary.DamCount)
}

// storeBackend names the store implementation for health details
func storeBackend(store storage.Store) string {
	if inst, ok := store.(*storage.InstrumentedStore); ok {
		store = inst.Unwrap()
	}
	switch store.(type) {
	case *storage.PGStore:
		return "postgres"
	case *storage.MemoryStore:
		return "memory"
	default:
		return fmt.Sprintf("%T", store)
	}
}
