// Command hydronet-server serves the hydraulic network API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/hydronet/pkg/api"
	"github.com/dd0wney/hydronet/pkg/audit"
	"github.com/dd0wney/hydronet/pkg/config"
	"github.com/dd0wney/hydronet/pkg/health"
	"github.com/dd0wney/hydronet/pkg/logging"
	"github.com/dd0wney/hydronet/pkg/metrics"
	"github.com/dd0wney/hydronet/pkg/simulation"
	"github.com/dd0wney/hydronet/pkg/storage"
	"github.com/dd0wney/hydronet/pkg/tracing"
)

const metricsRefreshInterval = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "hydronet-server: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig parses flags, reads the config file and applies environment overrides
func loadConfig(args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("hydronet-server", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML or TOML config file")
	port := fs.Int("port", 0, "HTTP port (overrides config and PORT)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStore connects to PostgreSQL when a database URL is configured and
// falls back to the in-memory store otherwise.
func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (storage.Store, string, error) {
	if cfg.Database.URL == "" {
		logger.Warn("no database configured, using in-memory store; data is lost on restart")
		return storage.NewMemoryStore(), "memory", nil
	}

	store, err := storage.NewPGStore(ctx, cfg.Database.URL, storage.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, "", err
	}
	return store, "postgres", nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger := logging.New(stdout, cfg.Logging.Level)
	logging.SetDefaultLogger(logger)
	logger.Info("hydronet server starting", logging.String("addr", cfg.Addr()))

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise tracing: %w", err)
	}
	defer tracing.ShutdownWithTimeout(context.Background(), shutdownTracing, logger)

	registry := metrics.DefaultRegistry()

	backend, backendName, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer backend.Close()
	store := storage.Instrument(backend, registry)

	if cfg.Seed {
		timer := logging.StartTimer(logger, "seed complete", logging.Operation("seed"))
		report, err := storage.Seed(ctx, store)
		if err != nil {
			timer.EndError(err)
			return fmt.Errorf("failed to seed store: %w", err)
		}
		timer.End(
			logging.Int("dams", report.Dams),
			logging.Int("nodes", report.Nodes),
			logging.Int("elements", report.Elements),
		)
	}

	checker := health.NewHealthChecker()
	checker.RegisterCheck("store", health.StoreCheck(backendName, store.Ping))
	checker.RegisterCheck("memory", health.MemoryCheck(health.RuntimeMemoryUsage))
	checker.RegisterCheck("goroutines", health.GoroutineCheck(10000))
	checker.RegisterReadinessCheck("store", health.StoreCheck(backendName, store.Ping))
	checker.RegisterLivenessCheck("ping", health.SimpleCheck("ping"))

	sim := simulation.NewService(
		store,
		simulation.NewSyntheticRunner(cfg.Simulation.Seed),
		simulation.NewHistory(cfg.Simulation.HistorySize),
		registry,
		logger,
	)

	server, err := api.NewServer(cfg, api.Dependencies{
		Store:      store,
		Simulation: sim,
		Audit:      audit.NewAuditLogger(audit.DefaultBufferSize),
		Health:     checker,
		Metrics:    registry,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	go refreshMetrics(ctx, server)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("graceful shutdown failed", logging.Error(err))
		return err
	}
	if err := <-errCh; err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}

// refreshMetrics keeps gauges current until ctx is cancelled
func refreshMetrics(ctx context.Context, server *api.Server) {
	server.RefreshMetrics(ctx)

	ticker := time.NewTicker(metricsRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			server.RefreshMetrics(ctx)
		}
	}
}
