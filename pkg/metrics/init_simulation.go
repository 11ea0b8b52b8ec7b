package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDeckMetrics() {
	r.DeckEncodesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "hydronet_deck_encodes_total",
			Help: "Number of solver input decks generated",
		},
	)

	r.DeckEncodeDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hydronet_deck_encode_duration_seconds",
			Help:    "Time spent encoding an input deck",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	r.DeckSizeBytes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hydronet_deck_size_bytes",
			Help:    "Size of generated input decks in bytes",
			Buckets: prometheus.ExponentialBuckets(128, 4, 8),
		},
	)
}

func (r *Registry) initSimulationMetrics() {
	r.SimulationRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydronet_simulation_runs_total",
			Help: "Number of simulation runs by outcome",
		},
		[]string{"status"},
	)

	r.SimulationRunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hydronet_simulation_run_duration_seconds",
			Help:    "Wall-clock time of a simulation run",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.SimulationPointsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "hydronet_simulation_points_total",
			Help: "Number of time-series points produced",
		},
	)

	r.SimulationHistorySize = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hydronet_simulation_history_size",
			Help: "Runs currently retained in history",
		},
	)
}
