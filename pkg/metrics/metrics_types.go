// Package metrics exposes the Prometheus instruments for the API, the store,
// deck generation and simulation runs.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Storage Metrics
	StorageElementsTotal     *prometheus.GaugeVec
	StorageNodesTotal        prometheus.Gauge
	StorageDamsTotal         prometheus.Gauge
	StorageOperationsTotal   *prometheus.CounterVec
	StorageOperationDuration *prometheus.HistogramVec

	// Deck Metrics
	DeckEncodesTotal   prometheus.Counter
	DeckEncodeDuration prometheus.Histogram
	DeckSizeBytes      prometheus.Histogram

	// Simulation Metrics
	SimulationRunsTotal   *prometheus.CounterVec
	SimulationRunDuration prometheus.Histogram
	SimulationPointsTotal prometheus.Counter
	SimulationHistorySize prometheus.Gauge

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}
