package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initHTTPMetrics()
	r.initStorageMetrics()
	r.initDeckMetrics()
	r.initSimulationMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordResponseSize records the size of a response body
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// RecordStorageOperation records a storage operation
func (r *Registry) RecordStorageOperation(operation, status string, duration time.Duration) {
	r.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
	r.StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetElementCounts replaces the per-type element gauges
func (r *Registry) SetElementCounts(byType map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.StorageElementsTotal.Reset()
	for typ, n := range byType {
		r.StorageElementsTotal.WithLabelValues(typ).Set(float64(n))
	}
}

// SetSiteCounts sets the system node and dam gauges
func (r *Registry) SetSiteCounts(nodes, dams int) {
	r.StorageNodesTotal.Set(float64(nodes))
	r.StorageDamsTotal.Set(float64(dams))
}

// SetHistorySize sets the number of runs retained in history
func (r *Registry) SetHistorySize(n int) {
	r.SimulationHistorySize.Set(float64(n))
}

// RecordDeckEncode records one generated input deck
func (r *Registry) RecordDeckEncode(sizeBytes int, duration time.Duration) {
	r.DeckEncodesTotal.Inc()
	r.DeckEncodeDuration.Observe(duration.Seconds())
	r.DeckSizeBytes.Observe(float64(sizeBytes))
}

// RecordSimulationRun records a completed or failed simulation run
func (r *Registry) RecordSimulationRun(status string, points int, duration time.Duration) {
	r.SimulationRunsTotal.WithLabelValues(status).Inc()
	r.SimulationRunDuration.Observe(duration.Seconds())
	r.SimulationPointsTotal.Add(float64(points))
}

// UpdateSystemMetrics samples uptime and Go runtime statistics
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
