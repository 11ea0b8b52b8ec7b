package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.StorageElementsTotal == nil {
		t.Error("StorageElementsTotal not initialized")
	}
	if r.DeckEncodesTotal == nil {
		t.Error("DeckEncodesTotal not initialized")
	}
	if r.SimulationRunsTotal == nil {
		t.Error("SimulationRunsTotal not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/api/elements", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("POST", "/api/elements", "201", 200*time.Millisecond)
	r.RecordHTTPRequest("GET", "/api/elements", "200", 50*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/api/elements", "200")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 2 {
		t.Errorf("Counter value = %v, want 2", got)
	}
}

func TestInFlight(t *testing.T) {
	r := NewRegistry()
	r.IncHTTPRequestsInFlight()
	r.IncHTTPRequestsInFlight()
	r.DecHTTPRequestsInFlight()

	if got := gaugeValue(t, r.HTTPRequestsInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
}

func TestRecordStorageOperation(t *testing.T) {
	r := NewRegistry()

	r.RecordStorageOperation("create_element", "success", 10*time.Millisecond)
	r.RecordStorageOperation("create_element", "success", 20*time.Millisecond)
	r.RecordStorageOperation("create_element", "error", 5*time.Millisecond)

	success, _ := r.StorageOperationsTotal.GetMetricWithLabelValues("create_element", "success")
	if got := counterValue(t, success); got != 2 {
		t.Errorf("Success counter = %v, want 2", got)
	}

	failed, _ := r.StorageOperationsTotal.GetMetricWithLabelValues("create_element", "error")
	if got := counterValue(t, failed); got != 1 {
		t.Errorf("Error counter = %v, want 1", got)
	}
}

func TestSetElementCounts(t *testing.T) {
	r := NewRegistry()

	r.SetElementCounts(map[string]int{"CONDUIT": 3, "VALVE": 1})
	r.SetElementCounts(map[string]int{"CONDUIT": 2})

	conduits, _ := r.StorageElementsTotal.GetMetricWithLabelValues("CONDUIT")
	if got := gaugeValue(t, conduits); got != 2 {
		t.Errorf("CONDUIT gauge = %v, want 2", got)
	}

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "hydronet_storage_elements_total" {
			continue
		}
		if len(mf.GetMetric()) != 1 {
			t.Errorf("stale type labels should be reset, got %d series", len(mf.GetMetric()))
		}
	}
}

func TestSetSiteCountsAndHistory(t *testing.T) {
	r := NewRegistry()
	r.SetSiteCounts(2, 3)
	r.SetHistorySize(7)

	if got := gaugeValue(t, r.StorageNodesTotal); got != 2 {
		t.Errorf("nodes gauge = %v, want 2", got)
	}
	if got := gaugeValue(t, r.StorageDamsTotal); got != 3 {
		t.Errorf("dams gauge = %v, want 3", got)
	}
	if got := gaugeValue(t, r.SimulationHistorySize); got != 7 {
		t.Errorf("history gauge = %v, want 7", got)
	}
}

func TestRecordDeckEncode(t *testing.T) {
	r := NewRegistry()
	r.RecordDeckEncode(512, time.Millisecond)
	r.RecordDeckEncode(1024, time.Millisecond)

	if got := counterValue(t, r.DeckEncodesTotal); got != 2 {
		t.Errorf("deck encodes = %v, want 2", got)
	}
}

func TestRecordSimulationRun(t *testing.T) {
	r := NewRegistry()
	r.RecordSimulationRun("success", 21, 2*time.Millisecond)
	r.RecordSimulationRun("error", 0, time.Millisecond)

	ok, _ := r.SimulationRunsTotal.GetMetricWithLabelValues("success")
	if got := counterValue(t, ok); got != 1 {
		t.Errorf("success runs = %v, want 1", got)
	}
	if got := counterValue(t, r.SimulationPointsTotal); got != 21 {
		t.Errorf("points = %v, want 21", got)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	if got := gaugeValue(t, r.UptimeSeconds); got < 59 {
		t.Errorf("uptime = %v, want >= 59", got)
	}
	if got := gaugeValue(t, r.GoRoutines); got < 1 {
		t.Errorf("goroutines = %v, want >= 1", got)
	}
}
