package health

import (
	"encoding/json"
	"net/http"
)

func writeResponse(w http.ResponseWriter, response Response, strict bool) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	status := http.StatusOK
	switch {
	case response.Status == StatusUnhealthy:
		status = http.StatusServiceUnavailable
	case strict && response.Status != StatusHealthy:
		status = http.StatusServiceUnavailable
	}
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(response)
}

// HTTPHandler serves all health checks; degraded still answers 200
func (hc *HealthChecker) HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, hc.Check(r.Context()), false)
	}
}

// ReadinessHandler serves readiness checks; anything but healthy answers 503
func (hc *HealthChecker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, hc.CheckReadiness(r.Context()), true)
	}
}

// LivenessHandler serves liveness checks; anything but healthy answers 503
func (hc *HealthChecker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, hc.CheckLiveness(r.Context()), true)
	}
}
