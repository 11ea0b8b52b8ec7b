package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewHealthChecker(t *testing.T) {
	hc := NewHealthChecker()

	if hc.checks == nil || hc.readyChecks == nil || hc.liveChecks == nil {
		t.Fatal("check maps not initialized")
	}
	if hc.timeout != DefaultCheckTimeout {
		t.Errorf("timeout = %v, want %v", hc.timeout, DefaultCheckTimeout)
	}
}

func TestCheckSetsSeparation(t *testing.T) {
	hc := NewHealthChecker()

	var general, ready, live int
	hc.RegisterCheck("general", func(ctx context.Context) Check { general++; return Check{Status: StatusHealthy} })
	hc.RegisterReadinessCheck("ready", func(ctx context.Context) Check { ready++; return Check{Status: StatusHealthy} })
	hc.RegisterLivenessCheck("live", func(ctx context.Context) Check { live++; return Check{Status: StatusHealthy} })

	ctx := context.Background()
	hc.Check(ctx)
	hc.CheckReadiness(ctx)
	hc.CheckReadiness(ctx)
	hc.CheckLiveness(ctx)

	if general != 1 || ready != 2 || live != 1 {
		t.Errorf("calls general=%d ready=%d live=%d, want 1/2/1", general, ready, live)
	}
}

func TestWorstStatusWins(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy beats degraded", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker()
			for i, s := range tt.statuses {
				s := s
				hc.RegisterCheck(string(rune('a'+i)), func(ctx context.Context) Check { return Check{Status: s} })
			}
			if got := hc.Check(context.Background()).Status; got != tt.want {
				t.Errorf("Status = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCheckFillsNameAndTiming(t *testing.T) {
	hc := NewHealthChecker()
	hc.RegisterCheck("anon", func(ctx context.Context) Check { return Check{Status: StatusHealthy} })

	resp := hc.Check(context.Background())
	c := resp.Checks["anon"]
	if c.Name != "anon" {
		t.Errorf("Name = %q, want anon", c.Name)
	}
	if c.LastChecked.IsZero() {
		t.Error("LastChecked not set")
	}
	if resp.UptimeSeconds < 0 {
		t.Error("uptime should not be negative")
	}
}

func TestCheckContextHasDeadline(t *testing.T) {
	hc := NewHealthChecker()
	hc.SetTimeout(50 * time.Millisecond)

	hc.RegisterCheck("slow", func(ctx context.Context) Check {
		if _, ok := ctx.Deadline(); !ok {
			return Check{Status: StatusUnhealthy, Message: "no deadline"}
		}
		<-ctx.Done()
		return Check{Status: StatusUnhealthy, Message: ctx.Err().Error()}
	})

	start := time.Now()
	resp := hc.Check(context.Background())
	if time.Since(start) > time.Second {
		t.Error("check round should be bounded by the timeout")
	}
	if resp.Checks["slow"].Message != context.DeadlineExceeded.Error() {
		t.Errorf("Message = %q", resp.Checks["slow"].Message)
	}
}

func TestStoreCheck(t *testing.T) {
	ok := StoreCheck("memory", func(ctx context.Context) error { return nil })(context.Background())
	if ok.Status != StatusHealthy || ok.Details["backend"] != "memory" {
		t.Errorf("unexpected healthy check: %+v", ok)
	}

	bad := StoreCheck("postgres", func(ctx context.Context) error { return errors.New("connection refused") })(context.Background())
	if bad.Status != StatusUnhealthy || bad.Message != "connection refused" {
		t.Errorf("unexpected failing check: %+v", bad)
	}
}

func TestMemoryCheck(t *testing.T) {
	tests := []struct {
		alloc, sys uint64
		want       Status
	}{
		{100, 1000, StatusHealthy},
		{950, 1000, StatusDegraded},
		{0, 0, StatusHealthy},
	}

	for _, tt := range tests {
		got := MemoryCheck(func() (uint64, uint64) { return tt.alloc, tt.sys })(context.Background())
		if got.Status != tt.want {
			t.Errorf("MemoryCheck(%d/%d) = %s, want %s", tt.alloc, tt.sys, got.Status, tt.want)
		}
	}

	alloc, sys := RuntimeMemoryUsage()
	if alloc == 0 || sys == 0 {
		t.Error("RuntimeMemoryUsage should report non-zero values")
	}
}

func TestGoroutineCheck(t *testing.T) {
	if GoroutineCheck(1_000_000)(context.Background()).Status != StatusHealthy {
		t.Error("expected healthy under a high limit")
	}
	if GoroutineCheck(1)(context.Background()).Status != StatusDegraded {
		t.Error("expected degraded above limit (test runner has >1 goroutine)")
	}
}

func TestHandlers(t *testing.T) {
	degraded := func(ctx context.Context) Check { return Check{Status: StatusDegraded} }

	hc := NewHealthChecker()
	hc.RegisterCheck("mem", degraded)
	hc.RegisterReadinessCheck("mem", degraded)
	hc.RegisterLivenessCheck("ping", SimpleCheck("ping"))

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
	}{
		{"health tolerates degraded", hc.HTTPHandler(), http.StatusOK},
		{"readiness is strict", hc.ReadinessHandler(), http.StatusServiceUnavailable},
		{"liveness healthy", hc.LivenessHandler(), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var resp Response
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
		})
	}
}

func TestHandlerUnhealthy(t *testing.T) {
	hc := NewHealthChecker()
	hc.RegisterCheck("store", StoreCheck("postgres", func(ctx context.Context) error { return errors.New("down") }))

	rec := httptest.NewRecorder()
	hc.HTTPHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
