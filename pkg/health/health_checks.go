package health

import (
	"context"
	"runtime"
	"time"
)

// SimpleCheck always reports healthy
func SimpleCheck(name string) CheckFunc {
	return func(ctx context.Context) Check {
		return Check{
			Name:        name,
			Status:      StatusHealthy,
			LastChecked: time.Now(),
		}
	}
}

// StoreCheck reports the element store's connectivity. backend names the
// implementation ("memory" or "postgres") in the details.
func StoreCheck(backend string, ping func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) Check {
		check := Check{
			Name:    "store",
			Details: map[string]any{"backend": backend},
		}

		if err := ping(ctx); err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
		} else {
			check.Status = StatusHealthy
			check.Message = "Connected"
		}

		return check
	}
}

// MemoryCheck reports degraded when allocated heap exceeds 90% of memory obtained from the OS
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func(ctx context.Context) Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()
		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		if sys > 0 && float64(alloc)/float64(sys) > 0.9 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}

// RuntimeMemoryUsage reads heap and system bytes from the Go runtime
func RuntimeMemoryUsage() (alloc, sys uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, m.Sys
}

// GoroutineCheck reports degraded above limit goroutines
func GoroutineCheck(limit int) CheckFunc {
	return func(ctx context.Context) Check {
		n := runtime.NumGoroutine()
		check := Check{
			Name:    "goroutines",
			Status:  StatusHealthy,
			Details: map[string]any{"count": n, "limit": limit},
		}
		if limit > 0 && n > limit {
			check.Status = StatusDegraded
			check.Message = "Goroutine count above limit"
		}
		return check
	}
}
