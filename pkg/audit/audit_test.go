package audit

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestAuditLogger_LogFillsDefaults(t *testing.T) {
	logger := NewAuditLogger(10)

	event := &Event{Action: ActionCreate, ResourceType: ResourceElement, ResourceID: "1", Status: StatusSuccess}
	if err := logger.Log(event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	if event.ID == "" {
		t.Error("ID should be generated")
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if logger.GetEventCount() != 1 {
		t.Errorf("GetEventCount() = %d, want 1", logger.GetEventCount())
	}
}

func TestAuditLogger_LogNil(t *testing.T) {
	if err := NewAuditLogger(1).Log(nil); err == nil {
		t.Error("expected error for nil event")
	}
}

func TestAuditLogger_CircularBuffer(t *testing.T) {
	logger := NewAuditLogger(3)

	for i := 1; i <= 5; i++ {
		logger.Log(NewEvent(ActionCreate, ResourceElement, fmt.Sprint(i)))
	}

	if logger.GetEventCount() != 3 {
		t.Fatalf("GetEventCount() = %d, want 3", logger.GetEventCount())
	}

	events := logger.GetEvents(nil)
	got := []string{events[0].ResourceID, events[1].ResourceID, events[2].ResourceID}
	if strings.Join(got, ",") != "3,4,5" {
		t.Errorf("GetEvents order = %v, want [3 4 5]", got)
	}

	recent := logger.GetRecentEvents(2)
	if len(recent) != 2 || recent[0].ResourceID != "5" || recent[1].ResourceID != "4" {
		t.Errorf("GetRecentEvents(2) returned unexpected events")
	}
}

func TestAuditLogger_GetRecentEventsBounds(t *testing.T) {
	logger := NewAuditLogger(5)
	logger.Log(NewEvent(ActionRun, ResourceSimulation, "r1"))

	if n := len(logger.GetRecentEvents(50)); n != 1 {
		t.Errorf("GetRecentEvents(50) returned %d events, want 1", n)
	}
	if n := len(logger.GetRecentEvents(0)); n != 1 {
		t.Errorf("GetRecentEvents(0) should return all, got %d", n)
	}
}

func TestAuditLogger_Filter(t *testing.T) {
	logger := NewAuditLogger(20)
	past := time.Now().Add(-time.Hour)

	old := NewEvent(ActionCreate, ResourceElement, "1")
	old.Timestamp = past
	logger.Log(old)
	logger.Log(NewEvent(ActionDelete, ResourceElement, "1"))
	logger.Log(NewEvent(ActionCreate, ResourceNode, "7"))
	logger.Log(NewFailedEvent(ActionDelete, ResourceElement, "99", errors.New("not found")))
	logger.Log(NewEvent(ActionRun, ResourceSimulation, "01HZX"))

	since := time.Now().Add(-time.Minute)

	tests := []struct {
		name   string
		filter *Filter
		want   int
	}{
		{"no filter", nil, 5},
		{"by action", &Filter{Action: ActionDelete}, 2},
		{"by resource", &Filter{ResourceType: ResourceElement}, 3},
		{"by resource id", &Filter{ResourceType: ResourceElement, ResourceID: "1"}, 2},
		{"failures", &Filter{Status: StatusFailure}, 1},
		{"since", &Filter{Since: &since}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(logger.GetEvents(tt.filter)); got != tt.want {
				t.Errorf("GetEvents() returned %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestNewFailedEvent(t *testing.T) {
	e := NewFailedEvent(ActionDelete, ResourceElement, "4", errors.New("element 4: not found"))
	if e.Status != StatusFailure || e.ErrorMessage != "element 4: not found" {
		t.Errorf("unexpected failed event: %+v", e)
	}
	if !strings.Contains(e.String(), "delete element 4") {
		t.Errorf("String() = %q", e.String())
	}
}

func TestAuditLogger_Clear(t *testing.T) {
	logger := NewAuditLogger(3)
	logger.Log(NewEvent(ActionCreate, ResourceDam, "1"))
	logger.Clear()

	if logger.GetEventCount() != 0 || len(logger.GetEvents(nil)) != 0 {
		t.Error("Clear should remove all events")
	}
}

func TestAuditLogger_Concurrent(t *testing.T) {
	logger := NewAuditLogger(1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.Log(NewEvent(ActionCreate, ResourceElement, fmt.Sprintf("%d-%d", i, j)))
				logger.GetRecentEvents(5)
			}
		}(i)
	}
	wg.Wait()

	if logger.GetEventCount() != 500 {
		t.Errorf("GetEventCount() = %d, want 500", logger.GetEventCount())
	}
}
