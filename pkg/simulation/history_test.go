package simulation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func sampleResult(n int) *Result {
	return &Result{Status: StatusSuccess, Points: make([]Point, n)}
}

func TestHistory_RecordAndList(t *testing.T) {
	h := NewHistory(10)
	now := time.Now()

	first, err := h.Record(now, 20, 2, sampleResult(21), "deck one\n")
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	second, err := h.Record(now.Add(time.Second), 5, 3, sampleResult(6), "deck two\n")
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if _, err := ulid.ParseStrict(first.ID); err != nil {
		t.Errorf("run id %q is not a ULID: %v", first.ID, err)
	}
	if first.PointCount != 21 || first.ElementCount != 2 || first.DeckBytes != len("deck one\n") {
		t.Errorf("unexpected summary: %+v", first)
	}

	list := h.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Error("List should return newest first")
	}
}

func TestHistory_IDsAreSortable(t *testing.T) {
	h := NewHistory(5)
	now := time.Now()

	a, _ := h.Record(now, 1, 0, sampleResult(2), "")
	b, _ := h.Record(now, 1, 0, sampleResult(2), "")
	if a.ID >= b.ID {
		t.Errorf("ids in the same millisecond should increase: %s then %s", a.ID, b.ID)
	}
}

func TestHistory_DeckRoundTrip(t *testing.T) {
	h := NewHistory(3)
	deck := strings.Repeat("    EL C1 LINK 1 2\n", 200)

	s, _ := h.Record(time.Now(), 20, 1, sampleResult(21), deck)

	got, err := h.Deck(s.ID)
	if err != nil {
		t.Fatalf("Deck failed: %v", err)
	}
	if got != deck {
		t.Error("decompressed deck differs from the submitted one")
	}

	got, err = h.Deck(strings.ToLower(s.ID))
	if err != nil || got != deck {
		t.Errorf("lookup should be case-insensitive: %v", err)
	}
}

func TestHistory_Eviction(t *testing.T) {
	h := NewHistory(2)
	now := time.Now()

	oldest, _ := h.Record(now, 1, 0, sampleResult(2), "a")
	h.Record(now, 1, 0, sampleResult(2), "b")
	newest, _ := h.Record(now, 1, 0, sampleResult(2), "c")

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	if _, err := h.Deck(oldest.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("evicted run should be gone, got %v", err)
	}
	if deck, err := h.Deck(newest.ID); err != nil || deck != "c" {
		t.Errorf("newest deck = %q, %v", deck, err)
	}
	if h.List()[0].ID != newest.ID {
		t.Error("newest run should be listed first after wrap-around")
	}
}

func TestHistory_UnknownID(t *testing.T) {
	h := NewHistory(2)

	for _, id := range []string{"not-a-ulid", ulid.Make().String()} {
		if _, err := h.Deck(id); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("Deck(%q) error = %v, want ErrRunNotFound", id, err)
		}
	}
}

func TestHistory_FailedRun(t *testing.T) {
	h := NewHistory(2)
	s, _ := h.Record(time.Now(), 5, 0, nil, "")
	if s.Status != StatusError || s.PointCount != 0 {
		t.Errorf("nil result should be recorded as an error: %+v", s)
	}
}

func TestNewHistory_DefaultCapacity(t *testing.T) {
	h := NewHistory(0)
	if h.capacity != DefaultHistorySize {
		t.Errorf("capacity = %d, want %d", h.capacity, DefaultHistorySize)
	}
}
