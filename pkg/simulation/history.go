package simulation

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/oklog/ulid/v2"
)

// DefaultHistorySize is used when NewHistory gets a non-positive capacity
const DefaultHistorySize = 100

// ErrRunNotFound is returned for unknown or evicted run ids
var ErrRunNotFound = errors.New("simulation run not found")

// RunSummary describes a recorded run without its deck
type RunSummary struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"startedAt"`
	Duration     int       `json:"duration"`
	ElementCount int       `json:"elementCount"`
	PointCount   int       `json:"pointCount"`
	Status       string    `json:"status"`
	DeckBytes    int       `json:"deckBytes"`
}

type run struct {
	summary RunSummary
	deck    []byte // snappy block
}

// History keeps the most recent runs in a ring buffer. Each entry holds the
// compressed deck that was submitted so it can be downloaded later.
type History struct {
	runs     []*run
	capacity int
	next     int
	count    int
	entropy  *ulid.MonotonicEntropy
	mu       sync.Mutex
}

// NewHistory creates a history retaining up to capacity runs
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		runs:     make([]*run, capacity),
		capacity: capacity,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Record stores a run and returns its summary. The oldest run is evicted when full.
func (h *History) Record(startedAt time.Time, duration, elementCount int, result *Result, deck string) (RunSummary, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(startedAt), h.entropy)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to allocate run id: %w", err)
	}

	summary := RunSummary{
		ID:           id.String(),
		StartedAt:    startedAt.UTC(),
		Duration:     duration,
		ElementCount: elementCount,
		Status:       StatusError,
		DeckBytes:    len(deck),
	}
	if result != nil {
		summary.Status = result.Status
		summary.PointCount = len(result.Points)
	}

	h.runs[h.next] = &run{
		summary: summary,
		deck:    snappy.Encode(nil, []byte(deck)),
	}
	h.next = (h.next + 1) % h.capacity
	if h.count < h.capacity {
		h.count++
	}

	return summary, nil
}

// List returns retained runs, newest first
func (h *History) List() []RunSummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]RunSummary, 0, h.count)
	for i := 1; i <= h.count; i++ {
		idx := (h.next - i + h.capacity) % h.capacity
		out = append(out, h.runs[idx].summary)
	}
	return out
}

// Deck returns the decompressed deck submitted with run id
func (h *History) Deck(id string) (string, error) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	key := parsed.String()

	h.mu.Lock()
	var compressed []byte
	found := false
	for i := 0; i < h.count; i++ {
		if r := h.runs[i]; r.summary.ID == key {
			compressed = r.deck
			found = true
			break
		}
	}
	h.mu.Unlock()

	if !found {
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	deck, err := snappy.Decode(nil, compressed)
	if err != nil {
		return "", fmt.Errorf("failed to decompress deck for run %s: %w", id, err)
	}
	return string(deck), nil
}

// Len returns the number of retained runs
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}
