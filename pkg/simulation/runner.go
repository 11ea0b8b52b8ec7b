// Package simulation executes solver runs against generated input decks and
// keeps a bounded history of them.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Result statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SyntheticMessage accompanies every SyntheticRunner result
const SyntheticMessage = "synthetic results: placeholder solver, not a transient-flow solution"

// ErrInvalidDuration is returned for negative durations
var ErrInvalidDuration = errors.New("invalid simulation duration")

// Point is one sample of the simulated time series
type Point struct {
	Time float64 `json:"time"`
	Head float64 `json:"head"`
	Flow float64 `json:"flow"`
}

// Result is the outcome of a solver run
type Result struct {
	Status  string  `json:"status"`
	Points  []Point `json:"results"`
	Message string  `json:"message,omitempty"`
}

// Runner executes a solver against an input deck for duration seconds
type Runner interface {
	Run(ctx context.Context, deck string, duration int) (*Result, error)
}

// SyntheticRunner produces a smooth head/flow series with uniform noise.
// It ignores the deck; it stands in until a real solver is attached.
type SyntheticRunner struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewSyntheticRunner creates a runner whose noise is drawn from seed.
// A zero seed uses the current time, so output differs run to run.
func NewSyntheticRunner(seed uint64) *SyntheticRunner {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SyntheticRunner{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Run samples t = 0..duration inclusive, one point per second:
//
//	head = 100 + 10 sin(t/2) - 2 u1
//	flow =  50 +  5 cos(t/2) +   u2
//
// with u1, u2 uniform in [0,1).
func (r *SyntheticRunner) Run(ctx context.Context, deck string, duration int) (*Result, error) {
	if duration < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, duration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]Point, 0, duration+1)
	for t := 0; t <= duration; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x := float64(t)
		points = append(points, Point{
			Time: x,
			Head: 100 + math.Sin(x/2)*10 - r.rng.Float64()*2,
			Flow: 50 + math.Cos(x/2)*5 + r.rng.Float64(),
		})
	}

	return &Result{
		Status:  StatusSuccess,
		Points:  points,
		Message: SyntheticMessage,
	}, nil
}
