package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/hydronet/pkg/inp"
	"github.com/dd0wney/hydronet/pkg/logging"
	"github.com/dd0wney/hydronet/pkg/network"
)

// ElementLister is the slice of the store the service reads
type ElementLister interface {
	ListElements(ctx context.Context) ([]*network.Element, error)
}

// Recorder receives deck and run observations
type Recorder interface {
	RecordDeckEncode(sizeBytes int, duration time.Duration)
	RecordSimulationRun(status string, points int, duration time.Duration)
}

// Outcome pairs a run result with its history entry
type Outcome struct {
	Result *Result
	Run    RunSummary
}

// Service builds the deck for the current model, hands it to the runner and
// records the run.
type Service struct {
	elements ElementLister
	runner   Runner
	history  *History
	recorder Recorder
	logger   logging.Logger
}

// NewService wires a simulation service. recorder may be nil.
func NewService(elements ElementLister, runner Runner, history *History, recorder Recorder, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if history == nil {
		history = NewHistory(DefaultHistorySize)
	}
	return &Service{
		elements: elements,
		runner:   runner,
		history:  history,
		recorder: recorder,
		logger:   logger.With(logging.Component("simulation")),
	}
}

// History exposes the run history
func (s *Service) History() *History {
	return s.history
}

// Deck encodes the current model and returns it with the element count
func (s *Service) Deck(ctx context.Context) (string, int, error) {
	elements, err := s.elements.ListElements(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to list elements: %w", err)
	}

	start := time.Now()
	deck := inp.Encode(elements)
	if s.recorder != nil {
		s.recorder.RecordDeckEncode(len(deck), time.Since(start))
	}

	return deck, len(elements), nil
}

// Run executes one simulation of duration seconds
func (s *Service) Run(ctx context.Context, duration int) (*Outcome, error) {
	startedAt := time.Now()

	deck, count, err := s.Deck(ctx)
	if err != nil {
		return nil, err
	}

	result, runErr := s.runner.Run(ctx, deck, duration)
	elapsed := time.Since(startedAt)

	status, points := StatusError, 0
	if runErr == nil {
		status, points = result.Status, len(result.Points)
	}
	if s.recorder != nil {
		s.recorder.RecordSimulationRun(status, points, elapsed)
	}

	summary, err := s.history.Record(startedAt, duration, count, result, deck)
	if err != nil {
		return nil, err
	}

	if runErr != nil {
		s.logger.Error("simulation run failed", logging.RunID(summary.ID), logging.Error(runErr))
		return nil, fmt.Errorf("simulation run %s: %w", summary.ID, runErr)
	}

	s.logger.Info("simulation run completed",
		logging.RunID(summary.ID),
		logging.Int("duration", duration),
		logging.Count(count),
		logging.Int("points", points),
		logging.Latency(elapsed),
	)

	return &Outcome{Result: result, Run: summary}, nil
}
