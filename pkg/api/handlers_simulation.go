package api

import (
	"errors"
	"net/http"

	"github.com/dd0wney/hydronet/pkg/audit"
	"github.com/dd0wney/hydronet/pkg/simulation"
)

const runsPrefix = "/api/simulation/runs/"

func (s *Server) handleSimulationRun(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() { s.runSimulation(w, r) }).
		NotAllowed()
}

func (s *Server) runSimulation(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeOptionalJSON(&req).ValidateSimulation(&req, s.cfg.Simulation.MaxDuration)
	if decoder.RespondError() {
		return
	}
	duration := *req.Duration

	outcome, err := s.simulation.Run(r.Context(), duration)
	if err != nil {
		s.recordAudit(r, audit.NewFailedEvent(audit.ActionRun, audit.ResourceSimulation, "", err))
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "simulation run"))
		return
	}
	s.metrics.SetHistorySize(s.simulation.History().Len())

	event := audit.NewEvent(audit.ActionRun, audit.ResourceSimulation, outcome.Run.ID)
	event.Metadata = map[string]any{
		"duration":      duration,
		"element_count": outcome.Run.ElementCount,
	}
	s.recordAudit(r, event)

	s.respondJSON(w, http.StatusOK, SimulationResponse{
		Status:  outcome.Result.Status,
		Results: outcome.Result.Points,
		Message: outcome.Result.Message,
		RunID:   outcome.Run.ID,
	})
}

func (s *Server) handleSimulationRuns(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() {
			runs := s.simulation.History().List()
			s.respondJSON(w, http.StatusOK, RunsResponse{Runs: runs, Count: len(runs)})
		}).
		NotAllowed()
}

// handleSimulationRunDeck serves /api/simulation/runs/{id}/deck
func (s *Server) handleSimulationRunDeck(w http.ResponseWriter, r *http.Request) {
	extractor := s.NewPathExtractor(w, r)
	runID, ok := extractor.ExtractString(runsPrefix, "/deck")
	if !ok {
		return
	}

	s.NewMethodRouter(w, r).
		Get(func() {
			deck, err := s.simulation.History().Deck(runID)
			if err != nil {
				if errors.Is(err, simulation.ErrRunNotFound) {
					s.respondError(w, http.StatusNotFound, "Simulation run not found")
					return
				}
				s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "read run deck"))
				return
			}
			s.recordAudit(r, audit.NewEvent(audit.ActionDownload, audit.ResourceDeck, runID))
			s.respondText(w, deck, runID+".inp")
		}).
		NotAllowed()
}
