package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dd0wney/hydronet/pkg/network"
)

func (s *Server) handleDams(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listDams(w, r) }).
		NotAllowed()
}

func (s *Server) listDams(w http.ResponseWriter, r *http.Request) {
	dams, err := s.store.ListDams(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "list dams"))
		return
	}
	if dams == nil {
		dams = []*network.Dam{}
	}
	s.respondJSON(w, http.StatusOK, dams)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() {
			summary, err := s.summarize(r.Context())
			if err != nil {
				s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "build dashboard"))
				return
			}
			s.respondJSON(w, http.StatusOK, summary)
		}).
		NotAllowed()
}

func (s *Server) summarize(ctx context.Context) (network.Summary, error) {
	elements, err := s.store.ListElements(ctx)
	if err != nil {
		return network.Summary{}, fmt.Errorf("failed to list elements: %w", err)
	}
	nodes, err := s.store.ListNodes(ctx)
	if err != nil {
		return network.Summary{}, fmt.Errorf("failed to list nodes: %w", err)
	}
	dams, err := s.store.ListDams(ctx)
	if err != nil {
		return network.Summary{}, fmt.Errorf("failed to list dams: %w", err)
	}
	return network.Summarize(elements, nodes, dams), nil
}
