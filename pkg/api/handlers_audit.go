package api

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/dd0wney/hydronet/pkg/audit"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

// handleAuditEvents lists recent audit events, newest first. Supports
// ?limit=, ?action= and ?resource_type=.
func (s *Server) handleAuditEvents(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listAuditEvents(w, r) }).
		NotAllowed()
}

func (s *Server) listAuditEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := defaultAuditLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAuditLimit {
			s.respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   http.StatusText(http.StatusBadRequest),
				Message: "limit must be an integer between 1 and " + strconv.Itoa(maxAuditLimit),
				Code:    http.StatusBadRequest,
				Field:   "limit",
			})
			return
		}
		limit = n
	}

	var events []*audit.Event
	action, resourceType := query.Get("action"), query.Get("resource_type")
	if action == "" && resourceType == "" {
		events = s.audit.GetRecentEvents(limit)
	} else {
		events = s.audit.GetEvents(&audit.Filter{
			Action:       audit.Action(action),
			ResourceType: audit.ResourceType(resourceType),
		})
		slices.Reverse(events)
		if len(events) > limit {
			events = events[:limit]
		}
	}
	if events == nil {
		events = []*audit.Event{}
	}

	s.respondJSON(w, http.StatusOK, AuditEventsResponse{
		Events: events,
		Count:  len(events),
		Total:  s.audit.GetEventCount(),
	})
}
