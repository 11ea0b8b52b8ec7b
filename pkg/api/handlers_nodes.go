package api

import (
	"net/http"
	"strconv"

	"github.com/dd0wney/hydronet/pkg/audit"
	"github.com/dd0wney/hydronet/pkg/network"
)

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listNodes(w, r) }).
		Post(func() { s.createNode(w, r) }).
		NotAllowed()
}

func (s *Server) listNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.store.ListNodes(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "list nodes"))
		return
	}
	if nodes == nil {
		nodes = []*network.SystemNode{}
	}
	s.respondJSON(w, http.StatusOK, nodes)
}

func (s *Server) createNode(w http.ResponseWriter, r *http.Request) {
	var req NodeRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req).ValidateNode(&req)
	if decoder.RespondError() {
		return
	}

	created, err := s.store.CreateNode(r.Context(), &network.SystemNode{
		NodeID:    *req.NodeID,
		Elevation: *req.Elevation,
	})
	if err != nil {
		s.recordAudit(r, audit.NewFailedEvent(audit.ActionCreate, audit.ResourceNode, "", err))
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "create node"))
		return
	}

	event := audit.NewEvent(audit.ActionCreate, audit.ResourceNode, strconv.FormatInt(created.ID, 10))
	event.Metadata = map[string]any{"node_id": created.NodeID}
	s.recordAudit(r, event)
	s.refreshModelMetrics(r.Context())

	s.respondJSON(w, http.StatusCreated, created)
}
