package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dd0wney/hydronet/pkg/audit"
	"github.com/dd0wney/hydronet/pkg/logging"
	"github.com/dd0wney/hydronet/pkg/network"
	"github.com/dd0wney/hydronet/pkg/storage"
)

const (
	elementsPrefix = "/api/elements/"
	deckFilename   = "simulation_model.inp"
)

func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listElements(w, r) }).
		Post(func() { s.createElement(w, r) }).
		NotAllowed()
}

func (s *Server) listElements(w http.ResponseWriter, r *http.Request) {
	elements, err := s.store.ListElements(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "list elements"))
		return
	}
	if elements == nil {
		elements = []*network.Element{}
	}
	s.respondJSON(w, http.StatusOK, elements)
}

func (s *Server) createElement(w http.ResponseWriter, r *http.Request) {
	var req ElementRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req).ValidateElement(&req)
	if decoder.RespondError() {
		return
	}

	props := network.Properties(req.Properties)
	if props == nil {
		props = network.Properties{}
	}

	created, err := s.store.CreateElement(r.Context(), &network.Element{
		Type:       network.ElementType(req.Type).Normalize(),
		Name:       req.Name,
		NodeA:      req.NodeA,
		NodeB:      req.NodeB,
		Properties: props,
	})
	if err != nil {
		s.recordAudit(r, audit.NewFailedEvent(audit.ActionCreate, audit.ResourceElement, "", err))
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "create element"))
		return
	}

	event := audit.NewEvent(audit.ActionCreate, audit.ResourceElement, strconv.FormatInt(created.ID, 10))
	event.Metadata = map[string]any{"type": string(created.Type), "name": created.Name}
	s.recordAudit(r, event)
	s.refreshModelMetrics(r.Context())

	s.logger.Info("element created",
		logging.ElementID(created.ID),
		logging.ElementType(string(created.Type)),
		logging.String("name", created.Name),
	)
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleElement(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSuffix(r.URL.Path, "/") == elementsPrefix+"deck" {
		s.NewMethodRouter(w, r).
			Get(func() { s.downloadDeck(w, r) }).
			NotAllowed()
		return
	}

	extractor := s.NewPathExtractor(w, r)
	elementID, ok := extractor.ExtractInt64(elementsPrefix)
	if !ok {
		return
	}

	s.NewMethodRouter(w, r).
		Delete(func() { s.deleteElement(w, r, elementID) }).
		NotAllowed()
}

func (s *Server) deleteElement(w http.ResponseWriter, r *http.Request, elementID int64) {
	resourceID := strconv.FormatInt(elementID, 10)

	if err := s.store.DeleteElement(r.Context(), elementID); err != nil {
		s.recordAudit(r, audit.NewFailedEvent(audit.ActionDelete, audit.ResourceElement, resourceID, err))
		if storage.IsNotFound(err) {
			s.respondError(w, http.StatusNotFound, "Element not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "delete element"))
		return
	}

	s.recordAudit(r, audit.NewEvent(audit.ActionDelete, audit.ResourceElement, resourceID))
	s.refreshModelMetrics(r.Context())
	s.logger.Info("element deleted", logging.ElementID(elementID))

	w.WriteHeader(http.StatusNoContent)
}

// downloadDeck serves the solver input deck for the current model as an attachment
func (s *Server) downloadDeck(w http.ResponseWriter, r *http.Request) {
	deck, count, err := s.simulation.Deck(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "generate deck"))
		return
	}

	event := audit.NewEvent(audit.ActionDownload, audit.ResourceDeck, "")
	event.Metadata = map[string]any{"element_count": count, "bytes": len(deck)}
	s.recordAudit(r, event)

	s.respondText(w, deck, deckFilename)
}
