package api

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/dd0wney/hydronet/pkg/api/middleware"
	"github.com/dd0wney/hydronet/pkg/audit"
	"github.com/dd0wney/hydronet/pkg/logging"
	"github.com/dd0wney/hydronet/pkg/validation"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// respondValidationError reports err as a 400, naming the offending field when known
func (s *Server) respondValidationError(w http.ResponseWriter, err error) {
	response := ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: err.Error(),
		Code:    http.StatusBadRequest,
	}
	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		response.Field = fieldErr.Field
	}
	s.respondJSON(w, http.StatusBadRequest, response)
}

func (s *Server) respondText(w http.ResponseWriter, body, filename string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Warn("failed to write text response", logging.Error(err))
	}
}

// recordAudit stamps the request details on event and stores it
func (s *Server) recordAudit(r *http.Request, event *audit.Event) {
	if s.audit == nil {
		return
	}
	event.RequestID = middleware.GetRequestID(r)
	event.IPAddress = clientIP(r)
	event.UserAgent = r.UserAgent()
	if err := s.audit.Log(event); err != nil {
		s.logger.Warn("failed to write audit event", logging.Error(err))
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
