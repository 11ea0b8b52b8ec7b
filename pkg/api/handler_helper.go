package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dd0wney/hydronet/pkg/logging"
	"github.com/dd0wney/hydronet/pkg/validation"
)

// sanitizeError logs an internal error and returns a user-safe message.
func (s *Server) sanitizeError(err error, operation string) string {
	if err == nil {
		return ""
	}

	s.logger.Error("request failed", logging.Operation(operation), logging.Error(err))

	return fmt.Sprintf("%s failed", operation)
}

// requestDecoder decodes and validates request bodies.
// It provides a fluent interface for common request handling patterns.
type requestDecoder struct {
	r          *http.Request
	w          http.ResponseWriter
	server     *Server
	err        error
	statusCode int
}

// NewRequestDecoder creates a new request decoder for the given request.
func (s *Server) NewRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{
		r:      r,
		w:      w,
		server: s,
	}
}

// DecodeJSON decodes the request body into the provided struct.
// Returns the decoder for chaining. Check HasError() after calling.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	return rd.decode(v, false)
}

// DecodeOptionalJSON is DecodeJSON but treats an empty body as a zero value.
func (rd *requestDecoder) DecodeOptionalJSON(v any) *requestDecoder {
	return rd.decode(v, true)
}

func (rd *requestDecoder) decode(v any, allowEmpty bool) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	err := json.NewDecoder(rd.r.Body).Decode(v)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return rd
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		rd.err = fmt.Errorf("request body exceeds %d bytes", maxBytesErr.Limit)
		rd.statusCode = http.StatusRequestEntityTooLarge
		return rd
	}
	rd.err = fmt.Errorf("invalid request body: %w", err)
	rd.statusCode = http.StatusBadRequest
	return rd
}

// ValidateElement validates an element request.
func (rd *requestDecoder) ValidateElement(req *ElementRequest) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	validationReq := validation.ElementRequest{
		Type:       req.Type,
		Name:       req.Name,
		NodeA:      req.NodeA,
		NodeB:      req.NodeB,
		Properties: req.Properties,
	}
	return rd.validated(validation.ValidateElementRequest(&validationReq))
}

// ValidateNode validates a system node request.
func (rd *requestDecoder) ValidateNode(req *NodeRequest) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	validationReq := validation.NodeRequest{
		NodeID:    req.NodeID,
		Elevation: req.Elevation,
	}
	return rd.validated(validation.ValidateNodeRequest(&validationReq))
}

// ValidateSimulation validates a run request and fills in the default duration.
func (rd *requestDecoder) ValidateSimulation(req *SimulationRequest, maxDuration int) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	validationReq := validation.SimulationRequest{Duration: req.Duration}
	rd.validated(validation.ValidateSimulationRequest(&validationReq, maxDuration))
	req.Duration = validationReq.Duration
	return rd
}

func (rd *requestDecoder) validated(err error) *requestDecoder {
	if err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// HasError returns true if any error occurred during decoding/validation.
func (rd *requestDecoder) HasError() bool {
	return rd.err != nil
}

// Error returns the error if any occurred.
func (rd *requestDecoder) Error() error {
	return rd.err
}

// RespondError sends the error response and returns true if there was an error.
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	if rd.statusCode == http.StatusBadRequest {
		rd.server.respondValidationError(rd.w, rd.err)
		return true
	}
	rd.server.respondError(rd.w, rd.statusCode, rd.err.Error())
	return true
}

// pathIDExtractor extracts IDs from URL paths.
type pathIDExtractor struct {
	w      http.ResponseWriter
	server *Server
	path   string
}

// NewPathExtractor creates a new path extractor.
func (s *Server) NewPathExtractor(w http.ResponseWriter, r *http.Request) *pathIDExtractor {
	return &pathIDExtractor{
		w:      w,
		server: s,
		path:   r.URL.Path,
	}
}

// segment returns the path between prefix and suffix, or false if the path does not have that shape
func (pe *pathIDExtractor) segment(prefix, suffix string) (string, bool) {
	rest, ok := strings.CutPrefix(pe.path, prefix)
	if !ok {
		return "", false
	}
	rest = strings.TrimSuffix(rest, "/")
	if suffix != "" {
		if rest, ok = strings.CutSuffix(rest, suffix); !ok {
			return "", false
		}
	}
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

// ExtractInt64 extracts a positive int64 ID from the path after prefix.
// On failure a 400 has already been sent.
func (pe *pathIDExtractor) ExtractInt64(prefix string) (int64, bool) {
	raw, ok := pe.segment(prefix, "")
	if !ok {
		pe.server.respondError(pe.w, http.StatusBadRequest, "Invalid path")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		pe.server.respondError(pe.w, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return id, true
}

// ExtractString extracts the segment between prefix and suffix.
// On failure a 404 has already been sent.
func (pe *pathIDExtractor) ExtractString(prefix, suffix string) (string, bool) {
	raw, ok := pe.segment(prefix, suffix)
	if !ok {
		pe.server.respondError(pe.w, http.StatusNotFound, "Not found")
		return "", false
	}
	return raw, true
}

// methodRouter routes requests based on HTTP method.
type methodRouter struct {
	w       http.ResponseWriter
	r       *http.Request
	server  *Server
	allowed []string
	handled bool
}

// NewMethodRouter creates a new method router.
func (s *Server) NewMethodRouter(w http.ResponseWriter, r *http.Request) *methodRouter {
	return &methodRouter{
		w:      w,
		r:      r,
		server: s,
	}
}

func (mr *methodRouter) on(method string, handler func()) *methodRouter {
	mr.allowed = append(mr.allowed, method)
	if !mr.handled && mr.r.Method == method {
		handler()
		mr.handled = true
	}
	return mr
}

// Get handles GET requests with the provided handler.
func (mr *methodRouter) Get(handler func()) *methodRouter {
	return mr.on(http.MethodGet, handler)
}

// Post handles POST requests with the provided handler.
func (mr *methodRouter) Post(handler func()) *methodRouter {
	return mr.on(http.MethodPost, handler)
}

// Delete handles DELETE requests with the provided handler.
func (mr *methodRouter) Delete(handler func()) *methodRouter {
	return mr.on(http.MethodDelete, handler)
}

// NotAllowed sends a 405 with an Allow header if no method matched.
func (mr *methodRouter) NotAllowed() {
	if !mr.handled {
		mr.w.Header().Set("Allow", strings.Join(mr.allowed, ", "))
		mr.server.respondError(mr.w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
