package api

import (
	"github.com/dd0wney/hydronet/pkg/audit"
	"github.com/dd0wney/hydronet/pkg/simulation"
)

// API Request/Response Types

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Field   string `json:"field,omitempty"`
}

// ElementRequest represents an element creation request
type ElementRequest struct {
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	NodeA      *int64         `json:"nodeA"`
	NodeB      *int64         `json:"nodeB"`
	Properties map[string]any `json:"properties"`
}

// NodeRequest represents a system node creation request
type NodeRequest struct {
	NodeID    *int64   `json:"nodeId"`
	Elevation *float64 `json:"elevation"`
}

// SimulationRequest represents a simulation run request. An empty body runs
// with the default duration.
type SimulationRequest struct {
	Duration *int `json:"duration"`
}

// SimulationResponse is the result of a simulation run
type SimulationResponse struct {
	Status  string             `json:"status"`
	Results []simulation.Point `json:"results"`
	Message string             `json:"message,omitempty"`
	RunID   string             `json:"runId"`
}

// RunsResponse lists recorded simulation runs, newest first
type RunsResponse struct {
	Runs  []simulation.RunSummary `json:"runs"`
	Count int                     `json:"count"`
}

// AuditEventsResponse lists audit events, newest first
type AuditEventsResponse struct {
	Events []*audit.Event `json:"events"`
	Count  int            `json:"count"`
	Total  int64          `json:"total"`
}
