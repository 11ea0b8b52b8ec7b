package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/hydronet/pkg/network"
)

func TestNodes(t *testing.T) {
	ts := setupTestServer(t)

	rr := ts.do(http.MethodPost, "/api/nodes", map[string]any{"nodeId": 3, "elevation": 3890.5})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created network.SystemNode
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(3), created.NodeID)
	assert.NotZero(t, created.ID)

	rr = ts.do(http.MethodGet, "/api/nodes", nil)
	var nodes []*network.SystemNode
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &nodes))
	require.Len(t, nodes, 3)
	assert.Equal(t, 3890.5, nodes[2].Elevation)
}

func TestCreateNode_Validation(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing elevation", map[string]any{"nodeId": 3}, "elevation"},
		{"missing node id", map[string]any{"elevation": 10}, "nodeId"},
		{"negative node id", map[string]any{"nodeId": -1, "elevation": 10}, "nodeId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.do(http.MethodPost, "/api/nodes", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.field, decodeError(t, rr).Field)
		})
	}
}

func TestDamsAndDashboard(t *testing.T) {
	ts := setupTestServer(t)

	rr := ts.do(http.MethodGet, "/api/dams", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var dams []*network.Dam
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dams))
	require.Len(t, dams, 3)
	assert.Equal(t, "Tehri Dam", dams[0].Name)

	rr = ts.do(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var summary network.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalElements)
	assert.Equal(t, 1, summary.ElementsByType["CONDUIT"])
	assert.Equal(t, 0, summary.ElementsByType["TURBINE"])
	assert.Equal(t, 2, summary.NodeCount)
	assert.Equal(t, 3, summary.DamCount)
	assert.Equal(t, 1, summary.ActiveAlerts)

	rr = ts.do(http.MethodPost, "/api/dams", map[string]any{})
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
