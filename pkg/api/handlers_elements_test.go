package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/hydronet/pkg/network"
)

func TestListElements(t *testing.T) {
	ts := setupTestServer(t)

	rr := ts.do(http.MethodGet, "/api/elements", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var elements []*network.Element
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &elements))
	require.Len(t, elements, 2)
	assert.Equal(t, "HW", elements[0].Name)
	assert.Equal(t, "C1", elements[1].Name)
	assert.Less(t, elements[0].ID, elements[1].ID)
}

func TestCreateElement(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name         string
		body         any
		expectStatus int
		expectField  string
	}{
		{
			name: "valid conduit",
			body: ElementRequest{
				Type: "CONDUIT", Name: "C2",
				NodeA: network.NodeRef(2), NodeB: network.NodeRef(3),
				Properties: map[string]any{"length": 500, "diameter": 20},
			},
			expectStatus: http.StatusCreated,
		},
		{
			name:         "alias type without properties",
			body:         ElementRequest{Type: "surge tank", Name: "ST1", NodeA: network.NodeRef(3)},
			expectStatus: http.StatusCreated,
		},
		{
			name:         "missing name",
			body:         ElementRequest{Type: "VALVE"},
			expectStatus: http.StatusBadRequest,
			expectField:  "name",
		},
		{
			name:         "unknown type",
			body:         ElementRequest{Type: "WEIR", Name: "W1"},
			expectStatus: http.StatusBadRequest,
			expectField:  "type",
		},
		{
			name:         "name with whitespace",
			body:         ElementRequest{Type: "VALVE", Name: "V 1"},
			expectStatus: http.StatusBadRequest,
			expectField:  "name",
		},
		{
			name:         "nested property value",
			body:         ElementRequest{Type: "VALVE", Name: "V1", Properties: map[string]any{"loss": []int{1}}},
			expectStatus: http.StatusBadRequest,
			expectField:  "properties",
		},
		{
			name:         "malformed json",
			body:         `{"type":`,
			expectStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.do(http.MethodPost, "/api/elements", tt.body)
			require.Equal(t, tt.expectStatus, rr.Code, rr.Body.String())

			if tt.expectStatus != http.StatusCreated {
				assert.Equal(t, tt.expectField, decodeError(t, rr).Field)
			}
		})
	}

	rr := ts.do(http.MethodGet, "/api/elements", nil)
	var elements []*network.Element
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &elements))
	require.Len(t, elements, 4)
	assert.Equal(t, network.SurgeTank, elements[3].Type, "aliases are stored canonically")
	assert.NotNil(t, elements[3].Properties)
}

func TestDeleteElement(t *testing.T) {
	ts := setupTestServer(t)

	rr := ts.do(http.MethodDelete, "/api/elements/1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = ts.do(http.MethodDelete, "/api/elements/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.do(http.MethodDelete, "/api/elements/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(http.MethodGet, "/api/elements/2", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "DELETE", rr.Header().Get("Allow"))
}

func TestDownloadDeck(t *testing.T) {
	ts := setupTestServer(t)

	rr := ts.do(http.MethodGet, "/api/elements/deck", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="simulation_model.inp"`, rr.Header().Get("Content-Disposition"))

	deck := rr.Body.String()
	assert.Contains(t, deck, "EL HW AT 1")
	assert.Contains(t, deck, "EL C1 LINK 1 2")
	assert.Contains(t, deck, "CONDUIT ID C1")

	rr = ts.do(http.MethodPost, "/api/elements/deck", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestElements_MethodNotAllowed(t *testing.T) {
	ts := setupTestServer(t)

	rr := ts.do(http.MethodPut, "/api/elements", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST", rr.Header().Get("Allow"))
}
