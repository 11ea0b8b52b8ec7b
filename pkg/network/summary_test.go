package network

import "testing"

func TestSummarize(t *testing.T) {
	elements := []*Element{
		{ID: 1, Type: Conduit, Name: "C1"},
		{ID: 2, Type: "pipe", Name: "P1"},
		{ID: 3, Type: Valve, Name: "V1"},
		nil,
		{ID: 4, Type: "CHECKVALVE", Name: "X"},
	}
	nodes := []*SystemNode{{ID: 1, NodeID: 1}, {ID: 2, NodeID: 2}}
	dams := []*Dam{
		{Name: "A", Status: DamNormal, Capacity: 3.2},
		{Name: "B", Status: DamAlert, Capacity: 7.8},
		{Name: "C", Status: DamCritical, Capacity: 1},
	}

	s := Summarize(elements, nodes, dams)

	if s.TotalElements != 4 {
		t.Errorf("TotalElements = %d, want 4", s.TotalElements)
	}
	if s.ElementsByType["CONDUIT"] != 2 {
		t.Errorf("CONDUIT = %d, want 2 (alias folded in)", s.ElementsByType["CONDUIT"])
	}
	if s.ElementsByType["TURBINE"] != 0 {
		t.Errorf("TURBINE = %d, want 0", s.ElementsByType["TURBINE"])
	}
	if _, ok := s.ElementsByType["TURBINE"]; !ok {
		t.Error("canonical types should always be present")
	}
	if s.ElementsByType["CHECKVALVE"] != 1 {
		t.Errorf("unknown type should be counted verbatim")
	}
	if s.NodeCount != 2 || s.DamCount != 3 || s.ActiveAlerts != 2 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.TotalCapacity != 12 {
		t.Errorf("TotalCapacity = %v, want 12", s.TotalCapacity)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, nil)
	if s.TotalElements != 0 || s.DamCount != 0 || len(s.ElementsByType) != len(ElementTypes) {
		t.Errorf("unexpected empty summary: %+v", s)
	}
}
