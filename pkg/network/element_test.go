package network

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseElementType(t *testing.T) {
	tests := []struct {
		in    string
		want  ElementType
		known bool
	}{
		{"CONDUIT", Conduit, true},
		{"PIPE", Conduit, true},
		{"pipe", Conduit, true},
		{" reservoir ", Reservoir, true},
		{"VALVE", Valve, true},
		{"SURGETANK", SurgeTank, true},
		{"surge_tank", SurgeTank, true},
		{"Surge Tank", SurgeTank, true},
		{"D_CHANGE", DChange, true},
		{"d-change", DChange, true},
		{"TURBINE", Turbine, true},
		{"PUMP", ElementType("PUMP"), false},
		{"", ElementType(""), false},
	}

	for _, tt := range tests {
		got, known := ParseElementType(tt.in)
		if got != tt.want || known != tt.known {
			t.Errorf("ParseElementType(%q) = (%q, %v), want (%q, %v)", tt.in, got, known, tt.want, tt.known)
		}
	}
}

func TestElementTypeNormalize(t *testing.T) {
	if got := ElementType("PIPE").Normalize(); got != Conduit {
		t.Errorf("PIPE normalized to %q, want CONDUIT", got)
	}
	if got := ElementType("weir").Normalize(); got != "weir" {
		t.Errorf("unknown type should be preserved verbatim, got %q", got)
	}
	if ElementType("weir").Known() {
		t.Error("weir should not be known")
	}
}

func TestPropertiesFloat(t *testing.T) {
	props := Properties{
		"f64":    13405.51,
		"int":    5,
		"int64":  int64(7),
		"number": json.Number("0.008"),
		"zero":   0.0,
		"str":    "12",
		"bool":   true,
		"nil":    nil,
		"nan":    math.NaN(),
		"inf":    math.Inf(1),
		"badnum": json.Number("abc"),
		"int8":   int8(-4),
		"int16":  int16(7),
		"uint":   uint(3),
		"uint8":  uint8(9),
		"uint16": uint16(210),
		"f32":    float32(0.5),
	}

	tests := []struct {
		key  string
		want float64
		ok   bool
	}{
		{"f64", 13405.51, true},
		{"int", 5, true},
		{"int64", 7, true},
		{"number", 0.008, true},
		{"zero", 0, true},
		{"str", 0, false},
		{"bool", 0, false},
		{"nil", 0, false},
		{"nan", 0, false},
		{"inf", 0, false},
		{"badnum", 0, false},
		{"int8", -4, true},
		{"int16", 7, true},
		{"uint", 3, true},
		{"uint8", 9, true},
		{"uint16", 210, true},
		{"f32", 0.5, true},
		{"missing", 0, false},
	}

	for _, tt := range tests {
		got, ok := props.Float(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Float(%q) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.ok)
		}
	}

	if got := props.FloatOr("str", 1.2); got != 1.2 {
		t.Errorf("FloatOr on non-numeric = %v, want default 1.2", got)
	}

	var nilProps Properties
	if _, ok := nilProps.Float("length"); ok {
		t.Error("nil properties should report absent")
	}
}

func TestElementClone(t *testing.T) {
	orig := &Element{
		ID:         1,
		Type:       Conduit,
		Name:       "C1",
		NodeA:      NodeRef(1),
		NodeB:      NodeRef(2),
		Properties: Properties{PropLength: 100.0},
	}

	c := orig.Clone()
	*c.NodeA = 9
	c.Properties[PropLength] = 5.0

	if *orig.NodeA != 1 {
		t.Error("clone shares NodeA with original")
	}
	if orig.Properties[PropLength] != 100.0 {
		t.Error("clone shares properties with original")
	}

	var nilElem *Element
	if nilElem.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
