package inp

import "github.com/dd0wney/hydronet/pkg/network"

// Field binds a deck keyword to an element property and its fallback value
type Field struct {
	Keyword  string
	Property string
	Default  float64
}

// Layout describes the property block emitted for one element type.
// Each entry of Lines is written as a single indented deck line.
type Layout struct {
	Lines [][]Field
}

// Layouts is the per-type defaults table. Types without an entry get no property block.
var Layouts = map[network.ElementType]Layout{
	network.Conduit: {Lines: [][]Field{
		{
			{Keyword: "LENG", Property: network.PropLength, Default: 1000},
			{Keyword: "DIAM", Property: network.PropDiameter, Default: 12},
			{Keyword: "FRIC", Property: network.PropFriction, Default: 0.01},
		},
		{
			{Keyword: "CPLUS", Property: network.PropCPlus, Default: 0.1},
			{Keyword: "CMINUS", Property: network.PropCMinus, Default: 0.1},
		},
	}},
	network.Reservoir: {Lines: [][]Field{
		{{Keyword: "ELEV", Property: network.PropElevation, Default: 100}},
	}},
	network.Valve: {Lines: [][]Field{
		{{Keyword: "LOSS", Property: network.PropLoss, Default: 1.2}},
	}},
	network.SurgeTank: {Lines: [][]Field{
		{
			{Keyword: "ELTOP", Property: network.PropElTop, Default: 150},
			{Keyword: "ELBOT", Property: network.PropElBottom, Default: 50},
			{Keyword: "DIAM", Property: network.PropDiameter, Default: 10},
		},
	}},
	network.DChange: {Lines: [][]Field{
		{{Keyword: "DIAM", Property: network.PropDiameter, Default: 12}},
	}},
	network.Turbine: {Lines: [][]Field{
		{{Keyword: "POWER", Property: network.PropPower, Default: 100}},
	}},
}

// LayoutFor returns the property layout for t, resolving legacy aliases
func LayoutFor(t network.ElementType) (Layout, bool) {
	canonical, known := network.ParseElementType(string(t))
	if !known {
		return Layout{}, false
	}
	l, ok := Layouts[canonical]
	return l, ok
}
