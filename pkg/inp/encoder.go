// Package inp encodes a hydraulic network into the line-oriented input deck
// read by the external transient solver.
//
// A deck has four sections: topology (SYSTEM), per-element properties,
// global control parameters (CONTROL) and the GO/GOODBYE terminator.
// Encoding is total: missing properties fall back to the per-type defaults in
// Layouts, elements without node references are left out of the topology, and
// unknown element types get no property block.
package inp

import (
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/hydronet/pkg/network"
)

// Deck keywords
const (
	HeaderLine     = "C PROJECT NAME: HYDRAULIC SIMULATION"
	SystemKeyword  = "SYSTEM"
	FinishKeyword  = "FINISH"
	PropsComment   = "C ELEMENT PROPERTIES"
	ControlKeyword = "CONTROL"
	GoKeyword      = "GO"
	ByeKeyword     = "GOODBYE"

	indent = "    "
)

// Control holds the global solver parameters written to the CONTROL block
type Control struct {
	DTComp float64 // computational time step
	DTOut  float64 // output interval
	TMax   float64 // maximum simulation time
}

// DefaultControl is the fixed control block used for every deck
var DefaultControl = Control{DTComp: 0.01, DTOut: 0.1, TMax: 20.0}

// Encode renders elements as a solver deck. Element order is preserved.
func Encode(elements []*network.Element) string {
	var b strings.Builder
	encode(&b, elements)
	return b.String()
}

// Write renders elements as a solver deck to w
func Write(w io.Writer, elements []*network.Element) error {
	_, err := io.WriteString(w, Encode(elements))
	return err
}

func encode(b *strings.Builder, elements []*network.Element) {
	b.WriteString(HeaderLine + "\n")

	b.WriteString(SystemKeyword + "\n")
	for _, e := range elements {
		writeTopology(b, e)
	}
	b.WriteString(FinishKeyword + "\n\n")

	b.WriteString(PropsComment + "\n")
	for _, e := range elements {
		writeProperties(b, e)
	}

	writeControl(b, DefaultControl)

	b.WriteString(GoKeyword + "\n")
	b.WriteString(ByeKeyword + "\n")
}

// writeTopology emits a LINK record when both nodes are set, an AT record
// when only NodeA is set, and nothing otherwise.
func writeTopology(b *strings.Builder, e *network.Element) {
	if e == nil || e.NodeA == nil {
		return
	}
	b.WriteString(indent + "EL " + e.Name)
	if e.NodeB != nil {
		b.WriteString(" LINK " + strconv.FormatInt(*e.NodeA, 10) + " " + strconv.FormatInt(*e.NodeB, 10))
	} else {
		b.WriteString(" AT " + strconv.FormatInt(*e.NodeA, 10))
	}
	b.WriteByte('\n')
}

func writeProperties(b *strings.Builder, e *network.Element) {
	if e == nil {
		return
	}
	layout, ok := LayoutFor(e.Type)
	if !ok {
		return
	}

	b.WriteString(string(e.Type.Normalize()) + " ID " + e.Name + "\n")
	for _, line := range layout.Lines {
		b.WriteString(indent)
		for i, f := range line {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f.Keyword + " " + FormatNumber(e.Properties.FloatOr(f.Property, f.Default)))
		}
		b.WriteByte('\n')
	}
	b.WriteString(FinishKeyword + "\n\n")
}

func writeControl(b *strings.Builder, c Control) {
	b.WriteString(ControlKeyword + "\n")
	b.WriteString(indent + "DTCOMP " + FormatNumber(c.DTComp) +
		" DTOUT " + FormatNumber(c.DTOut) +
		" TMAX " + formatFixed1(c.TMax) + "\n")
	b.WriteString(FinishKeyword + "\n\n")
}

// FormatNumber writes v in its shortest round-trip decimal form.
// Negative zero is written as 0.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFixed1 is FormatNumber with at least one fractional digit (20 -> 20.0)
func formatFixed1(v float64) string {
	s := FormatNumber(v)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
