// Package network holds the hydraulic network model: elements, system nodes and dams.
package network

import "strings"

// ElementType identifies the kind of hydraulic component an element models
type ElementType string

// Canonical element types
const (
	Conduit   ElementType = "CONDUIT"
	Reservoir ElementType = "RESERVOIR"
	Valve     ElementType = "VALVE"
	SurgeTank ElementType = "SURGETANK"
	DChange   ElementType = "D_CHANGE"
	Turbine   ElementType = "TURBINE"
)

// ElementTypes lists the canonical types in palette order
var ElementTypes = []ElementType{Conduit, Reservoir, Valve, SurgeTank, DChange, Turbine}

// typeAliases maps historical spellings onto the canonical enumeration
var typeAliases = map[string]ElementType{
	"PIPE":       Conduit,
	"SURGE_TANK": SurgeTank,
	"SURGE TANK": SurgeTank,
	"DCHANGE":    DChange,
	"D-CHANGE":   DChange,
}

// ParseElementType resolves a type name, including legacy aliases, to its
// canonical form. Matching is case-insensitive. The second return value is
// false for names outside the enumeration.
func ParseElementType(s string) (ElementType, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range ElementTypes {
		if string(t) == name {
			return t, true
		}
	}
	if t, ok := typeAliases[name]; ok {
		return t, true
	}
	return ElementType(s), false
}

// Normalize returns the canonical spelling of t, or t unchanged if it is not recognized
func (t ElementType) Normalize() ElementType {
	canonical, _ := ParseElementType(string(t))
	return canonical
}

// Known reports whether t (or its alias) belongs to the enumeration
func (t ElementType) Known() bool {
	_, ok := ParseElementType(string(t))
	return ok
}

func (t ElementType) String() string {
	return string(t)
}

// Element is a modeled hydraulic component.
// A nil NodeB means the element attaches at a single point.
type Element struct {
	ID         int64       `json:"id"`
	Type       ElementType `json:"type"`
	Name       string      `json:"name"`
	NodeA      *int64      `json:"nodeA"`
	NodeB      *int64      `json:"nodeB"`
	Properties Properties  `json:"properties"`
}

// Clone returns a deep copy of e
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	if e.NodeA != nil {
		a := *e.NodeA
		c.NodeA = &a
	}
	if e.NodeB != nil {
		b := *e.NodeB
		c.NodeB = &b
	}
	c.Properties = e.Properties.Clone()
	return &c
}

// NodeRef is a convenience for building optional node references
func NodeRef(n int64) *int64 {
	return &n
}
