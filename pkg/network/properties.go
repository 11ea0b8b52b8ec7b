package network

import (
	"encoding/json"
	"math"
	"reflect"
)

// Property keys understood by the deck encoder and the seed data
const (
	PropLength    = "length"
	PropDiameter  = "diameter"
	PropFriction  = "friction"
	PropElevation = "elevation"
	PropLoss      = "loss"
	PropCelerity  = "celerity"
	PropElTop     = "elTop"
	PropElBottom  = "elBottom"
	PropPower     = "power"
	PropCPlus     = "cPlus"
	PropCMinus    = "cMinus"
	PropNumSeg    = "numSeg"
	PropQSchedule = "qSchedule"
)

// Properties is the open, type-dependent attribute map of an element
type Properties map[string]any

// Float returns the numeric value stored under key.
// Non-numeric values, NaN and infinities are reported as absent.
func (p Properties) Float(key string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p[key]
	if !ok {
		return 0, false
	}

	var f float64
	if n, isNumber := v.(json.Number); isNumber {
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	} else {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			f = float64(rv.Uint())
		default:
			return 0, false
		}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FloatOr returns the numeric value under key, or def when it is absent
func (p Properties) FloatOr(key string, def float64) float64 {
	if f, ok := p.Float(key); ok {
		return f
	}
	return def
}

// Clone returns a shallow copy of the map
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	c := make(Properties, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}
