// Package value turns raw command-line strings into typed cty values using an
// explicit, ordered coercion pipeline: structured document, bool, number and
// finally plain string.
package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Kind is the tag of the variant a coerced value ended up in.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindNumber
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindStructured:
		return "structured"
	default:
		return "null"
	}
}

// KindOf classifies a cty value into one of the coercion variants.
func KindOf(v cty.Value) Kind {
	if v.IsNull() || !v.IsKnown() {
		return KindNull
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return KindString
	case ty == cty.Bool:
		return KindBool
	case ty == cty.Number:
		return KindNumber
	default:
		return KindStructured
	}
}

// Stage is one step of the pipeline. Try reports false when the stage does
// not accept the input, handing it over to the next stage.
type Stage struct {
	Name string
	Try  func(raw string) (cty.Value, bool)
}

// Pipeline is an ordered list of stages. A string stage is implied at the end.
type Pipeline []Stage

// Coerce runs the stages in order and returns the first accepted value, or
// the raw input as a string.
func (p Pipeline) Coerce(raw string) cty.Value {
	v, _ := p.CoerceWithStage(raw)
	return v
}

// CoerceWithStage is Coerce that also names the stage which accepted the input.
func (p Pipeline) CoerceWithStage(raw string) (cty.Value, string) {
	for _, stage := range p {
		if v, ok := stage.Try(raw); ok {
			return v, stage.Name
		}
	}
	return cty.StringVal(raw), "string"
}

var (
	// Structured accepts any JSON document: objects, arrays, quoted strings,
	// numbers, booleans and null.
	Structured = Stage{Name: "structured", Try: tryStructured}
	// Bool accepts exactly "true" and "false".
	Bool = Stage{Name: "bool", Try: tryBool}
	// Number accepts finite floating-point literals.
	Number = Stage{Name: "number", Try: tryNumber}
)

// DefaultPipeline is the coercion order used for trailing key/value pairs.
var DefaultPipeline = Pipeline{Structured, Bool, Number}

// Coerce runs DefaultPipeline.
func Coerce(raw string) cty.Value {
	return DefaultPipeline.Coerce(raw)
}

func tryStructured(raw string) (cty.Value, bool) {
	buf := []byte(raw)
	if strings.TrimSpace(raw) == "null" {
		return cty.NullVal(cty.DynamicPseudoType), true
	}
	ty, err := ctyjson.ImpliedType(buf)
	if err != nil || ty == cty.DynamicPseudoType {
		return cty.NilVal, false
	}
	v, err := ctyjson.Unmarshal(buf, ty)
	if err != nil {
		return cty.NilVal, false
	}
	return v, true
}

func tryBool(raw string) (cty.Value, bool) {
	switch raw {
	case "true":
		return cty.True, true
	case "false":
		return cty.False, true
	}
	return cty.NilVal, false
}

// tryNumber accepts decimal notation only. strconv also takes hex floats
// ("0x1p4") and digit separators, which stay strings here.
func tryNumber(raw string) (cty.Value, bool) {
	if strings.TrimLeft(raw, "+-.0123456789eE") != "" {
		return cty.NilVal, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return cty.NilVal, false
	}
	return cty.NumberFloatVal(f), true
}
