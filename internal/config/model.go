package config

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Mapping is the untyped intermediate form of a configuration: field name to
// dynamically typed value.
type Mapping map[string]cty.Value

// Keys returns the mapping keys in lexical order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Object returns the mapping as a cty object value.
func (m Mapping) Object() cty.Value {
	if len(m) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(m)
}

// Layer names the source a value came from. Layers are listed in increasing
// precedence.
type Layer int

const (
	LayerEnv Layer = iota
	LayerFile
	LayerArgs
)

func (l Layer) String() string {
	switch l {
	case LayerEnv:
		return "env"
	case LayerFile:
		return "file"
	case LayerArgs:
		return "args"
	default:
		return "unknown"
	}
}

// Result is the outcome of a resolve: the merged values and, for every key,
// the layer that supplied the winning value.
type Result struct {
	Values  Mapping
	Origins map[string]Layer
}

func newResult() *Result {
	return &Result{
		Values:  make(Mapping),
		Origins: make(map[string]Layer),
	}
}

// Only returns the part of r whose keys s declares.
func (r *Result) Only(s *Schema) *Result {
	out := newResult()
	for key, v := range r.Values {
		if _, ok := s.Lookup(key); ok {
			out.set(r.Origins[key], key, v)
		}
	}
	return out
}

// set stores v under key, overriding whatever a lower layer put there.
func (r *Result) set(layer Layer, key string, v cty.Value) {
	r.Values[key] = v
	r.Origins[key] = layer
}
