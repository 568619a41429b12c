package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Field describes one key of a target shape.
type Field struct {
	Name     string
	Type     cty.Type
	Required bool
}

// Schema is the call-time descriptor of a target shape. It is either derived
// from a tagged Go struct with SchemaOf or declared field by field.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema returns an empty schema ready for Required/Optional calls.
func NewSchema() *Schema {
	return &Schema{index: make(map[string]int)}
}

// Required declares a field that must be present after merging.
func (s *Schema) Required(name string, ty cty.Type) *Schema {
	return s.add(Field{Name: name, Type: ty, Required: true})
}

// Optional declares a field that may be absent after merging.
func (s *Schema) Optional(name string, ty cty.Type) *Schema {
	return s.add(Field{Name: name, Type: ty})
}

func (s *Schema) add(f Field) *Schema {
	if i, ok := s.index[f.Name]; ok {
		s.fields[i] = f
		return s
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
	return s
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Lookup returns the field declared under name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

var ctyValueType = reflect.TypeOf(cty.Value{})

// SchemaOf derives a schema from the `cty` tags of the struct target points
// to. Pointer, slice, map and interface fields are optional, as are fields
// tagged `cty:"name,optional"`; everything else is required.
func SchemaOf(target any) (*Schema, error) {
	rt := reflect.TypeOf(target)
	if rt == nil {
		return nil, errors.New("target must be a pointer to a struct, got nil")
	}
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("target must be a pointer to a struct, got %s", rt.String())
	}

	s := NewSchema()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(sf.Tag.Get("cty"), ",")
		if name == "" || name == "-" {
			continue
		}
		f := Field{Name: name, Type: impliedFieldType(sf.Type)}
		switch sf.Type.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		default:
			f.Required = sf.Type != ctyValueType && opts != "optional"
		}
		s.add(f)
	}
	return s, nil
}

func impliedFieldType(t reflect.Type) cty.Type {
	if t == ctyValueType || t.Kind() == reflect.Interface {
		return cty.DynamicPseudoType
	}
	ty, err := gocty.ImpliedType(reflect.Zero(t).Interface())
	if err != nil {
		// Types gocty cannot describe (e.g. map[string]any) are checked by
		// the converter instead.
		return cty.DynamicPseudoType
	}
	return ty
}

// Check reports the first unknown key (unless ignoreUnknown) or missing
// required field, as a *DeserializationError.
func (s *Schema) Check(values Mapping, ignoreUnknown bool) error {
	if !ignoreUnknown {
		for _, key := range values.Keys() {
			if _, ok := s.index[key]; !ok {
				return &DeserializationError{Field: key, Err: ErrUnknownField}
			}
		}
	}
	for _, f := range s.fields {
		v, ok := values[f.Name]
		if !f.Required {
			continue
		}
		if !ok {
			return &DeserializationError{Field: f.Name, Err: ErrMissingField}
		}
		if v.IsNull() {
			return &DeserializationError{Field: f.Name, Err: errors.New("value must not be null")}
		}
	}
	return nil
}

// Conform checks values against the schema and converts every declared field
// to its declared type, returning the result as a cty object. Keys the schema
// does not declare are dropped when ignoreUnknown is set.
func (s *Schema) Conform(values Mapping, ignoreUnknown bool) (cty.Value, error) {
	if err := s.Check(values, ignoreUnknown); err != nil {
		return cty.NilVal, err
	}
	out := make(Mapping, len(values))
	for _, f := range s.fields {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		converted, err := convert.Convert(v, f.Type)
		if err != nil {
			return cty.NilVal, &DeserializationError{Field: f.Name, Err: err}
		}
		out[f.Name] = converted
	}
	return out.Object(), nil
}
