package hcl

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/orfile/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var ctyValueType = reflect.TypeOf(cty.Value{})

// decode populates the Go value behind goVal from val. want is the type the
// schema expects at this position and drives implicit conversions.
func (c *Converter) decode(ctx context.Context, val cty.Value, want cty.Type, goVal any) error {
	target := reflect.ValueOf(goVal).Elem()
	logger := ctxlog.FromContext(ctx).With("go_kind", target.Kind().String())

	if target.Type() == ctyValueType {
		if val.IsKnown() {
			target.Set(reflect.ValueOf(val))
		}
		return nil
	}
	if !val.IsKnown() || val.IsNull() {
		logger.Debug("Leaving field unset for null value.")
		return nil
	}

	switch target.Kind() {
	case reflect.Struct:
		return c.decodeStruct(ctx, val, want, target)
	case reflect.Interface:
		native, err := ctyToNative(val)
		if err != nil {
			return err
		}
		if native != nil {
			target.Set(reflect.ValueOf(native))
		}
		return nil
	case reflect.Map:
		return c.decodeMap(ctx, val, want, target)
	case reflect.Slice:
		return c.decodeSlice(ctx, val, want, target)
	}

	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Converted value.", "from", val.Type().FriendlyName(), "to", converted.Type().FriendlyName())
	}
	if isIntegerKind(target.Type()) && converted.Type().Equals(cty.Number) && !converted.IsNull() {
		if !converted.AsBigFloat().IsInt() {
			return fmt.Errorf("%s is not a whole number, cannot decode into %s", converted.AsBigFloat().Text('g', -1), target.Type())
		}
	}
	return gocty.FromCtyValue(converted, goVal)
}

// isIntegerKind reports whether t, or the type it points to, is a Go integer.
func isIntegerKind(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func (c *Converter) decodeStruct(ctx context.Context, val cty.Value, want cty.Type, target reflect.Value) error {
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return fmt.Errorf("type mismatch: cannot decode %s into %s", ty.FriendlyName(), target.Type())
	}
	attrs := val.AsValueMap()

	for i := 0; i < target.NumField(); i++ {
		field := target.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("cty"), ",")
		if name == "" || name == "-" {
			continue
		}
		attr, ok := attrs[name]
		if !ok {
			continue
		}

		attrType := attr.Type()
		if want.IsObjectType() && want.HasAttribute(name) {
			attrType = want.AttributeType(name)
		}
		if err := c.decode(ctx, attr, attrType, target.Field(i).Addr().Interface()); err != nil {
			return fmt.Errorf("in attribute '%s': %w", name, err)
		}
	}
	return nil
}

func (c *Converter) decodeSlice(ctx context.Context, val cty.Value, want cty.Type, target reflect.Value) error {
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return fmt.Errorf("type mismatch: cannot decode %s into %s", ty.FriendlyName(), target.Type())
	}

	// Tuples and sets are normalised to a list of one element type first.
	if !ty.IsListType() {
		listType := want
		if !listType.IsListType() {
			elem, err := gocty.ImpliedType(reflect.Zero(target.Type().Elem()).Interface())
			if err != nil {
				elem = cty.DynamicPseudoType
			}
			listType = cty.List(elem)
		}
		list, err := convert.Convert(val, listType)
		if err != nil {
			return fmt.Errorf("cannot convert %s to a list for %s: %w", ty.FriendlyName(), target.Type(), err)
		}
		val = list
	}

	elemType := val.Type().ElementType()
	if want.IsListType() {
		elemType = want.ElementType()
	}
	out := reflect.MakeSlice(target.Type(), val.LengthInt(), val.LengthInt())
	it := val.ElementIterator()
	for i := 0; it.Next(); i++ {
		_, elem := it.Element()
		if err := c.decode(ctx, elem, elemType, out.Index(i).Addr().Interface()); err != nil {
			return fmt.Errorf("in slice element %d: %w", i, err)
		}
	}
	target.Set(out)
	return nil
}
