package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/specialistvlad/orfile/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// decodeMap handles the recursive decoding of a cty.Value into a Go map.
// Generic map[string]any targets take a fast path through ctyToNative; typed
// maps are decoded element by element. Objects are accepted as maps.
func (c *Converter) decodeMap(ctx context.Context, val cty.Value, fieldType cty.Type, goPtr reflect.Value) error {
	logger := ctxlog.FromContext(ctx).With("go_type", goPtr.Type().String(), "cty_type", val.Type().FriendlyName())
	logger.Debug("Decoding into Go map.")

	if !val.Type().IsMapType() && !val.Type().IsObjectType() {
		return fmt.Errorf("type mismatch: cannot decode %s into Go map %s", val.Type().FriendlyName(), goPtr.Type().String())
	}
	if goPtr.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("unsupported map key type %s", goPtr.Type().Key().String())
	}

	if goPtr.Type() == reflect.TypeOf((map[string]any)(nil)) {
		nativeVal, err := ctyToNative(val)
		if err != nil {
			return err
		}
		if nativeVal != nil {
			goPtr.Set(reflect.ValueOf(nativeVal))
		}
		return nil
	}

	newMap := reflect.MakeMap(goPtr.Type())
	it := val.ElementIterator()
	for it.Next() {
		key, elemVal := it.Element()
		keyStr := key.AsString()

		// A typed map dictates the element type; otherwise each element is
		// its own guide.
		elemType := elemVal.Type()
		if fieldType.IsMapType() {
			elemType = fieldType.ElementType()
		}

		newElemPtr := reflect.New(goPtr.Type().Elem())
		if err := c.decode(ctx, elemVal, elemType, newElemPtr.Interface()); err != nil {
			return fmt.Errorf("failed to decode map element '%s': %w", keyStr, err)
		}
		newMap.SetMapIndex(reflect.ValueOf(keyStr).Convert(goPtr.Type().Key()), newElemPtr.Elem())
	}
	goPtr.Set(newMap)
	return nil
}
