package hcl

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/orfile/internal/config"
	"github.com/specialistvlad/orfile/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct {
	ignoreUnknown bool
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// IgnoreUnknown makes Decode drop keys the target does not declare instead of
// failing with config.ErrUnknownField.
func IgnoreUnknown() ConverterOption {
	return func(c *Converter) { c.ignoreUnknown = true }
}

// NewConverter creates a new HCL converter.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode checks values against the schema derived from target's `cty` tags,
// then populates each field through the recursive decode helper.
func (c *Converter) Decode(ctx context.Context, values config.Mapping, target any) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting config decoding.", "target", fmt.Sprintf("%T", target))

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return &config.DeserializationError{Err: errors.New("target must be a non-nil pointer")}
	}
	schema, err := config.SchemaOf(target)
	if err != nil {
		return &config.DeserializationError{Err: err}
	}
	if err := schema.Check(values, c.ignoreUnknown); err != nil {
		return err
	}

	structVal = structVal.Elem()
	structType := structVal.Type()
	for i := 0; i < structType.NumField(); i++ {
		fieldDef := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldDef.IsExported() || !fieldVal.CanSet() {
			continue
		}

		tagName := strings.Split(fieldDef.Tag.Get("cty"), ",")[0]
		if tagName == "" || tagName == "-" {
			continue
		}
		val, provided := values[tagName]
		if !provided {
			continue
		}
		field, _ := schema.Lookup(tagName)

		if err := c.decode(ctx, val, field.Type, fieldVal.Addr().Interface()); err != nil {
			return &config.DeserializationError{Field: tagName, Err: err}
		}
	}
	logger.Debug("Finished config decoding successfully.")
	return nil
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}
