package orfile

import (
	"reflect"

	"github.com/iancoleman/strcase"
)

// ConfigTag is the struct tag that marks a config group: `orfile:"config"`.
const ConfigTag = "orfile"

// ConfigGroup describes one struct field tagged `orfile:"config"`.
type ConfigGroup struct {
	// Field is the Go field name.
	Field string
	// PathFlag is the "using" mode file flag, e.g. "args-path" for Args.
	PathFlag string
	// Type is the field's struct type.
	Type reflect.Type

	index int
}

func (g ConfigGroup) addr(target any) any {
	return reflect.ValueOf(target).Elem().Field(g.index).Addr().Interface()
}

// IsConfigGroup reports whether f is tagged `orfile:"config"`.
func IsConfigGroup(f reflect.StructField) bool {
	return f.Tag.Get(ConfigTag) == "config"
}

// ConfigGroups lists the exported struct fields of t tagged
// `orfile:"config"`, in declaration order. Tagged fields that are not
// structs are skipped.
func ConfigGroups(t reflect.Type) []ConfigGroup {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var groups []ConfigGroup
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || !IsConfigGroup(f) || f.Type.Kind() != reflect.Struct {
			continue
		}
		groups = append(groups, ConfigGroup{
			Field:    f.Name,
			PathFlag: strcase.ToKebab(f.Name) + "-path",
			Type:     f.Type,
			index:    i,
		})
	}
	return groups
}
