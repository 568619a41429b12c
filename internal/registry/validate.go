package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/specialistvlad/orfile/internal/ctxlog"
	"github.com/specialistvlad/orfile/internal/orfile"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry performs a parity check on every registered argument
// struct: each `flag` field must carry a matching `cty` key so that "where"
// and "using" modes accept the same names, and each `cty` field must have a
// type the layered resolver can decode into.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.CommandNames() {
		cmd := r.commands[name]
		if cmd.Run == nil {
			errs = append(errs, fmt.Sprintf("command '%s': no Run function", name))
		}
		if cmd.NewInput == nil {
			continue
		}
		errs = append(errs, checkInput("command", name, cmd.NewInput(), true)...)
	}

	for _, name := range r.selectionOrder {
		sel := r.selections[name]
		if strcase.ToKebab(name) != name {
			errs = append(errs, fmt.Sprintf("selection '%s': name must be kebab-case, e.g. '%s'", name, strcase.ToKebab(name)))
		}
		if sel.Run == nil {
			errs = append(errs, fmt.Sprintf("selection '%s': no Run function", name))
		}
		if sel.NewInput == nil {
			errs = append(errs, fmt.Sprintf("selection '%s': no NewInput function", name))
			continue
		}
		errs = append(errs, checkInput("selection", name, sel.NewInput(), false)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validated.", "commands", len(r.commands), "selections", len(r.selections))
	return nil
}

func checkInput(kind, name string, input any, layered bool) []string {
	rt := reflect.TypeOf(input)
	if rt == nil || rt.Kind() != reflect.Ptr || rt.Elem().Kind() != reflect.Struct {
		return []string{fmt.Sprintf("%s '%s': NewInput must return a pointer to a struct, got %v", kind, name, rt)}
	}
	rt = rt.Elem()
	if !layered {
		return nil
	}

	var errs []string
	groups := orfile.ConfigGroups(rt)
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.IsExported() && orfile.IsConfigGroup(field) && field.Type.Kind() != reflect.Struct {
			errs = append(errs, fmt.Sprintf("%s '%s', field '%s': config group must be a struct, got %s",
				kind, name, field.Name, field.Type))
		}
	}
	if len(groups) == 0 {
		return append(errs, checkLayeredFields(kind, name, rt)...)
	}
	// With config groups, only the group fields go through the resolver;
	// the other flags of the wrapper stay plain flags.
	for _, g := range groups {
		errs = append(errs, checkLayeredFields(kind, name, g.Type)...)
	}
	return errs
}

// checkLayeredFields checks that each flag field of rt can also be supplied
// through the layered resolver.
func checkLayeredFields(kind, name string, rt reflect.Type) []string {
	var errs []string
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		flagName := field.Tag.Get("flag")
		if flagName == "" || flagName == "-" {
			continue
		}

		ctyName, _, _ := strings.Cut(field.Tag.Get("cty"), ",")
		want := strings.ReplaceAll(flagName, "-", "_")
		if ctyName != want {
			errs = append(errs, fmt.Sprintf("%s '%s', field '%s': flag '%s' needs cty key '%s', found '%s'",
				kind, name, field.Name, flagName, want, ctyName))
			continue
		}
		if _, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface()); err != nil {
			errs = append(errs, fmt.Sprintf("%s '%s', field '%s': could not imply cty type from Go field type %s: %v",
				kind, name, field.Name, field.Type, err))
		}
	}
	return errs
}
