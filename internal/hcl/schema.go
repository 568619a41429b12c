// This file parses schema descriptor files: HCL bodies whose attributes map
// field names to type constraints (e.g. `left = number`,
// `tags = optional(list(string))`, `owner = object({ name = string })`).

package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/orfile/internal/config"
	"github.com/specialistvlad/orfile/internal/ctxlog"
)

// LoadSchema reads a schema descriptor file. Fields keep their source order.
func LoadSchema(ctx context.Context, path string) (*config.Schema, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &config.IoError{Path: path, Err: err}
	}
	return ParseSchema(ctx, src, path)
}

// ParseSchema parses schema descriptor source. filename is used in diagnostics.
func ParseSchema(ctx context.Context, src []byte, filename string) (*config.Schema, error) {
	logger := ctxlog.FromContext(ctx).With("schema", filename)

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, &config.ParseError{Path: filename, Err: diags}
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, &config.ParseError{Path: filename, Err: diags}
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	schema := config.NewSchema()
	for _, attr := range ordered {
		expr, optional := unwrapOptional(attr.Expr)
		// Nested object attributes may use optional(...) too; typeexpr
		// handles those.
		ty, diags := typeexpr.TypeConstraint(expr)
		if diags.HasErrors() {
			return nil, &config.ParseError{Path: filename, Err: fmt.Errorf("field '%s': %w", attr.Name, diags)}
		}
		if optional {
			schema.Optional(attr.Name, ty)
		} else {
			schema.Required(attr.Name, ty)
		}
		logger.Debug("Parsed schema field.", "field", attr.Name, "type", typeexpr.TypeString(ty), "optional", optional)
	}
	return schema, nil
}

// unwrapOptional strips an outer optional(...) call.
func unwrapOptional(expr hcl.Expression) (hcl.Expression, bool) {
	call, ok := expr.(*hclsyntax.FunctionCallExpr)
	if !ok || call.Name != "optional" || len(call.Args) != 1 {
		return expr, false
	}
	return call.Args[0], true
}
