package hcl

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/orfile/internal/config"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParseSchema(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := `
		left   = number
		right  = number
		label  = optional(string)
		tags   = optional(list(string))
		limits = map(number)
		owner  = object({ name = string, email = optional(string) })
		pairs  = tuple([string, number])
		blob   = any
	`

	// --- Act ---
	schema, err := ParseSchema(context.Background(), []byte(src), "schema.hcl")

	// --- Assert ---
	require.NoError(t, err)
	want := []config.Field{
		{Name: "left", Type: cty.Number, Required: true},
		{Name: "right", Type: cty.Number, Required: true},
		{Name: "label", Type: cty.String},
		{Name: "tags", Type: cty.List(cty.String)},
		{Name: "limits", Type: cty.Map(cty.Number), Required: true},
		{Name: "owner", Type: cty.ObjectWithOptionalAttrs(
			map[string]cty.Type{"name": cty.String, "email": cty.String}, []string{"email"}), Required: true},
		{Name: "pairs", Type: cty.Tuple([]cty.Type{cty.String, cty.Number}), Required: true},
		{Name: "blob", Type: cty.DynamicPseudoType, Required: true},
	}
	got := schema.Fields()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Name, got[i].Name)
		require.Equal(t, want[i].Required, got[i].Required, "field %s", want[i].Name)
		require.True(t, want[i].Type.Equals(got[i].Type), "field %s: want %s got %s",
			want[i].Name, want[i].Type.FriendlyName(), got[i].Type.FriendlyName())
	}
}

func TestParseSchema_Errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"unknown primitive":   `left = integer`,
		"unknown constructor": `left = vector(string)`,
		"tuple without list":  `left = tuple(string)`,
		"quoted object key":   `left = object({ "e-mail" = string })`,
		"optional default":    `left = object({ name = optional(string, "x") })`,
		"bad object argument": `left = object(string)`,
		"literal value":       `left = 5`,
		"syntax error":        `left = `,
	}

	for name, src := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseSchema(context.Background(), []byte(src), "schema.hcl")

			var parseErr *config.ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
		})
	}
}

func TestLoadSchema_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadSchema(context.Background(), "/definitely/not/here.hcl")

	var ioErr *config.IoError
	require.ErrorAs(t, err, &ioErr)
}
