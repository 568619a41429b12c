package main

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/orfile/internal/selection"
	"github.com/stretchr/testify/require"
)

func TestRun_SeveralSelections(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--add", "--multiply", "--add.left", "1", "--add.right", "2", "--multiply.left", "3", "--multiply.right", "4"}
	var out, errOut bytes.Buffer

	// --- Act ---
	err := run(&out, &errOut, args)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "add: 3\nmultiply: 12\n", out.String())
}

func TestRun_KebabSelection(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	err := run(&out, &errOut, []string{"--kebab-divide", "--", "--kebab-divide.left", "9", "--kebab-divide.right", "3"})

	require.NoError(t, err)
	require.Equal(t, "kebab-divide: 3\n", out.String())
}

func TestRun_DisabledSelectionIsIgnored(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	err := run(&out, &errOut, []string{"--add", "--add.left", "1", "--add.right", "1", "--divide.left", "1"})

	require.NoError(t, err)
	require.Equal(t, "add: 2\n", out.String())
}

func TestRun_SubcommandParseError(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	err := run(&out, &errOut, []string{"--add", "--add.left", "one", "--add.right", "1"})

	var parseErr *selection.SubcommandParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "add", parseErr.Flag)
	require.Empty(t, out.String())
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	err := run(&out, &errOut, []string{"-h"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Selection (1/5): add")
}
