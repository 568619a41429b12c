package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/orfile/internal/app"
	"github.com/specialistvlad/orfile/internal/selection"
	"github.com/stretchr/testify/require"
)

type pairArgs struct {
	Left  uint64 `flag:"left"`
	Right uint64 `flag:"right"`
}

func newSelector() *selection.Selector {
	return selection.New().
		Bind("add", func() any { return &pairArgs{} }).
		Bind("multiply", func() any { return &pairArgs{} })
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		args       []string
		expected   *app.Config
		shouldExit bool
		exitCode   int
		expectErr  string
	}{
		{
			name: "command with arguments",
			args: []string{"add", "where", "--left", "1"},
			expected: &app.Config{
				LogFormat: "text", LogLevel: "warn",
				Command: "add", Args: []string{"where", "--left", "1"},
			},
		},
		{
			name: "global options before the command",
			args: []string{"--log-level", "DEBUG", "--log-format", "json", "divide", "using"},
			expected: &app.Config{
				LogFormat: "json", LogLevel: "debug",
				Command: "divide", Args: []string{"using"},
			},
		},
		{name: "help", args: []string{"-h"}, shouldExit: true},
		{name: "no command", args: nil, shouldExit: true},
		{name: "unknown option", args: []string{"--bogus"}, exitCode: 2, expectErr: "flag provided but not defined: -bogus"},
		{name: "bad log format", args: []string{"--log-format", "xml", "add"}, exitCode: 2, expectErr: "invalid log-format"},
		{name: "bad log level", args: []string{"--log-level", "loud", "add"}, exitCode: 2, expectErr: "invalid log-level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)

			// --- Assert ---
			require.Equal(t, tc.shouldExit, shouldExit)
			if tc.expectErr != "" {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				require.Equal(t, tc.exitCode, exitErr.Code)
				require.Contains(t, exitErr.Message, tc.expectErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_UsageText(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, shouldExit, err := Parse(nil, &out)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Contains(t, out.String(), "Usage:")
	require.Contains(t, out.String(), "-log-level")
}

func TestParseSelect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		args       []string
		expected   *app.Config
		shouldExit bool
		expectErr  string
	}{
		{
			name: "namespaced arguments without separator",
			args: []string{"--add", "--multiply", "--add.left", "1", "--multiply.left", "3"},
			expected: &app.Config{
				LogFormat: "text", LogLevel: "warn", Select: true,
				Selections: []string{"add", "multiply"},
				Args:       []string{"--add.left", "1", "--multiply.left", "3"},
			},
		},
		{
			name: "namespaced arguments after separator",
			args: []string{"--log-level", "info", "--multiply", "--", "--multiply.left", "3"},
			expected: &app.Config{
				LogFormat: "text", LogLevel: "info", Select: true,
				Selections: []string{"multiply"},
				Args:       []string{"--multiply.left", "3"},
			},
		},
		{name: "nothing enabled", args: []string{"--add.left", "1"}, shouldExit: true},
		{name: "help", args: []string{"--help"}, shouldExit: true},
		{name: "unknown selection", args: []string{"--divide"}, expectErr: "flag provided but not defined: -divide"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			cfg, shouldExit, err := ParseSelect(tc.args, &out, newSelector())

			require.Equal(t, tc.shouldExit, shouldExit)
			if tc.expectErr != "" {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				require.Equal(t, 2, exitErr.Code)
				require.Contains(t, exitErr.Message, tc.expectErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSelect_UsageListsSelections(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, shouldExit, err := ParseSelect(nil, &out, newSelector())

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Contains(t, out.String(), "Selection (1/2): add")
	require.Contains(t, out.String(), "--multiply.right")
}
