package arith

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/orfile/internal/registry"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, env ...string) *registry.Registry {
	t.Helper()
	r := registry.New()
	(&Module{Environ: func() []string { return env }}).Register(r)
	require.NoError(t, r.ValidateRegistry(context.Background()))
	return r
}

func TestModule_Commands(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "add.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"right": 7}`), 0o600))

	testCases := []struct {
		name      string
		command   string
		env       []string
		args      []string
		expected  string
		expectErr string
	}{
		{
			name:     "add where",
			command:  "add",
			args:     []string{"where", "--left", "1", "--right", "2"},
			expected: "add: 3\n",
		},
		{
			name:     "add using every layer",
			command:  "add",
			env:      []string{"ADD_LEFT=5"},
			args:     []string{"using", "--args-path", cfgPath, "--", "--left", "10"},
			expected: "add: 17\n",
		},
		{
			name:     "kebab-divide reads its own prefix",
			command:  "kebab-divide",
			env:      []string{"KEBAB_DIVIDE_LEFT=9", "KEBAB_DIVIDE_RIGHT=2", "DIVIDE_RIGHT=3"},
			args:     []string{"using"},
			expected: "kebab-divide: 4.5\n",
		},
		{
			name:     "add-generic decimals",
			command:  "add-generic",
			args:     []string{"using", "--", "--left", "1.5", "--right", "2"},
			expected: "add-generic: 3.5\n",
		},
		{
			name:     "quiet flag in where mode",
			command:  "multiply",
			args:     []string{"where", "--quiet", "--left", "3", "--right", "4"},
			expected: "12\n",
		},
		{
			name:     "quiet flag next to the config file in using mode",
			command:  "add",
			env:      []string{"ADD_LEFT=1"},
			args:     []string{"using", "--args-path", cfgPath, "--quiet"},
			expected: "8\n",
		},
		{
			name:      "quiet is not a config key",
			command:   "add",
			args:      []string{"using", "--", "--left", "1", "--right", "2", "--quiet", "true"},
			expectErr: "unknown field",
		},
		{
			name:      "fractional operand for an integer operation",
			command:   "add",
			env:       []string{"ADD_RIGHT=1.5"},
			args:      []string{"using", "--", "--left", "1"},
			expectErr: `field "right"`,
		},
		{
			name:      "divide by zero",
			command:   "divide",
			args:      []string{"where", "--left", "1", "--right", "0"},
			expectErr: "divide: division by zero",
		},
		{
			name:      "multiply missing operand",
			command:   "multiply",
			env:       []string{"MULTIPLY_LEFT=2"},
			args:      []string{"using"},
			expectErr: `field "right"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			cmd, ok := newRegistry(t, tc.env...).Command(tc.command)
			require.True(t, ok)
			var out bytes.Buffer

			// --- Act ---
			err := cmd.Run(context.Background(), tc.args, &out)

			// --- Assert ---
			if tc.expectErr != "" {
				require.ErrorContains(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, out.String())
		})
	}
}

func TestModule_Selections(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := newRegistry(t)
	sel := r.Selector()
	extra := []string{"--add.left", "1", "--add.right", "2", "--multiply.left", "3", "--multiply.right", "4"}

	// --- Act ---
	selections, err := sel.Select(context.Background(), []string{"add", "multiply"}, extra)
	require.NoError(t, err)

	var out bytes.Buffer
	for _, name := range selections.Names() {
		target, _ := selections.Get(name)
		entry, ok := r.Selection(name)
		require.True(t, ok)
		require.NoError(t, entry.Run(context.Background(), target, &out))
	}

	// --- Assert ---
	require.Equal(t, "add: 3\nmultiply: 12\n", out.String())
}

func TestModule_SelectionRejectsForeignInput(t *testing.T) {
	t.Parallel()

	entry, ok := newRegistry(t).Selection("divide")
	require.True(t, ok)

	err := entry.Run(context.Background(), &AddArgs{}, &bytes.Buffer{})

	require.ErrorContains(t, err, "unexpected input type")
}
