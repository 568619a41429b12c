package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		flag     string
		expected []string
	}{
		{
			name:     "long prefixed pairs",
			args:     []string{"--add.left", "1", "--add.right", "2", "--multiply.left", "3"},
			flag:     "add",
			expected: []string{"--left", "1", "--right", "2"},
		},
		{
			name:     "other flag from the same list",
			args:     []string{"--add.left", "1", "--add.right", "2", "--multiply.left", "3"},
			flag:     "multiply",
			expected: []string{"--left", "3"},
		},
		{
			name:     "short prefix keeps a single dash",
			args:     []string{"-add.left", "1"},
			flag:     "add",
			expected: []string{"-left", "1"},
		},
		{
			name:     "inline value",
			args:     []string{"--add.left=1"},
			flag:     "add",
			expected: []string{"--left=1"},
		},
		{
			name:     "next token starting with a dash is not taken as a value",
			args:     []string{"--add.verbose", "--add.left", "-1"},
			flag:     "add",
			expected: []string{"--verbose", "--left"},
		},
		{
			name:     "non-matching tokens are dropped",
			args:     []string{"stray", "--left", "1", "--addx.left", "2", "--add", "3"},
			flag:     "add",
			expected: []string{},
		},
		{
			name:     "value is only taken right after a routed flag",
			args:     []string{"--multiply.left", "3", "--add.left", "1", "4"},
			flag:     "add",
			expected: []string{"--left", "1"},
		},
		{
			name:     "flag name with a dash",
			args:     []string{"--kebab-divide.left", "8"},
			flag:     "kebab-divide",
			expected: []string{"--left", "8"},
		},
		{
			name:     "empty input",
			args:     nil,
			flag:     "add",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Partition(tc.args, tc.flag)

			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Partition() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPartition_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	args := []string{"--add.left", "1", "--multiply.left", "3"}
	snapshot := append([]string(nil), args...)

	_ = Partition(args, "add")

	require.Equal(t, snapshot, args)
}

func TestPartition_IsDeterministic(t *testing.T) {
	t.Parallel()

	args := []string{"--add.left", "1", "x", "--add.right", "2"}

	require.Equal(t, Partition(args, "add"), Partition(args, "add"))
}

func TestPartition_NeverIncludesForeignTokens(t *testing.T) {
	t.Parallel()

	args := []string{"--multiply.left", "3", "--multiply.right", "4", "loose"}

	require.Empty(t, Partition(args, "add"))
}
