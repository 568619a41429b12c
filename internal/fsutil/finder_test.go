package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	for _, name := range []string{"b.json", "a.HCL", "notes.txt", "sub/c.hcl", "sub/deeper/d.json"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	}

	// --- Act ---
	got, err := FindFilesByExtension(root, ".json", ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.HCL"),
		filepath.Join(root, "b.json"),
		filepath.Join(root, "sub", "c.hcl"),
		filepath.Join(root, "sub", "deeper", "d.json"),
	}, got)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".json")

	require.Error(t, err)
}

func TestFindFilesByExtension_RequiresExtension(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir()) })
}
