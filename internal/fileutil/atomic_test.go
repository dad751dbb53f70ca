package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "fairplay.hcl")

	require.NoError(t, Write(path, []byte("game {}\n"), 0o600, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "game {}\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
}

func TestWriteRefusesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fairplay.hcl")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	err := Write(path, []byte("replacement"), 0o644, false)
	require.ErrorIs(t, err, ErrExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestWriteOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fairplay.hcl")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))
	require.NoError(t, Write(path, []byte("replacement"), 0o644, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "replacement", string(data))
}

func TestWriteMissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "fairplay.hcl")
	assert.Error(t, Write(path, []byte("x"), 0o644, false))
}
