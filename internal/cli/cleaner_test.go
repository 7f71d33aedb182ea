package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanGeneratedFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.nsc"), "")
	writeFile(t, filepath.Join(dir, "a.gen.nsc"), "")
	writeFile(t, filepath.Join(dir, "sub", "b.gen.nsc"), "")

	removed, err := NewCleaner().CleanGeneratedFiles([]string{dir})
	require.NoError(t, err)

	// non-recursive: the nested file survives
	assert.Equal(t, []string{filepath.Join(dir, "a.gen.nsc")}, removed)
	assert.FileExists(t, filepath.Join(dir, "a.nsc"))
	assert.FileExists(t, filepath.Join(dir, "sub", "b.gen.nsc"))
}

func TestCleanGeneratedFiles_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.gen.nsc"), "")
	writeFile(t, filepath.Join(dir, "sub", "b.gen.nsc"), "")

	removed, err := NewCleaner().CleanGeneratedFiles([]string{dir + "/..."})
	require.NoError(t, err)

	assert.Len(t, removed, 2)
	assert.NoFileExists(t, filepath.Join(dir, "a.gen.nsc"))
	assert.NoFileExists(t, filepath.Join(dir, "sub", "b.gen.nsc"))
}

func TestCleanGeneratedFiles_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	generated := filepath.Join(dir, "a.gen.nsc")
	source := filepath.Join(dir, "a.nsc")
	writeFile(t, generated, "")
	writeFile(t, source, "")

	removed, err := NewCleaner().CleanGeneratedFiles([]string{generated, source})
	require.NoError(t, err)

	// only generated files are ever deleted
	assert.Equal(t, []string{generated}, removed)
	assert.FileExists(t, source)
}
