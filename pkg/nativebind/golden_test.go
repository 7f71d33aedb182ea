package nativebind

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// Golden transform fixtures: each archive holds an input script and the
// exact expected output.
func TestTransform_Golden(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	for _, path := range matches {
		t.Run(filepath.Base(path), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)

			files := make(map[string][]byte)
			for _, f := range archive.Files {
				files[f.Name] = f.Data
			}
			input, ok := files["input.nsc"]
			require.True(t, ok, "archive must contain input.nsc")
			expected, ok := files["output.nsc"]
			require.True(t, ok, "archive must contain output.nsc")

			result, err := Transform("input.nsc", input)
			require.NoError(t, err)
			assert.Equal(t, string(expected), string(result.Output))
		})
	}
}
