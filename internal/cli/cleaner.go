package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/scriptforge/nativebind/internal/errors"
)

// Cleaner removes previously generated output files
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanGeneratedFiles deletes every *.gen.nsc file the path arguments
// resolve to and returns the deleted paths
func (c *Cleaner) CleanGeneratedFiles(args []string) ([]string, error) {
	var removed []string
	for _, arg := range args {
		root := arg
		recursive := false
		if strings.HasSuffix(arg, "/...") {
			recursive = true
			root = strings.TrimSuffix(arg, "/...")
			if root == "" {
				root = "."
			}
		}

		info, err := os.Stat(root)
		if err != nil {
			return removed, errors.WrapFileSystemError("stat", root, err)
		}
		if !info.IsDir() {
			if strings.HasSuffix(root, GeneratedSuffix) {
				if err := os.Remove(root); err != nil {
					return removed, errors.WrapFileSystemError("remove", root, err)
				}
				removed = append(removed, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, GeneratedSuffix) {
				if err := os.Remove(path); err != nil {
					return err
				}
				removed = append(removed, path)
			}
			return nil
		})
		if err != nil {
			return removed, errors.WrapFileSystemError("clean", root, err)
		}
	}
	return removed, nil
}
