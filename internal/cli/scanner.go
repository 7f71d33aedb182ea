package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scriptforge/nativebind/internal/errors"
)

// ScriptExt is the extension of the script sources the tool processes.
const ScriptExt = ".nsc"

// GeneratedSuffix marks transformer output files; discovery skips them
// so already-processed output is never picked up as input.
const GeneratedSuffix = ".gen" + ScriptExt

// SourceScanner resolves the CLI's path arguments into the concrete
// list of script files to process
type SourceScanner struct{}

// NewSourceScanner creates a new source scanner
func NewSourceScanner() *SourceScanner {
	return &SourceScanner{}
}

// ScanPaths expands the given arguments into script file paths.
// Arguments may be files, directories (scanned non-recursively), or
// Go-style "dir/..." patterns (scanned recursively). The result is
// sorted and duplicate-free so processing order is deterministic.
func (s *SourceScanner) ScanPaths(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		recursive := false
		if strings.HasSuffix(arg, "/...") {
			recursive = true
			arg = strings.TrimSuffix(arg, "/...")
			if arg == "" {
				arg = "."
			}
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", arg, err)
		}

		if !info.IsDir() {
			add(arg)
			continue
		}

		if recursive {
			err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isScriptSource(path) {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, errors.WrapFileSystemError("walk", arg, err)
			}
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, errors.WrapFileSystemError("read", arg, err)
		}
		for _, e := range entries {
			if !e.IsDir() && isScriptSource(e.Name()) {
				add(filepath.Join(arg, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func isScriptSource(path string) bool {
	return strings.HasSuffix(path, ScriptExt) && !strings.HasSuffix(path, GeneratedSuffix)
}

// OutputPath returns where the transformed form of a script file is
// written: its name with the generated suffix, next to the input.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, ScriptExt) + GeneratedSuffix
}
