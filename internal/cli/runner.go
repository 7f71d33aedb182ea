// Package cli wires the transformation pipeline to the command line:
// discovering script sources, running each through the transform, and
// reporting rejections and failures.
package cli

import (
	"os"

	"github.com/scriptforge/nativebind/internal/errors"
	"github.com/scriptforge/nativebind/pkg/nativebind"
)

// Runner processes script files end to end.
type Runner struct {
	scanner  *SourceScanner
	reporter *DiagnosticReporter

	// Check runs the pipeline and reports without writing output.
	Check bool
}

// Summary aggregates the results of one run.
type Summary struct {
	FilesProcessed   int
	ClassesProcessed int
	MethodsExported  int
	Rejections       int
	GeneratedFiles   []string
}

// NewRunner creates a runner reporting through the given reporter
func NewRunner(reporter *DiagnosticReporter) *Runner {
	return &Runner{
		scanner:  NewSourceScanner(),
		reporter: reporter,
	}
}

// Process transforms every script file the path arguments resolve to.
// Rejections are reported and counted but never fail the run; the first
// parse or write failure aborts it.
func (r *Runner) Process(args []string) (*Summary, error) {
	files, err := r.scanner.ScanPaths(args)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapFileSystemError("read", path, err)
		}

		result, err := nativebind.Transform(path, src)
		if err != nil {
			return nil, err
		}

		for _, rej := range result.Rejections {
			r.reporter.ReportRejection(rej)
		}
		summary.FilesProcessed++
		summary.Rejections += len(result.Rejections)
		summary.ClassesProcessed += len(result.Classes)
		for _, class := range result.Classes {
			summary.MethodsExported += len(class.Methods)
		}

		if r.Check {
			continue
		}
		outPath := OutputPath(path)
		if err := os.WriteFile(outPath, result.Output, 0o644); err != nil {
			return nil, errors.WrapFileSystemError("write", outPath, err)
		}
		summary.GeneratedFiles = append(summary.GeneratedFiles, outPath)
		r.reporter.Info("%s -> %s", path, outPath)
	}
	return summary, nil
}
