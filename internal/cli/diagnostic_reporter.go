package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/scriptforge/nativebind/internal/errors"
	"github.com/scriptforge/nativebind/pkg/nativebind"
)

// DiagnosticReporter provides user-friendly reporting for the CLI.
// Rejections are warnings: the build goes on without the rejected
// function. Only parse failures are errors.
type DiagnosticReporter struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose, quiet bool) *DiagnosticReporter {
	return &DiagnosticReporter{out: os.Stderr, verbose: verbose, quiet: quiet}
}

// Info prints a progress message unless quiet mode is on
func (r *DiagnosticReporter) Info(format string, args ...interface{}) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Success prints a green final message unless quiet mode is on
func (r *DiagnosticReporter) Success(format string, args ...interface{}) {
	if r.quiet {
		return
	}
	green := color.New(color.FgGreen, color.Bold)
	green.Fprint(r.out, "✓ ")
	fmt.Fprintf(r.out, format+"\n", args...)
}

// ReportRejection prints one per-function rejection as a warning
func (r *DiagnosticReporter) ReportRejection(rej nativebind.Rejection) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s:%d: %s::%s: %s\n", rej.File, rej.Line, rej.Class, rej.Function, rej.Message)
	if r.verbose {
		fmt.Fprintf(r.out, "  the function stays in the output but is not registered with the host runtime\n")
	}
}

// ReportError prints a fatal error with any context the error carries
func (r *DiagnosticReporter) ReportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(r.out, "error: ")
	fmt.Fprintf(r.out, "%s\n", err.Error())

	be, ok := err.(*errors.BaseError)
	if !ok {
		return
	}
	if r.verbose && be.Cause != nil {
		fmt.Fprintf(r.out, "  cause: %s\n", be.Cause.Error())
	}
	if r.verbose {
		for key, value := range be.ContextData {
			fmt.Fprintf(r.out, "  %s: %v\n", key, value)
		}
	}
	if hints := errors.FormatSuggestions(be.Hints); hints != "" {
		fmt.Fprint(r.out, hints)
	}
}
