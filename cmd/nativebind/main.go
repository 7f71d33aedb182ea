package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/scriptforge/nativebind/internal/cli"
)

func main() {
	var (
		checkFlag   = flag.Bool("check", false, "Run the pipeline and report without writing output files")
		cleanFlag   = flag.Bool("clean", false, "Delete all *.gen.nsc files from the specified paths")
		verboseFlag = flag.Bool("verbose", false, "Enable detailed diagnostic output")
		quietFlag   = flag.Bool("quiet", false, "Only show warnings and errors")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "nativebind - script class export transformer\n")
		fmt.Fprintf(os.Stderr, "Strips #[export] markers from class impl blocks, validates the exported\n")
		fmt.Fprintf(os.Stderr, "signatures and emits the registration block binding each accepted method\n")
		fmt.Fprintf(os.Stderr, "to the host runtime's ClassBuilder under its name.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  paths    Script files (*.nsc), directories, or dir/... patterns\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./scripts/...            # Transform every script recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s player.nsc enemy.nsc     # Transform specific files\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --check ./scripts        # Report rejections, write nothing\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./scripts/...    # Delete generated output\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	reporter := cli.NewDiagnosticReporter(*verboseFlag, *quietFlag)

	if *cleanFlag {
		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(args)
		if err != nil {
			reporter.ReportError(err)
			os.Exit(1)
		}
		reporter.Success("Removed %d generated file(s)", len(removed))
		return
	}

	runner := cli.NewRunner(reporter)
	runner.Check = *checkFlag

	summary, err := runner.Process(args)
	if err != nil {
		reporter.ReportError(err)
		os.Exit(1)
	}

	if summary.Rejections > 0 {
		reporter.Info("%d function(s) were not exported; see warnings above", summary.Rejections)
	}
	reporter.Success("Processed %d file(s): %d class(es), %d method(s) exported",
		summary.FilesProcessed, summary.ClassesProcessed, summary.MethodsExported)
}
