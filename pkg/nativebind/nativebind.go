// Package nativebind exposes the source transformation pipeline as a
// library: parse a script source, strip export markers, validate and
// normalize the exported signatures, and splice in the registration
// blocks that bind the accepted methods to the host runtime's
// ClassBuilder by name.
//
// The pipeline is referentially transparent: rejection diagnostics come
// back in the Result instead of being written anywhere, so callers can
// decide how (and whether) to report them. The only returned error is
// the fatal one - the input failed to parse - in which case no partial
// output exists.
//
// Marker removal is idempotent: a second pass over transformed output
// finds no markers and removes nothing. The emission step is not - every
// processed class gets a registration block, so re-transforming output
// appends a second, empty block per class. The CLI never feeds output
// back in (generated files carry a distinct suffix that discovery
// skips); library callers handing output back to Transform get the
// extra block.
//
// Known limitation: parameters bound by destructuring or reference
// patterns are neither validated nor normalized; they pass through to
// the registration block exactly as written.
package nativebind

import (
	"github.com/scriptforge/nativebind/internal/generator"
	"github.com/scriptforge/nativebind/internal/parser"
	"github.com/scriptforge/nativebind/internal/transform"
)

// Rejection reports one marked function whose signature is
// structurally incompatible with export. The function stays in the
// output construct, unexported; the rest of the file is unaffected.
type Rejection struct {
	Class    string
	Function string
	Category string // "type parameters", "lifetime parameters" or "const parameters"
	File     string
	Line     int
	Message  string
}

// ClassExport summarizes one processed class: the methods registered
// for it, in registration order.
type ClassExport struct {
	Type    string
	Methods []string
}

// Result is the outcome of transforming one source file.
type Result struct {
	Output     []byte
	Classes    []ClassExport
	Rejections []Rejection
}

// Transform runs the full pipeline over one source file. Every class
// implementation block in the file is processed independently; text
// outside the blocks, trait implementation blocks included, passes
// through verbatim.
func Transform(filename string, src []byte) (*Result, error) {
	file, err := parser.ParseFile(filename, src)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	var results []*generator.ClassResult
	for _, class := range file.Classes {
		part := transform.FilterExports(class)
		set, rejections := transform.ValidateAndNormalize(filename, class.TypePath, part.Exported)
		for _, r := range rejections {
			res.Rejections = append(res.Rejections, Rejection{
				Class:    r.Class,
				Function: r.Function,
				Category: r.Category.String(),
				File:     r.File,
				Line:     r.Line,
				Message:  r.Message(),
			})
		}
		export := ClassExport{Type: class.TypePath}
		for _, m := range set.Methods {
			export.Methods = append(export.Methods, m.Name)
		}
		res.Classes = append(res.Classes, export)
		results = append(results, &generator.ClassResult{
			Class:   class,
			Removed: part.RemovedSpans,
			Exports: set,
		})
	}

	out, err := generator.NewGenerator().GenerateFile(file, results)
	if err != nil {
		return nil, err
	}
	res.Output = out
	return res, nil
}
