// Package generator produces the transformed source: the original file
// with marker attributes spliced out and one registration block
// appended after each processed class implementation block. Everything
// outside the edits is reproduced byte-for-byte from the input.
package generator

import (
	"bytes"
	"sort"
	"strings"

	"github.com/scriptforge/nativebind/internal/errors"
	"github.com/scriptforge/nativebind/internal/models"
	"github.com/scriptforge/nativebind/internal/templates"
)

// ClassResult carries everything the emitter needs for one class: the
// parsed block (for its span), the marker spans the filter removed, and
// the final export descriptor.
type ClassResult struct {
	Class   *models.ClassImpl
	Removed []models.Span
	Exports *models.ExportSet
}

// Generator emits transformed script source.
type Generator struct{}

// NewGenerator creates a new generator
func NewGenerator() *Generator {
	return &Generator{}
}

// edit is one splice against the original bytes: the span is dropped
// and the text inserted in its place. Deletions have empty text;
// insertions have an empty span.
type edit struct {
	span models.Span
	text string
}

// GenerateFile renders the transformed form of one parsed file.
func (g *Generator) GenerateFile(file *models.ScriptFile, results []*ClassResult) ([]byte, error) {
	if file == nil {
		return nil, errors.New(errors.GenerationErrorCode, "file cannot be nil")
	}

	var edits []edit
	for _, r := range results {
		for _, sp := range r.Removed {
			edits = append(edits, edit{span: extendDeletion(file.Source, sp)})
		}
		block, err := templates.RenderRegistration(r.Exports)
		if err != nil {
			return nil, errors.WrapGenerateError("registration block for "+r.Exports.TypePath, err)
		}
		at := r.Class.Span.End
		edits = append(edits, edit{
			span: models.Span{Start: at, End: at},
			text: "\n\n" + strings.TrimRight(block, "\n"),
		})
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].span.Start < edits[j].span.Start
	})

	var out bytes.Buffer
	pos := 0
	for _, e := range edits {
		out.Write(file.Source[pos:e.span.Start])
		out.WriteString(e.text)
		pos = e.span.End
	}
	out.Write(file.Source[pos:])
	return out.Bytes(), nil
}

// extendDeletion widens a removed attribute's span so the splice leaves
// no residue: an attribute alone on its line takes the indentation and
// the newline with it; an attribute sharing a line takes only the
// whitespace that follows it.
func extendDeletion(src []byte, sp models.Span) models.Span {
	lineStart := sp.Start
	for lineStart > 0 && (src[lineStart-1] == ' ' || src[lineStart-1] == '\t') {
		lineStart--
	}
	after := sp.End
	for after < len(src) && (src[after] == ' ' || src[after] == '\t') {
		after++
	}
	ownLine := lineStart == 0 || src[lineStart-1] == '\n'
	if ownLine && after < len(src) && src[after] == '\n' {
		return models.Span{Start: lineStart, End: after + 1}
	}
	return models.Span{Start: sp.Start, End: after}
}
