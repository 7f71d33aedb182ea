// Package transform implements the middle of the pipeline: classifying
// members by export marker, then validating and normalizing the
// signatures that are to be registered. Both stages are pure: they
// return their diagnostics as values and never touch process output.
package transform

import "github.com/scriptforge/nativebind/internal/models"

// Partition is the result of one classification pass over a class:
// every member is either exported (it carried the marker, now removed)
// or plain. Member order is preserved in both lists and in the class
// itself.
type Partition struct {
	Class *models.ClassImpl

	// Exported holds a worklist snapshot per marked function, taken
	// after marker removal. The snapshots are independent copies;
	// later normalization never mutates the class.
	Exported []models.ExportCandidate

	// Plain indexes the members that pass through untouched.
	Plain []int

	// RemovedSpans are the byte ranges of the removed marker
	// attributes; the emitter drops exactly these from the output.
	RemovedSpans []models.Span
}

// FilterExports partitions the members of class in a single pass.
//
// A function is exported when it carries at least one outer-style
// attribute whose path ends in "export"; only the first such attribute
// is removed (any later ones stay, as do all other attributes). Inner
// attributes, unmarked functions and non-function members pass through
// untouched in their original positions. This stage cannot fail:
// absence of the marker just means "not exported".
func FilterExports(class *models.ClassImpl) *Partition {
	p := &Partition{Class: class}
	for i := range class.Members {
		m := &class.Members[i]
		if m.Kind != models.FunctionMember {
			p.Plain = append(p.Plain, i)
			continue
		}
		idx := markerIndex(m.Attributes)
		if idx < 0 {
			p.Plain = append(p.Plain, i)
			continue
		}
		marker := m.Attributes[idx]
		m.Attributes = append(m.Attributes[:idx], m.Attributes[idx+1:]...)
		p.RemovedSpans = append(p.RemovedSpans, marker.Span)
		p.Exported = append(p.Exported, models.ExportCandidate{
			TypePath:  class.TypePath,
			Signature: m.Signature.Clone(),
			Line:      m.Line,
		})
	}
	return p
}

// markerIndex returns the position of the first export marker in attrs,
// or -1
func markerIndex(attrs []models.Attribute) int {
	for i, a := range attrs {
		if a.IsExportMarker() {
			return i
		}
	}
	return -1
}
