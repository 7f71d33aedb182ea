package transform

import (
	"fmt"

	"github.com/scriptforge/nativebind/internal/models"
)

// UnusedArgPrefix is the prefix of identifiers synthesized for wildcard
// parameters. The full name appends the parameter's zero-based position
// (the receiver occupies position 0), which keeps synthesized names
// unique within a signature and free of collisions with user-chosen
// names without any global counter.
const UnusedArgPrefix = "__unused_arg_"

// ValidateAndNormalize runs the worklist through signature validation
// and normalization, producing the final export descriptor and the
// per-function rejections.
//
// A signature declaring any type, lifetime or const generic parameter
// is rejected: the registration mechanism cannot synthesize wrappers
// for generic functions. A rejection only drops that one function from
// the export set - it is reported as a value and the rest of the
// worklist is processed normally. Failing the whole build over one
// unexportable function would be disproportionate.
//
// Accepted signatures are normalized in place on the worklist copy:
// wildcard parameters get a synthesized name so the wrapper has a
// nameable binding, mutable identifier bindings lose the mut marker
// (local mutability lives in the function body, not the outward-facing
// signature), and the unsafety qualifier is cleared because the wrapper
// call site already runs unsafe. Every other pattern form passes
// through unchanged; see the package documentation for this known gap.
func ValidateAndNormalize(file, typePath string, candidates []models.ExportCandidate) (*models.ExportSet, []models.Rejection) {
	set := &models.ExportSet{TypePath: typePath}
	var rejections []models.Rejection
	for _, c := range candidates {
		if cat, ok := disallowedGenerics(c.Signature); ok {
			rejections = append(rejections, models.Rejection{
				Class:    c.TypePath,
				Function: c.Signature.Name,
				Category: cat,
				File:     file,
				Line:     c.Line,
			})
			continue
		}
		set.Methods = append(set.Methods, normalize(c.Signature))
	}
	return set, rejections
}

// disallowedGenerics reports the first offending generic category,
// checked in the fixed order type, lifetime, const.
func disallowedGenerics(sig *models.Signature) (models.RejectionCategory, bool) {
	if sig.TypeParams() > 0 {
		return models.TypeParamCategory, true
	}
	if sig.Lifetimes() > 0 {
		return models.LifetimeCategory, true
	}
	if sig.ConstParams() > 0 {
		return models.ConstParamCategory, true
	}
	return 0, false
}

func normalize(sig *models.Signature) *models.Signature {
	for i := range sig.Params {
		p := &sig.Params[i]
		if p.Receiver {
			continue
		}
		switch p.Pattern.Kind {
		case models.WildcardPattern:
			p.Pattern = models.Pattern{
				Kind: models.IdentPattern,
				Name: fmt.Sprintf("%s%d", UnusedArgPrefix, i),
			}
		case models.IdentPattern:
			p.Pattern.Mutable = false
		}
	}
	sig.Unsafe = false
	return sig
}
