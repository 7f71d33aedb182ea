package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptforge/nativebind/internal/models"
)

func candidate(sig *models.Signature, line int) models.ExportCandidate {
	return models.ExportCandidate{TypePath: "Player", Signature: sig, Line: line}
}

func TestValidateAndNormalize_RejectsGenerics(t *testing.T) {
	tests := []struct {
		name     string
		generics []models.GenericParam
		category models.RejectionCategory
	}{
		{"type parameter", []models.GenericParam{{Kind: models.TypeParam, Name: "T"}}, models.TypeParamCategory},
		{"lifetime parameter", []models.GenericParam{{Kind: models.LifetimeParam, Name: "a"}}, models.LifetimeCategory},
		{"const parameter", []models.GenericParam{{Kind: models.ConstParam, Name: "N"}}, models.ConstParamCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := &models.Signature{Name: "f", Generics: tt.generics}
			set, rejections := ValidateAndNormalize("a.nsc", "Player", []models.ExportCandidate{candidate(sig, 7)})

			assert.Empty(t, set.Methods)
			require.Len(t, rejections, 1)
			assert.Equal(t, "Player", rejections[0].Class)
			assert.Equal(t, "f", rejections[0].Function)
			assert.Equal(t, tt.category, rejections[0].Category)
			assert.Equal(t, "a.nsc", rejections[0].File)
			assert.Equal(t, 7, rejections[0].Line)
		})
	}
}

func TestValidateAndNormalize_CategoryOrder(t *testing.T) {
	// a signature with every generic kind is rejected for its type
	// parameters: the categories are checked type, lifetime, const
	sig := &models.Signature{
		Name: "f",
		Generics: []models.GenericParam{
			{Kind: models.ConstParam, Name: "N"},
			{Kind: models.LifetimeParam, Name: "a"},
			{Kind: models.TypeParam, Name: "T"},
		},
	}
	_, rejections := ValidateAndNormalize("a.nsc", "A", []models.ExportCandidate{candidate(sig, 1)})
	require.Len(t, rejections, 1)
	assert.Equal(t, models.TypeParamCategory, rejections[0].Category)
}

func TestValidateAndNormalize_RejectionDoesNotStopTheWorklist(t *testing.T) {
	generic := &models.Signature{Name: "b", Generics: []models.GenericParam{{Kind: models.TypeParam, Name: "T"}}}
	plain := &models.Signature{Name: "a", Params: []models.Param{{Receiver: true, Raw: "&self"}}}
	after := &models.Signature{Name: "c", Params: []models.Param{{Receiver: true, Raw: "&self"}}}

	set, rejections := ValidateAndNormalize("a.nsc", "A", []models.ExportCandidate{
		candidate(plain, 1),
		candidate(generic, 5),
		candidate(after, 9),
	})

	require.Len(t, rejections, 1)
	assert.Equal(t, "b", rejections[0].Function)
	require.Len(t, set.Methods, 2)
	assert.Equal(t, "a", set.Methods[0].Name)
	assert.Equal(t, "c", set.Methods[1].Name)
}

func TestValidateAndNormalize_WildcardsGetUniqueNames(t *testing.T) {
	sig := &models.Signature{
		Name: "f",
		Params: []models.Param{
			{Receiver: true, Raw: "&self"},
			{Pattern: models.Pattern{Kind: models.WildcardPattern}, Type: "i32"},
			{Pattern: models.Pattern{Kind: models.IdentPattern, Name: "x"}, Type: "i32"},
			{Pattern: models.Pattern{Kind: models.WildcardPattern}, Type: "f32"},
		},
	}

	set, rejections := ValidateAndNormalize("a.nsc", "A", []models.ExportCandidate{candidate(sig, 1)})
	require.Empty(t, rejections)
	require.Len(t, set.Methods, 1)

	params := set.Methods[0].Params
	assert.Equal(t, "__unused_arg_1", params[1].Pattern.Name)
	assert.Equal(t, models.IdentPattern, params[1].Pattern.Kind)
	assert.Equal(t, "x", params[2].Pattern.Name)
	assert.Equal(t, "__unused_arg_3", params[3].Pattern.Name)
	assert.NotEqual(t, params[1].Pattern.Name, params[3].Pattern.Name)
}

func TestValidateAndNormalize_MutabilityStripped(t *testing.T) {
	sig := &models.Signature{
		Name: "c",
		Params: []models.Param{
			{Receiver: true, Raw: "&self"},
			{Pattern: models.Pattern{Kind: models.IdentPattern, Name: "y", Mutable: true}, Type: "i32"},
		},
	}

	set, _ := ValidateAndNormalize("a.nsc", "A", []models.ExportCandidate{candidate(sig, 1)})
	require.Len(t, set.Methods, 1)
	p := set.Methods[0].Params[1]
	assert.Equal(t, "y", p.Pattern.Name)
	assert.False(t, p.Pattern.Mutable)
}

func TestValidateAndNormalize_OtherPatternsPassThrough(t *testing.T) {
	sig := &models.Signature{
		Name: "f",
		Params: []models.Param{
			{Pattern: models.Pattern{Kind: models.OtherPattern, Raw: "(a, b)"}, Type: "(i32, i32)"},
		},
	}

	set, _ := ValidateAndNormalize("a.nsc", "A", []models.ExportCandidate{candidate(sig, 1)})
	require.Len(t, set.Methods, 1)
	assert.Equal(t, models.OtherPattern, set.Methods[0].Params[0].Pattern.Kind)
	assert.Equal(t, "(a, b)", set.Methods[0].Params[0].Pattern.Raw)
}

func TestValidateAndNormalize_UnsafetyCleared(t *testing.T) {
	sig := &models.Signature{Name: "raw", Unsafe: true}

	set, _ := ValidateAndNormalize("a.nsc", "A", []models.ExportCandidate{candidate(sig, 1)})
	require.Len(t, set.Methods, 1)
	assert.False(t, set.Methods[0].Unsafe)
}

func TestValidateAndNormalize_ReceiverUntouched(t *testing.T) {
	sig := &models.Signature{
		Name:   "f",
		Params: []models.Param{{Receiver: true, Raw: "&mut self"}},
	}

	set, _ := ValidateAndNormalize("a.nsc", "A", []models.ExportCandidate{candidate(sig, 1)})
	require.Len(t, set.Methods, 1)
	assert.Equal(t, "&mut self", set.Methods[0].Params[0].Raw)
}

func TestValidateAndNormalize_EmptyWorklist(t *testing.T) {
	set, rejections := ValidateAndNormalize("a.nsc", "A", nil)
	assert.Equal(t, "A", set.TypePath)
	assert.Empty(t, set.Methods)
	assert.Empty(t, rejections)
}

func TestRejection_Message(t *testing.T) {
	r := models.Rejection{Category: models.TypeParamCategory}
	assert.Equal(t, "type parameters not allowed in exported functions", r.Message())
}
