package nativebind

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_ExportsByName(t *testing.T) {
	src := `impl Sprite {
    #[export]
    fn area(&self, _x: i32) {
    }

    fn helper(&self) {
    }
}
`
	result, err := Transform("sprite.nsc", []byte(src))
	require.NoError(t, err)
	out := string(result.Output)

	// exactly one registration call, under the function's string name
	assert.Equal(t, 1, strings.Count(out, `builder.add_method("area", method);`))
	assert.NotContains(t, out, `"helper"`)
	// the unmarked function is reproduced unchanged
	assert.Contains(t, out, "fn helper(&self) {")

	require.Len(t, result.Classes, 1)
	assert.Equal(t, "Sprite", result.Classes[0].Type)
	assert.Equal(t, []string{"area"}, result.Classes[0].Methods)
	assert.Empty(t, result.Rejections)
}

func TestTransform_GenericMethodRejectedRestProceeds(t *testing.T) {
	// the a/b scenario: a exports with its wildcard renamed, b is
	// rejected for its type parameter but stays in the construct
	src := `impl Scene {
    #[export]
    fn a(&self, _: i32) {
    }

    #[export]
    fn b<T>(&self) {
    }
}
`
	result, err := Transform("scene.nsc", []byte(src))
	require.NoError(t, err)
	out := string(result.Output)

	assert.Contains(t, out, `wrap_method!(Scene, fn a(&self, __unused_arg_1: i32));`)
	assert.Contains(t, out, `builder.add_method("a", method);`)
	assert.NotContains(t, out, `"b"`)
	assert.Contains(t, out, "fn b<T>(&self) {")
	assert.NotContains(t, out, "#[export]")

	require.Len(t, result.Rejections, 1)
	rej := result.Rejections[0]
	assert.Equal(t, "Scene", rej.Class)
	assert.Equal(t, "b", rej.Function)
	assert.Equal(t, "type parameters", rej.Category)
	assert.Equal(t, "type parameters not allowed in exported functions", rej.Message)
	assert.Equal(t, "scene.nsc", rej.File)
	assert.Equal(t, 6, rej.Line)

	assert.Equal(t, []string{"a"}, result.Classes[0].Methods)
}

func TestTransform_MutableBindingStripped(t *testing.T) {
	src := `impl Counter {
    #[export]
    fn c(&self, mut y: i32) {
    }
}
`
	result, err := Transform("counter.nsc", []byte(src))
	require.NoError(t, err)
	out := string(result.Output)

	assert.Contains(t, out, `wrap_method!(Counter, fn c(&self, y: i32));`)
	assert.Contains(t, out, `builder.add_method("c", method);`)
	// the declaration itself keeps its mut binding
	assert.Contains(t, out, "fn c(&self, mut y: i32) {")
}

func TestTransform_UnsafeQualifierCleared(t *testing.T) {
	src := `impl Buffer {
    #[export]
    unsafe fn raw_len(&self) -> i64 {
        0
    }
}
`
	result, err := Transform("buffer.nsc", []byte(src))
	require.NoError(t, err)
	out := string(result.Output)

	assert.Contains(t, out, `wrap_method!(Buffer, fn raw_len(&self) -> i64);`)
	// the declaration keeps its qualifier; only the wrapper signature drops it
	assert.Contains(t, out, "unsafe fn raw_len(&self) -> i64 {")
}

func TestTransform_RegistrationOrderFollowsDeclarationOrder(t *testing.T) {
	src := `impl Mixer {
    #[export]
    fn third(&self) {
    }

    #[export]
    fn first(&self) {
    }

    #[export]
    fn second(&self) {
    }
}
`
	result, err := Transform("mixer.nsc", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"third", "first", "second"}, result.Classes[0].Methods)
	out := string(result.Output)
	assert.Less(t, strings.Index(out, `"third"`), strings.Index(out, `"first"`))
	assert.Less(t, strings.Index(out, `"first"`), strings.Index(out, `"second"`))
}

func TestTransform_MarkerRemovalIsIdempotent(t *testing.T) {
	src := `impl Sprite {
    #[export]
    fn area(&self) {
    }
}
`
	first, err := Transform("sprite.nsc", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, 0, strings.Count(string(first.Output), "#[export]"))

	// a second pass over the processed output removes nothing further:
	// no markers remain, the existing registration block is a trait impl
	// the pipeline passes through, and the construct is reproduced as is
	second, err := Transform("sprite.nsc", first.Output)
	require.NoError(t, err)
	assert.Empty(t, second.Rejections)
	assert.Empty(t, second.Classes[0].Methods)
	out := string(second.Output)
	assert.Contains(t, out, "impl Sprite {\n    fn area(&self) {\n    }\n}")

	// the class is still a processed class, so the second pass appends a
	// fresh registration block for its (now empty) export set alongside
	// the one from the first pass; only the first binds the method
	assert.Equal(t, 2, strings.Count(out, "impl NativeClassMethods for Sprite {"))
	assert.Equal(t, 1, strings.Count(out, `builder.add_method("area", method);`))
}

func TestTransform_ParseFailureIsFatal(t *testing.T) {
	src := `impl Broken {
    fn a(&self) {
`
	result, err := Transform("broken.nsc", []byte(src))
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestTransform_FileWithoutClasses(t *testing.T) {
	src := "// just a comment\nstruct Nothing;\n"
	result, err := Transform("empty.nsc", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, src, string(result.Output))
	assert.Empty(t, result.Classes)
}

func TestTransform_DeterministicOutput(t *testing.T) {
	src := `impl A {
    #[export]
    fn a(&self, _x: i32, _y: i32) {
    }
}
`
	first, err := Transform("a.nsc", []byte(src))
	require.NoError(t, err)
	second, err := Transform("a.nsc", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, first.Output, second.Output)
}
