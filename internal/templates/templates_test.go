package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptforge/nativebind/internal/models"
)

func TestRenderRegistration(t *testing.T) {
	set := &models.ExportSet{
		TypePath: "Sprite",
		Methods: []*models.Signature{
			{
				Name: "area",
				Params: []models.Param{
					{Receiver: true, Raw: "&self"},
					{Pattern: models.Pattern{Kind: models.IdentPattern, Name: "height"}, Type: "f32"},
				},
				Return: "f32",
			},
			{
				Name:   "reset",
				Params: []models.Param{{Receiver: true, Raw: "&mut self"}},
			},
		},
	}

	out, err := RenderRegistration(set)
	require.NoError(t, err)

	expected := `impl NativeClassMethods for Sprite {
    fn register(builder: &ClassBuilder<Self>) {
        {
            let method = wrap_method!(Sprite, fn area(&self, height: f32) -> f32);
            builder.add_method("area", method);
        }
        {
            let method = wrap_method!(Sprite, fn reset(&mut self));
            builder.add_method("reset", method);
        }
    }
}
`
	assert.Equal(t, expected, out)
}

func TestRenderRegistration_EmptySet(t *testing.T) {
	out, err := RenderRegistration(&models.ExportSet{TypePath: "Empty"})
	require.NoError(t, err)

	expected := `impl NativeClassMethods for Empty {
    fn register(builder: &ClassBuilder<Self>) {
    }
}
`
	assert.Equal(t, expected, out)
}

func TestRenderRegistration_OrderFollowsDescriptor(t *testing.T) {
	set := &models.ExportSet{
		TypePath: "A",
		Methods: []*models.Signature{
			{Name: "third"},
			{Name: "first"},
			{Name: "second"},
		},
	}
	out, err := RenderRegistration(set)
	require.NoError(t, err)

	a := strings.Index(out, `"third"`)
	b := strings.Index(out, `"first"`)
	c := strings.Index(out, `"second"`)
	assert.True(t, a >= 0 && a < b && b < c)
}
