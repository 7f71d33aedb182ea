// Package templates holds the text templates for the generated
// registration artifact.
package templates

import (
	"bytes"
	"strconv"
	"text/template"

	"github.com/scriptforge/nativebind/internal/errors"
	"github.com/scriptforge/nativebind/internal/models"
)

// The registration block has a fixed two-call contract with the host
// runtime: wrap_method! builds a callable wrapper from the (type,
// signature) pair, and builder.add_method binds it under the function's
// string name. The block is emitted even when no method was accepted,
// so the host can rely on every processed class implementing
// NativeClassMethods.
const registrationTemplate = `impl NativeClassMethods for {{.TypePath}} {
    fn register(builder: &ClassBuilder<Self>) {
{{- range .Methods}}
        {
            let method = wrap_method!({{$.TypePath}}, {{.Decl}});
            builder.add_method({{.Name | quote}}, method);
        }
{{- end}}
    }
}
`

var registration = template.Must(template.New("registration").
	Funcs(template.FuncMap{"quote": strconv.Quote}).
	Parse(registrationTemplate))

type registrationData struct {
	TypePath string
	Methods  []methodData
}

type methodData struct {
	Name string
	Decl string
}

// RenderRegistration renders the registration block for one export
// descriptor. Method order follows the descriptor, which follows
// declaration order filtered by acceptance.
func RenderRegistration(set *models.ExportSet) (string, error) {
	data := registrationData{TypePath: set.TypePath}
	for _, m := range set.Methods {
		data.Methods = append(data.Methods, methodData{
			Name: m.Name,
			Decl: m.Decl(),
		})
	}
	var buf bytes.Buffer
	if err := registration.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError("registration", "execute", err)
	}
	return buf.String(), nil
}
