package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/scriptforge/nativebind/internal/models"
)

// The signature grammar. The block scanner isolates the text of one fn
// item (qualifiers through return type, body excluded); participle turns
// it into a structured declaration which is then lowered to the model
// types. Pattern forms outside the grammar are a parse error, not a
// silent gap - the gap the normalizer leaves open is for forms the
// grammar does accept (tuple and reference patterns) but does not
// validate.

var sigLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "Lifetime", Pattern: `'[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "PathSep", Pattern: `::`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[<>(),:;&+*\[\]!]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var sigParser = participle.MustBuild[signatureDecl](
	participle.Lexer(sigLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

type signatureDecl struct {
	Pub      bool           `parser:"@'pub'?"`
	Unsafe   bool           `parser:"@'unsafe'?"`
	Name     string         `parser:"'fn' @Ident"`
	Generics []*genericDecl `parser:"('<' @@ (',' @@)* ','? '>')?"`
	Params   []*paramDecl   `parser:"'(' (@@ (',' @@)* ','?)? ')'"`
	Return   *typeDecl      `parser:"(Arrow @@)?"`
}

type genericDecl struct {
	Lifetime *lifetimeDecl  `parser:"@@"`
	Const    *constDecl     `parser:"| @@"`
	Type     *typeParamDecl `parser:"| @@"`
}

type lifetimeDecl struct {
	Name   string   `parser:"@Lifetime"`
	Bounds []string `parser:"(':' @Lifetime ('+' @Lifetime)*)?"`
}

type constDecl struct {
	Name string    `parser:"'const' @Ident ':'"`
	Type *typeDecl `parser:"@@"`
}

type typeParamDecl struct {
	Name   string      `parser:"@Ident"`
	Bounds []*typeDecl `parser:"(':' @@ ('+' @@)*)?"`
}

type paramDecl struct {
	Receiver *receiverDecl `parser:"@@"`
	Binding  *bindingDecl  `parser:"| @@"`
}

type receiverDecl struct {
	Ref  bool `parser:"@'&'?"`
	Mut  bool `parser:"@'mut'?"`
	Self bool `parser:"@'self'"`
}

type bindingDecl struct {
	Pattern *patternDecl `parser:"@@ ':'"`
	Type    *typeDecl    `parser:"@@"`
}

type patternDecl struct {
	Tuple *tuplePatternDecl `parser:"@@"`
	Ref   *refPatternDecl   `parser:"| @@"`
	Bind  *bindPatternDecl  `parser:"| @@"`
}

type tuplePatternDecl struct {
	Elems []*patternDecl `parser:"'(' (@@ (',' @@)* ','?)? ')'"`
}

type refPatternDecl struct {
	Mut   bool         `parser:"'&' @'mut'?"`
	Inner *patternDecl `parser:"@@"`
}

type bindPatternDecl struct {
	Mut  bool   `parser:"@'mut'?"`
	Name string `parser:"@Ident"`
}

type typeDecl struct {
	Lifetime string         `parser:"@Lifetime"` // generic argument and bound positions
	Ref      *refTypeDecl   `parser:"| @@"`
	Ptr      *ptrTypeDecl   `parser:"| @@"`
	Tuple    *tupleTypeDecl `parser:"| @@"`
	Array    *arrayTypeDecl `parser:"| @@"`
	Named    *namedTypeDecl `parser:"| @@"`
}

type refTypeDecl struct {
	Lifetime string    `parser:"'&' @Lifetime?"`
	Mut      bool      `parser:"@'mut'?"`
	Elem     *typeDecl `parser:"@@"`
}

type ptrTypeDecl struct {
	Const bool      `parser:"'*' (@'const'"`
	Mut   bool      `parser:"| @'mut')"`
	Elem  *typeDecl `parser:"@@"`
}

type tupleTypeDecl struct {
	Elems []*typeDecl `parser:"'(' (@@ (',' @@)* ','?)? ')'"`
}

type arrayTypeDecl struct {
	Elem *typeDecl `parser:"'[' @@"`
	Size string    `parser:"(';' @(Number | Ident))? ']'"`
}

type namedTypeDecl struct {
	Path []string    `parser:"@Ident (PathSep @Ident)*"`
	Args []*typeDecl `parser:"('<' @@ (',' @@)* ','? '>')?"`
}

// parseSignature parses one fn item's signature text into its model form.
func parseSignature(text string) (*models.Signature, error) {
	decl, err := sigParser.ParseString("", text)
	if err != nil {
		return nil, err
	}
	return decl.toModel(), nil
}

func (d *signatureDecl) toModel() *models.Signature {
	sig := &models.Signature{
		Name:   d.Name,
		Unsafe: d.Unsafe,
	}
	for _, g := range d.Generics {
		switch {
		case g.Lifetime != nil:
			sig.Generics = append(sig.Generics, models.GenericParam{
				Kind: models.LifetimeParam,
				Name: strings.TrimPrefix(g.Lifetime.Name, "'"),
			})
		case g.Const != nil:
			sig.Generics = append(sig.Generics, models.GenericParam{
				Kind: models.ConstParam,
				Name: g.Const.Name,
			})
		case g.Type != nil:
			sig.Generics = append(sig.Generics, models.GenericParam{
				Kind: models.TypeParam,
				Name: g.Type.Name,
			})
		}
	}
	for _, p := range d.Params {
		sig.Params = append(sig.Params, p.toModel())
	}
	if d.Return != nil {
		sig.Return = d.Return.String()
	}
	return sig
}

func (p *paramDecl) toModel() models.Param {
	if p.Receiver != nil {
		return models.Param{Receiver: true, Raw: p.Receiver.String()}
	}
	return models.Param{
		Pattern: p.Binding.Pattern.toModel(),
		Type:    p.Binding.Type.String(),
	}
}

func (r *receiverDecl) String() string {
	var b strings.Builder
	if r.Ref {
		b.WriteByte('&')
	}
	if r.Mut {
		b.WriteString("mut ")
	}
	b.WriteString("self")
	return b.String()
}

func (p *patternDecl) toModel() models.Pattern {
	if p.Bind != nil {
		// "_" binds nothing; any mut on it is meaningless and ignored
		if p.Bind.Name == "_" {
			return models.Pattern{Kind: models.WildcardPattern}
		}
		return models.Pattern{
			Kind:    models.IdentPattern,
			Name:    p.Bind.Name,
			Mutable: p.Bind.Mut,
		}
	}
	return models.Pattern{Kind: models.OtherPattern, Raw: p.String()}
}

func (p *patternDecl) String() string {
	switch {
	case p.Tuple != nil:
		elems := make([]string, len(p.Tuple.Elems))
		for i, e := range p.Tuple.Elems {
			elems[i] = e.String()
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case p.Ref != nil:
		s := "&"
		if p.Ref.Mut {
			s += "mut "
		}
		return s + p.Ref.Inner.String()
	case p.Bind != nil:
		if p.Bind.Mut {
			return "mut " + p.Bind.Name
		}
		return p.Bind.Name
	}
	return ""
}

func (t *typeDecl) String() string {
	switch {
	case t.Lifetime != "":
		return t.Lifetime
	case t.Ref != nil:
		var b strings.Builder
		b.WriteByte('&')
		if t.Ref.Lifetime != "" {
			b.WriteString(t.Ref.Lifetime)
			b.WriteByte(' ')
		}
		if t.Ref.Mut {
			b.WriteString("mut ")
		}
		b.WriteString(t.Ref.Elem.String())
		return b.String()
	case t.Ptr != nil:
		qual := "*const "
		if t.Ptr.Mut {
			qual = "*mut "
		}
		return qual + t.Ptr.Elem.String()
	case t.Tuple != nil:
		elems := make([]string, len(t.Tuple.Elems))
		for i, e := range t.Tuple.Elems {
			elems[i] = e.String()
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case t.Array != nil:
		if t.Array.Size != "" {
			return "[" + t.Array.Elem.String() + "; " + t.Array.Size + "]"
		}
		return "[" + t.Array.Elem.String() + "]"
	case t.Named != nil:
		s := strings.Join(t.Named.Path, "::")
		if len(t.Named.Args) > 0 {
			args := make([]string, len(t.Named.Args))
			for i, a := range t.Named.Args {
				args[i] = a.String()
			}
			s += "<" + strings.Join(args, ", ") + ">"
		}
		return s
	}
	return ""
}
