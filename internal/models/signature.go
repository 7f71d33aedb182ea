package models

import "strings"

// GenericKind identifies the category of a generic parameter. Exported
// functions may not declare generics of any kind; the categories exist so
// rejection diagnostics can name the offending one.
type GenericKind int

const (
	TypeParam GenericKind = iota
	LifetimeParam
	ConstParam
)

// GenericParam is one generic parameter of a function signature.
type GenericParam struct {
	Kind GenericKind
	Name string // without the leading tick for lifetimes
}

// PatternKind identifies the binding pattern form of a parameter.
type PatternKind int

const (
	// IdentPattern is a simple identifier binding, optionally mutable.
	IdentPattern PatternKind = iota
	// WildcardPattern is the "_" binding.
	WildcardPattern
	// OtherPattern covers every remaining form (tuple destructuring,
	// reference patterns, ...). These pass through normalization
	// unchanged; no validation guarantee is made about them.
	OtherPattern
)

// Pattern is the binding pattern of one parameter.
type Pattern struct {
	Kind    PatternKind
	Name    string // IdentPattern only
	Mutable bool   // IdentPattern only
	Raw     string // OtherPattern: the pattern text as written
}

func (p Pattern) String() string {
	switch p.Kind {
	case WildcardPattern:
		return "_"
	case IdentPattern:
		if p.Mutable {
			return "mut " + p.Name
		}
		return p.Name
	default:
		return p.Raw
	}
}

// Param is one parameter of a function signature: either a receiver
// (self in one of its forms) or a typed binding pattern. The type
// annotation is opaque text, passed through unmodified.
type Param struct {
	Receiver bool
	Raw      string  // receiver form as written: "self", "&self", "&mut self"
	Pattern  Pattern // typed bindings only
	Type     string  // typed bindings only
}

func (p Param) String() string {
	if p.Receiver {
		return p.Raw
	}
	return p.Pattern.String() + ": " + p.Type
}

// Signature is a function signature as declared inside a class
// implementation block.
type Signature struct {
	Name     string
	Unsafe   bool
	Generics []GenericParam
	Params   []Param
	Return   string // opaque return type, "" when none
}

// TypeParams counts the signature's type parameters.
func (s *Signature) TypeParams() int { return s.countGenerics(TypeParam) }

// Lifetimes counts the signature's lifetime parameters.
func (s *Signature) Lifetimes() int { return s.countGenerics(LifetimeParam) }

// ConstParams counts the signature's const generic parameters.
func (s *Signature) ConstParams() int { return s.countGenerics(ConstParam) }

func (s *Signature) countGenerics(kind GenericKind) int {
	n := 0
	for _, g := range s.Generics {
		if g.Kind == kind {
			n++
		}
	}
	return n
}

// Clone returns an independent deep copy of the signature. Worklist
// snapshots are clones so that later mutation of the class never leaks
// into the export pipeline, and vice versa.
func (s *Signature) Clone() *Signature {
	out := &Signature{
		Name:   s.Name,
		Unsafe: s.Unsafe,
		Return: s.Return,
	}
	out.Generics = append([]GenericParam(nil), s.Generics...)
	out.Params = append([]Param(nil), s.Params...)
	return out
}

// Decl renders the signature in declaration form, e.g.
// "fn area(&self, width: f32) -> f32". Used for the wrap_method!
// argument in the generated registration block.
func (s *Signature) Decl() string {
	var b strings.Builder
	if s.Unsafe {
		b.WriteString("unsafe ")
	}
	b.WriteString("fn ")
	b.WriteString(s.Name)
	if len(s.Generics) > 0 {
		b.WriteByte('<')
		for i, g := range s.Generics {
			if i > 0 {
				b.WriteString(", ")
			}
			switch g.Kind {
			case LifetimeParam:
				b.WriteByte('\'')
				b.WriteString(g.Name)
			case ConstParam:
				b.WriteString("const ")
				b.WriteString(g.Name)
			default:
				b.WriteString(g.Name)
			}
		}
		b.WriteByte('>')
	}
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	if s.Return != "" {
		b.WriteString(" -> ")
		b.WriteString(s.Return)
	}
	return b.String()
}
