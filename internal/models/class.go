package models

// MemberKind identifies what sort of item a class member is.
type MemberKind int

const (
	// FunctionMember is a method or associated function.
	FunctionMember MemberKind = iota
	// OtherMember is any non-function item (constants, type aliases, ...).
	// Other members are never inspected for export markers.
	OtherMember
)

// Span is a half-open byte range [Start, End) into the source file.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Attribute is a single attribute attached to a member.
type Attribute struct {
	Inner bool     // #![...] style; inner attributes are never export markers
	Path  []string // path segments, e.g. ["engine", "export"]
	Args  string   // raw argument text after the path, "" when absent
	Span  Span     // the full attribute text including brackets
	Line  int      // 1-based line of the attribute in the source file
}

// IsExportMarker reports whether the attribute marks its function for export:
// outer style, with "export" as the final path segment. Arguments on the
// marker are accepted and ignored.
func (a Attribute) IsExportMarker() bool {
	return !a.Inner && len(a.Path) > 0 && a.Path[len(a.Path)-1] == "export"
}

// Member is one item of a class implementation block, in declaration order.
type Member struct {
	Kind       MemberKind
	Attributes []Attribute
	Signature  *Signature // nil unless Kind == FunctionMember
	Span       Span       // the full member text, attributes included
	Line       int
}

// ClassImpl is a parsed class implementation block. Members keep their
// declaration order; the output must reproduce the block byte-for-byte
// except for removed marker attributes, so every member records its span
// into the shared source buffer.
type ClassImpl struct {
	TypePath string // owner type as written between "impl" and "{"
	Members  []Member
	Span     Span // the whole impl block, header included
	Line     int
}

// ScriptFile is one parsed source file: the raw bytes plus every class
// implementation block found at the top level. Text outside the blocks is
// passed through verbatim by the emitter.
type ScriptFile struct {
	Name    string
	Source  []byte
	Classes []*ClassImpl
}
