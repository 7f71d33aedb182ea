// Package parser turns raw script source into the model types the rest
// of the pipeline operates on. A byte-level scanner handles file and
// block structure (spans, bodies, attributes); a participle grammar
// parses the function signatures themselves. Parse failure is the
// pipeline's only fatal error: a malformed implementation block cannot
// be partially processed or reconstructed, so the whole file aborts
// with the underlying syntax diagnostic.
package parser

import (
	"strings"

	"github.com/scriptforge/nativebind/internal/errors"
	"github.com/scriptforge/nativebind/internal/models"
)

// ParseFile parses one script source file. Top-level text that is not a
// class implementation block (including trait implementation blocks,
// which are "impl Trait for Type") is left for the emitter to pass
// through verbatim.
func ParseFile(name string, src []byte) (*models.ScriptFile, error) {
	s := newScanner(name, src)
	file := &models.ScriptFile{Name: name, Source: src}
	for {
		s.skipTrivia()
		if s.eof() {
			return file, nil
		}
		if s.peekIdent() == "impl" {
			class, err := parseImplBlock(s)
			if err != nil {
				return nil, err
			}
			if class != nil {
				file.Classes = append(file.Classes, class)
			}
			continue
		}
		if err := s.skipToken(); err != nil {
			return nil, err
		}
	}
}

// parseImplBlock parses from the "impl" keyword through the closing
// brace. Returns nil (no error) for trait implementation blocks, which
// are not method collections.
func parseImplBlock(s *scanner) (*models.ClassImpl, error) {
	start := s.pos
	line := s.line
	s.scanIdent() // impl

	header, isTrait, err := scanImplHeader(s)
	if err != nil {
		return nil, err
	}
	if isTrait {
		// trait impls pass through untouched, including the
		// registration blocks emitted by a previous run
		if err := s.skipBalanced(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	class := &models.ClassImpl{
		TypePath: header,
		Line:     line,
	}
	s.advance() // {
	for {
		s.skipTrivia()
		if s.eof() {
			return nil, s.syntaxErrorf("unexpected end of file in impl block for %s", class.TypePath)
		}
		if s.peek() == '}' {
			s.advance()
			class.Span = models.Span{Start: start, End: s.pos}
			return class, nil
		}
		member, err := parseMember(s)
		if err != nil {
			return nil, err
		}
		class.Members = append(class.Members, member)
	}
}

// scanImplHeader captures the text between "impl" and the opening brace.
// The cursor is left on the brace.
func scanImplHeader(s *scanner) (header string, isTrait bool, err error) {
	start := s.pos
	for {
		s.skipTrivia()
		if s.eof() {
			return "", false, s.syntaxErrorf("expected '{' in impl block")
		}
		if s.peek() == '{' {
			break
		}
		if id := s.peekIdent(); id == "for" {
			isTrait = true
		}
		if err := s.skipToken(); err != nil {
			return "", false, err
		}
	}
	header = strings.TrimSpace(string(s.src[start:s.pos]))
	if header == "" {
		return "", false, s.syntaxErrorf("impl block is missing a type")
	}
	return header, isTrait, nil
}

// parseMember parses one item of the block: leading attributes, then
// either a function or an opaque non-function item.
func parseMember(s *scanner) (models.Member, error) {
	start := s.pos
	line := s.line

	var attrs []models.Attribute
	for {
		s.skipTrivia()
		if s.peek() != '#' {
			break
		}
		attr, err := parseAttribute(s)
		if err != nil {
			return models.Member{}, err
		}
		attrs = append(attrs, attr)
	}

	if isFunctionStart(s) {
		return parseFunction(s, start, line, attrs)
	}
	return parseOtherMember(s, start, line, attrs)
}

// isFunctionStart looks ahead for the fn keyword, past visibility and
// unsafety qualifiers, without consuming anything
func isFunctionStart(s *scanner) bool {
	look := s.clone()
	for {
		look.skipTrivia()
		switch look.peekIdent() {
		case "fn":
			return true
		case "pub", "unsafe":
			look.scanIdent()
		default:
			return false
		}
	}
}

// parseFunction consumes a fn item: signature, then a braced body or a
// bare ';'. The signature text is handed to the participle grammar.
func parseFunction(s *scanner, start, line int, attrs []models.Attribute) (models.Member, error) {
	sigStart := s.pos
	sigLine := s.line

	// qualifiers and name
	for {
		s.skipTrivia()
		id := s.peekIdent()
		if id == "pub" || id == "unsafe" {
			s.scanIdent()
			continue
		}
		if id != "fn" {
			return models.Member{}, s.syntaxErrorf("expected 'fn', found %q", s.peekIdent())
		}
		s.scanIdent()
		break
	}
	s.skipTrivia()
	if s.peekIdent() == "" {
		return models.Member{}, s.syntaxErrorf("expected function name")
	}
	s.scanIdent()

	// generic parameter list
	s.skipTrivia()
	if s.peek() == '<' {
		if err := s.skipAngles(); err != nil {
			return models.Member{}, err
		}
	}

	// parameter list
	s.skipTrivia()
	if s.peek() != '(' {
		return models.Member{}, s.syntaxErrorf("expected '(' after function name")
	}
	if err := s.skipBalanced(); err != nil {
		return models.Member{}, err
	}

	// return type, then body or ';'
	sigEnd, hasBody, err := scanToBody(s)
	if err != nil {
		return models.Member{}, err
	}
	sigText := strings.TrimSpace(string(s.src[sigStart:sigEnd]))
	sig, err := parseSignature(sigText)
	if err != nil {
		return models.Member{}, errors.WrapParseError("function signature", err).
			WithLocation(errors.SourceLocation{File: s.file, Line: sigLine}).
			WithContext("signature", sigText)
	}

	if hasBody {
		if err := s.skipBalanced(); err != nil {
			return models.Member{}, err
		}
	} else {
		s.advance() // ;
	}

	return models.Member{
		Kind:       models.FunctionMember,
		Attributes: attrs,
		Signature:  sig,
		Span:       models.Span{Start: start, End: s.pos},
		Line:       line,
	}, nil
}

// scanToBody advances past the return type (if any) up to the body brace
// or terminating semicolon, which is left unconsumed. Returns the byte
// offset where the signature text ends.
func scanToBody(s *scanner) (sigEnd int, hasBody bool, err error) {
	for {
		s.skipTrivia()
		if s.eof() {
			return 0, false, s.syntaxErrorf("unexpected end of file in function signature")
		}
		switch b := s.peek(); b {
		case '{':
			return s.pos, true, nil
		case ';':
			return s.pos, false, nil
		case '(', '[':
			if err := s.skipBalanced(); err != nil {
				return 0, false, err
			}
		case '}':
			return 0, false, s.syntaxErrorf("expected function body or ';'")
		default:
			if err := s.skipToken(); err != nil {
				return 0, false, err
			}
		}
	}
}

// skipAngles consumes a generic parameter or argument list, counting
// angle bracket depth. Arrows are skipped as a unit so the '>' of "->"
// inside a bound never closes the list.
func (s *scanner) skipAngles() error {
	startLine := s.line
	s.advance() // <
	depth := 1
	for !s.eof() {
		switch s.peek() {
		case '"':
			s.skipString()
		case '\'':
			s.skipTick()
		case '(', '[', '{':
			if err := s.skipBalanced(); err != nil {
				return err
			}
		case '-':
			s.advance()
			if s.peek() == '>' {
				s.advance()
			}
		case '<':
			s.advance()
			depth++
		case '>':
			s.advance()
			depth--
			if depth == 0 {
				return nil
			}
		default:
			s.advance()
		}
	}
	return errors.New(errors.SyntaxErrorCode, "unterminated generic parameter list").
		WithLocation(errors.SourceLocation{File: s.file, Line: startLine})
}

// parseOtherMember consumes a non-function item (const, type alias, ...)
// up to its terminating ';' or balanced braced block. The item's content
// is opaque; it only needs a span so the emitter can reproduce it.
func parseOtherMember(s *scanner, start, line int, attrs []models.Attribute) (models.Member, error) {
	for {
		s.skipTrivia()
		if s.eof() {
			return models.Member{}, s.syntaxErrorf("unexpected end of file in impl block item")
		}
		switch s.peek() {
		case ';':
			s.advance()
			return models.Member{
				Kind:       models.OtherMember,
				Attributes: attrs,
				Span:       models.Span{Start: start, End: s.pos},
				Line:       line,
			}, nil
		case '{':
			if err := s.skipBalanced(); err != nil {
				return models.Member{}, err
			}
			return models.Member{
				Kind:       models.OtherMember,
				Attributes: attrs,
				Span:       models.Span{Start: start, End: s.pos},
				Line:       line,
			}, nil
		case '}':
			return models.Member{}, s.syntaxErrorf("unterminated item in impl block")
		case '(', '[':
			if err := s.skipBalanced(); err != nil {
				return models.Member{}, err
			}
		default:
			if err := s.skipToken(); err != nil {
				return models.Member{}, err
			}
		}
	}
}

// parseAttribute consumes one #[...] or #![...] attribute. The path is
// the leading :: separated identifier sequence of the attribute body;
// anything after it is kept as raw argument text.
func parseAttribute(s *scanner) (models.Attribute, error) {
	start := s.pos
	line := s.line
	s.advance() // #
	inner := false
	if s.peek() == '!' {
		inner = true
		s.advance()
	}
	if s.peek() != '[' {
		return models.Attribute{}, s.syntaxErrorf("expected '[' in attribute")
	}
	contentStart := s.pos + 1
	if err := s.skipBalanced(); err != nil {
		return models.Attribute{}, err
	}
	content := string(s.src[contentStart : s.pos-1])
	path, args := splitAttributeContent(content)
	return models.Attribute{
		Inner: inner,
		Path:  path,
		Args:  args,
		Span:  models.Span{Start: start, End: s.pos},
		Line:  line,
	}, nil
}

func splitAttributeContent(content string) (path []string, args string) {
	rest := strings.TrimSpace(content)
	for {
		i := 0
		for i < len(rest) && isIdentPart(rest[i]) {
			i++
		}
		if i == 0 || !isIdentStart(rest[0]) {
			break
		}
		path = append(path, rest[:i])
		rest = rest[i:]
		if strings.HasPrefix(rest, "::") {
			rest = rest[2:]
			continue
		}
		break
	}
	return path, strings.TrimSpace(rest)
}
