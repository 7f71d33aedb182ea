package parser

import (
	"github.com/scriptforge/nativebind/internal/errors"
)

// scanner is a byte-level cursor over one source file. It handles the
// structure-sensitive parts of parsing: comments, string literals and
// balanced delimiter groups, tracking byte offsets so members and
// attributes can record exact spans for splice emission.
type scanner struct {
	file string
	src  []byte
	pos  int
	line int // 1-based
}

func newScanner(file string, src []byte) *scanner {
	return &scanner{file: file, src: src, line: 1}
}

// clone returns an independent cursor used for lookahead
func (s *scanner) clone() *scanner {
	c := *s
	return &c
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(off int) byte {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *scanner) advance() byte {
	b := s.src[s.pos]
	s.pos++
	if b == '\n' {
		s.line++
	}
	return b
}

func (s *scanner) location() errors.SourceLocation {
	return errors.SourceLocation{File: s.file, Line: s.line}
}

func (s *scanner) syntaxErrorf(format string, args ...interface{}) *errors.BaseError {
	return errors.Newf(errors.SyntaxErrorCode, format, args...).WithLocation(s.location())
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// skipTrivia advances over whitespace and both comment forms
func (s *scanner) skipTrivia() {
	for !s.eof() {
		switch {
		case isSpace(s.peek()):
			s.advance()
		case s.peek() == '/' && s.peekAt(1) == '/':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		case s.peek() == '/' && s.peekAt(1) == '*':
			s.advance()
			s.advance()
			for !s.eof() && !(s.peek() == '*' && s.peekAt(1) == '/') {
				s.advance()
			}
			if !s.eof() {
				s.advance()
				s.advance()
			}
		default:
			return
		}
	}
}

// peekIdent returns the identifier at the cursor without consuming it,
// or "" when the cursor is not at an identifier
func (s *scanner) peekIdent() string {
	if s.eof() || !isIdentStart(s.peek()) {
		return ""
	}
	end := s.pos
	for end < len(s.src) && isIdentPart(s.src[end]) {
		end++
	}
	return string(s.src[s.pos:end])
}

// scanIdent consumes and returns the identifier at the cursor
func (s *scanner) scanIdent() string {
	start := s.pos
	for !s.eof() && isIdentPart(s.peek()) {
		s.advance()
	}
	return string(s.src[start:s.pos])
}

// skipString consumes a double-quoted string literal, honoring backslash
// escapes
func (s *scanner) skipString() {
	s.advance() // opening quote
	for !s.eof() {
		b := s.advance()
		if b == '\\' && !s.eof() {
			s.advance()
			continue
		}
		if b == '"' {
			return
		}
	}
}

// skipTick consumes either a char literal ('a', '\n') or the tick of a
// lifetime ('a with no closing tick). Only precise enough for skipping.
func (s *scanner) skipTick() {
	s.advance() // '
	if s.eof() {
		return
	}
	if s.peek() == '\\' {
		s.advance()
		if !s.eof() {
			s.advance()
		}
		if !s.eof() && s.peek() == '\'' {
			s.advance()
		}
		return
	}
	// 'x' is a char literal; 'x followed by anything else is a lifetime
	if s.peekAt(1) == '\'' {
		s.advance()
		s.advance()
	}
}

func closingFor(open byte) byte {
	switch open {
	case '{':
		return '}'
	case '(':
		return ')'
	case '[':
		return ']'
	}
	return 0
}

// skipBalanced consumes a delimiter group starting at the cursor,
// including the closing delimiter. Nested groups of every bracket kind,
// strings, char literals and comments inside the group are handled.
func (s *scanner) skipBalanced() error {
	open := s.peek()
	end := closingFor(open)
	if end == 0 {
		return s.syntaxErrorf("internal: skipBalanced at %q", string(s.peek()))
	}
	startLine := s.line
	s.advance()
	depth := 1
	for !s.eof() {
		switch b := s.peek(); b {
		case '"':
			s.skipString()
		case '\'':
			s.skipTick()
		case '/':
			if s.peekAt(1) == '/' || s.peekAt(1) == '*' {
				s.skipTrivia()
			} else {
				s.advance()
			}
		case '{', '(', '[':
			if b == open {
				depth++
				s.advance()
			} else if err := s.skipBalanced(); err != nil {
				return err
			}
		case end:
			s.advance()
			depth--
			if depth == 0 {
				return nil
			}
		default:
			s.advance()
		}
	}
	return errors.Newf(errors.SyntaxErrorCode, "unterminated %q group", string(open)).
		WithLocation(errors.SourceLocation{File: s.file, Line: startLine})
}

// skipToken consumes one lexical unit at the cursor: an identifier, a
// literal, a balanced group, or a single byte. Used when scanning
// top-level text between class implementation blocks.
func (s *scanner) skipToken() error {
	switch b := s.peek(); {
	case isIdentStart(b):
		s.scanIdent()
	case b == '"':
		s.skipString()
	case b == '\'':
		s.skipTick()
	case b == '{' || b == '(' || b == '[':
		return s.skipBalanced()
	default:
		s.advance()
	}
	return nil
}
