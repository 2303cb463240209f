package script

import (
	"strings"
	"unicode"
)

// TokenType identifies the type of a scanned token.
type TokenType string

const (
	TokenIdentifier  TokenType = "identifier"
	TokenVariable    TokenType = "variable"
	TokenString      TokenType = "string"
	TokenNumber      TokenType = "number"
	TokenPunctuation TokenType = "punctuation"
	TokenDollarParen TokenType = "dollar_paren"
	TokenComment     TokenType = "comment"
	TokenNewline     TokenType = "newline"
	TokenEOF         TokenType = "eof"
)

// Token is a single lexical token with its source span.
type Token struct {
	Type   TokenType
	Text   string
	Pos    Position
	EndPos Position
}

// Scanner tokenizes script source one rune at a time, tracking
// line/column/offset for every token.
type Scanner struct {
	src    string
	ch     rune
	offset int // offset of ch
	next   int // offset after ch
	line   int
	column int
}

const eof = rune(-1)

// NewScanner creates a scanner over src positioned at the first rune.
func NewScanner(src string) *Scanner {
	s := &Scanner{src: src, line: 1, column: 0}
	s.advance()
	return s
}

func (s *Scanner) advance() {
	if s.next >= len(s.src) {
		s.offset = len(s.src)
		s.ch = eof
		s.column++
		return
	}
	if s.ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	r := rune(s.src[s.next])
	width := 1
	if r >= 0x80 {
		for _, rr := range s.src[s.next:] {
			r = rr
			break
		}
		width = len(string(r))
	}
	s.offset = s.next
	s.next += width
	s.ch = r
}

func (s *Scanner) pos() Position {
	return Position{Line: s.line, Column: s.column, Offset: s.offset}
}

// Scan returns the next token. Horizontal whitespace and carriage returns
// are skipped; newlines are significant (they terminate statements) and
// are returned as tokens.
func (s *Scanner) Scan() Token {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\r' {
		s.advance()
	}

	start := s.pos()

	switch {
	case s.ch == eof:
		return Token{Type: TokenEOF, Pos: start, EndPos: start}
	case s.ch == '\n':
		s.advance()
		return Token{Type: TokenNewline, Text: "\n", Pos: start, EndPos: s.pos()}
	case s.ch == '#':
		return s.scanLineComment(start)
	case s.ch == '<' && s.peekIs('#'):
		return s.scanBlockComment(start)
	case s.ch == '$':
		return s.scanVariable(start)
	case s.ch == '\'' || s.ch == '"':
		return s.scanString(start)
	case unicode.IsDigit(s.ch):
		return s.scanNumber(start)
	case isIdentStart(s.ch):
		return s.scanIdentifier(start)
	case s.ch == '-' && s.next < len(s.src) && isIdentStart(rune(s.src[s.next])):
		// Dash-prefixed flags (-Name, -Option) scan as one identifier.
		return s.scanIdentifier(start)
	default:
		text := string(s.ch)
		s.advance()
		return Token{Type: TokenPunctuation, Text: text, Pos: start, EndPos: s.pos()}
	}
}

func (s *Scanner) peekIs(r rune) bool {
	return s.next < len(s.src) && rune(s.src[s.next]) == r
}

func (s *Scanner) scanLineComment(start Position) Token {
	begin := s.offset
	for s.ch != '\n' && s.ch != eof {
		s.advance()
	}
	return Token{Type: TokenComment, Text: s.src[begin:s.offset], Pos: start, EndPos: s.pos()}
}

func (s *Scanner) scanBlockComment(start Position) Token {
	begin := s.offset
	s.advance() // <
	s.advance() // #
	for s.ch != eof {
		if s.ch == '#' && s.peekIs('>') {
			s.advance()
			s.advance()
			break
		}
		s.advance()
	}
	return Token{Type: TokenComment, Text: s.src[begin:s.offset], Pos: start, EndPos: s.pos()}
}

// scanVariable handles $name, $scope:name, ${braced name} and the $(
// sub-expression opener. The returned text keeps the $ sigil off; braces
// are stripped.
func (s *Scanner) scanVariable(start Position) Token {
	s.advance() // $
	if s.ch == '(' {
		s.advance()
		return Token{Type: TokenDollarParen, Text: "$(", Pos: start, EndPos: s.pos()}
	}
	if s.ch == '{' {
		s.advance()
		begin := s.offset
		for s.ch != '}' && s.ch != eof {
			s.advance()
		}
		text := s.src[begin:s.offset]
		if s.ch == '}' {
			s.advance()
		}
		return Token{Type: TokenVariable, Text: text, Pos: start, EndPos: s.pos()}
	}
	begin := s.offset
	for isVarPart(s.ch) {
		s.advance()
	}
	// Scope qualifier: the colon belongs to the variable only when
	// followed by another identifier character ($global:Name vs $x: ).
	if s.ch == ':' && s.next < len(s.src) && isVarPart(rune(s.src[s.next])) {
		s.advance()
		for isVarPart(s.ch) {
			s.advance()
		}
	}
	return Token{Type: TokenVariable, Text: s.src[begin:s.offset], Pos: start, EndPos: s.pos()}
}

func (s *Scanner) scanString(start Position) Token {
	quote := s.ch
	begin := s.offset
	s.advance()
	for s.ch != eof {
		if s.ch == '`' && quote == '"' {
			s.advance()
			if s.ch != eof {
				s.advance()
			}
			continue
		}
		if s.ch == quote {
			s.advance()
			break
		}
		s.advance()
	}
	return Token{Type: TokenString, Text: s.src[begin:s.offset], Pos: start, EndPos: s.pos()}
}

func (s *Scanner) scanNumber(start Position) Token {
	begin := s.offset
	for unicode.IsDigit(s.ch) || s.ch == '.' || s.ch == 'x' ||
		('a' <= unicode.ToLower(s.ch) && unicode.ToLower(s.ch) <= 'f') {
		s.advance()
	}
	return Token{Type: TokenNumber, Text: s.src[begin:s.offset], Pos: start, EndPos: s.pos()}
}

func (s *Scanner) scanIdentifier(start Position) Token {
	begin := s.offset
	for isIdentPart(s.ch) {
		s.advance()
	}
	return Token{Type: TokenIdentifier, Text: s.src[begin:s.offset], Pos: start, EndPos: s.pos()}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isIdentPart accepts hyphen and dot so Verb-Noun command names and
// member paths scan as one token.
func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}

func isVarPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// splitVariableName splits a scanned variable token's text into its scope
// qualifier (may be empty) and bare name.
func splitVariableName(text string) (scope, name string) {
	if i := strings.IndexByte(text, ':'); i >= 0 {
		return text[:i], text[i+1:]
	}
	return "", text
}
