package inbound

import (
	"unicode"
	"unicode/utf8"
)

// Lexer splits a declaration file into tokens. A '{' directly after a ')'
// opens a method body, which is returned as a single TokenBody scanned
// with Go's literal and comment rules so that braces inside strings do
// not count.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
	last   TokenKind
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
		last:   TokenEOF,
	}
}

func (l *Lexer) position() Position {
	return Position{File: l.file, Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) peekN(n int) rune {
	pos := l.pos
	for i := 0; i < n && pos < len(l.input); i++ {
		_, size := utf8.DecodeRune(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[pos:])
	return r
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRune(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column += size
	}
	return r
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// skipTrivia skips whitespace and comments. An unterminated block comment
// runs to the end of input.
func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch r := l.peek(); {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.peekN(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekN(1) == '*':
			l.advance()
			l.advance()
			for !l.atEnd() && !(l.peek() == '*' && l.peekN(1) == '/') {
				l.advance()
			}
			l.advance()
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: l.position()},
		Literal: string(l.input[start.Offset:l.pos]),
	}
}

func (l *Lexer) errorToken(start Position, message string) Token {
	tok := l.token(TokenError, start)
	tok.Message = message
	return tok
}

var punctuation = map[rune]TokenKind{
	'@': TokenAt,
	'&': TokenAmp,
	'\'': TokenQuote,
	',': TokenComma,
	';': TokenSemicolon,
	'.': TokenDot,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
}

func (l *Lexer) NextToken() Token {
	tok := l.next()
	if tok.Kind != TokenError {
		l.last = tok.Kind
	}
	return tok
}

func (l *Lexer) next() Token {
	l.skipTrivia()
	start := l.position()
	if l.atEnd() {
		return l.token(TokenEOF, start)
	}

	r := l.peek()
	switch {
	case r == '{' && l.last == TokenRParen:
		return l.body(start)
	case isIdentStart(r):
		for !l.atEnd() && isIdentPart(l.peek()) {
			l.advance()
		}
		return l.token(TokenIdent, start)
	}
	if kind, ok := punctuation[r]; ok {
		l.advance()
		return l.token(kind, start)
	}
	l.advance()
	return l.errorToken(start, "unexpected character "+string(r))
}

// body scans a brace-balanced Go block.
func (l *Lexer) body(start Position) Token {
	depth := 0
	for !l.atEnd() {
		switch r := l.peek(); r {
		case '{':
			depth++
			l.advance()
		case '}':
			depth--
			l.advance()
			if depth == 0 {
				return l.token(TokenBody, start)
			}
		case '"', '\'':
			litStart := l.position()
			if !l.quoted(r) {
				return l.errorToken(litStart, "unterminated literal in method body")
			}
		case '`':
			litStart := l.position()
			l.advance()
			for !l.atEnd() && l.peek() != '`' {
				l.advance()
			}
			if l.atEnd() {
				return l.errorToken(litStart, "unterminated raw string in method body")
			}
			l.advance()
		case '/':
			if next := l.peekN(1); next == '/' || next == '*' {
				l.skipTrivia()
			} else {
				l.advance()
			}
		default:
			l.advance()
		}
	}
	return l.errorToken(start, "unterminated method body")
}

// quoted consumes an interpreted string or rune literal, which may not
// span lines.
func (l *Lexer) quoted(quote rune) bool {
	l.advance()
	for !l.atEnd() {
		switch l.peek() {
		case '\\':
			l.advance()
			if l.peek() == '\n' {
				return false
			}
			l.advance()
		case '\n':
			return false
		case quote:
			l.advance()
			return true
		default:
			l.advance()
		}
	}
	return false
}

// Tokens lexes all of input, ending with TokenEOF.
func Tokens(input []byte, file string) []Token {
	l := NewLexer(input, file)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
