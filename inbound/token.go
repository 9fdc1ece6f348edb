package inbound

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenIdent
	TokenAt
	TokenAmp
	TokenQuote
	TokenComma
	TokenSemicolon
	TokenDot
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	// TokenBody is a brace-balanced Go block, braces included.
	TokenBody
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:       "end of file",
	TokenError:     "invalid input",
	TokenIdent:     "identifier",
	TokenAt:        "'@'",
	TokenAmp:       "'&'",
	TokenQuote:     "'''",
	TokenComma:     "','",
	TokenSemicolon: "';'",
	TokenDot:       "'.'",
	TokenLParen:    "'('",
	TokenRParen:    "')'",
	TokenLBracket:  "'['",
	TokenRBracket:  "']'",
	TokenLBrace:    "'{'",
	TokenRBrace:    "'}'",
	TokenBody:      "method body",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	// Message explains a TokenError.
	Message string
}

// Describe renders the token for diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of file"
	case TokenBody:
		return "method body"
	case TokenIdent:
		return fmt.Sprintf("%q", t.Literal)
	}
	return fmt.Sprintf("%q", t.Literal)
}

func (t Token) Is(literal string) bool {
	return t.Kind == TokenIdent && t.Literal == literal
}
