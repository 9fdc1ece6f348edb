package inbound

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerTokens(t *testing.T) {
	src := "unsafe impl class a.b.C { static int foo(&'a env, class, int x) { return x, nil } }"
	got := kinds(Tokens([]byte(src), "test.jni"))
	want := []TokenKind{
		TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenDot, TokenIdent, TokenDot, TokenIdent,
		TokenLBrace,
		TokenIdent, TokenIdent, TokenIdent, TokenLParen,
		TokenAmp, TokenQuote, TokenIdent, TokenIdent, TokenComma,
		TokenIdent, TokenComma, TokenIdent, TokenIdent, TokenRParen,
		TokenBody,
		TokenRBrace,
		TokenEOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"nested", "{ if x { y() } }"},
		{"string", `{ s := "}{"; _ = s }`},
		{"escaped quote", `{ s := "\"}"; _ = s }`},
		{"rune", `{ r := '}'; _ = r }`},
		{"escaped rune", `{ r := '\''; _ = r }`},
		{"raw string", "{ s := `}\n{`; _ = s }"},
		{"line comment", "{ // }\n}"},
		{"block comment", "{ /* } */ }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokens([]byte("void f(&env, this) "+tt.body+" }"), "test.jni")
			var body *Token
			for i := range tokens {
				if tokens[i].Kind == TokenBody {
					body = &tokens[i]
				}
			}
			if body == nil {
				t.Fatalf("no body token in %v", kinds(tokens))
			}
			if body.Literal != tt.body {
				t.Errorf("Literal = %q, want %q", body.Literal, tt.body)
			}
			if last := tokens[len(tokens)-2]; last.Kind != TokenRBrace {
				t.Errorf("token after body = %v, want %v", last.Kind, TokenRBrace)
			}
		})
	}
}

func TestLexerBraceOutsideBody(t *testing.T) {
	tokens := Tokens([]byte("impl class C { }"), "test.jni")
	got := kinds(tokens)
	want := []TokenKind{TokenIdent, TokenIdent, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unterminated body", "void f(&env, this) { x", "unterminated method body"},
		{"unterminated string", "void f(&env, this) { \"x", "unterminated literal in method body"},
		{"string across lines", "void f(&env, this) { \"x\n\" }", "unterminated literal in method body"},
		{"unterminated raw string", "void f(&env, this) { `x", "unterminated raw string in method body"},
		{"unexpected character", "#", "unexpected character #"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var found *Token
			for _, tok := range Tokens([]byte(tt.input), "test.jni") {
				if tok.Kind == TokenError {
					found = &tok
					break
				}
			}
			if found == nil {
				t.Fatalf("no error token for %q", tt.input)
			}
			if found.Message != tt.message {
				t.Errorf("Message = %q, want %q", found.Message, tt.message)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := Tokens([]byte("import\n  a.b;"), "test.jni")
	want := []Position{
		{File: "test.jni", Offset: 0, Line: 1, Column: 1},
		{File: "test.jni", Offset: 9, Line: 2, Column: 3},
		{File: "test.jni", Offset: 10, Line: 2, Column: 4},
		{File: "test.jni", Offset: 11, Line: 2, Column: 5},
		{File: "test.jni", Offset: 12, Line: 2, Column: 6},
		{File: "test.jni", Offset: 13, Line: 2, Column: 7},
	}
	var got []Position
	for _, tok := range tokens {
		got = append(got, tok.Span.Start)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerSkipsComments(t *testing.T) {
	tokens := Tokens([]byte("// line\nimport /* block */ a;"), "test.jni")
	got := kinds(tokens)
	want := []TokenKind{TokenIdent, TokenIdent, TokenSemicolon, TokenEOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}
