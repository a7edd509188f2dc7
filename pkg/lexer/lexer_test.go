package lexer

import (
	"testing"

	"gradus/pkg/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `var x: int = 1 + 2; class Foo extends Bar {}`

	tests := []struct {
		kind token.Kind
		lit  string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.IDENT, "int"},
		{token.ASSIGN, "="},
		{token.NUMBER, "1"},
		{token.PLUS, "+"},
		{token.NUMBER, "2"},
		{token.SEMI, ";"},
		{token.CLASS, "class"},
		{token.IDENT, "Foo"},
		{token.EXTENDS, "extends"},
		{token.IDENT, "Bar"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("token %d: kind = %q, want %q (literal %q)", i, tok.Kind, tt.kind, tok.Literal)
		}
		if tok.Literal != tt.lit {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, tt.lit)
		}
	}
}

func TestRegexLiteral(t *testing.T) {
	l := New(`re"^[0-9]+$"`)
	tok := l.NextToken()
	if tok.Kind != token.REGEX {
		t.Fatalf("kind = %q, want REGEX", tok.Kind)
	}
	if tok.Literal != "^[0-9]+$" {
		t.Fatalf("literal = %q", tok.Literal)
	}
}

func TestInvalidRegexLiteral(t *testing.T) {
	l := New(`re"("`)
	tok := l.NextToken()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("kind = %q, want ILLEGAL for malformed pattern", tok.Kind)
	}
}

func TestComment(t *testing.T) {
	l := New("# a comment\nvar")
	tok := l.NextToken()
	if tok.Kind != token.VAR {
		t.Fatalf("kind = %q, want VAR after comment skip", tok.Kind)
	}
}
