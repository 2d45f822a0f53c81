package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"var", VAR},
		{"print", PRINT},
		{"true", TRUE},
		{"false", FALSE},
		{"nil", NIL},
		{"map", MAP},
		{"apply", APPLY},
		{"variable", IDENTIFIER},
		{"Print", IDENTIFIER},
		{"_x1", IDENTIFIER},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.in); got != tt.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestReservedWords(t *testing.T) {
	for _, tt := range []Type{ASSERT, MAP, REDUCE, FILTER, EACH, APPLY} {
		if !Reserved(tt) || !IsKeyword(tt) {
			t.Errorf("%s should be a reserved keyword", tt)
		}
	}
	for _, tt := range []Type{VAR, PRINT, NIL} {
		if Reserved(tt) {
			t.Errorf("%s is in use and must not be reported as reserved", tt)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: NUMBER, Lexeme: "3.5", Literal: 3.5, Line: 1}
	if got := tok.String(); got != "NUMBER 3.5 3.5" {
		t.Fatalf("unexpected token string %q", got)
	}
	eof := Token{Type: EOF, Line: 2}
	if got := eof.String(); got != "EOF  nil" {
		t.Fatalf("unexpected eof string %q", got)
	}
}
