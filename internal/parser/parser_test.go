package parser

import (
	"strings"
	"testing"

	"lumen/internal/ast"
	"lumen/internal/token"
)

func parseOK(t *testing.T, input string) []ast.Stmt {
	t.Helper()
	stmts, diags := ParseSource(input)
	if len(diags) > 0 {
		for _, d := range diags {
			t.Error(d.String())
		}
		t.Fatalf("parser had %d errors", len(diags))
	}
	return stmts
}

func TestParse_Shapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"print 1 + 2 * 3;", "(print (+ 1 (* 2 3)))"},
		{"8 - 4 - 2;", "(; (- (- 8 4) 2))"},
		{"8 / 4 / 2;", "(; (/ (/ 8 4) 2))"},
		{"a = b = 3;", "(; (= a (= b 3)))"},
		{"x = (y = 2) + 1;", "(; (= x (+ (group (= y 2)) 1)))"},
		{"print !!true;", "(print (! (! true)))"},
		{"print -(1.5);", "(print (- (group 1.5)))"},
		{"print a || b && c;", "(print (|| a (&& b c)))"},
		{"print a || b || c;", "(print (|| (|| a b) c))"},
		{"print a && b && c;", "(print (&& (&& a b) c))"},
		{"print 1 < 2 == true;", "(print (== (< 1 2) true))"},
		{"print 1 >= 2 != false;", "(print (!= (>= 1 2) false))"},
		{`print "abc" ~= "a.c";`, "(print (~= abc a.c))"},
		{"print nil;", "(print nil)"},
		{"var x;", "(var x)"},
		{"var x = 1 + y;", "(var x (+ 1 y))"},
	}
	for _, tt := range tests {
		stmts := parseOK(t, tt.input)
		if len(stmts) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tt.input, len(stmts))
		}
		if got := ast.Sprint(stmts[0]); got != tt.want {
			t.Fatalf("%q: got %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParse_NodeTypes(t *testing.T) {
	stmts := parseOK(t, "var a = 1;\nprint a;\na = 2;")
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	v, ok := stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected var statement, got %T", stmts[0])
	}
	if v.Name.Lexeme != "a" || v.Name.Line != 1 {
		t.Fatalf("unexpected var name token %+v", v.Name)
	}
	p, ok := stmts[1].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("expected print statement, got %T", stmts[1])
	}
	if p.Token.Line != 2 {
		t.Fatalf("expected print on line 2, got %d", p.Token.Line)
	}
	es, ok := stmts[2].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", stmts[2])
	}
	if _, ok := es.Expression.(*ast.Assign); !ok {
		t.Fatalf("expected assignment, got %T", es.Expression)
	}
	if es.Token.Line != 3 {
		t.Fatalf("expected expression statement on line 3, got %d", es.Token.Line)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"print 1 +;", "[line 1] Error at ';': Expect expression."},
		{"print 1", "[line 1] Error at end: Expect ';' after value."},
		{"var = 1;", "[line 1] Error at '=': Expect variable name."},
		{"var x = 1", "[line 1] Error at end: Expect ';' after variable declaration."},
		{"(1;", "[line 1] Error at ';': Expect ')' after expression."},
		{"1 + 2", "[line 1] Error at end: Expect ';' after expression."},
		{"\n\n1 = 2;", "[line 3] Error at '=': Invalid assignment target."},
		{"a + b = 3;", "[line 1] Error at '=': Invalid assignment target."},
		{"map;", "[line 1] Error at 'map': Expect expression."},
	}
	for _, tt := range tests {
		_, diags := ParseSource(tt.input)
		if len(diags) != 1 {
			t.Fatalf("%q: expected 1 diagnostic, got %d", tt.input, len(diags))
		}
		if got := diags[0].String(); got != tt.want {
			t.Fatalf("%q: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParse_InvalidAssignmentKeepsStatement(t *testing.T) {
	stmts, diags := ParseSource("1 = 2;")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if len(stmts) != 1 || stmts[0] == nil {
		t.Fatalf("expected the statement to survive, got %v", stmts)
	}
	if got := ast.Sprint(stmts[0]); got != "(; 1)" {
		t.Fatalf("got %s", got)
	}
}

func TestParse_RecoversAtStatementBoundary(t *testing.T) {
	stmts, diags := ParseSource("print 1 +;\nprint 2;")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statement slots, got %d", len(stmts))
	}
	if stmts[0] != nil {
		t.Fatalf("expected failed statement to be nil, got %T", stmts[0])
	}
	if got := ast.Sprint(stmts[1]); got != "(print 2)" {
		t.Fatalf("got %s", got)
	}
}

func TestParse_ReportsEveryError(t *testing.T) {
	stmts, diags := ParseSource("print ;\nvar = 2;\nprint 3;")
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Range.Line != 1 || diags[1].Range.Line != 2 {
		t.Fatalf("unexpected lines %d, %d", diags[0].Range.Line, diags[1].Range.Line)
	}
	if len(stmts) != 3 || stmts[0] != nil || stmts[1] != nil || stmts[2] == nil {
		t.Fatalf("unexpected statements %v", stmts)
	}
}

func TestParse_SynchronizesBeforeKeyword(t *testing.T) {
	stmts, diags := ParseSource("1 + * 2 var y = 3;")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if len(stmts) != 2 || stmts[0] != nil {
		t.Fatalf("unexpected statements %v", stmts)
	}
	if got := ast.Sprint(stmts[1]); got != "(var y 3)" {
		t.Fatalf("got %s", got)
	}
}

func TestParseSource_ScanErrorsComeFirst(t *testing.T) {
	stmts, diags := ParseSource("print @1;\nprint")
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if !strings.Contains(diags[0].String(), "Unexpected character.") {
		t.Fatalf("expected scan error first, got %q", diags[0].String())
	}
	if diags[1].String() != "[line 2] Error at end: Expect expression." {
		t.Fatalf("got %q", diags[1].String())
	}
	if len(stmts) != 2 || ast.Sprint(stmts[0]) != "(print 1)" {
		t.Fatalf("unexpected statements %v", stmts)
	}
}

func TestParse_MissingEOFIsTolerated(t *testing.T) {
	toks := []token.Token{
		{Type: token.PRINT, Lexeme: "print", Line: 1},
		{Type: token.NUMBER, Lexeme: "1", Literal: 1.0, Line: 1},
		{Type: token.SEMICOLON, Lexeme: ";", Line: 1},
	}
	stmts, diags := Parse(toks)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	if len(stmts) != 1 || ast.Sprint(stmts[0]) != "(print 1)" {
		t.Fatalf("unexpected statements %v", stmts)
	}

	stmts, diags = Parse(nil)
	if len(stmts) != 0 || len(diags) != 0 {
		t.Fatalf("expected empty parse, got %v %v", stmts, diags)
	}
}
