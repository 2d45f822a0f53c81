package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestStart_PersistsAndRecovers(t *testing.T) {
	input := strings.Join([]string{
		"var a = 1;",
		"print a;",
		"print (1 +",
		"2);",
		"print b;",
		"print 1 +;",
		"a = a + 1;",
		"print a;",
	}, "\n") + "\n"

	var out bytes.Buffer
	Start(strings.NewReader(input), &out, Options{})
	got := out.String()

	for _, want := range []string{
		"Lumen REPL (Ctrl+D to exit)\n",
		"lumen> 1\n",
		"....> 3\n",
		"Undefined variable 'b'.\n[line 1]\n",
		"[line 1] Error at ';': Expect expression.\n",
		"lumen> 2\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestStart_MultiLineString(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("print \"x\ny\";\n"), &out, Options{})
	if !strings.Contains(out.String(), "x\ny\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestStart_Exit(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("exit\nprint 1;\n"), &out, Options{})
	if strings.Contains(out.String(), "1\n") {
		t.Fatalf("statement after exit should not run: %q", out.String())
	}
}

func TestStart_PrintAST(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("var a = 1 + 2;\n"), &out, Options{PrintAST: true})
	if !strings.Contains(out.String(), "(var a (+ 1 2))\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		line     string
		parens   int
		inString bool
	}{
		{"print (1 +", 1, false},
		{"print (1);", 0, false},
		{`print "a(";`, 0, false},
		{`print "open`, 0, true},
		{"print 1; // (", 0, false},
	}
	for _, tt := range tests {
		got := balance{}.update(tt.line)
		if got.parens != tt.parens || got.inString != tt.inString {
			t.Fatalf("%q: got %+v", tt.line, got)
		}
	}
}
