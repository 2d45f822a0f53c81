package diag

import "testing"

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Message: "Unexpected character.", Range: Range{Line: 3}}, "[line 3] Error: Unexpected character."},
		{Diagnostic{Message: "Expect expression.", Where: " at ';'", Range: Range{Line: 1}}, "[line 1] Error at ';': Expect expression."},
		{Diagnostic{Message: "Expect ';' after value.", Where: " at end", Range: Range{Line: 2}}, "[line 2] Error at end: Expect ';' after value."},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestDiagnosticFormat(t *testing.T) {
	d := Diagnostic{Code: "LL0001", Message: "unused variable: x", Severity: SeverityWarning, Range: Range{Line: 2, Col: 5}}
	if got := d.Format("a.lum"); got != "a.lum:2:5: warning LL0001: unused variable: x" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestListHasErrors(t *testing.T) {
	l := List{{Kind: KindLint, Severity: SeverityWarning}}
	if l.HasErrors() {
		t.Fatal("warnings alone must not count as errors")
	}
	l = append(l, Diagnostic{Kind: KindParse, Severity: SeverityError})
	if !l.HasErrors() {
		t.Fatal("expected HasErrors after adding a parse error")
	}
	if n := len(l.OfKind(KindParse)); n != 1 {
		t.Fatalf("expected 1 parse diagnostic, got %d", n)
	}
}
