package lsp

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const testURI = "file:///test.lum"

func TestDiagnostics(t *testing.T) {
	a := Analyze("var a = 1;\nprint b;")
	ds := ToLspDiagnostics(a.Text, a.Diagnostics)
	if len(ds) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(ds))
	}
	unused := ds[0]
	if unused.Range.Start != (protocol.Position{Line: 0, Character: 4}) || unused.Range.End.Character != 5 {
		t.Fatalf("unexpected unused range %+v", unused.Range)
	}
	if unused.Severity == nil || *unused.Severity != protocol.DiagnosticSeverityWarning {
		t.Fatalf("expected warning severity")
	}
	if len(unused.Tags) != 1 || unused.Tags[0] != protocol.DiagnosticTagUnnecessary {
		t.Fatalf("expected unnecessary tag, got %v", unused.Tags)
	}
	if ds[1].Message != "use of undeclared variable: b" || ds[1].Range.Start.Line != 1 {
		t.Fatalf("unexpected second diagnostic %+v", ds[1])
	}
}

func TestDiagnosticsParseError(t *testing.T) {
	a := Analyze("print ;")
	ds := ToLspDiagnostics(a.Text, a.Diagnostics)
	if len(ds) == 0 {
		t.Fatalf("expected a diagnostic")
	}
	if ds[0].Message != "Error at ';': Expect expression." {
		t.Fatalf("unexpected message %q", ds[0].Message)
	}
	if ds[0].Severity == nil || *ds[0].Severity != protocol.DiagnosticSeverityError {
		t.Fatalf("expected error severity")
	}
}

func TestDiagnosticsUTF16Columns(t *testing.T) {
	a := Analyze("print \"π\" + nope;")
	ds := ToLspDiagnostics(a.Text, a.Diagnostics)
	if len(ds) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(ds))
	}
	// "π" is two bytes but one UTF-16 unit.
	if ds[0].Range.Start.Character != 12 {
		t.Fatalf("expected character 12, got %d", ds[0].Range.Start.Character)
	}
}

func TestHover(t *testing.T) {
	clean, pos := extractPos(t, "var count = 1+2;\nprint $count;")
	h, ok := HoverAt(Analyze(clean), pos)
	if !ok {
		t.Fatalf("expected hover")
	}
	mc, ok := h.Contents.(protocol.MarkupContent)
	if !ok {
		t.Fatalf("unexpected hover contents %T", h.Contents)
	}
	if !strings.Contains(mc.Value, "var count = 1 + 2;") {
		t.Fatalf("expected normalized declaration in hover, got %q", mc.Value)
	}
	if !strings.Contains(mc.Value, "declared on line 1") {
		t.Fatalf("expected declaration line in hover, got %q", mc.Value)
	}
}

func TestHoverOutsideIdentifier(t *testing.T) {
	clean, pos := extractPos(t, "var x = 1;\n$print x;")
	if _, ok := HoverAt(Analyze(clean), pos); ok {
		t.Fatalf("expected no hover on keyword")
	}
}

func TestDefinition(t *testing.T) {
	clean, pos := extractPos(t, "var x = 1;\nprint $x;")
	loc, ok := DefinitionAt(Analyze(clean), testURI, pos)
	if !ok {
		t.Fatalf("expected definition")
	}
	if loc.URI != testURI || loc.Range.Start != (protocol.Position{Line: 0, Character: 4}) {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestDefinitionInitializerSeesPreviousDeclaration(t *testing.T) {
	clean, pos := extractPos(t, "var x = 1;\nvar x = $x + 1;\nprint x;")
	loc, ok := DefinitionAt(Analyze(clean), testURI, pos)
	if !ok {
		t.Fatalf("expected definition")
	}
	if loc.Range.Start.Line != 0 {
		t.Fatalf("expected first declaration, got line %d", loc.Range.Start.Line)
	}
}

func TestDefinitionUndeclared(t *testing.T) {
	clean, pos := extractPos(t, "print $y;")
	if _, ok := DefinitionAt(Analyze(clean), testURI, pos); ok {
		t.Fatalf("expected no definition for undeclared name")
	}
}

func TestReferences(t *testing.T) {
	clean, pos := extractPos(t, "var x = 1;\nx = x + 1;\nprint $x;")
	a := Analyze(clean)
	if got := len(ReferencesAt(a, testURI, pos, true)); got != 4 {
		t.Fatalf("expected 4 locations, got %d", got)
	}
	if got := len(ReferencesAt(a, testURI, pos, false)); got != 3 {
		t.Fatalf("expected 3 locations, got %d", got)
	}
}

func TestReferencesRedeclaration(t *testing.T) {
	clean, pos := extractPos(t, "var x = 1;\nprint x;\nvar x = 2;\nprint $x;")
	locs := ReferencesAt(Analyze(clean), testURI, pos, true)
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}
	if locs[0].Range.Start.Line != 2 || locs[1].Range.Start.Line != 3 {
		t.Fatalf("unexpected locations %+v", locs)
	}
}

func TestRename(t *testing.T) {
	clean, pos := extractPos(t, "var a = 1;\nprint $a + a;")
	edit, err := RenameAt(Analyze(clean), testURI, pos, "total")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	edits := edit.Changes[testURI]
	if len(edits) != 3 {
		t.Fatalf("expected 3 edits, got %d", len(edits))
	}
	for _, e := range edits {
		if e.NewText != "total" {
			t.Fatalf("unexpected edit text %q", e.NewText)
		}
	}
}

func TestRenameRejectsInvalidNames(t *testing.T) {
	clean, pos := extractPos(t, "var a = 1;\nprint $a;")
	a := Analyze(clean)
	for _, name := range []string{"", "1b", "var", "a b", "a-b"} {
		if _, err := RenameAt(a, testURI, pos, name); err == nil {
			t.Fatalf("expected error for %q", name)
		}
	}
}

func TestCompletion(t *testing.T) {
	clean, pos := extractPos(t, "var alpha = 1;\n$\nvar beta = 2;")
	items := CompletionItems(Analyze(clean), pos)
	if indexOfCompletion(items, "alpha") == -1 {
		t.Fatalf("expected alpha in completions")
	}
	if indexOfCompletion(items, "print") == -1 {
		t.Fatalf("expected print keyword in completions")
	}
	if indexOfCompletion(items, "beta") != -1 {
		t.Fatalf("beta is declared after the cursor")
	}
}

func TestDocumentSymbols(t *testing.T) {
	syms := DocumentSymbols(Analyze("var a = 1;\nvar b = a;\nprint b;"))
	if len(syms) != 2 || syms[0].Name != "a" || syms[1].Name != "b" {
		t.Fatalf("unexpected symbols %+v", syms)
	}
	if syms[1].Kind != protocol.SymbolKindVariable || syms[1].Range.Start.Line != 1 {
		t.Fatalf("unexpected symbol %+v", syms[1])
	}
}

func TestCodeActions(t *testing.T) {
	a := Analyze("var a = 1;\nprint 2;\n")
	acts := CodeActions(a, testURI, ToLspDiagnostics(a.Text, a.Diagnostics))
	if len(acts) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(acts))
	}
	remove := acts[0].Edit.Changes[testURI][0]
	want := protocol.Range{Start: protocol.Position{Line: 0}, End: protocol.Position{Line: 1}}
	if remove.Range != want || remove.NewText != "" {
		t.Fatalf("unexpected removal edit %+v", remove)
	}
	prefix := acts[1].Edit.Changes[testURI][0]
	if prefix.NewText != "_a" || prefix.Range.Start.Character != 4 {
		t.Fatalf("unexpected prefix edit %+v", prefix)
	}
}

func TestCodeActionsSharedLine(t *testing.T) {
	a := Analyze("var a = 1; print 2;")
	acts := CodeActions(a, testURI, ToLspDiagnostics(a.Text, a.Diagnostics))
	if len(acts) == 0 {
		t.Fatalf("expected actions")
	}
	remove := acts[0].Edit.Changes[testURI][0]
	want := protocol.Range{End: protocol.Position{Line: 0, Character: 10}}
	if remove.Range != want {
		t.Fatalf("unexpected removal range %+v", remove.Range)
	}
}

func TestStore(t *testing.T) {
	s := NewStore()
	s.Set(testURI, "var a = 1;", 1)
	first, ok := s.Analysis(testURI)
	if !ok {
		t.Fatalf("expected analysis")
	}
	if again, _ := s.Analysis(testURI); again != first {
		t.Fatalf("expected cached analysis")
	}
	s.Set(testURI, "print 1;", 2)
	if next, _ := s.Analysis(testURI); next == first || len(next.Decls) != 0 {
		t.Fatalf("expected fresh analysis after change")
	}
	s.Delete(testURI)
	if _, ok := s.Get(testURI); ok {
		t.Fatalf("expected document to be removed")
	}
}

func TestIsLumenURI(t *testing.T) {
	if !IsLumenURI("file:///tmp/a.lum") {
		t.Fatalf("expected .lum uri to match")
	}
	if IsLumenURI("file:///tmp/a.txt") || IsLumenURI("untitled:a.lum") {
		t.Fatalf("unexpected match")
	}
	if got := UriToPath("file:///tmp/my%20dir/a.lum"); got != filepath.FromSlash("/tmp/my dir/a.lum") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestFullDocumentRange(t *testing.T) {
	r := FullDocumentRange("var a;\nprint \"π\";")
	if r.Start != (protocol.Position{}) || r.End != (protocol.Position{Line: 1, Character: 10}) {
		t.Fatalf("unexpected range %+v", r)
	}
}

// extractPos removes the "$" cursor marker and returns its LSP position.
func extractPos(t *testing.T, text string) (string, protocol.Position) {
	idx := strings.Index(text, "$")
	if idx == -1 {
		t.Fatalf("missing cursor marker")
	}
	before := text[:idx]
	after := text[idx+1:]
	clean := before + after
	line := uint32(0)
	col := uint32(0)
	for _, r := range before {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		col += uint32(n)
	}
	return clean, protocol.Position{Line: line, Character: col}
}

func indexOfCompletion(items []protocol.CompletionItem, label string) int {
	for i, item := range items {
		if item.Label == label {
			return i
		}
	}
	return -1
}
