package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, "name: demo\nentry: src/app.lum\noptions:\n  halt_on_syntax_error: true\n")

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "demo" || m.Entry != "src/app.lum" {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if !m.Options.HaltOnSyntaxError || m.Options.PrintAST {
		t.Fatalf("unexpected options %+v", m.Options)
	}
	if want := filepath.Join(dir, "src", "app.lum"); m.EntryPath() != want {
		t.Fatalf("EntryPath() = %q, want %q", m.EntryPath(), want)
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"name: demo\n", "missing entry"},
		{"entry: main.lum\n", "missing name"},
		{"name: demo\nentry: main.txt\n", "must be a .lum file"},
		{"name: demo\nentry: main.lum\nextra: 1\n", "field extra not found"},
		{"name: [\n", "parse"},
	}
	for _, tt := range tests {
		dir := t.TempDir()
		path := writeFile(t, dir, FileName, tt.content)
		_, err := LoadManifest(path)
		if err == nil {
			t.Fatalf("%q: expected error", tt.content)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%q: expected error containing %q, got %v", tt.content, tt.want, err)
		}
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	if _, ok, err := Find(dir); ok || err != nil {
		t.Fatalf("expected no manifest, got ok=%v err=%v", ok, err)
	}

	m := Default()
	m.Options.PrintAST = true
	if err := m.Write(filepath.Join(dir, FileName)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok, err := Find(dir)
	if err != nil || !ok {
		t.Fatalf("expected manifest, got ok=%v err=%v", ok, err)
	}
	if got.Name != "main" || got.Entry != "main.lum" || !got.Options.PrintAST {
		t.Fatalf("unexpected manifest %+v", got)
	}
}
