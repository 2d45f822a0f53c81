package spectest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type StdoutMode int

const (
	StdoutNone StdoutMode = iota
	StdoutExact
	StdoutContains
	StdoutFile
)

func (m StdoutMode) String() string {
	switch m {
	case StdoutExact:
		return "stdout"
	case StdoutContains:
		return "stdout contains"
	case StdoutFile:
		return "stdout file"
	case StdoutNone:
		return "none"
	}
	return fmt.Sprintf("StdoutMode(%d)", int(m))
}

type StdoutExpectation struct {
	Mode  StdoutMode
	Value string
}

// Match compares the captured output of a run. Line endings are unified
// first, so scripts written on Windows compare equal. A "stdout file" value is
// resolved against baseDir, the directory of the script declaring it.
func (e StdoutExpectation) Match(got, baseDir string) (bool, string, error) {
	got = unixLines(got)
	switch e.Mode {
	case StdoutNone:
		return true, "", nil
	case StdoutExact:
		if reason := diffLines(unixLines(e.Value), got); reason != "" {
			return false, "stdout mismatch: " + reason, nil
		}
		return true, "", nil
	case StdoutContains:
		want := unixLines(e.Value)
		if !strings.Contains(got, want) {
			return false, fmt.Sprintf("stdout mismatch: expected to contain %q, got %q", want, got), nil
		}
		return true, "", nil
	case StdoutFile:
		if e.Value == "" {
			return false, "stdout file path is empty", nil
		}
		path := e.Value
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return false, "", fmt.Errorf("stdout file: %w", err)
		}
		if reason := diffLines(unixLines(string(b)), got); reason != "" {
			return false, fmt.Sprintf("stdout mismatch against %s: %s", path, reason), nil
		}
		return true, "", nil
	}
	return false, "unknown stdout expectation " + e.Mode.String(), nil
}

func unixLines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// diffLines names the first printed line that differs; empty when equal.
func diffLines(want, got string) string {
	if want == got {
		return ""
	}
	wl := strings.SplitAfter(want, "\n")
	gl := strings.SplitAfter(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g {
			return fmt.Sprintf("line %d: expected %q, got %q", i+1, w, g)
		}
	}
	return fmt.Sprintf("expected %q, got %q", want, got)
}
