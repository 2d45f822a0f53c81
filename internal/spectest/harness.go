package spectest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lumen/internal/evaluator"
)

type Options struct {
	HaltOnSyntaxError bool
}

// Result is one script run: captured output plus every reported error line.
type Result struct {
	Stdout   string
	Errors   []string
	ExitCode int
}

// Err joins the reported errors; empty when the run was clean.
func (r Result) Err() string {
	return strings.Join(r.Errors, "\n")
}

func Run(src string, opts Options) Result {
	var out bytes.Buffer
	res := evaluator.Run(src, &out, evaluator.Options{HaltOnSyntaxError: opts.HaltOnSyntaxError})
	return collect(out.String(), res)
}

func RunFile(path string, opts Options) (Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Run(string(b), opts), nil
}

func collect(stdout string, res evaluator.Result) Result {
	out := Result{Stdout: stdout, ExitCode: res.ExitCode()}
	for _, d := range res.Diagnostics {
		out.Errors = append(out.Errors, d.String())
	}
	if res.RuntimeErr != nil {
		out.Errors = append(out.Errors, res.RuntimeErr.Format())
	}
	return out
}

// Check compares a run with an expectation. baseDir resolves "stdout file"
// paths. reason is empty when ok.
func Check(res Result, exp Expectation, baseDir string) (ok bool, reason string, err error) {
	gotErr := res.Err()
	switch exp.Outcome {
	case OutcomeOK:
		if gotErr != "" {
			return false, "expected ok, got error: " + gotErr, nil
		}
	case OutcomeError:
		if gotErr == "" {
			return false, "expected error, got ok", nil
		}
	case OutcomeErrorContains:
		if gotErr == "" {
			return false, "expected error, got ok", nil
		}
		if !strings.Contains(gotErr, exp.ErrContains) {
			return false, fmt.Sprintf("error mismatch: expected to contain %q, got %q", exp.ErrContains, gotErr), nil
		}
	default:
		return false, "unknown expectation", nil
	}

	return exp.Stdout.Match(res.Stdout, baseDir)
}

// RunScript runs a file and checks it against its own directives.
func RunScript(path string, opts Options) (ok bool, reason string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, "", err
	}
	f, err := os.Open(abs)
	if err != nil {
		return false, "", err
	}
	exp, err := ParseDirectives(f, abs)
	f.Close()
	if err != nil {
		return false, "", err
	}
	res, err := RunFile(abs, opts)
	if err != nil {
		return false, "", err
	}
	return Check(res, *exp, filepath.Dir(abs))
}

func Assert(t *testing.T, res Result, exp Expectation) {
	t.Helper()

	ok, reason, err := Check(res, exp, "")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !ok {
		t.Fatal(reason)
	}
}
