package evaluator

import (
	"fmt"
	"io"
	"os"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/parser"
	"lumen/internal/token"
)

const (
	ExitOK      = 0
	ExitStatic  = 65 // scan or parse errors
	ExitRuntime = 70
)

type Options struct {
	// HaltOnSyntaxError skips execution when scanning or parsing reported errors.
	HaltOnSyntaxError bool
}

// Result collects what one run produced. Nothing is kept in globals.
type Result struct {
	Tokens      []token.Token
	Statements  []ast.Stmt
	Diagnostics diag.List
	RuntimeErr  *RuntimeError
	Executed    bool
}

func (r Result) HadStaticError() bool { return r.Diagnostics.HasErrors() }

func (r Result) HadRuntimeError() bool { return r.RuntimeErr != nil }

// ExitCode maps the result to a process status; static errors win over a
// runtime error.
func (r Result) ExitCode() int {
	switch {
	case r.HadStaticError():
		return ExitStatic
	case r.HadRuntimeError():
		return ExitRuntime
	}
	return ExitOK
}

// Report writes every diagnostic, then the runtime error if any, one per line.
func (r Result) Report(w io.Writer) {
	for _, d := range r.Diagnostics {
		fmt.Fprintln(w, d.String())
	}
	if r.RuntimeErr != nil {
		fmt.Fprintln(w, r.RuntimeErr.Format())
	}
}

// Runner drives scan, parse and interpret over a persistent Interpreter, so
// bindings from one Run are visible to the next.
type Runner struct {
	Interp  *Interpreter
	Options Options
}

func NewRunner(out io.Writer) *Runner {
	return &Runner{Interp: New(out)}
}

func (r *Runner) Run(src string) Result {
	var res Result

	toks, scanDiags := lexer.Scan(src)
	res.Tokens = toks
	res.Diagnostics = append(res.Diagnostics, scanDiags...)

	stmts, parseDiags := parser.Parse(toks)
	res.Statements = stmts
	res.Diagnostics = append(res.Diagnostics, parseDiags...)

	if r.Options.HaltOnSyntaxError && res.HadStaticError() {
		return res
	}

	res.Executed = true
	res.RuntimeErr = r.Interp.Interpret(stmts)
	return res
}

// RunFile reads and runs path. The error is only for an unreadable file.
func (r *Runner) RunFile(path string) (Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return r.Run(string(b)), nil
}

// Run executes src in a fresh interpreter writing to out.
func Run(src string, out io.Writer, opts Options) Result {
	r := NewRunner(out)
	r.Options = opts
	return r.Run(src)
}
