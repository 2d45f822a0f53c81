package lint

import (
	"sort"

	"lumen/internal/ast"
	"lumen/internal/diag"
)

const (
	CodeUnused         = "LL0001"
	CodeRedeclared     = "LL0002"
	CodeUndeclared     = "LL0003"
	CodeInvalidPattern = "LL0004"
)

type Options struct {
	CheckRedeclaration bool
}

func DefaultOptions() Options {
	return Options{CheckRedeclaration: true}
}

type Linter struct {
	opts Options
}

func New() *Linter {
	return &Linter{opts: DefaultOptions()}
}

func NewWithOptions(opts Options) *Linter {
	return &Linter{opts: opts}
}

func Run(stmts []ast.Stmt) []diag.Diagnostic {
	return New().Run(stmts)
}

func RunWithOptions(stmts []ast.Stmt, opts Options) []diag.Diagnostic {
	return NewWithOptions(opts).Run(stmts)
}

// Run checks stmts in source order. Nil statements from parse errors are
// ignored. The result is sorted by position.
func (l *Linter) Run(stmts []ast.Stmt) []diag.Diagnostic {
	if len(stmts) == 0 {
		return nil
	}
	r := &Runner{syms: map[string]*sym{}, opts: l.opts}
	for _, st := range stmts {
		r.walkStmt(st)
	}
	r.finish()

	sort.SliceStable(r.diags, func(i, j int) bool {
		a, b := r.diags[i].Range, r.diags[j].Range
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
	return r.diags
}
