package lint

import (
	"fmt"
	"strings"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/semantics"
	"lumen/internal/token"
)

type sym struct {
	name string
	tok  token.Token
	used bool
}

type Runner struct {
	diags []diag.Diagnostic
	syms  map[string]*sym
	// decls keeps every declaration, including replaced ones, in order.
	decls []*sym
	opts  Options
}

func (r *Runner) warn(tok token.Token, code string, msg string) {
	r.diags = append(r.diags, diag.Diagnostic{
		Kind:     diag.KindLint,
		Code:     code,
		Message:  msg,
		Severity: diag.SeverityWarning,
		Range: diag.Range{
			Line:   tok.Line,
			Col:    tok.Col,
			Length: tokLength(tok),
		},
	})
}

func tokLength(tok token.Token) int {
	if tok.Lexeme == "" {
		return 1
	}
	return len([]rune(tok.Lexeme))
}

func (r *Runner) declare(tok token.Token) {
	name := tok.Lexeme
	if name == "" {
		return
	}
	if r.opts.CheckRedeclaration && r.syms[name] != nil {
		r.warn(tok, CodeRedeclared, fmt.Sprintf("variable '%s' redeclared", name))
	}
	s := &sym{name: name, tok: tok}
	r.syms[name] = s
	r.decls = append(r.decls, s)
}

func (r *Runner) use(tok token.Token) {
	if s := r.syms[tok.Lexeme]; s != nil {
		s.used = true
		return
	}
	r.warn(tok, CodeUndeclared, fmt.Sprintf("use of undeclared variable: %s", tok.Lexeme))
}

func (r *Runner) assign(tok token.Token) {
	if r.syms[tok.Lexeme] == nil {
		r.warn(tok, CodeUndeclared, fmt.Sprintf("assignment to undeclared variable: %s", tok.Lexeme))
	}
}

func (r *Runner) finish() {
	for _, s := range r.decls {
		if !s.used && !strings.HasPrefix(s.name, "_") {
			r.warn(s.tok, CodeUnused, fmt.Sprintf("unused variable: %s", s.name))
		}
	}
}

/* -------------------- walking -------------------- */

func (r *Runner) walkStmt(st ast.Stmt) {
	switch s := st.(type) {
	case *ast.VarStmt:
		// The initializer sees the previous binding, if any.
		r.walkExpr(s.Initializer)
		r.declare(s.Name)
	case *ast.PrintStmt:
		r.walkExpr(s.Expression)
	case *ast.ExpressionStmt:
		r.walkExpr(s.Expression)
	}
}

func (r *Runner) walkExpr(e ast.Expr) {
	if e == nil {
		return
	}
	_, _ = ast.VisitExpr[struct{}](e, r)
}

func (r *Runner) VisitLiteral(*ast.Literal) (struct{}, error) { return struct{}{}, nil }

func (r *Runner) VisitGrouping(g *ast.Grouping) (struct{}, error) {
	r.walkExpr(g.Inner)
	return struct{}{}, nil
}

func (r *Runner) VisitUnary(u *ast.Unary) (struct{}, error) {
	r.walkExpr(u.Right)
	return struct{}{}, nil
}

func (r *Runner) VisitBinary(b *ast.Binary) (struct{}, error) {
	r.walkExpr(b.Left)
	r.walkExpr(b.Right)
	if b.Operator.Type == token.TILDE_EQUAL {
		r.checkPattern(b.Right)
	}
	return struct{}{}, nil
}

func (r *Runner) VisitVariable(v *ast.Variable) (struct{}, error) {
	r.use(v.Name)
	return struct{}{}, nil
}

func (r *Runner) VisitAssign(a *ast.Assign) (struct{}, error) {
	r.walkExpr(a.Value)
	r.assign(a.Name)
	return struct{}{}, nil
}

// checkPattern validates a string literal used as a ~= pattern.
func (r *Runner) checkPattern(e ast.Expr) {
	for {
		g, ok := e.(*ast.Grouping)
		if !ok {
			break
		}
		e = g.Inner
	}
	lit, ok := e.(*ast.Literal)
	if !ok {
		return
	}
	pattern, ok := lit.Value.(string)
	if !ok {
		return
	}
	if _, err := semantics.CompilePattern(pattern); err != nil {
		r.warn(lit.Token, CodeInvalidPattern, err.Error())
	}
}
