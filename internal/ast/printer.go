package ast

import (
	"strconv"
	"strings"

	"lumen/internal/numlit"
)

// Sprint renders a node in parenthesized prefix form, e.g. (+ 1 (* 2 3)).
func Sprint(n Node) string {
	if n == nil {
		return ""
	}
	var (
		s   string
		err error
	)
	p := printer{}
	switch n := n.(type) {
	case Expr:
		s, err = VisitExpr[string](n, p)
	case Stmt:
		s, err = VisitStmt[string](n, p)
	}
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

// SprintProgram renders one statement per line. Statements that failed to
// parse are left out.
func SprintProgram(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		if s == nil {
			continue
		}
		b.WriteString(Sprint(s))
		b.WriteByte('\n')
	}
	return b.String()
}

type printer struct{}

func (p printer) VisitLiteral(l *Literal) (string, error) {
	switch v := l.Value.(type) {
	case nil:
		return "nil", nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return numlit.Format(v), nil
	case string:
		return v, nil
	}
	return l.Token.Lexeme, nil
}

func (p printer) VisitGrouping(g *Grouping) (string, error) {
	return p.parenthesize("group", g.Inner)
}

func (p printer) VisitUnary(u *Unary) (string, error) {
	return p.parenthesize(u.Operator.Lexeme, u.Right)
}

func (p printer) VisitBinary(b *Binary) (string, error) {
	return p.parenthesize(b.Operator.Lexeme, b.Left, b.Right)
}

func (p printer) VisitVariable(v *Variable) (string, error) {
	return v.Name.Lexeme, nil
}

func (p printer) VisitAssign(a *Assign) (string, error) {
	return p.parenthesize("= "+a.Name.Lexeme, a.Value)
}

func (p printer) VisitExpressionStmt(s *ExpressionStmt) (string, error) {
	return p.parenthesize(";", s.Expression)
}

func (p printer) VisitPrintStmt(s *PrintStmt) (string, error) {
	return p.parenthesize("print", s.Expression)
}

func (p printer) VisitVarStmt(s *VarStmt) (string, error) {
	if s.Initializer == nil {
		return "(var " + s.Name.Lexeme + ")", nil
	}
	return p.parenthesize("var "+s.Name.Lexeme, s.Initializer)
}

func (p printer) parenthesize(name string, exprs ...Expr) (string, error) {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		if e == nil {
			b.WriteString("nil")
			continue
		}
		s, err := VisitExpr[string](e, p)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	b.WriteString(")")
	return b.String(), nil
}
