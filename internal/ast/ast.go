package ast

import (
	"lumen/internal/token"
)

type Node interface {
	// Tok is the token a node is reported at.
	Tok() token.Token
	String() string
}

// Expr and Stmt are sealed: only the node types in this file implement them,
// so VisitExpr and VisitStmt cover every variant.
type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

/* -------------------- Expressions -------------------- */

type Literal struct {
	Token token.Token // NUMBER, STRING, TRUE, FALSE or NIL
	Value any         // nil, bool, float64 or string
}

func (*Literal) exprNode()          {}
func (l *Literal) Tok() token.Token { return l.Token }
func (l *Literal) String() string   { return Sprint(l) }

type Grouping struct {
	Token token.Token // '('
	Inner Expr
}

func (*Grouping) exprNode()          {}
func (g *Grouping) Tok() token.Token { return g.Token }
func (g *Grouping) String() string   { return Sprint(g) }

type Unary struct {
	Operator token.Token // '!' or '-'
	Right    Expr
}

func (*Unary) exprNode()          {}
func (u *Unary) Tok() token.Token { return u.Operator }
func (u *Unary) String() string   { return Sprint(u) }

type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*Binary) exprNode()          {}
func (b *Binary) Tok() token.Token { return b.Operator }
func (b *Binary) String() string   { return Sprint(b) }

type Variable struct {
	Name token.Token // IDENTIFIER
}

func (*Variable) exprNode()          {}
func (v *Variable) Tok() token.Token { return v.Name }
func (v *Variable) String() string   { return Sprint(v) }

type Assign struct {
	Name  token.Token // IDENTIFIER being rebound
	Value Expr
}

func (*Assign) exprNode()          {}
func (a *Assign) Tok() token.Token { return a.Name }
func (a *Assign) String() string   { return Sprint(a) }

/* -------------------- Statements -------------------- */

type ExpressionStmt struct {
	Token      token.Token // first token of the expression
	Expression Expr
}

func (*ExpressionStmt) stmtNode()          {}
func (s *ExpressionStmt) Tok() token.Token { return s.Token }
func (s *ExpressionStmt) String() string   { return Sprint(s) }

type PrintStmt struct {
	Token      token.Token // 'print'
	Expression Expr
}

func (*PrintStmt) stmtNode()          {}
func (s *PrintStmt) Tok() token.Token { return s.Token }
func (s *PrintStmt) String() string   { return Sprint(s) }

type VarStmt struct {
	Name        token.Token // IDENTIFIER
	Initializer Expr        // optional
}

func (*VarStmt) stmtNode()          {}
func (s *VarStmt) Tok() token.Token { return s.Name }
func (s *VarStmt) String() string   { return Sprint(s) }
