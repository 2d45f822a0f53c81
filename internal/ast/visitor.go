package ast

import "fmt"

// ExprVisitor must handle every expression variant; adding a node type breaks
// every consumer at compile time until it is handled.
type ExprVisitor[R any] interface {
	VisitLiteral(*Literal) (R, error)
	VisitGrouping(*Grouping) (R, error)
	VisitUnary(*Unary) (R, error)
	VisitBinary(*Binary) (R, error)
	VisitVariable(*Variable) (R, error)
	VisitAssign(*Assign) (R, error)
}

type StmtVisitor[R any] interface {
	VisitExpressionStmt(*ExpressionStmt) (R, error)
	VisitPrintStmt(*PrintStmt) (R, error)
	VisitVarStmt(*VarStmt) (R, error)
}

func VisitExpr[R any](e Expr, v ExprVisitor[R]) (R, error) {
	switch n := e.(type) {
	case *Literal:
		return v.VisitLiteral(n)
	case *Grouping:
		return v.VisitGrouping(n)
	case *Unary:
		return v.VisitUnary(n)
	case *Binary:
		return v.VisitBinary(n)
	case *Variable:
		return v.VisitVariable(n)
	case *Assign:
		return v.VisitAssign(n)
	}
	var zero R
	return zero, fmt.Errorf("ast: unexpected expression %T", e)
}

func VisitStmt[R any](s Stmt, v StmtVisitor[R]) (R, error) {
	switch n := s.(type) {
	case *ExpressionStmt:
		return v.VisitExpressionStmt(n)
	case *PrintStmt:
		return v.VisitPrintStmt(n)
	case *VarStmt:
		return v.VisitVarStmt(n)
	}
	var zero R
	return zero, fmt.Errorf("ast: unexpected statement %T", s)
}
