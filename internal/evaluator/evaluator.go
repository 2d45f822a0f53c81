package evaluator

import (
	"fmt"
	"io"

	"lumen/internal/ast"
	"lumen/internal/object"
	"lumen/internal/semantics"
)

// Interpreter walks statements in order against one scope arena. Its global
// scope survives between calls to Interpret.
type Interpreter struct {
	out    io.Writer
	scopes *object.Scopes
	global object.ScopeID
	scope  object.ScopeID
}

func New(out io.Writer) *Interpreter {
	scopes := object.NewScopes()
	global := scopes.Push(object.NoScope)
	return &Interpreter{
		out:    out,
		scopes: scopes,
		global: global,
		scope:  global,
	}
}

// SetOutput redirects print statements.
func (in *Interpreter) SetOutput(out io.Writer) { in.out = out }

// Interpret executes stmts, skipping nil entries left by parse errors. The
// first runtime error stops execution and is returned.
func (in *Interpreter) Interpret(stmts []ast.Stmt) *RuntimeError {
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		if err := in.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) Execute(stmt ast.Stmt) *RuntimeError {
	if stmt == nil {
		return &RuntimeError{Message: "missing statement"}
	}
	_, err := ast.VisitStmt[struct{}](stmt, in)
	return asRuntimeError(stmt, err)
}

// Evaluate computes one expression against the current bindings.
func (in *Interpreter) Evaluate(expr ast.Expr) (object.Object, *RuntimeError) {
	if expr == nil {
		return nil, &RuntimeError{Message: "missing expression"}
	}
	val, err := ast.VisitExpr[object.Object](expr, in)
	if err != nil {
		return nil, asRuntimeError(expr, err)
	}
	return val, nil
}

// Globals returns a copy of the global bindings.
func (in *Interpreter) Globals() map[string]object.Object {
	return in.scopes.Snapshot(in.global)
}

func asRuntimeError(n ast.Node, err error) *RuntimeError {
	if err == nil {
		return nil
	}
	if rerr, ok := err.(*RuntimeError); ok {
		return rerr
	}
	return newRuntimeError(n.Tok(), err)
}

/* -------------------- statements -------------------- */

func (in *Interpreter) VisitExpressionStmt(s *ast.ExpressionStmt) (struct{}, error) {
	_, err := in.eval(s.Expression)
	return struct{}{}, err
}

func (in *Interpreter) VisitPrintStmt(s *ast.PrintStmt) (struct{}, error) {
	val, err := in.eval(s.Expression)
	if err != nil {
		return struct{}{}, err
	}
	if _, err := fmt.Fprintln(in.out, val.Inspect()); err != nil {
		return struct{}{}, newRuntimeError(s.Token, fmt.Errorf("print: %w", err))
	}
	return struct{}{}, nil
}

func (in *Interpreter) VisitVarStmt(s *ast.VarStmt) (struct{}, error) {
	var val object.Object = object.NIL
	if s.Initializer != nil {
		v, err := in.eval(s.Initializer)
		if err != nil {
			return struct{}{}, err
		}
		val = v
	}
	in.scopes.Define(in.scope, s.Name.Lexeme, val)
	return struct{}{}, nil
}

/* -------------------- expressions -------------------- */

func (in *Interpreter) eval(e ast.Expr) (object.Object, error) {
	return ast.VisitExpr[object.Object](e, in)
}

func (in *Interpreter) VisitLiteral(l *ast.Literal) (object.Object, error) {
	val, ok := object.FromLiteral(l.Value)
	if !ok {
		return nil, &RuntimeError{Token: l.Token, Message: fmt.Sprintf("unsupported literal %T", l.Value)}
	}
	return val, nil
}

func (in *Interpreter) VisitGrouping(g *ast.Grouping) (object.Object, error) {
	return in.eval(g.Inner)
}

func (in *Interpreter) VisitUnary(u *ast.Unary) (object.Object, error) {
	right, err := in.eval(u.Right)
	if err != nil {
		return nil, err
	}
	val, err := semantics.UnaryOp(u.Operator.Lexeme, right)
	if err != nil {
		return nil, newRuntimeError(u.Operator, err)
	}
	return val, nil
}

// VisitBinary evaluates both operands before applying the operator, including
// for || and &&.
func (in *Interpreter) VisitBinary(b *ast.Binary) (object.Object, error) {
	left, err := in.eval(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(b.Right)
	if err != nil {
		return nil, err
	}
	val, err := semantics.BinaryOp(b.Operator.Lexeme, left, right)
	if err != nil {
		return nil, newRuntimeError(b.Operator, err)
	}
	return val, nil
}

func (in *Interpreter) VisitVariable(v *ast.Variable) (object.Object, error) {
	val, ok := in.scopes.Get(in.scope, v.Name.Lexeme)
	if !ok {
		return nil, undefined(v.Name)
	}
	return val, nil
}

func (in *Interpreter) VisitAssign(a *ast.Assign) (object.Object, error) {
	val, err := in.eval(a.Value)
	if err != nil {
		return nil, err
	}
	if !in.scopes.Assign(in.scope, a.Name.Lexeme, val) {
		return nil, undefined(a.Name)
	}
	return val, nil
}
