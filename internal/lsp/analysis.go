package lsp

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/lint"
	"lumen/internal/parser"
	"lumen/internal/token"
)

// Decl is one `var` declaration and every identifier that resolves to it.
type Decl struct {
	Name string
	Tok  token.Token
	Stmt *ast.VarStmt
	Refs []token.Token
}

type Analysis struct {
	Text        string
	Tokens      []token.Token
	Statements  []ast.Stmt
	Diagnostics []diag.Diagnostic
	Decls       []*Decl

	byPos map[Pos]*Decl
}

// Analyze scans, parses and lints text, then resolves every identifier to
// the declaration in effect at that point of the program.
func Analyze(text string) *Analysis {
	toks, scanDiags := lexer.Scan(text)
	stmts, parseDiags := parser.Parse(toks)

	a := &Analysis{
		Text:       text,
		Tokens:     toks,
		Statements: stmts,
		byPos:      map[Pos]*Decl{},
	}
	a.Diagnostics = append(a.Diagnostics, scanDiags...)
	a.Diagnostics = append(a.Diagnostics, parseDiags...)
	a.Diagnostics = append(a.Diagnostics, lint.Run(stmts)...)

	r := &resolver{a: a, current: map[string]*Decl{}}
	for _, st := range stmts {
		r.stmt(st)
	}
	return a
}

// IdentAt returns the identifier token covering a 1-based byte position.
func (a *Analysis) IdentAt(p Pos) (token.Token, bool) {
	for _, tok := range a.Tokens {
		if tok.Type != token.IDENTIFIER || tok.Line != p.Line {
			continue
		}
		if p.Col >= tok.Col && p.Col < tok.Col+max(1, len(tok.Lexeme)) {
			return tok, true
		}
	}
	return token.Token{}, false
}

// DeclAt resolves the identifier under p.
func (a *Analysis) DeclAt(p Pos) (*Decl, token.Token, bool) {
	tok, ok := a.IdentAt(p)
	if !ok {
		return nil, token.Token{}, false
	}
	d, ok := a.byPos[Pos{Line: tok.Line, Col: tok.Col}]
	return d, tok, ok
}

// IsDeclaration reports whether tok names a declaration.
func (a *Analysis) IsDeclaration(tok token.Token) bool {
	d, ok := a.byPos[Pos{Line: tok.Line, Col: tok.Col}]
	return ok && d.Tok.Line == tok.Line && d.Tok.Col == tok.Col
}

// VisibleAt returns the names declared before p, latest declaration first.
func (a *Analysis) VisibleAt(p Pos) []*Decl {
	seen := map[string]bool{}
	var out []*Decl
	for i := len(a.Decls) - 1; i >= 0; i-- {
		d := a.Decls[i]
		if !posLessEq(Pos{Line: d.Tok.Line, Col: d.Tok.Col}, p) || seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	return out
}

type resolver struct {
	a       *Analysis
	current map[string]*Decl
}

func (r *resolver) stmt(st ast.Stmt) {
	switch s := st.(type) {
	case *ast.VarStmt:
		r.expr(s.Initializer)
		d := &Decl{Name: s.Name.Lexeme, Tok: s.Name, Stmt: s}
		r.current[d.Name] = d
		r.a.Decls = append(r.a.Decls, d)
		r.a.byPos[Pos{Line: s.Name.Line, Col: s.Name.Col}] = d
	case *ast.PrintStmt:
		r.expr(s.Expression)
	case *ast.ExpressionStmt:
		r.expr(s.Expression)
	}
}

func (r *resolver) expr(e ast.Expr) {
	if e == nil {
		return
	}
	_, _ = ast.VisitExpr[struct{}](e, r)
}

func (r *resolver) ref(tok token.Token) {
	d, ok := r.current[tok.Lexeme]
	if !ok {
		return
	}
	d.Refs = append(d.Refs, tok)
	r.a.byPos[Pos{Line: tok.Line, Col: tok.Col}] = d
}

func (r *resolver) VisitLiteral(*ast.Literal) (struct{}, error) { return struct{}{}, nil }

func (r *resolver) VisitGrouping(g *ast.Grouping) (struct{}, error) {
	r.expr(g.Inner)
	return struct{}{}, nil
}

func (r *resolver) VisitUnary(u *ast.Unary) (struct{}, error) {
	r.expr(u.Right)
	return struct{}{}, nil
}

func (r *resolver) VisitBinary(b *ast.Binary) (struct{}, error) {
	r.expr(b.Left)
	r.expr(b.Right)
	return struct{}{}, nil
}

func (r *resolver) VisitVariable(v *ast.Variable) (struct{}, error) {
	r.ref(v.Name)
	return struct{}{}, nil
}

func (r *resolver) VisitAssign(a *ast.Assign) (struct{}, error) {
	r.expr(a.Value)
	r.ref(a.Name)
	return struct{}{}, nil
}
