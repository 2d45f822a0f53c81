package parser

import (
	"errors"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/token"
)

// errSyntax unwinds a declaration after its diagnostic has been recorded.
var errSyntax = errors.New("syntax error")

type Parser struct {
	tokens  []token.Token
	current int
	diags   []diag.Diagnostic
}

/* -------------------- constructor -------------------- */

func New(tokens []token.Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != token.EOF {
		line := 1
		if n > 0 {
			line = tokens[n-1].Line
		}
		tokens = append(tokens[:n:n], token.Token{Type: token.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse consumes every token up to EOF. A statement that failed to parse is
// kept as a nil entry so the result lines up with the source statements.
func Parse(tokens []token.Token) ([]ast.Stmt, []diag.Diagnostic) {
	p := New(tokens)
	stmts := p.Parse()
	return stmts, p.Diagnostics()
}

// ParseSource scans and parses src; scan diagnostics come first.
func ParseSource(src string) ([]ast.Stmt, []diag.Diagnostic) {
	toks, scanDiags := lexer.Scan(src)
	stmts, parseDiags := Parse(toks)
	return stmts, append(scanDiags, parseDiags...)
}

func (p *Parser) Diagnostics() []diag.Diagnostic { return p.diags }

/* -------------------- program -------------------- */

func (p *Parser) Parse() []ast.Stmt {
	stmts := []ast.Stmt{}
	for !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	return stmts
}

/* -------------------- statements -------------------- */

func (p *Parser) declaration() ast.Stmt {
	var (
		stmt ast.Stmt
		err  error
	)
	if p.match(token.VAR) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.IDENTIFIER, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	stmt := &ast.VarStmt{Name: name}
	if p.match(token.EQUAL) {
		if stmt.Initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	if p.match(token.PRINT) {
		return p.printStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	stmt := &ast.PrintStmt{Token: p.previous()}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	stmt.Expression = value
	return stmt, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	stmt := &ast.ExpressionStmt{Token: p.peek()}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	stmt.Expression = expr
	return stmt, nil
}

/* -------------------- expressions -------------------- */

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.EQUAL) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}, nil
		}
		// Reported, but the statement still parses.
		p.errorAt(equals, "Invalid assignment target.")
	}

	return expr, nil
}

func (p *Parser) logicOr() (ast.Expr, error) {
	return p.leftAssoc(p.logicAnd, token.LOGICAL_OR)
}

func (p *Parser) logicAnd() (ast.Expr, error) {
	return p.leftAssoc(p.equality, token.LOGICAL_AND)
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.leftAssoc(p.comparison, token.BANG_EQUAL, token.EQUAL_EQUAL, token.TILDE_EQUAL)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.leftAssoc(p.term, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.leftAssoc(p.factor, token.MINUS, token.PLUS)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.leftAssoc(p.unary, token.SLASH, token.STAR)
}

// leftAssoc parses operand (op operand)* and folds it to the left.
func (p *Parser) leftAssoc(operand func() (ast.Expr, error), ops ...token.Type) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: op, Right: right}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Token: p.previous(), Value: false}, nil
	case p.match(token.TRUE):
		return &ast.Literal{Token: p.previous(), Value: true}, nil
	case p.match(token.NIL):
		return &ast.Literal{Token: p.previous(), Value: nil}, nil
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Token: p.previous(), Value: p.previous().Literal}, nil
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.LEFT_PAREN):
		lparen := p.previous()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHT_PAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Token: lparen, Inner: inner}, nil
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}

/* -------------------- recovery -------------------- */

// synchronize discards tokens until the start of the next statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch t := p.peek().Type; {
		case t == token.VAR, t == token.PRINT, token.Reserved(t):
			return
		}
		p.advance()
	}
}

/* -------------------- helpers -------------------- */

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, msg string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), msg)
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) errorAt(tok token.Token, msg string) error {
	where := " at '" + tok.Lexeme + "'"
	length := len([]rune(tok.Lexeme))
	if tok.Type == token.EOF {
		where = " at end"
		length = 1
	}
	p.diags = append(p.diags, diag.Diagnostic{
		Kind:     diag.KindParse,
		Code:     diag.CodeParse,
		Message:  msg,
		Severity: diag.SeverityError,
		Range: diag.Range{
			Line:   tok.Line,
			Col:    tok.Col,
			Length: length,
		},
		Where: where,
	})
	return errSyntax
}
