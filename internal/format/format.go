package format

import (
	"bytes"
	"errors"
	"fmt"

	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/parser"
	"lumen/internal/token"
)

var ErrSyntax = errors.New("source has syntax errors")

// Error carries the diagnostics that prevented formatting.
type Error struct {
	Diagnostics diag.List
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 0 {
		return ErrSyntax.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSyntax, e.Diagnostics[0].String())
}

func (e *Error) Unwrap() error { return ErrSyntax }

type Options struct {
	// KeepBlankLines preserves one empty line where the source had any
	// between two statements.
	KeepBlankLines bool
}

func DefaultOptions() Options {
	return Options{KeepBlankLines: true}
}

// Format rewrites src with one statement per line and canonical spacing.
// Comments between statements keep their own line; comments inside or after a
// statement follow its ';'. Sources with scan or parse errors are refused.
func Format(src string, opt Options) (string, error) {
	toks, scanDiags := lexer.Scan(src)
	_, parseDiags := parser.Parse(toks)
	all := append(diag.List{}, scanDiags...)
	all = append(all, parseDiags...)
	if all.HasErrors() {
		return "", &Error{Diagnostics: all}
	}

	var out bytes.Buffer
	atLineStart := true
	lastLine := 0 // source line of the previous statement's ';'

	newline := func() {
		out.WriteByte('\n')
		atLineStart = true
	}

	space := func() {
		if atLineStart || out.Len() == 0 {
			return
		}
		out.WriteByte(' ')
	}

	write := func(s string) {
		out.WriteString(s)
		atLineStart = false
	}

	isExprEnd := func(t token.Type) bool {
		switch t {
		case token.IDENTIFIER, token.NUMBER, token.STRING,
			token.TRUE, token.FALSE, token.NIL, token.RIGHT_PAREN:
			return true
		default:
			return false
		}
	}

	blankBefore := func(line int) {
		if opt.KeepBlankLines && lastLine > 0 && line > lastLine+1 {
			newline()
		}
	}

	comments := scanComments(src)
	next := 0
	var pending []Comment // comments met inside the current statement

	prev := token.Token{}
	prevUnary := false
	for i, tok := range toks {
		for next < len(comments) && comments[next].before(tok.Line, tok.Col) {
			c := comments[next]
			next++
			if !atLineStart {
				pending = append(pending, c)
				continue
			}
			blankBefore(c.Line)
			write(c.Text)
			newline()
			lastLine = c.Line
		}
		if tok.Type == token.EOF {
			break
		}

		if atLineStart {
			blankBefore(tok.Line)
		}

		unary := false
		switch tok.Type {
		case token.SEMICOLON, token.RIGHT_PAREN:
			// attach to the previous token
		case token.BANG:
			unary = true
			if prev.Type != token.LEFT_PAREN && !prevUnary {
				space()
			}
		case token.MINUS:
			unary = atLineStart || !isExprEnd(prev.Type)
			if prev.Type != token.LEFT_PAREN && !prevUnary {
				space()
			}
		default:
			if prev.Type != token.LEFT_PAREN && !prevUnary {
				space()
			}
		}

		write(tok.Lexeme)

		if tok.Type == token.SEMICOLON {
			following := toks[i+1]
			for next < len(comments) && comments[next].Line == tok.Line &&
				comments[next].before(following.Line, following.Col) {
				pending = append(pending, comments[next])
				next++
			}
			for _, c := range pending {
				write(" " + c.Text)
			}
			pending = pending[:0]
			lastLine = tok.Line
			newline()
		}
		prev = tok
		prevUnary = unary
	}

	for _, c := range pending {
		write(" " + c.Text)
	}
	if !atLineStart {
		newline()
	}
	return out.String(), nil
}
