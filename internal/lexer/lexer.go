package lexer

import (
	"unicode/utf8"

	"lumen/internal/diag"
	"lumen/internal/numlit"
	"lumen/internal/token"
)

type Lexer struct {
	input string

	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination

	line int // 1-based
	col  int // 1-based column of current char

	diags []diag.Diagnostic
}

func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0, // readChar() will advance to col=1 for first char
	}
	l.readChar()
	return l
}

// Scan tokenizes the whole source. The returned slice always ends with a single EOF token.
// Lexical errors are reported as diagnostics and never stop the scan.
func Scan(src string) ([]token.Token, []diag.Diagnostic) {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks, l.Diagnostics()
}

func (l *Lexer) Diagnostics() []diag.Diagnostic { return l.diags }

// NextToken returns the next token, skipping whitespace, comments and malformed input.
// Once the input is exhausted it keeps returning EOF.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipTrivia()
		if l.atEnd() {
			return token.Token{Type: token.EOF, Line: l.line, Col: l.col + 1}
		}
		if tok, ok := l.scanToken(); ok {
			return tok
		}
	}
}

func (l *Lexer) scanToken() (token.Token, bool) {
	start, startLine, startCol := l.position, l.line, l.col
	ch := l.ch
	l.readChar()

	emit := func(t token.Type) (token.Token, bool) {
		return l.newToken(t, start, startLine, startCol, nil), true
	}

	switch ch {
	case '(':
		return emit(token.LEFT_PAREN)
	case ')':
		return emit(token.RIGHT_PAREN)
	case '{':
		return emit(token.LEFT_BRACE)
	case '}':
		return emit(token.RIGHT_BRACE)
	case '[':
		return emit(token.LEFT_BRACKET)
	case ']':
		return emit(token.RIGHT_BRACKET)
	case ',':
		return emit(token.COMMA)
	case '.':
		return emit(token.DOT)
	case '-':
		return emit(token.MINUS)
	case '+':
		return emit(token.PLUS)
	case ':':
		return emit(token.COLON)
	case ';':
		return emit(token.SEMICOLON)
	case '*':
		return emit(token.STAR)
	case '/':
		// // comments were consumed by skipTrivia
		return emit(token.SLASH)
	case '!':
		return emit(l.pick('=', token.BANG_EQUAL, token.BANG))
	case '=':
		return emit(l.pick('=', token.EQUAL_EQUAL, token.EQUAL))
	case '<':
		return emit(l.pick('=', token.LESS_EQUAL, token.LESS))
	case '>':
		return emit(l.pick('=', token.GREATER_EQUAL, token.GREATER))
	case '~':
		return emit(l.pick('=', token.TILDE_EQUAL, token.TILDE))
	case '|':
		return emit(l.pick('|', token.LOGICAL_OR, token.VERTI_BAR))
	case '&':
		return emit(l.pick('&', token.LOGICAL_AND, token.AMPERSAND))
	case '"':
		return l.readString(start, startLine, startCol)
	}

	if isDigit(ch) {
		return l.readNumber(start, startLine, startCol), true
	}
	if isAlpha(ch) {
		for isAlphaNumeric(l.ch) {
			l.readChar()
		}
		return emit(token.LookupIdent(l.input[start:l.position]))
	}

	// A multi-byte character is one error, not one per byte.
	if ch >= utf8.RuneSelf {
		_, size := utf8.DecodeRuneInString(l.input[start:])
		for i := 1; i < size; i++ {
			l.readChar()
		}
	}
	l.errorAt(startLine, startCol, "Unexpected character.")
	return token.Token{}, false
}

// pick consumes the current char when it equals second and returns two, otherwise one.
func (l *Lexer) pick(second byte, two, one token.Type) token.Type {
	if !l.atEnd() && l.ch == second {
		l.readChar()
		return two
	}
	return one
}

func (l *Lexer) newToken(t token.Type, start, line, col int, literal any) token.Token {
	return token.Token{
		Type:    t,
		Lexeme:  l.input[start:l.position],
		Literal: literal,
		Line:    line,
		Col:     col,
	}
}

func (l *Lexer) errorAt(line, col int, msg string) {
	l.diags = append(l.diags, diag.Diagnostic{
		Kind:     diag.KindScan,
		Code:     diag.CodeScan,
		Message:  msg,
		Severity: diag.SeverityError,
		Range:    diag.Range{Line: line, Col: col, Length: 1},
	})
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}

	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++

	// Track line/col for current char
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEnd() && l.ch != '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readString(start, line, col int) (token.Token, bool) {
	// opening quote already consumed
	for !l.atEnd() && l.ch != '"' {
		l.readChar()
	}
	if l.atEnd() {
		l.errorAt(l.line, l.col, "Unterminated string.")
		return token.Token{}, false
	}
	l.readChar() // closing quote

	tok := l.newToken(token.STRING, start, line, col, nil)
	tok.Literal = tok.Lexeme[1 : len(tok.Lexeme)-1]
	return tok, true
}

func (l *Lexer) readNumber(start, line, col int) token.Token {
	for isDigit(l.ch) {
		l.readChar()
	}
	// The dot belongs to the number only when a digit follows it.
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	tok := l.newToken(token.NUMBER, start, line, col, nil)
	v, err := numlit.Parse(tok.Lexeme)
	if err != nil {
		l.errorAt(line, col, "Invalid number literal.")
	}
	tok.Literal = v
	return tok
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}
