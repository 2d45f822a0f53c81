package token

import "fmt"

type Type string

// Token is produced by the lexer and never mutated afterwards.
type Token struct {
	Type   Type
	Lexeme string
	// Literal holds the decoded value for NUMBER (float64) and STRING (string) tokens.
	Literal any
	Line    int
	Col     int
}

func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %s nil", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}

const (
	EOF Type = "EOF"

	// Single-character tokens
	LEFT_PAREN    Type = "("
	RIGHT_PAREN   Type = ")"
	LEFT_BRACE    Type = "{"
	RIGHT_BRACE   Type = "}"
	LEFT_BRACKET  Type = "["
	RIGHT_BRACKET Type = "]"
	COMMA         Type = ","
	DOT           Type = "."
	MINUS         Type = "-"
	PLUS          Type = "+"
	COLON         Type = ":"
	SEMICOLON     Type = ";"
	SLASH         Type = "/"
	STAR          Type = "*"
	TILDE         Type = "~"
	VERTI_BAR     Type = "|"
	AMPERSAND     Type = "&"

	// One or two character tokens
	BANG          Type = "!"
	BANG_EQUAL    Type = "!="
	EQUAL         Type = "="
	EQUAL_EQUAL   Type = "=="
	GREATER       Type = ">"
	GREATER_EQUAL Type = ">="
	LESS          Type = "<"
	LESS_EQUAL    Type = "<="
	TILDE_EQUAL   Type = "~="
	LOGICAL_OR    Type = "||"
	LOGICAL_AND   Type = "&&"

	// Literals
	IDENTIFIER Type = "IDENTIFIER"
	STRING     Type = "STRING"
	NUMBER     Type = "NUMBER"

	// Keywords
	VAR   Type = "VAR"
	PRINT Type = "PRINT"
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
	NIL   Type = "NIL"

	// Reserved for future use; the grammar does not accept them yet.
	ASSERT Type = "ASSERT"
	MAP    Type = "MAP"
	REDUCE Type = "REDUCE"
	FILTER Type = "FILTER"
	EACH   Type = "EACH"
	APPLY  Type = "APPLY"
)

var keywords = map[string]Type{
	"var":    VAR,
	"print":  PRINT,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,
	"assert": ASSERT,
	"map":    MAP,
	"reduce": REDUCE,
	"filter": FILTER,
	"each":   EACH,
	"apply":  APPLY,
}

func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENTIFIER
}

// IsKeyword reports whether t is a reserved word, used or not.
func IsKeyword(t Type) bool {
	switch t {
	case VAR, PRINT, TRUE, FALSE, NIL, ASSERT, MAP, REDUCE, FILTER, EACH, APPLY:
		return true
	}
	return false
}

// Reserved reports whether t is a reserved word the grammar does not use yet.
func Reserved(t Type) bool {
	switch t {
	case ASSERT, MAP, REDUCE, FILTER, EACH, APPLY:
		return true
	}
	return false
}
