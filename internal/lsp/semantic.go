package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lumen/internal/token"
)

// semantic token type indices (must match Legend order)
const (
	ttKeyword  = 0
	ttString   = 1
	ttNumber   = 2
	ttOperator = 3
	ttVariable = 4
)

const (
	modDecl = 1 << 0
)

func Legend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes: []string{
			string(protocol.SemanticTokenTypeKeyword),
			string(protocol.SemanticTokenTypeString),
			string(protocol.SemanticTokenTypeNumber),
			string(protocol.SemanticTokenTypeOperator),
			string(protocol.SemanticTokenTypeVariable),
		},
		TokenModifiers: []string{
			string(protocol.SemanticTokenModifierDeclaration),
		},
	}
}

type SemTok struct {
	Line   int
	Col    int // 1-based, UTF-16 code units
	Length int
	Type   int
	Mods   int
}

func Classify(tok token.Token) (int, bool) {
	switch {
	case token.IsKeyword(tok.Type):
		return ttKeyword, true
	}

	switch tok.Type {
	case token.STRING:
		return ttString, true
	case token.NUMBER:
		return ttNumber, true
	case token.IDENTIFIER:
		return ttVariable, true
	case token.EQUAL, token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.BANG, token.BANG_EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
		token.TILDE_EQUAL, token.LOGICAL_OR, token.LOGICAL_AND:
		return ttOperator, true
	}

	return 0, false
}
