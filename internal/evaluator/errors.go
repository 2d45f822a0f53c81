package evaluator

import (
	"fmt"

	"lumen/internal/token"
)

// RuntimeError is a language-level failure raised while interpreting. It
// stops the current run.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// Format renders the error the way the CLI prints it.
func (e *RuntimeError) Format() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func newRuntimeError(tok token.Token, err error) *RuntimeError {
	return &RuntimeError{Token: tok, Message: err.Error()}
}

func undefined(name token.Token) *RuntimeError {
	return &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}
