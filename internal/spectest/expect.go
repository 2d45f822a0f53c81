package spectest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeError
	OutcomeErrorContains
)

// Expectation is what a script declares about its own run through leading
// "// expect:" comments.
type Expectation struct {
	Outcome     Outcome
	ErrContains string
	Stdout      StdoutExpectation

	hasOutcome bool
}

// ParseDirectives reads the leading comment block of a script. name is only
// used in error messages. Scanning stops at the first non-comment line.
//
//	// expect: ok | error | error contains "msg"
//	// expect: stdout "text" | stdout contains "text" | stdout file "path"
func ParseDirectives(r io.Reader, name string) (*Expectation, error) {
	exp := &Expectation{Outcome: OutcomeOK}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "//") {
			break
		}
		comment := strings.TrimSpace(strings.TrimPrefix(line, "//"))
		if !strings.HasPrefix(strings.ToLower(comment), "expect:") {
			continue
		}
		body := strings.TrimSpace(comment[len("expect:"):])
		if err := exp.apply(body); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return exp, nil
}

func (exp *Expectation) apply(body string) error {
	lower := strings.ToLower(body)
	switch {
	case lower == "ok":
		return exp.setOutcome(OutcomeOK, "")
	case lower == "error":
		return exp.setOutcome(OutcomeError, "")
	case strings.HasPrefix(lower, "error contains"):
		sub, err := parseQuoted(body[len("error contains"):], "error substring")
		if err != nil {
			return err
		}
		return exp.setOutcome(OutcomeErrorContains, sub)
	case strings.HasPrefix(lower, "stdout file"):
		return exp.setStdout(StdoutFile, body[len("stdout file"):], "stdout file path")
	case strings.HasPrefix(lower, "stdout contains"):
		return exp.setStdout(StdoutContains, body[len("stdout contains"):], "stdout substring")
	case strings.HasPrefix(lower, "stdout"):
		return exp.setStdout(StdoutExact, body[len("stdout"):], "stdout string")
	}
	return fmt.Errorf("invalid expect directive")
}

func (exp *Expectation) setOutcome(o Outcome, sub string) error {
	if exp.hasOutcome {
		return fmt.Errorf("multiple outcome expect directives")
	}
	exp.hasOutcome = true
	exp.Outcome = o
	exp.ErrContains = sub
	return nil
}

func (exp *Expectation) setStdout(mode StdoutMode, rest, what string) error {
	if exp.Stdout.Mode != StdoutNone {
		return fmt.Errorf("multiple stdout expect directives")
	}
	val, err := parseQuoted(rest, what)
	if err != nil {
		return err
	}
	exp.Stdout = StdoutExpectation{Mode: mode, Value: val}
	return nil
}

func parseQuoted(raw, what string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("missing %s", what)
	}
	if raw[0] != '"' {
		return "", fmt.Errorf("expected quoted string")
	}
	return strconv.Unquote(raw)
}
