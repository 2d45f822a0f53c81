package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lumen/internal/ast"
	"lumen/internal/evaluator"
	"lumen/internal/runtimeio"
)

const (
	prompt1 = "lumen> "
	prompt2 = "....> "

	historyFile = ".lumen_history"
)

type Options struct {
	// Interactive enables line editing and history; stdin must be a terminal.
	Interactive bool
	PrintAST    bool
	Eval        evaluator.Options
}

// Start reads statements until end of input. Bindings persist across lines;
// errors are reported and the loop continues.
func Start(in io.Reader, out io.Writer, opts Options) {
	var reader runtimeio.LineReader
	if opts.Interactive {
		lr := newLinerReader()
		defer lr.Close()
		defer lr.saveHistory()
		reader = lr
	} else {
		reader = runtimeio.NewBufferedReader(in, out)
	}

	runner := evaluator.NewRunner(out)
	runner.Options = opts.Eval

	fmt.Fprint(out, "Lumen REPL (Ctrl+D to exit)\n")

	for {
		src, ok := readStatement(reader)
		if !ok {
			fmt.Fprint(out, "\n")
			return
		}
		trim := strings.TrimSpace(src)
		if trim == "" {
			continue
		}
		if trim == "exit" || trim == "quit" {
			return
		}

		res := runner.Run(src)
		if opts.PrintAST {
			fmt.Fprint(out, ast.SprintProgram(res.Statements))
		}
		res.Report(out)
	}
}

// readStatement accumulates lines until parentheses and strings are balanced.
func readStatement(r runtimeio.LineReader) (string, bool) {
	var buf strings.Builder
	var st balance
	for {
		prompt := prompt1
		if buf.Len() > 0 {
			prompt = prompt2
		}
		line, err := r.Prompt(prompt)
		if err != nil {
			if isAbort(err) {
				return "", true
			}
			if buf.Len() > 0 {
				return buf.String(), true
			}
			return "", false
		}

		buf.WriteString(line)
		buf.WriteString("\n")

		st = st.update(line)
		if st.parens > 0 || st.inString {
			continue
		}
		return buf.String(), true
	}
}

func isAbort(err error) bool {
	return errors.Is(err, liner.ErrPromptAborted)
}

type balance struct {
	parens   int
	inString bool
}

func (b balance) update(line string) balance {
	for i := 0; i < len(line); i++ {
		ch := line[i]

		if b.inString {
			if ch == '"' {
				b.inString = false
			}
			continue
		}

		if ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			break
		}

		switch ch {
		case '"':
			b.inString = true
		case '(':
			b.parens++
		case ')':
			if b.parens > 0 {
				b.parens--
			}
		}
	}
	return b
}

/* -------------------- liner -------------------- */

type linerReader struct {
	state       *liner.State
	historyPath string
}

func newLinerReader() *linerReader {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	lr := &linerReader{state: ln}
	if home, err := os.UserHomeDir(); err == nil {
		lr.historyPath = filepath.Join(home, historyFile)
		if f, err := os.Open(lr.historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return lr
}

func (l *linerReader) Prompt(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", runtimeio.ErrInputClosed
		}
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

func (l *linerReader) Close() error { return l.state.Close() }

func (l *linerReader) saveHistory() {
	if l.historyPath == "" {
		return
	}
	if f, err := os.Create(l.historyPath); err == nil {
		_, _ = l.state.WriteHistory(f)
		_ = f.Close()
	}
}
