package runtimeio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var ErrInputClosed = errors.New("input closed")

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return IsTerminal(os.Stdin)
}

func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// LineReader yields one line of input per prompt.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// BufferedReader is the LineReader used when input is not a terminal. It
// echoes prompts to out and returns ErrInputClosed at end of input.
type BufferedReader struct {
	r   *bufio.Reader
	out io.Writer
}

func NewBufferedReader(in io.Reader, out io.Writer) *BufferedReader {
	return &BufferedReader{r: bufio.NewReader(in), out: out}
}

func (b *BufferedReader) Prompt(prompt string) (string, error) {
	if prompt != "" && b.out != nil {
		_, _ = fmt.Fprint(b.out, prompt)
	}
	line, err := b.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrInputClosed
			}
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *BufferedReader) Close() error { return nil }
