package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"lumen/internal/token"
)

// Pos is a 1-based line and byte column, the way tokens carry them.
type Pos struct {
	Line int
	Col  int
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func posLessEq(a, b Pos) bool {
	if a.Line < b.Line {
		return true
	}
	if a.Line > b.Line {
		return false
	}
	return a.Col <= b.Col
}

func byteColToUTF16(lineText string, byteCol int) uint32 {
	if byteCol <= 1 {
		return 0
	}
	limit := byteCol - 1
	if limit > len(lineText) {
		limit = len(lineText)
	}
	var count uint32
	for _, r := range lineText[:limit] {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		count += uint32(n)
	}
	return count
}

func utf16ColToByte(lineText string, utf16Col int) int {
	if utf16Col <= 0 {
		return 1
	}
	count := 0
	for idx, r := range lineText {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if count+n > utf16Col {
			return idx + 1
		}
		count += n
	}
	return len(lineText) + 1
}

func utf16Len(s string) int {
	count := 0
	for _, r := range s {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		count += n
	}
	return count
}

// positionToByte converts an LSP position to a token-style position.
func positionToByte(text string, pos protocol.Position) (Pos, bool) {
	lines := splitLines(text)
	lineIdx := int(pos.Line)
	if lineIdx < 0 || lineIdx >= len(lines) {
		return Pos{}, false
	}
	byteCol := utf16ColToByte(lines[lineIdx], int(pos.Character))
	return Pos{Line: lineIdx + 1, Col: byteCol}, true
}

// toLspPosition converts a 1-based byte position to a UTF-16 LSP position.
func toLspPosition(lines []string, line, col int) protocol.Position {
	if line <= 0 {
		return protocol.Position{}
	}
	if line > len(lines) {
		return protocol.Position{Line: uint32(line - 1)}
	}
	return protocol.Position{Line: uint32(line - 1), Character: byteColToUTF16(lines[line-1], col)}
}

// tokenRange covers a single-line token.
func tokenRange(lines []string, tok token.Token) protocol.Range {
	start := toLspPosition(lines, tok.Line, tok.Col)
	end := start
	end.Character += uint32(max(1, utf16Len(tok.Lexeme)))
	return protocol.Range{Start: start, End: end}
}

// offsetOf returns the byte offset of a 1-based line and byte column.
func offsetOf(text string, p Pos) int {
	line := 1
	for i := 0; i < len(text); i++ {
		if line == p.Line {
			return min(i+p.Col-1, len(text))
		}
		if text[i] == '\n' {
			line++
		}
	}
	return len(text)
}

// FullDocumentRange covers text from the first character to the end, in
// UTF-16 units.
func FullDocumentRange(text string) protocol.Range {
	lines := splitLines(text)
	last := len(lines) - 1
	return protocol.Range{
		End: protocol.Position{Line: uint32(last), Character: uint32(utf16Len(lines[last]))},
	}
}
