package lsp

import (
	"sort"
	"strings"

	"lumen/internal/token"
)

// SemanticTokensForText returns unencoded semantic tokens for the given source text.
func SemanticTokensForText(text string) []SemTok {
	return semanticTokens(Analyze(text))
}

func semanticTokens(a *Analysis) []SemTok {
	lines := splitLines(a.Text)
	sem := make([]SemTok, 0, len(a.Tokens))

	for _, tok := range a.Tokens {
		if tok.Type == token.EOF {
			break
		}
		tt, ok := Classify(tok)
		if !ok {
			continue
		}
		mods := 0
		if tok.Type == token.IDENTIFIER && a.IsDeclaration(tok) {
			mods |= modDecl
		}

		// Clients do not accept multi-line tokens; split strings per line.
		parts := strings.Split(tok.Lexeme, "\n")
		for i, part := range parts {
			line := tok.Line + i
			col := 1
			if i == 0 {
				col = tok.Col
			}
			if part == "" {
				continue
			}
			lineText := ""
			if line-1 < len(lines) {
				lineText = lines[line-1]
			}
			sem = append(sem, SemTok{
				Line:   line,
				Col:    int(byteColToUTF16(lineText, col)) + 1,
				Length: utf16Len(part),
				Type:   tt,
				Mods:   mods,
			})
		}
	}
	return sem
}

// EncodeSemanticTokens produces the relative integer encoding LSP expects.
func EncodeSemanticTokens(toks []SemTok) []uint32 {
	sorted := append([]SemTok(nil), toks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].Col < sorted[j].Col
	})

	out := make([]uint32, 0, len(sorted)*5)
	prevLine, prevCol := 0, 0
	for _, t := range sorted {
		line := t.Line - 1
		col := t.Col - 1
		deltaLine := line - prevLine
		deltaCol := col
		if deltaLine == 0 {
			deltaCol = col - prevCol
		}
		out = append(out, uint32(deltaLine), uint32(deltaCol), uint32(t.Length), uint32(t.Type), uint32(t.Mods))
		prevLine, prevCol = line, col
	}
	return out
}
