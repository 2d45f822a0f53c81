package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"lumen/internal/lint"
	"lumen/internal/token"
)

// CodeActions returns quick fixes for the unused-variable diagnostics in ds.
func CodeActions(a *Analysis, uri string, ds []protocol.Diagnostic) []protocol.CodeAction {
	var out []protocol.CodeAction
	for _, d := range ds {
		if d.Code == nil {
			continue
		}
		if code, ok := d.Code.Value.(string); !ok || code != lint.CodeUnused {
			continue
		}
		if act, ok := MakeRemoveDeclAction(a, uri, d); ok {
			out = append(out, act)
		}
		if act, ok := MakePrefixUnderscoreAction(a, uri, d); ok {
			out = append(out, act)
		}
	}
	return out
}

// MakeRemoveDeclAction deletes the whole `var` statement the diagnostic points at.
func MakeRemoveDeclAction(a *Analysis, uri string, d protocol.Diagnostic) (protocol.CodeAction, bool) {
	p, ok := positionToByte(a.Text, d.Range.Start)
	if !ok {
		return protocol.CodeAction{}, false
	}
	start, end, ok := stmtSpan(a, p)
	if !ok {
		return protocol.CodeAction{}, false
	}

	lines := splitLines(a.Text)
	from := toLspPosition(lines, a.Tokens[start].Line, a.Tokens[start].Col)
	last := a.Tokens[end]
	to := toLspPosition(lines, last.Line, last.Col+len(last.Lexeme))

	// Take the rest of the line too when the statement is alone on it.
	lineText := lines[last.Line-1]
	if strings.TrimSpace(lineText[min(last.Col-1+len(last.Lexeme), len(lineText)):]) == "" &&
		strings.TrimSpace(lines[a.Tokens[start].Line-1][:a.Tokens[start].Col-1]) == "" {
		from.Character = 0
		if last.Line < len(lines) {
			to = protocol.Position{Line: uint32(last.Line), Character: 0}
		}
	}

	edit := protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			protocol.DocumentUri(uri): {{Range: protocol.Range{Start: from, End: to}, NewText: ""}},
		},
	}
	kind := protocol.CodeActionKindQuickFix
	return protocol.CodeAction{
		Title:       "Remove unused variable",
		Kind:        &kind,
		Diagnostics: []protocol.Diagnostic{d},
		Edit:        &edit,
	}, true
}

// stmtSpan finds the token indices of the var statement declaring the name at p.
func stmtSpan(a *Analysis, p Pos) (int, int, bool) {
	for i, tok := range a.Tokens {
		if tok.Line != p.Line || tok.Col != p.Col || tok.Type != token.IDENTIFIER {
			continue
		}
		if i == 0 || a.Tokens[i-1].Type != token.VAR {
			return 0, 0, false
		}
		for j := i; j < len(a.Tokens); j++ {
			switch a.Tokens[j].Type {
			case token.SEMICOLON:
				return i - 1, j, true
			case token.EOF:
				return 0, 0, false
			}
		}
	}
	return 0, 0, false
}

func MakePrefixUnderscoreAction(a *Analysis, uri string, d protocol.Diagnostic) (protocol.CodeAction, bool) {
	p, ok := positionToByte(a.Text, d.Range.Start)
	if !ok {
		return protocol.CodeAction{}, false
	}
	decl, tok, ok := a.DeclAt(p)
	if !ok || strings.HasPrefix(decl.Name, "_") {
		return protocol.CodeAction{}, false
	}

	lines := splitLines(a.Text)
	newName := "_" + decl.Name
	edits := []protocol.TextEdit{{Range: tokenRange(lines, tok), NewText: newName}}
	for _, ref := range decl.Refs {
		edits = append(edits, protocol.TextEdit{Range: tokenRange(lines, ref), NewText: newName})
	}
	edit := protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			protocol.DocumentUri(uri): edits,
		},
	}

	kind := protocol.CodeActionKindQuickFix
	return protocol.CodeAction{
		Title:       "Prefix with '_' to mark unused",
		Kind:        &kind,
		Diagnostics: []protocol.Diagnostic{d},
		Edit:        &edit,
	}, true
}
