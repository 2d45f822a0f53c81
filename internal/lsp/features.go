package lsp

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"lumen/internal/format"
	"lumen/internal/lexer"
	"lumen/internal/token"
)

var keywordNames = []string{"var", "print", "true", "false", "nil"}

// HoverAt describes the variable under pos.
func HoverAt(a *Analysis, pos protocol.Position) (*protocol.Hover, bool) {
	p, ok := positionToByte(a.Text, pos)
	if !ok {
		return nil, false
	}
	d, tok, ok := a.DeclAt(p)
	if !ok {
		return nil, false
	}

	snippet := declSnippet(a, d)
	var b strings.Builder
	b.WriteString("```lumen\n")
	b.WriteString(snippet)
	b.WriteString("\n```\n")
	fmt.Fprintf(&b, "declared on line %d", d.Tok.Line)
	if n := len(d.Refs); n > 0 {
		fmt.Fprintf(&b, ", %d reference(s)", n)
	}

	rng := tokenRange(splitLines(a.Text), tok)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: b.String(),
		},
		Range: &rng,
	}, true
}

// declSnippet returns the source of the declaring statement, normalized when
// it formats cleanly.
func declSnippet(a *Analysis, d *Decl) string {
	start, end := -1, -1
	for i, tok := range a.Tokens {
		if tok.Line == d.Tok.Line && tok.Col == d.Tok.Col {
			start = i
			if i > 0 && a.Tokens[i-1].Type == token.VAR {
				start = i - 1
			}
			for j := i; j < len(a.Tokens); j++ {
				if a.Tokens[j].Type == token.SEMICOLON || a.Tokens[j].Type == token.EOF {
					end = j
					break
				}
			}
			break
		}
	}
	if start < 0 || end < 0 {
		return "var " + d.Name + ";"
	}
	from := offsetOf(a.Text, Pos{Line: a.Tokens[start].Line, Col: a.Tokens[start].Col})
	last := a.Tokens[end]
	to := offsetOf(a.Text, Pos{Line: last.Line, Col: last.Col}) + len(last.Lexeme)
	raw := a.Text[from:min(to, len(a.Text))]
	if out, err := format.Format(raw, format.Options{}); err == nil {
		return strings.TrimSpace(out)
	}
	return strings.TrimSpace(raw)
}

func DefinitionAt(a *Analysis, uri string, pos protocol.Position) (protocol.Location, bool) {
	p, ok := positionToByte(a.Text, pos)
	if !ok {
		return protocol.Location{}, false
	}
	d, _, ok := a.DeclAt(p)
	if !ok {
		return protocol.Location{}, false
	}
	return protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: tokenRange(splitLines(a.Text), d.Tok),
	}, true
}

func ReferencesAt(a *Analysis, uri string, pos protocol.Position, includeDecl bool) []protocol.Location {
	p, ok := positionToByte(a.Text, pos)
	if !ok {
		return nil
	}
	d, _, ok := a.DeclAt(p)
	if !ok {
		return nil
	}
	lines := splitLines(a.Text)
	var out []protocol.Location
	if includeDecl {
		out = append(out, protocol.Location{URI: protocol.DocumentUri(uri), Range: tokenRange(lines, d.Tok)})
	}
	for _, ref := range d.Refs {
		out = append(out, protocol.Location{URI: protocol.DocumentUri(uri), Range: tokenRange(lines, ref)})
	}
	return out
}

// RenameAt renames the declaration under pos and every reference to it.
func RenameAt(a *Analysis, uri string, pos protocol.Position, newName string) (*protocol.WorkspaceEdit, error) {
	if !IsIdentifier(newName) {
		return nil, fmt.Errorf("invalid identifier %q", newName)
	}
	p, ok := positionToByte(a.Text, pos)
	if !ok {
		return nil, fmt.Errorf("position out of range")
	}
	d, _, ok := a.DeclAt(p)
	if !ok {
		return nil, fmt.Errorf("no variable at position")
	}

	lines := splitLines(a.Text)
	edits := []protocol.TextEdit{{Range: tokenRange(lines, d.Tok), NewText: newName}}
	for _, ref := range d.Refs {
		edits = append(edits, protocol.TextEdit{Range: tokenRange(lines, ref), NewText: newName})
	}
	return &protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			protocol.DocumentUri(uri): edits,
		},
	}, nil
}

// IsIdentifier reports whether s lexes as a single non-keyword identifier.
func IsIdentifier(s string) bool {
	toks, diags := lexer.Scan(s)
	if len(diags) > 0 || len(toks) != 2 {
		return false
	}
	return toks[0].Type == token.IDENTIFIER && toks[0].Lexeme == s
}

func CompletionItems(a *Analysis, pos protocol.Position) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	kwKind := protocol.CompletionItemKindKeyword
	for _, kw := range keywordNames {
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &kwKind})
	}

	p, ok := positionToByte(a.Text, pos)
	if !ok {
		return items
	}
	varKind := protocol.CompletionItemKindVariable
	for _, d := range a.VisibleAt(p) {
		detail := fmt.Sprintf("var (line %d)", d.Tok.Line)
		items = append(items, protocol.CompletionItem{
			Label:  d.Name,
			Kind:   &varKind,
			Detail: &detail,
		})
	}
	return items
}

func DocumentSymbols(a *Analysis) []protocol.DocumentSymbol {
	lines := splitLines(a.Text)
	out := make([]protocol.DocumentSymbol, 0, len(a.Decls))
	for _, d := range a.Decls {
		rng := tokenRange(lines, d.Tok)
		detail := fmt.Sprintf("line %d", d.Tok.Line)
		out = append(out, protocol.DocumentSymbol{
			Name:           d.Name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindVariable,
			Range:          rng,
			SelectionRange: rng,
		})
	}
	return out
}
