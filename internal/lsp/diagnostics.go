package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lumen/internal/diag"
	"lumen/internal/lint"
)

const sourceName = "lumen"

// ToLspDiagnostics converts diagnostics for text, mapping byte columns to
// UTF-16 offsets.
func ToLspDiagnostics(text string, ds []diag.Diagnostic) []protocol.Diagnostic {
	lines := splitLines(text)
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		start := toLspPosition(lines, d.Range.Line, d.Range.Col)
		end := start
		end.Character = start.Character + uint32(max(1, d.Range.Length))

		severity := protocol.DiagnosticSeverityError
		switch d.Severity {
		case diag.SeverityWarning:
			severity = protocol.DiagnosticSeverityWarning
		case diag.SeverityInfo:
			severity = protocol.DiagnosticSeverityInformation
		}

		msg := d.Message
		if d.Kind == diag.KindParse && d.Where != "" {
			msg = "Error" + d.Where + ": " + d.Message
		}

		pd := protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Source:   ptrString(sourceName),
			Message:  msg,
		}
		if d.Code != "" {
			code := protocol.IntegerOrString{Value: d.Code}
			pd.Code = &code
		}
		if d.Code == lint.CodeUnused {
			pd.Tags = []protocol.DiagnosticTag{protocol.DiagnosticTagUnnecessary}
		}
		out = append(out, pd)
	}
	return out
}

func ptrString(s string) *string { return &s }
