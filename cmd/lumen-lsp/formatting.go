package main

import (
	"lumen/internal/format"
	"lumen/internal/lsp"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)
	if !lsp.IsLumenURI(uri) {
		return []protocol.TextEdit{}, nil
	}

	text, ok := store.Get(uri)
	if !ok {
		return []protocol.TextEdit{}, nil
	}

	formatted, err := format.Format(text, format.DefaultOptions())
	if err != nil {
		log.Debugf("format %s: %s", uri, err)
		return []protocol.TextEdit{}, nil
	}
	if formatted == text {
		return []protocol.TextEdit{}, nil
	}

	edit := protocol.TextEdit{
		Range:   lsp.FullDocumentRange(text),
		NewText: formatted,
	}
	return []protocol.TextEdit{edit}, nil
}
