package main

import (
	"flag"

	"lumen/internal/lsp"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const (
	lsName  = "lumen-lsp"
	version = "0.1"
)

var store = lsp.NewStore()
var handler protocol.Handler
var log = commonlog.GetLogger("lumen.lsp")

func main() {
	logPath := flag.String("log", "", "write logs to this file instead of stderr")
	verbose := flag.Int("v", 1, "log verbosity (0 silences logs)")
	flag.Parse()

	if *logPath != "" {
		commonlog.Configure(*verbose, logPath)
	} else {
		commonlog.Configure(*verbose, nil)
	}

	handler = protocol.Handler{
		Initialize:                     initialize,
		Initialized:                    initialized,
		Shutdown:                       shutdown,
		TextDocumentDidOpen:            textDocumentDidOpen,
		TextDocumentDidChange:          textDocumentDidChange,
		TextDocumentDidSave:            textDocumentDidSave,
		TextDocumentDidClose:           textDocumentDidClose,
		TextDocumentCodeAction:         textDocumentCodeAction,
		TextDocumentFormatting:         textDocumentFormatting,
		TextDocumentSemanticTokensFull: textDocumentSemanticTokensFull,
		TextDocumentDefinition:         textDocumentDefinition,
		TextDocumentDocumentSymbol:     textDocumentDocumentSymbol,
		TextDocumentCompletion:         textDocumentCompletion,
		TextDocumentHover:              textDocumentHover,
		TextDocumentRename:             textDocumentRename,
		TextDocumentReferences:         textDocumentReferences,
	}

	srv := server.NewServer(&handler, lsName, false)
	if err := srv.RunStdio(); err != nil {
		log.Errorf("server stopped: %s", err)
	}
}

func initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		log.Infof("initialize from %s", params.ClientInfo.Name)
	}

	full := protocol.TextDocumentSyncKindFull
	caps := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &protocol.True,
			Change:    &full,
			Save:      protocol.SaveOptions{IncludeText: &protocol.False},
		},
		CodeActionProvider: protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
		},
		SemanticTokensProvider: &protocol.SemanticTokensOptions{
			Legend: lsp.Legend(),
			Full:   true,
			Range:  false,
		},
		DocumentFormattingProvider: true,
		DefinitionProvider:         true,
		DocumentSymbolProvider:     true,
		CompletionProvider:         &protocol.CompletionOptions{},
		HoverProvider:              true,
		RenameProvider:             true,
		ReferencesProvider:         true,
	}

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: ptrString(version),
		},
	}, nil
}

func initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	log.Debugf("open %s", uri)
	store.Set(uri, params.TextDocument.Text, params.TextDocument.Version)
	return publishDiagnostics(ctx, uri)
}

func textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if len(params.ContentChanges) == 0 {
		return nil
	}

	text, ok := extractFullText(params.ContentChanges[len(params.ContentChanges)-1])
	if !ok {
		log.Warningf("ignoring incremental change for %s", uri)
		return nil
	}

	store.Set(uri, text, params.TextDocument.Version)
	return publishDiagnostics(ctx, uri)
}

func textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if _, ok := store.Get(uri); ok {
		return publishDiagnostics(ctx, uri)
	}
	return nil
}

func textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	log.Debugf("close %s", uri)
	store.Delete(uri)
	notifyDiagnostics(ctx, uri, []protocol.Diagnostic{})
	return nil
}

func textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	a, ok := analysisFor(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	actions := lsp.CodeActions(a, string(params.TextDocument.URI), params.Context.Diagnostics)
	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

func textDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	text, ok := store.Get(string(params.TextDocument.URI))
	if !ok {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	sem := lsp.SemanticTokensForText(text)
	data := lsp.EncodeSemanticTokens(sem)
	return &protocol.SemanticTokens{Data: data}, nil
}

func textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	a, ok := analysisFor(uri)
	if !ok {
		return nil, nil
	}
	if loc, ok := lsp.DefinitionAt(a, uri, params.Position); ok {
		return []protocol.Location{loc}, nil
	}
	return nil, nil
}

func textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	a, ok := analysisFor(string(params.TextDocument.URI))
	if !ok {
		return []protocol.DocumentSymbol{}, nil
	}
	return lsp.DocumentSymbols(a), nil
}

func textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	a, ok := analysisFor(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	items := lsp.CompletionItems(a, params.Position)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	a, ok := analysisFor(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	h, ok := lsp.HoverAt(a, params.Position)
	if !ok {
		return nil, nil
	}
	return h, nil
}

func textDocumentRename(ctx *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	uri := string(params.TextDocument.URI)
	a, ok := analysisFor(uri)
	if !ok {
		return nil, nil
	}
	edit, err := lsp.RenameAt(a, uri, params.Position, params.NewName)
	if err != nil {
		log.Debugf("rename in %s: %s", uri, err)
		return nil, err
	}
	return edit, nil
}

func textDocumentReferences(ctx *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	uri := string(params.TextDocument.URI)
	a, ok := analysisFor(uri)
	if !ok {
		return nil, nil
	}
	return lsp.ReferencesAt(a, uri, params.Position, params.Context.IncludeDeclaration), nil
}

func analysisFor(uri string) (*lsp.Analysis, bool) {
	if !lsp.IsLumenURI(uri) {
		return nil, false
	}
	return store.Analysis(uri)
}

func publishDiagnostics(ctx *glsp.Context, uri string) error {
	a, ok := analysisFor(uri)
	if !ok {
		notifyDiagnostics(ctx, uri, []protocol.Diagnostic{})
		return nil
	}
	diags := lsp.ToLspDiagnostics(a.Text, a.Diagnostics)
	log.Debugf("%s: %d diagnostics", uri, len(diags))
	notifyDiagnostics(ctx, uri, diags)
	return nil
}

func notifyDiagnostics(ctx *glsp.Context, uri string, diags []protocol.Diagnostic) {
	if ctx == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: diags,
	})
}

func extractFullText(change any) (string, bool) {
	switch typed := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return typed.Text, true
	case protocol.TextDocumentContentChangeEvent:
		if typed.Range != nil {
			return "", false
		}
		return typed.Text, true
	default:
		return "", false
	}
}

func ptrString(s string) *string { return &s }
