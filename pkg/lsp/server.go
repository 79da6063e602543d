package lsp

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"unicode/utf8"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.ember.sh/pkg/ast"
	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	mu      sync.Mutex
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{content: make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":             s.initialize,
		"textDocument/didOpen":   s.didOpen,
		"textDocument/didChange": s.didChange,
		"textDocument/didClose":  s.didClose,
		"textDocument/hover":     s.hover,

		"shutdown": noop,
		"exit":     exit,
		// Required by the protocol.
		"initialized": noop,
		// Sent by clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func exit(_ context.Context, conn jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, conn.Close()
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			logger.Println("unsupported method", req.Method)
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider: true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.setContent(uri, content)
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.setContent(uri, content)
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

// Shows the rendering of the top-level statement that starts last at or
// before the cursor.
func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	s.mu.Lock()
	content, ok := s.content[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok {
		return lsp.Hover{}, nil
	}
	prog, _ := parse.Parse(
		parse.Source{Name: string(params.TextDocument.URI), Code: content}, parse.Config{})
	stmt := statementAt(prog, rangingFromLSPPosition(content, params.Position))
	if stmt == nil {
		return lsp.Hover{}, nil
	}
	r := lspRangeFromRange(content, stmt)
	return lsp.Hover{
		Contents: []lsp.MarkedString{{Language: "ember", Value: stmt.String()}},
		Range:    &r,
	}, nil
}

func (s *server) setContent(uri lsp.DocumentURI, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[uri] = content
}

func statementAt(prog *ast.Program, pos diag.Ranging) ast.Statement {
	var found ast.Statement
	for _, stmt := range prog.Statements {
		r := stmt.Range()
		if r.Line > pos.Line || (r.Line == pos.Line && r.From > pos.From) {
			break
		}
		found = stmt
	}
	return found
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
}

func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	_, err := parse.Parse(parse.Source{Name: string(uri), Code: content}, parse.Config{})
	if err == nil {
		return []lsp.Diagnostic{}
	}

	entries := parse.UnpackErrors(err)
	diags := make([]lsp.Diagnostic, len(entries))
	for i, err := range entries {
		diags[i] = lsp.Diagnostic{
			Range:    lspRangeFromRange(content, err),
			Severity: lsp.Error,
			Source:   "parse",
			Message:  err.Message,
		}
	}
	return diags
}

// Converts a Ranging, whose columns are byte offsets into a line and whose
// end is inclusive, to an LSP range, whose columns count UTF-16 code units
// and whose end is exclusive.
func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	if rg.Line < 0 {
		return lsp.Range{}
	}
	line := nthLine(s, rg.Line)
	return lsp.Range{
		Start: lsp.Position{Line: rg.Line, Character: utf16Len(prefix(line, rg.From))},
		End:   lsp.Position{Line: rg.Line, Character: utf16Len(prefix(line, rg.To+1))},
	}
}

// Converts an LSP position to a zero-width Ranging.
func rangingFromLSPPosition(s string, pos lsp.Position) diag.Ranging {
	line := nthLine(s, pos.Line)
	units := 0
	for i, r := range line {
		if units >= pos.Character {
			return diag.PointRanging(pos.Line, i)
		}
		units += utf16Units(r)
	}
	return diag.PointRanging(pos.Line, len(line))
}

// Returns the n-th line of s, without the line terminator. Lines are
// separated by "\n", as the tokenizer counts them.
func nthLine(s string, n int) string {
	for ; n > 0; n-- {
		i := strings.IndexByte(s, '\n')
		if i == -1 {
			return ""
		}
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, '\n'); i != -1 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r")
}

func prefix(s string, n int) string {
	if n > len(s) {
		return s
	}
	if n < 0 {
		return ""
	}
	return s[:n]
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Units(r)
	}
	return n
}

func utf16Units(r rune) int {
	if r <= 0xFFFF || r == utf8.RuneError {
		return 1
	}
	return 2
}
