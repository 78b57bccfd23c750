// Package lsp implements a small language server for akorn source files.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/akorn-lang/akorn/internal/config"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/driver"
)

// Server represents the LSP server.
type Server struct {
	// Documents tracks open files by URI
	Documents map[string]*Document
	mu        sync.RWMutex

	cfg *config.Config
	out io.Writer
	// outMu serializes frames written to out.
	outMu sync.Mutex
}

// Document represents an open document.
type Document struct {
	URI     string
	Content string
	Version int
	Unit    *driver.Unit
	Errors  []diag.Diagnostic
}

// NewServer creates a new LSP server checking documents with cfg.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{
		Documents: make(map[string]*Document),
		cfg:       cfg,
	}
}

// Run serves requests read from r and writes responses and notifications
// to w until r is exhausted or ctx is done.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	s.out = w

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Read Content-Length header
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read header: %w", err)
		}

		var contentLength int
		if _, err := fmt.Sscanf(line, "Content-Length: %d", &contentLength); err != nil {
			log.Printf("Invalid Content-Length header: %v", err)
			continue
		}

		// Read blank line
		if _, err := reader.ReadString('\n'); err != nil {
			return fmt.Errorf("failed to read blank line: %w", err)
		}

		body := make([]byte, contentLength)
		if _, err := io.ReadFull(reader, body); err != nil {
			return fmt.Errorf("failed to read message body: %w", err)
		}

		var msg jsonrpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			log.Printf("Failed to parse JSON-RPC message: %v", err)
			continue
		}

		if msg.Method == "exit" {
			return nil
		}

		response := s.handleMessage(ctx, &msg)
		if response != nil {
			if err := s.send(response); err != nil {
				log.Printf("Failed to send response: %v", err)
			}
		}
	}
}

// jsonrpcMessage represents a JSON-RPC 2.0 message.
type jsonrpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleMessage(ctx context.Context, msg *jsonrpcMessage) *jsonrpcMessage {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "textDocument/didOpen":
		s.handleDidOpen(msg)
		return nil
	case "textDocument/didChange":
		s.handleDidChange(msg)
		return nil
	case "textDocument/didClose":
		s.handleDidClose(msg)
		return nil
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "shutdown":
		return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID}
	default:
		if msg.ID != nil {
			return errorResponse(msg, -32601, fmt.Sprintf("Method not found: %s", msg.Method))
		}
		return nil
	}
}

func errorResponse(msg *jsonrpcMessage, code int, message string) *jsonrpcMessage {
	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Error:   &jsonrpcError{Code: code, Message: message},
	}
}

// send writes one framed JSON-RPC message.
func (s *Server) send(msg *jsonrpcMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()

	if _, err := fmt.Fprintf(s.out, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

type ServerCapabilities struct {
	TextDocumentSync   int            `json:"textDocumentSync"`
	CompletionProvider map[string]any `json:"completionProvider,omitempty"`
	HoverProvider      bool           `json:"hoverProvider"`
	DefinitionProvider bool           `json:"definitionProvider"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (s *Server) handleInitialize(msg *jsonrpcMessage) *jsonrpcMessage {
	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:   1, // Full sync
			CompletionProvider: map[string]any{"resolveProvider": false},
			HoverProvider:      true,
			DefinitionProvider: true,
		},
		ServerInfo: ServerInfo{
			Name:    "akorn-lsp",
			Version: "0.1.0",
		},
	}
	return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID, Result: result}
}

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

func (s *Server) handleDidOpen(msg *jsonrpcMessage) {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Printf("Failed to parse didOpen params: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &Document{
		URI:     params.TextDocument.URI,
		Content: params.TextDocument.Text,
		Version: params.TextDocument.Version,
	}
	s.updateDocument(doc)
	s.Documents[doc.URI] = doc
	s.publishDiagnostics(doc)
}

type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

func (s *Server) handleDidChange(msg *jsonrpcMessage) {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Printf("Failed to parse didChange params: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.Documents[params.TextDocument.URI]
	if !ok || len(params.ContentChanges) == 0 {
		return
	}
	// Only full document updates are supported.
	doc.Content = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.Version = params.TextDocument.Version
	s.updateDocument(doc)
	s.publishDiagnostics(doc)
}

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

func (s *Server) handleDidClose(msg *jsonrpcMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Printf("Failed to parse didClose params: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.Documents, params.TextDocument.URI)
}

// updateDocument lexes, parses and checks a document.
func (s *Server) updateDocument(doc *Document) {
	r := diag.NewReporter(nil)
	unit, _ := driver.Compile(uriToPath(doc.URI), doc.Content, s.cfg, r)
	doc.Unit = unit
	doc.Errors = r.Diagnostics()
}

func (s *Server) publishDiagnostics(doc *Document) {
	lspDiagnostics := make([]Diagnostic, 0, len(doc.Errors))
	for _, d := range doc.Errors {
		width := max(1, d.Span.End-d.Span.Start)
		lspDiagnostics = append(lspDiagnostics, Diagnostic{
			Range: Range{
				Start: Position{Line: d.Span.Line - 1, Character: d.Span.Column - 1},
				End:   Position{Line: d.Span.Line - 1, Character: d.Span.Column - 1 + width},
			},
			Severity: 1, // Error
			Source:   string(d.Category),
			Message:  d.Message,
			Code:     string(d.Code),
		})
	}

	params, err := json.Marshal(PublishDiagnosticsParams{URI: doc.URI, Diagnostics: lspDiagnostics})
	if err != nil {
		log.Printf("Failed to marshal diagnostics: %v", err)
		return
	}
	if err := s.send(&jsonrpcMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  params,
	}); err != nil {
		log.Printf("Failed to publish diagnostics: %v", err)
	}
}

type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Diagnostic represents an LSP diagnostic.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Source   string `json:"source,omitempty"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// uriToPath converts a file:// URI to a file path.
func uriToPath(uri string) string {
	if len(uri) > 7 && uri[:7] == "file://" {
		path := uri[7:]
		// Handle Windows paths
		if len(path) > 2 && path[0] == '/' && path[2] == ':' {
			path = path[1:]
		}
		return path
	}
	return uri
}
