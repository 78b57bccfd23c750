package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/akorn-lang/akorn/internal/lexer"
)

// Location represents a location in a document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

func (s *Server) handleDefinition(msg *jsonrpcMessage) *jsonrpcMessage {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return errorResponse(msg, -32602, fmt.Sprintf("Invalid params: %v", err))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.Documents[params.TextDocument.URI]
	if !ok || doc.Unit == nil {
		return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID}
	}
	loc := findDefinition(doc, params.Position)
	if loc == nil {
		return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID}
	}
	return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID, Result: loc}
}

// findDefinition locates the closest declaration of the identifier under
// pos that precedes it. A declared name directly follows its type keyword.
func findDefinition(doc *Document, pos Position) *Location {
	tok, ok := identAt(doc.Unit.Tokens, pos)
	if !ok {
		return nil
	}

	var decl *lexer.Token
	tokens := doc.Unit.Tokens
	for i := 1; i < len(tokens); i++ {
		t := tokens[i]
		if t.Type != lexer.IDENT || t.Value != tok.Value || !lexer.IsTypeKeyword(tokens[i-1].Type) {
			continue
		}
		if !precedes(t.Span, pos) {
			break
		}
		decl = &tokens[i]
	}
	if decl == nil {
		return nil
	}
	return &Location{URI: doc.URI, Range: spanRange(decl.Span, decl.Raw)}
}
