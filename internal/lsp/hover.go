package lsp

import (
	"encoding/json"
	"fmt"
)

// Hover represents hover information.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (s *Server) handleHover(msg *jsonrpcMessage) *jsonrpcMessage {
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
	hover := s.getHover(doc, params.Position)
	if hover == nil {
		return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID}
	}
	return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID, Result: hover}
}

func (s *Server) getHover(doc *Document, pos Position) *Hover {
	tok, ok := identAt(doc.Unit.Tokens, pos)
	if !ok {
		return nil
	}

	var content string
	if sig, ok := s.cfg.Signatures()[tok.Value]; ok {
		content = signature(tok.Value, sig)
	} else {
		sc := scopeAt(doc.Unit.Program, pos)
		if sc == nil {
			return nil
		}
		sym, ok := sc.Lookup(tok.Value)
		if !ok {
			return nil
		}
		content = describeSymbol(sym)
	}

	r := spanRange(tok.Span, tok.Raw)
	return &Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: fmt.Sprintf("```akorn\n%s\n```", content),
		},
		Range: &r,
	}
}
