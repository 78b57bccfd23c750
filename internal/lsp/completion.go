package lsp

import (
	"encoding/json"
	"fmt"
	"sort"
)

// CompletionList represents a list of completion items.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

type CompletionItem struct {
	Label  string `json:"label"`
	Kind   int    `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

const (
	completionKindFunction = 3
	completionKindVariable = 6
	completionKindKeyword  = 14
)

var keywords = []string{
	"var", "let", "if", "elif", "else", "while", "loop", "break", "continue",
	"true", "false", "none", "and", "or", "not",
	"int", "float", "string", "bool",
}

func (s *Server) handleCompletion(msg *jsonrpcMessage) *jsonrpcMessage {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return errorResponse(msg, -32602, fmt.Sprintf("Invalid params: %v", err))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []CompletionItem
	if doc, ok := s.Documents[params.TextDocument.URI]; ok && doc.Unit != nil {
		items = append(items, s.variableCompletions(doc, params.Position)...)
	}
	items = append(items, s.builtinCompletions()...)
	for _, kw := range keywords {
		items = append(items, CompletionItem{Label: kw, Kind: completionKindKeyword})
	}

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  CompletionList{Items: items},
	}
}

// variableCompletions lists the variables visible at pos, innermost
// first. Shadowed names appear once.
func (s *Server) variableCompletions(doc *Document, pos Position) []CompletionItem {
	var items []CompletionItem
	seen := make(map[string]bool)
	for sc := scopeAt(doc.Unit.Program, pos); sc != nil; sc = sc.Parent() {
		for _, sym := range sc.Symbols() {
			if seen[sym.Name] {
				continue
			}
			seen[sym.Name] = true
			items = append(items, CompletionItem{
				Label:  sym.Name,
				Kind:   completionKindVariable,
				Detail: describeSymbol(sym),
			})
		}
	}
	return items
}

func (s *Server) builtinCompletions() []CompletionItem {
	sigs := s.cfg.Signatures()
	names := make([]string, 0, len(sigs))
	for name := range sigs {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]CompletionItem, 0, len(names))
	for _, name := range names {
		items = append(items, CompletionItem{
			Label:  name,
			Kind:   completionKindFunction,
			Detail: signature(name, sigs[name]),
		})
	}
	return items
}
