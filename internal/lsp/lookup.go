package lsp

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/builtin"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/runtime"
	"github.com/akorn-lang/akorn/internal/scope"
)

// TextDocumentPositionParams represents a position in a text document.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// identAt returns the identifier token under pos.
func identAt(tokens []lexer.Token, pos Position) (lexer.Token, bool) {
	for _, tok := range tokens {
		if tok.Type != lexer.IDENT || tok.Span.Line-1 != pos.Line {
			continue
		}
		start := tok.Span.Column - 1
		end := start + utf8.RuneCountInString(tok.Raw)
		if pos.Character >= start && pos.Character < end {
			return tok, true
		}
	}
	return lexer.Token{}, false
}

func spanRange(span lexer.Span, name string) Range {
	return Range{
		Start: Position{Line: span.Line - 1, Character: span.Column - 1},
		End:   Position{Line: span.Line - 1, Character: span.Column - 1 + utf8.RuneCountInString(name)},
	}
}

// precedes reports whether span starts at or before the 0-based pos.
func precedes(span lexer.Span, pos Position) bool {
	line := span.Line - 1
	return line < pos.Line || (line == pos.Line && span.Column-1 <= pos.Character)
}

// scopeAt returns the innermost parser scope whose block encloses pos.
// Statements are positioned at their first operand rather than their
// keyword, so the result is the scope of the last statement starting
// before pos.
func scopeAt(prog *ast.Program, pos Position) *scope.Scope {
	if prog == nil {
		return nil
	}
	return scopeIn(prog.Stmts, prog.Scope, pos)
}

func scopeIn(stmts []ast.Stmt, sc *scope.Scope, pos Position) *scope.Scope {
	for i := len(stmts) - 1; i >= 0; i-- {
		stmt := stmts[i]
		var blocks []*ast.Block
		switch s := stmt.(type) {
		case *ast.Block:
			blocks = []*ast.Block{s}
		case *ast.While:
			blocks = []*ast.Block{s.Body}
		case *ast.If:
			for _, branch := range s.Branches {
				blocks = append(blocks, branch.Body)
			}
			if s.Else != nil {
				blocks = append(blocks, s.Else)
			}
		}
		for j := len(blocks) - 1; j >= 0; j-- {
			if precedes(blocks[j].Span(), pos) {
				return scopeIn(blocks[j].Stmts, blocks[j].Scope, pos)
			}
		}
		if precedes(stmt.Span(), pos) {
			return sc
		}
	}
	return sc
}

// signature renders a builtin the way hover and completion show it.
func signature(name string, sig builtin.Signature) string {
	var params []string
	if sig.MaxArgs < 0 {
		params = []string{"..." + paramKind(sig.Param)}
	} else {
		for i := 0; i < sig.MaxArgs; i++ {
			p := paramKind(sig.Param)
			if i >= sig.MinArgs {
				p += "?"
			}
			params = append(params, p)
		}
	}
	s := fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
	if sig.Returns != runtime.KindNone {
		s += " -> " + sig.Returns.String()
	}
	return s
}

func paramKind(k runtime.Kind) string {
	if k == runtime.KindInvalid {
		return "any"
	}
	return k.String()
}

func describeSymbol(sym *scope.Symbol) string {
	keyword := "let"
	if sym.Mutable {
		keyword = "var"
	}
	return fmt.Sprintf("%s %s %s", keyword, sym.Type, sym.Name)
}
