package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/akorn-lang/akorn/internal/runtime"
	"github.com/akorn-lang/akorn/internal/scope"
)

// Fprint writes an indented outline of node to w, one node per line.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.node(node, 0)
}

// Sprint returns the outline Fprint would write.
func Sprint(node Node) string {
	var sb strings.Builder
	Fprint(&sb, node)
	return sb.String()
}

type printer struct {
	w io.Writer
}

func (p *printer) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *printer) node(node Node, depth int) {
	switch n := node.(type) {
	case *Program:
		p.line(depth, "Program")
		p.stmts(n.Stmts, depth+1)
	case *Block:
		p.line(depth, "Block")
		p.stmts(n.Stmts, depth+1)
	case *Declaration:
		keyword := "let"
		if n.Mutable {
			keyword = "var"
		}
		p.line(depth, "Declaration %s %s %s", keyword, n.Type, n.Name)
		p.node(n.Value, depth+1)
	case *Assignment:
		p.line(depth, "Assignment %s", n.Name)
		p.node(n.Value, depth+1)
	case *If:
		for i, branch := range n.Branches {
			label := "If"
			if i > 0 {
				label = "Elif"
			}
			p.line(depth, "%s", label)
			p.node(branch.Cond, depth+1)
			p.node(branch.Body, depth+1)
		}
		if n.Else != nil {
			p.line(depth, "Else")
			p.node(n.Else, depth+1)
		}
	case *While:
		p.line(depth, "While")
		p.node(n.Cond, depth+1)
		p.node(n.Body, depth+1)
	case *Break:
		p.line(depth, "Break")
	case *Continue:
		p.line(depth, "Continue")
	case *Call:
		p.line(depth, "Call %s", n.Name)
		for _, arg := range n.Args {
			p.node(arg, depth+1)
		}
	case *Unary:
		p.line(depth, "Unary %s", n.Op)
		p.node(n.Operand, depth+1)
	case *NotBoolean:
		p.line(depth, "Not")
		p.node(n.Operand, depth+1)
	case *Binary:
		p.line(depth, "Binary %s", n.Op)
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)
	case *Comparison:
		p.line(depth, "Comparison %s", n.Op)
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)
	case *BooleanOp:
		p.line(depth, "BooleanOp %s", strings.ToLower(string(n.Op)))
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)
	case *Variable:
		p.line(depth, "Variable %s", n.Name)
	case *IntLit:
		p.line(depth, "Int %d", n.Value)
	case *FloatLit:
		p.line(depth, "Float %s", runtime.FormatFloat(n.Value))
	case *BoolLit:
		p.line(depth, "Bool %t", n.Value)
	case *StringLit:
		p.line(depth, "String %s", strconv.Quote(n.Value))
	case *NoneLit:
		p.line(depth, "None")
	default:
		p.line(depth, "<unknown %T>", node)
	}
}

func (p *printer) stmts(stmts []Stmt, depth int) {
	for _, stmt := range stmts {
		p.node(stmt, depth)
	}
}

// FprintScopes writes every scope owned by prog, outermost first, with the
// symbols each one declares.
func FprintScopes(w io.Writer, prog *Program) {
	writeScope(w, "global", prog.Scope)
	Walk(prog, func(n Node) bool {
		if b, ok := n.(*Block); ok && b.Scope != nil {
			writeScope(w, fmt.Sprintf("block %d:%d", b.Span().Line, b.Span().Column), b.Scope)
		}
		return true
	})
}

func writeScope(w io.Writer, label string, sc *scope.Scope) {
	indent := strings.Repeat("  ", sc.Depth())
	fmt.Fprintf(w, "%s%s\n", indent, label)
	for _, sym := range sc.Symbols() {
		keyword := "let"
		if sym.Mutable {
			keyword = "var"
		}
		fmt.Fprintf(w, "%s  %s %s %s\n", indent, keyword, sym.Type, sym.Name)
	}
}
