package types

import (
	"fmt"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/runtime"
)

func (c *Checker) reportError(code diag.Code, span lexer.Span, format string, args ...any) {
	c.sink.Add(diag.New(diag.CategorySemantic, code, fmt.Sprintf(format, args...), span.Diag()))
}

func (c *Checker) mismatch(e ast.Expr, want runtime.Kind) {
	c.reportError(diag.CodeSemanticMismatch, e.Span(), "expected `%s`, found %s", want, c.describe(e))
}

// describe names the shape of e for messages.
func (c *Checker) describe(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLit:
		return "int literal"
	case *ast.FloatLit:
		return "float literal"
	case *ast.BoolLit:
		return "bool literal"
	case *ast.StringLit:
		return "string literal"
	case *ast.NoneLit:
		return "none"
	case *ast.Variable:
		if sym, ok := c.scope.Lookup(n.Name); ok {
			return fmt.Sprintf("`%s` variable '%s'", sym.Type, n.Name)
		}
		return fmt.Sprintf("variable '%s'", n.Name)
	case *ast.Unary, *ast.Binary:
		return "arithmetic expression"
	case *ast.Comparison:
		return "comparison"
	case *ast.BooleanOp, *ast.NotBoolean:
		return "boolean expression"
	case *ast.Call:
		return fmt.Sprintf("call to '%s'", n.Name)
	default:
		return "expression"
	}
}
