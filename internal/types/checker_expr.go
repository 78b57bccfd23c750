package types

import (
	"fmt"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/builtin"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/runtime"
)

// assignable reports whether a value of kind have may be stored where want
// is expected. Ints widen to float; nothing narrows.
func assignable(have, want runtime.Kind) bool {
	return have == want || (have == runtime.KindInt && want == runtime.KindFloat)
}

// expect checks e against want, reporting at the leaves. It returns false
// when an error was reported.
func (c *Checker) expect(e ast.Expr, want runtime.Kind) bool {
	switch n := e.(type) {
	case *ast.IntLit:
		return c.leaf(e, runtime.KindInt, want)
	case *ast.FloatLit:
		return c.leaf(e, runtime.KindFloat, want)
	case *ast.BoolLit:
		return c.leaf(e, runtime.KindBool, want)
	case *ast.StringLit:
		return c.leaf(e, runtime.KindString, want)
	case *ast.NoneLit:
		c.reportError(diag.CodeSemanticNoneValue, e.Span(), "expected `%s`, found none", want)
		return false
	case *ast.Variable:
		kind, ok := c.variable(n)
		if !ok {
			return false
		}
		return c.leaf(e, kind, want)
	case *ast.Unary:
		if !want.IsNumeric() {
			c.mismatch(e, want)
			return false
		}
		return c.expect(n.Operand, want)
	case *ast.Binary:
		return c.expectBinary(n, want)
	case *ast.Comparison, *ast.BooleanOp, *ast.NotBoolean:
		if want != runtime.KindBool {
			c.mismatch(e, want)
			return false
		}
		_, ok := c.infer(e)
		return ok
	case *ast.Call:
		kind, ok := c.inferCall(n, true)
		if !ok {
			return false
		}
		return c.leaf(e, kind, want)
	}
	return false
}

func (c *Checker) leaf(e ast.Expr, have, want runtime.Kind) bool {
	if assignable(have, want) {
		return true
	}
	c.mismatch(e, want)
	return false
}

func (c *Checker) expectBinary(b *ast.Binary, want runtime.Kind) bool {
	switch {
	case want.IsNumeric():
		// Evaluate both sides so each leaf reports its own mismatch.
		left := c.expect(b.Left, want)
		right := c.expect(b.Right, want)
		if left && right && want == runtime.KindInt && b.Op == lexer.POWER && negativeLiteral(b.Right) {
			c.reportError(diag.CodeSemanticMismatch, b.Span(), "expected `int`, found power with a negative exponent, which produces `float`")
			return false
		}
		return left && right
	case want == runtime.KindString:
		if b.Op != lexer.PLUS {
			c.reportError(diag.CodeSemanticInvalidOperation, b.Span(), "operator '%s' cannot be applied to `string`", b.Op)
			return false
		}
		left := c.expect(b.Left, want)
		right := c.expect(b.Right, want)
		return left && right
	default:
		c.mismatch(b, want)
		return false
	}
}

// variable resolves a variable read.
func (c *Checker) variable(v *ast.Variable) (runtime.Kind, bool) {
	sym, ok := c.scope.Lookup(v.Name)
	if !ok {
		c.reportError(diag.CodeSemanticUndefined, v.Span(), "you tried to access a non-existent variable, '%s'", v.Name)
		return runtime.KindInvalid, false
	}
	if sym.IsNone {
		c.reportError(diag.CodeSemanticNoneValue, v.Span(), "variable '%s' holds no value", v.Name)
		return runtime.KindInvalid, false
	}
	return sym.Type, true
}

// infer computes the kind of e without an expected type.
func (c *Checker) infer(e ast.Expr) (runtime.Kind, bool) {
	switch n := e.(type) {
	case *ast.IntLit:
		return runtime.KindInt, true
	case *ast.FloatLit:
		return runtime.KindFloat, true
	case *ast.BoolLit:
		return runtime.KindBool, true
	case *ast.StringLit:
		return runtime.KindString, true
	case *ast.NoneLit:
		c.reportError(diag.CodeSemanticNoneValue, e.Span(), "none cannot be used in an expression")
		return runtime.KindInvalid, false
	case *ast.Variable:
		return c.variable(n)
	case *ast.Unary:
		kind, ok := c.infer(n.Operand)
		if !ok {
			return kind, false
		}
		if !kind.IsNumeric() {
			c.reportError(diag.CodeSemanticInvalidOperation, e.Span(), "unary '%s' cannot be applied to `%s`", n.Op, kind)
			return runtime.KindInvalid, false
		}
		return kind, true
	case *ast.Binary:
		return c.inferBinary(n)
	case *ast.Comparison:
		return runtime.KindBool, c.checkComparison(n)
	case *ast.BooleanOp:
		left := c.expect(n.Left, runtime.KindBool)
		right := c.expect(n.Right, runtime.KindBool)
		return runtime.KindBool, left && right
	case *ast.NotBoolean:
		return runtime.KindBool, c.expect(n.Operand, runtime.KindBool)
	case *ast.Call:
		return c.inferCall(n, true)
	}
	return runtime.KindInvalid, false
}

func (c *Checker) inferBinary(b *ast.Binary) (runtime.Kind, bool) {
	left, ok := c.infer(b.Left)
	if !ok {
		return runtime.KindInvalid, false
	}
	switch {
	case left.IsNumeric():
		right, ok := c.infer(b.Right)
		if !ok {
			return runtime.KindInvalid, false
		}
		if !right.IsNumeric() {
			c.reportError(diag.CodeSemanticInvalidOperation, b.Span(), "operator '%s' cannot be applied to `%s` and `%s`", b.Op, left, right)
			return runtime.KindInvalid, false
		}
		if left == runtime.KindFloat || right == runtime.KindFloat {
			return runtime.KindFloat, true
		}
		if b.Op == lexer.POWER && negativeLiteral(b.Right) {
			return runtime.KindFloat, true
		}
		return runtime.KindInt, true
	case left == runtime.KindString && b.Op == lexer.PLUS:
		return runtime.KindString, c.expect(b.Right, runtime.KindString)
	default:
		c.reportError(diag.CodeSemanticInvalidOperation, b.Span(), "operator '%s' cannot be applied to `%s`", b.Op, left)
		return runtime.KindInvalid, false
	}
}

// negativeLiteral reports whether e is a negated non-zero int literal,
// such as the exponent in `2 ** -1`.
func negativeLiteral(e ast.Expr) bool {
	u, ok := e.(*ast.Unary)
	if !ok || u.Op != lexer.MINUS {
		return false
	}
	lit, ok := u.Operand.(*ast.IntLit)
	return ok && lit.Value != 0
}

func (c *Checker) checkComparison(cmp *ast.Comparison) bool {
	left, lok := c.infer(cmp.Left)
	right, rok := c.infer(cmp.Right)
	if !lok || !rok {
		return false
	}
	ordering := cmp.Op != lexer.EQ && cmp.Op != lexer.NOT_EQ
	if ordering && left == runtime.KindBool {
		c.reportError(diag.CodeSemanticInvalidOperation, cmp.Span(), "operator '%s' cannot be applied to `bool`", cmp.Op)
		return false
	}
	if left != right && !(left.IsNumeric() && right.IsNumeric()) {
		c.reportError(diag.CodeSemanticMismatch, cmp.Span(), "cannot compare `%s` with `%s`", left, right)
		return false
	}
	return true
}

// inferCall checks a builtin call. valueUsed is set when the call appears
// inside an expression and must therefore produce a value.
func (c *Checker) inferCall(call *ast.Call, valueUsed bool) (runtime.Kind, bool) {
	sig, ok := c.signatures[call.Name]
	if !ok {
		c.reportError(diag.CodeSemanticUnknownBuiltin, call.Span(), "unknown builtin '%s'", call.Name)
		return runtime.KindInvalid, false
	}
	ok = true
	if n := len(call.Args); n < sig.MinArgs || (sig.MaxArgs >= 0 && n > sig.MaxArgs) {
		c.reportError(diag.CodeSemanticArity, call.Span(), "builtin '%s' expects %s, found %d", call.Name, arity(sig), n)
		ok = false
	}
	for _, arg := range call.Args {
		if sig.Param == runtime.KindInvalid {
			if _, argOK := c.infer(arg); !argOK {
				ok = false
			}
			continue
		}
		if !c.expect(arg, sig.Param) {
			ok = false
		}
	}
	if valueUsed && sig.Returns == runtime.KindNone {
		c.reportError(diag.CodeSemanticNoneValue, call.Span(), "builtin '%s' does not produce a value", call.Name)
		return runtime.KindInvalid, false
	}
	return sig.Returns, ok
}

func arity(sig builtin.Signature) string {
	plural := func(n int) string {
		if n == 1 {
			return "1 argument"
		}
		return fmt.Sprintf("%d arguments", n)
	}
	switch {
	case sig.MinArgs == sig.MaxArgs:
		return plural(sig.MinArgs)
	case sig.MaxArgs < 0:
		return "at least " + plural(sig.MinArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", sig.MinArgs, sig.MaxArgs)
	}
}
