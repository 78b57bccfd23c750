package interpreter

import (
	"math"
	"strings"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/runtime"
)

func (in *Interpreter) eval(e ast.Expr) (runtime.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLit:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.BoolLit:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.StringLit:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.NoneLit:
		return runtime.None, nil
	case *ast.Variable:
		v, ok := in.env.Get(n.Name)
		if !ok {
			return nil, runtimeErrorf(diag.CodeRuntimeUndefined, n.Span(), "you tried to access a non-existent variable, '%s'", n.Name)
		}
		return v, nil
	case *ast.Unary:
		return in.evalUnary(n)
	case *ast.NotBoolean:
		v, err := in.eval(n.Operand)
		if err != nil {
			return nil, err
		}
		b, ok := v.(runtime.BoolValue)
		if !ok {
			return nil, runtimeErrorf(diag.CodeRuntimeTypeMismatch, n.Span(), "you cannot operate on a non-bool value with the boolean operator not")
		}
		return runtime.BoolValue{Val: !b.Val}, nil
	case *ast.BooleanOp:
		return in.evalBooleanOp(n)
	case *ast.Comparison:
		left, err := in.eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.eval(n.Right)
		if err != nil {
			return nil, err
		}
		return compare(n.Op, left, right, n.Span())
	case *ast.Binary:
		left, err := in.eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.eval(n.Right)
		if err != nil {
			return nil, err
		}
		return arith(n.Op, left, right, n.Span())
	case *ast.Call:
		return in.evalCall(n)
	}
	return nil, runtimeErrorf(diag.CodeRuntimeTypeMismatch, e.Span(), "cannot evaluate %T", e)
}

func (in *Interpreter) evalUnary(u *ast.Unary) (runtime.Value, error) {
	v, err := in.eval(u.Operand)
	if err != nil {
		return nil, err
	}
	neg := u.Op == lexer.MINUS
	switch x := v.(type) {
	case runtime.IntValue:
		if neg {
			if x.Val == math.MinInt64 {
				return nil, runtimeErrorf(diag.CodeRuntimeOverflow, u.Span(), msgOverflow, u.Op)
			}
			x.Val = -x.Val
		}
		return x, nil
	case runtime.FloatValue:
		if neg {
			x.Val = -x.Val
		}
		return x, nil
	}
	return nil, runtimeErrorf(diag.CodeRuntimeTypeMismatch, u.Span(), "unary '%s' cannot be applied to `%s`", u.Op, v.Kind())
}

// evalBooleanOp evaluates the right operand only when the left one does
// not decide the result.
func (in *Interpreter) evalBooleanOp(b *ast.BooleanOp) (runtime.Value, error) {
	left, err := in.evalBool(b.Left, b.Op)
	if err != nil {
		return nil, err
	}
	if b.Op == lexer.AND && !left {
		return runtime.BoolValue{Val: false}, nil
	}
	if b.Op == lexer.OR && left {
		return runtime.BoolValue{Val: true}, nil
	}
	right, err := in.evalBool(b.Right, b.Op)
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: right}, nil
}

func (in *Interpreter) evalBool(e ast.Expr, op lexer.TokenType) (bool, error) {
	v, err := in.eval(e)
	if err != nil {
		return false, err
	}
	b, ok := v.(runtime.BoolValue)
	if !ok {
		return false, runtimeErrorf(diag.CodeRuntimeTypeMismatch, e.Span(),
			"you cannot operate on a non-bool value with the boolean operator %s", strings.ToLower(string(op)))
	}
	return b.Val, nil
}

func (in *Interpreter) evalCondition(cond ast.Expr) (bool, error) {
	v, err := in.eval(cond)
	if err != nil {
		return false, err
	}
	b, ok := v.(runtime.BoolValue)
	if !ok {
		return false, runtimeErrorf(diag.CodeRuntimeTypeMismatch, cond.Span(), "a condition must be `bool`, found `%s`", v.Kind())
	}
	return b.Val, nil
}

func (in *Interpreter) evalCall(call *ast.Call) (runtime.Value, error) {
	args := make([]runtime.Value, 0, len(call.Args))
	for _, arg := range call.Args {
		v, err := in.eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	fn, ok := in.builtins[call.Name]
	if !ok {
		return nil, runtimeErrorf(diag.CodeRuntimeUnknownBuiltin, call.Span(), "unknown builtin '%s'", call.Name)
	}
	v, err := fn(args)
	if err != nil {
		return nil, runtimeErrorf(diag.CodeRuntimeBuiltin, call.Span(), "builtin '%s' failed: %v", call.Name, err)
	}
	if v == nil {
		return runtime.None, nil
	}
	return v, nil
}
