package interpreter

import (
	"cmp"
	"math"

	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/runtime"
)

const (
	msgDivByZero = "you cannot divide a number by zero"
	msgModByZero = "you cannot find the modulus of a number divided by zero"
	msgOverflow  = "the result of '%s' does not fit in an int"
)

// arith applies a binary arithmetic operator. Two ints stay int, any
// float operand makes the result float.
func arith(op lexer.TokenType, left, right runtime.Value, span lexer.Span) (runtime.Value, error) {
	switch {
	case left.Kind() == runtime.KindInt && right.Kind() == runtime.KindInt:
		return intArith(op, left.(runtime.IntValue).Val, right.(runtime.IntValue).Val, span)
	case left.Kind().IsNumeric() && right.Kind().IsNumeric():
		return floatArith(op, toFloat(left), toFloat(right), span)
	case left.Kind() == runtime.KindString && right.Kind() == runtime.KindString && op == lexer.PLUS:
		return runtime.StringValue{Val: left.(runtime.StringValue).Val + right.(runtime.StringValue).Val}, nil
	}
	return nil, runtimeErrorf(diag.CodeRuntimeTypeMismatch, span, "operator '%s' cannot be applied to `%s` and `%s`", op, left.Kind(), right.Kind())
}

func toFloat(v runtime.Value) float64 {
	switch x := v.(type) {
	case runtime.IntValue:
		return float64(x.Val)
	case runtime.FloatValue:
		return x.Val
	}
	return 0
}

func intArith(op lexer.TokenType, a, b int64, span lexer.Span) (runtime.Value, error) {
	var (
		r  int64
		ok bool
	)
	switch op {
	case lexer.PLUS:
		r, ok = addInt(a, b)
	case lexer.MINUS:
		r, ok = subInt(a, b)
	case lexer.ASTERISK:
		r, ok = mulInt(a, b)
	case lexer.SLASH:
		if b == 0 {
			return nil, runtimeErrorf(diag.CodeRuntimeDivisionByZero, span, msgDivByZero)
		}
		r, ok = floorDiv(a, b), !(a == math.MinInt64 && b == -1)
	case lexer.PERCENT:
		if b == 0 {
			return nil, runtimeErrorf(diag.CodeRuntimeDivisionByZero, span, msgModByZero)
		}
		r, ok = floorMod(a, b), true
	case lexer.POWER:
		if b < 0 {
			if a == 0 {
				return nil, runtimeErrorf(diag.CodeRuntimeDivisionByZero, span, msgDivByZero)
			}
			return runtime.FloatValue{Val: math.Pow(float64(a), float64(b))}, nil
		}
		r, ok = ipow(a, b)
	default:
		return nil, runtimeErrorf(diag.CodeRuntimeTypeMismatch, span, "unknown operator '%s'", op)
	}
	if !ok {
		return nil, runtimeErrorf(diag.CodeRuntimeOverflow, span, msgOverflow, op)
	}
	return runtime.IntValue{Val: r}, nil
}

func addInt(a, b int64) (int64, bool) {
	s := a + b
	return s, (s > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	d := a - b
	return d, (d < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || p/b != a {
		return p, false
	}
	return p, true
}

func floatArith(op lexer.TokenType, a, b float64, span lexer.Span) (runtime.Value, error) {
	switch op {
	case lexer.PLUS:
		return runtime.FloatValue{Val: a + b}, nil
	case lexer.MINUS:
		return runtime.FloatValue{Val: a - b}, nil
	case lexer.ASTERISK:
		return runtime.FloatValue{Val: a * b}, nil
	case lexer.SLASH:
		if b == 0 {
			return nil, runtimeErrorf(diag.CodeRuntimeDivisionByZero, span, msgDivByZero)
		}
		return runtime.FloatValue{Val: a / b}, nil
	case lexer.PERCENT:
		if b == 0 {
			return nil, runtimeErrorf(diag.CodeRuntimeDivisionByZero, span, msgModByZero)
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return runtime.FloatValue{Val: m}, nil
	case lexer.POWER:
		if a == 0 && b < 0 {
			return nil, runtimeErrorf(diag.CodeRuntimeDivisionByZero, span, msgDivByZero)
		}
		return runtime.FloatValue{Val: math.Pow(a, b)}, nil
	}
	return nil, runtimeErrorf(diag.CodeRuntimeTypeMismatch, span, "unknown operator '%s'", op)
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns a remainder carrying the divisor's sign.
func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// ipow raises base to a non-negative exponent, reporting overflow.
func ipow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return result, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return base, false
			}
		}
	}
	return result, true
}

// compare evaluates a comparison operator. Numbers compare across int
// and float; values of other different kinds are never equal.
func compare(op lexer.TokenType, left, right runtime.Value, span lexer.Span) (runtime.Value, error) {
	var c int
	switch {
	case left.Kind() == runtime.KindInt && right.Kind() == runtime.KindInt:
		c = cmp.Compare(left.(runtime.IntValue).Val, right.(runtime.IntValue).Val)
	case left.Kind().IsNumeric() && right.Kind().IsNumeric():
		c = cmp.Compare(toFloat(left), toFloat(right))
	case left.Kind() == runtime.KindString && right.Kind() == runtime.KindString:
		c = cmp.Compare(left.(runtime.StringValue).Val, right.(runtime.StringValue).Val)
	case op == lexer.EQ || op == lexer.NOT_EQ:
		eq := left == right
		return runtime.BoolValue{Val: eq == (op == lexer.EQ)}, nil
	default:
		return nil, runtimeErrorf(diag.CodeRuntimeTypeMismatch, span, "operator '%s' cannot be applied to `%s` and `%s`", op, left.Kind(), right.Kind())
	}

	var result bool
	switch op {
	case lexer.EQ:
		result = c == 0
	case lexer.NOT_EQ:
		result = c != 0
	case lexer.LT:
		result = c < 0
	case lexer.GT:
		result = c > 0
	case lexer.LE:
		result = c <= 0
	case lexer.GE:
		result = c >= 0
	}
	return runtime.BoolValue{Val: result}, nil
}
