// Package runtime defines the values a running akorn program manipulates.
package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category. The same kinds name the
// types a variable can be declared with.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNone:
		return "none"
	default:
		return "invalid"
	}
}

// IsNumeric reports whether k is int or float.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// Value is implemented by exactly the five value types in this package.
type Value interface {
	Kind() Kind
	String() string
	value()
}

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind     { return KindInt }
func (v IntValue) String() string { return strconv.FormatInt(v.Val, 10) }
func (IntValue) value()           {}

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind     { return KindFloat }
func (v FloatValue) String() string { return FormatFloat(v.Val) }
func (FloatValue) value()           {}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind     { return KindBool }
func (v BoolValue) String() string { return strconv.FormatBool(v.Val) }
func (BoolValue) value()           {}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind     { return KindString }
func (v StringValue) String() string { return v.Val }
func (StringValue) value()           {}

type NoneValue struct{}

func (NoneValue) Kind() Kind     { return KindNone }
func (NoneValue) String() string { return "none" }
func (NoneValue) value()         {}

// None is the shared none value.
var None Value = NoneValue{}

// IsNone reports whether v is absent or the none value.
func IsNone(v Value) bool {
	return v == nil || v.Kind() == KindNone
}

// FormatFloat renders f so that it always reads as a float: integral values
// keep a trailing ".0" and very large or small magnitudes use an exponent.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Widen converts an int value to float and returns anything else unchanged.
func Widen(v Value) Value {
	if iv, ok := v.(IntValue); ok {
		return FloatValue{Val: float64(iv.Val)}
	}
	return v
}

// Zero returns the zero value of kind k, or none for kinds without one.
func Zero(k Kind) Value {
	switch k {
	case KindInt:
		return IntValue{}
	case KindFloat:
		return FloatValue{}
	case KindBool:
		return BoolValue{}
	case KindString:
		return StringValue{}
	default:
		return None
	}
}
