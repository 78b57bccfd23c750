package runtime

import "testing"

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{IntValue{Val: -42}, "-42"},
		{FloatValue{Val: 3}, "3.0"},
		{FloatValue{Val: 3.5}, "3.5"},
		{FloatValue{Val: -0.25}, "-0.25"},
		{FloatValue{Val: 1e20}, "1e+20"},
		{FloatValue{Val: 0}, "0.0"},
		{BoolValue{Val: true}, "true"},
		{BoolValue{Val: false}, "false"},
		{StringValue{Val: "hi there"}, "hi there"},
		{None, "none"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestKinds(t *testing.T) {
	if (IntValue{}).Kind() != KindInt || (FloatValue{}).Kind() != KindFloat {
		t.Fatalf("numeric kinds are wrong")
	}
	if !KindInt.IsNumeric() || !KindFloat.IsNumeric() || KindString.IsNumeric() {
		t.Fatalf("IsNumeric is wrong")
	}
	if KindInvalid.String() != "invalid" || KindString.String() != "string" {
		t.Fatalf("unexpected kind names %q %q", KindInvalid, KindString)
	}
	if !IsNone(nil) || !IsNone(None) || IsNone(IntValue{}) {
		t.Fatalf("IsNone is wrong")
	}
}

func TestWiden(t *testing.T) {
	got := Widen(IntValue{Val: 2})
	if f, ok := got.(FloatValue); !ok || f.Val != 2 {
		t.Fatalf("expected FloatValue{2}, got %#v", got)
	}
	if s := Widen(StringValue{Val: "x"}); s != (StringValue{Val: "x"}) {
		t.Fatalf("expected string to pass through, got %#v", s)
	}
}
