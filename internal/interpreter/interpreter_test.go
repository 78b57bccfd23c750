package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/builtin"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/interpreter"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/normalizer"
	"github.com/akorn-lang/akorn/internal/parser"
	"github.com/akorn-lang/akorn/internal/runtime"
	"github.com/akorn-lang/akorn/internal/scope"
	"github.com/akorn-lang/akorn/internal/types"
)

type result struct {
	globals *scope.Scope
	out     string
	err     error
	diags   []diag.Diagnostic
}

func compile(t *testing.T, src string) *ast.Program {
	t.Helper()

	r := diag.NewReporter(nil)
	tokens := normalizer.Normalize(lexer.Tokenize(src, r), r)
	prog := parser.ParseProgram(tokens, r)
	types.CheckProgram(prog, r)
	if r.HasErrors() {
		for _, d := range r.Diagnostics() {
			t.Errorf("unexpected compile error: %s", d)
		}
		t.FailNow()
	}
	return prog
}

func run(t *testing.T, src, input string) result {
	t.Helper()

	prog := compile(t, src)
	var out bytes.Buffer
	r := diag.NewReporter(nil)
	table := builtin.NewConsole(strings.NewReader(input), &out).Table()
	globals, err := interpreter.Interpret(prog, table, r)
	return result{globals: globals, out: out.String(), err: err, diags: r.Diagnostics()}
}

func mustRun(t *testing.T, src, input string) result {
	t.Helper()

	res := run(t, src, input)
	if res.err != nil {
		t.Fatalf("unexpected runtime error: %v", res.err)
	}
	return res
}

func global(t *testing.T, sc *scope.Scope, name string) runtime.Value {
	t.Helper()

	v, ok := sc.Get(name)
	if !ok {
		t.Fatalf("expected global %q to exist", name)
	}
	return v
}

func TestAssignmentReadsPreviousValue(t *testing.T) {
	res := mustRun(t, "var int x = 5; x = x + 1;", "")
	if got := global(t, res.globals, "x"); got != runtime.Value(runtime.IntValue{Val: 6}) {
		t.Fatalf("expected 6, got %v", got)
	}
}

func TestIntegerDivisionFloors(t *testing.T) {
	res := mustRun(t, "var int x = 10 / 3;", "")
	if got := global(t, res.globals, "x"); got != runtime.Value(runtime.IntValue{Val: 3}) {
		t.Fatalf("expected 3, got %v", got)
	}
}

func TestWhileLoopWrites(t *testing.T) {
	res := mustRun(t, "var int i = 0; while i < 5 { write(i); i += 1; }", "")
	if res.out != "01234" {
		t.Fatalf("expected %q, got %q", "01234", res.out)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"7 / 2", "3"},
		{"7.0 / 2", "3.5"},
		{"-7 / 2", "-4"},
		{"7 / -2", "-4"},
		{"-7 % 3", "2"},
		{"7 % -3", "-2"},
		{"7.5 % 2", "1.5"},
		{"-7.5 % 2", "0.5"},
		{"2 ** 10", "1024"},
		{"2 ** -1", "0.5"},
		{"2 ** 3 ** 2", "512"},
		{"2 ** 62", "4611686018427387904"},
		{"-9223372036854775807 - 1", "-9223372036854775808"},
		{"9223372036854775807 * -1", "-9223372036854775807"},
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"1 + 0.5", "1.5"},
		{"-(2 + 3)", "-5"},
		{"'ab' + 'cd'", "abcd"},
		{"1 < 2.5", "true"},
		{"'a' >= 'b'", "false"},
		{"3 == 3.0", "true"},
		{"true != false", "true"},
		{"not (1 > 2)", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res := mustRun(t, "writeline("+tt.expr+");", "")
			if got := strings.TrimSuffix(res.out, "\n"); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestShortCircuit(t *testing.T) {
	// Evaluating either readBool would fail on the empty input.
	src := "var bool a = false and readBool('x', 'y', 'n'); var bool b = true or readBool('x', 'y', 'n');"
	res := mustRun(t, src, "")
	if res.out != "" {
		t.Fatalf("expected no output, got %q", res.out)
	}
	if got := global(t, res.globals, "a"); got != runtime.Value(runtime.BoolValue{Val: false}) {
		t.Fatalf("expected a to be false, got %v", got)
	}
	if got := global(t, res.globals, "b"); got != runtime.Value(runtime.BoolValue{Val: true}) {
		t.Fatalf("expected b to be true, got %v", got)
	}
}

func TestDivisionByZeroHalts(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int division", "writeline(1); var int z = 1 / 0; writeline(2);", "[RuntimeError][line: 1, col: 27] you cannot divide a number by zero"},
		{"int modulo", "writeline(1); var int z = 5 % 0; writeline(2);", "[RuntimeError][line: 1, col: 27] you cannot find the modulus of a number divided by zero"},
		{"float division", "writeline(1); var float z = 1.5 / 0; writeline(2);", "[RuntimeError][line: 1, col: 29] you cannot divide a number by zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.src, "")
			if res.err == nil {
				t.Fatalf("expected a runtime error")
			}
			if res.out != "1\n" {
				t.Fatalf("expected execution to stop, got output %q", res.out)
			}
			if len(res.diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d", len(res.diags))
			}
			if got := res.diags[0].String(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			if res.diags[0].Code != diag.CodeRuntimeDivisionByZero {
				t.Fatalf("expected %q, got %q", diag.CodeRuntimeDivisionByZero, res.diags[0].Code)
			}
		})
	}
}

func TestIntegerOverflowHalts(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"add", "9223372036854775807 + 1"},
		{"subtract", "-9223372036854775807 - 2"},
		{"multiply", "4611686018427387904 * 2"},
		{"multiply by minus one", "(-9223372036854775807 - 1) * -1"},
		{"power", "2 ** 63"},
		{"divide", "(-9223372036854775807 - 1) / -1"},
		{"negate", "-(-9223372036854775807 - 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "writeline(1); var int z = "+tt.expr+"; writeline(2);", "")
			if res.err == nil {
				t.Fatalf("expected a runtime error")
			}
			if res.out != "1\n" {
				t.Fatalf("expected execution to stop, got output %q", res.out)
			}
			if len(res.diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d", len(res.diags))
			}
			if res.diags[0].Code != diag.CodeRuntimeOverflow {
				t.Fatalf("expected %q, got %q", diag.CodeRuntimeOverflow, res.diags[0].Code)
			}
		})
	}

	res := run(t, "var int z = 9223372036854775807 + 1;", "")
	want := "[RuntimeError][line: 1, col: 13] the result of '+' does not fit in an int"
	if len(res.diags) != 1 || res.diags[0].String() != want {
		t.Fatalf("expected %q, got %v", want, res.diags)
	}
}

func TestBreakAndContinueAffectNearestLoop(t *testing.T) {
	src := `var int i = 0
while i < 3 {
    i += 1
    var int j = 0
    loop {
        j += 1
        if j == 2 { continue }
        if j > 3 { break }
        writeline(i, j)
    }
}
`
	res := mustRun(t, src, "")
	want := "1 1\n1 3\n2 1\n2 3\n3 1\n3 3\n"
	if res.out != want {
		t.Fatalf("expected %q, got %q", want, res.out)
	}
}

func TestBreakOutsideLoopIsIgnored(t *testing.T) {
	res := mustRun(t, "if true { break; writeline('after'); } continue; writeline('end');", "")
	if res.out != "after\nend\n" {
		t.Fatalf("expected %q, got %q", "after\nend\n", res.out)
	}
}

func TestBlocksGetFreshScopes(t *testing.T) {
	res := mustRun(t, "var int x = 1; { var int x = 2; x = 3; writeline(x); } writeline(x);", "")
	if res.out != "3\n1\n" {
		t.Fatalf("expected %q, got %q", "3\n1\n", res.out)
	}

	res = mustRun(t, "var int i = 0; while i < 2 { var int k = i * 10; i += 1; writeline(k); }", "")
	if res.out != "0\n10\n" {
		t.Fatalf("expected %q, got %q", "0\n10\n", res.out)
	}
}

func TestIntWidensIntoFloatVariable(t *testing.T) {
	res := mustRun(t, "var float f = 2; writeline(f); f = 7 / 2; writeline(f);", "")
	if res.out != "2.0\n3.0\n" {
		t.Fatalf("expected %q, got %q", "2.0\n3.0\n", res.out)
	}
	if got := global(t, res.globals, "f"); got.Kind() != runtime.KindFloat {
		t.Fatalf("expected float, got %s", got.Kind())
	}
}

func TestNoneAssignments(t *testing.T) {
	res := mustRun(t, "var int x; writeline('start'); x = 4; let string s; s = 'once';", "")
	if got := global(t, res.globals, "x"); got != runtime.Value(runtime.IntValue{Val: 4}) {
		t.Fatalf("expected 4, got %v", got)
	}
	sym, ok := res.globals.Lookup("s")
	if !ok || sym.IsNone || sym.Mutable {
		t.Fatalf("expected immutable bound s, got %+v", sym)
	}
}

func TestReadBuiltins(t *testing.T) {
	src := "var int n = readInt('n? '); var string name = readString('name? '); writeline(name, n * 2);"
	res := mustRun(t, src, "x\n21\nada\n")
	want := "n? n? name? ada 42\n"
	if res.out != want {
		t.Fatalf("expected %q, got %q", want, res.out)
	}
}

func TestBuiltinFailureIsRuntimeError(t *testing.T) {
	res := run(t, "var int n = readInt('n? ');", "")
	if res.err == nil {
		t.Fatalf("expected a runtime error")
	}
	if len(res.diags) != 1 || res.diags[0].Code != diag.CodeRuntimeBuiltin {
		t.Fatalf("expected one %q diagnostic, got %v", diag.CodeRuntimeBuiltin, res.diags)
	}
}

func TestUnknownBuiltinAtRuntime(t *testing.T) {
	prog := compile(t, "writeline(1); readInt();")
	r := diag.NewReporter(nil)
	var out bytes.Buffer
	table := builtin.NewConsole(strings.NewReader(""), &out).Table().Without("readInt")

	err := interpreter.New(table, r).Run(prog)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if r.Count(diag.CategoryRuntime) != 1 {
		t.Fatalf("expected 1 runtime error, got %d", r.Count(diag.CategoryRuntime))
	}
	if r.Diagnostics()[0].Code != diag.CodeRuntimeUnknownBuiltin {
		t.Fatalf("expected %q, got %q", diag.CodeRuntimeUnknownBuiltin, r.Diagnostics()[0].Code)
	}
	if out.String() != "1\n" {
		t.Fatalf("expected %q, got %q", "1\n", out.String())
	}
}
