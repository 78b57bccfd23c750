package parser_test

import (
	"testing"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/normalizer"
	"github.com/akorn-lang/akorn/internal/parser"
	"github.com/akorn-lang/akorn/internal/runtime"
)

func parseSource(t *testing.T, src string, opts ...parser.Option) (*ast.Program, []diag.Diagnostic) {
	t.Helper()

	r := diag.NewReporter(nil)
	tokens := normalizer.Normalize(lexer.Tokenize(src, r), r)
	prog := parser.ParseProgram(tokens, r, opts...)

	return prog, r.Diagnostics()
}

func assertNoErrors(t *testing.T, errs []diag.Diagnostic) {
	t.Helper()

	if len(errs) == 0 {
		return
	}

	for _, err := range errs {
		t.Errorf("unexpected parse error: %s", err)
	}
	t.Fatalf("parser reported %d error(s)", len(errs))
}

func countCategory(errs []diag.Diagnostic, category diag.Category) int {
	n := 0
	for _, err := range errs {
		if err.Category == category {
			n++
		}
	}
	return n
}

func TestParseDeclaration(t *testing.T) {
	prog, errs := parseSource(t, `var int x = 5; let string name = "akorn"; var float f;`)
	assertNoErrors(t, errs)

	if len(prog.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Stmts))
	}

	decl, ok := prog.Stmts[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected *ast.Declaration, got %T", prog.Stmts[0])
	}
	if decl.Name != "x" || decl.Type != runtime.KindInt || !decl.Mutable {
		t.Fatalf("unexpected declaration %+v", decl)
	}
	if lit, ok := decl.Value.(*ast.IntLit); !ok || lit.Value != 5 {
		t.Fatalf("expected int literal 5, got %#v", decl.Value)
	}

	let := prog.Stmts[1].(*ast.Declaration)
	if let.Mutable || let.Type != runtime.KindString {
		t.Fatalf("expected immutable string declaration, got %+v", let)
	}

	empty := prog.Stmts[2].(*ast.Declaration)
	if _, ok := empty.Value.(*ast.NoneLit); !ok {
		t.Fatalf("expected missing initializer to become none, got %T", empty.Value)
	}
	sym, ok := prog.Scope.Local("f")
	if !ok || !sym.IsNone {
		t.Fatalf("expected f to be declared as none in the root scope")
	}
}

func TestParseMultiDeclaration(t *testing.T) {
	prog, errs := parseSource(t, `var int a = 1, b, c = a + 1;`)
	assertNoErrors(t, errs)

	if len(prog.Stmts) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(prog.Stmts))
	}
	for i, name := range []string{"a", "b", "c"} {
		decl := prog.Stmts[i].(*ast.Declaration)
		if decl.Name != name || decl.Type != runtime.KindInt {
			t.Fatalf("declaration %d: expected int %s, got %+v", i, name, decl)
		}
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	prog, errs := parseSource(t, "var int x = 1;\nvar int x = 2, y = 3;")

	if got := countCategory(errs, diag.CategoryDeclaration); got != 1 || len(errs) != 1 {
		t.Fatalf("expected exactly one DeclarationError, got %v", errs)
	}
	if errs[0].Span.Line != 2 || errs[0].Span.Column != 9 {
		t.Fatalf("expected error at 2:9, got %s", errs[0].Span)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected the duplicate to be dropped and y kept, got %d statements", len(prog.Stmts))
	}
	if decl := prog.Stmts[1].(*ast.Declaration); decl.Name != "y" {
		t.Fatalf("expected y, got %s", decl.Name)
	}
}

func TestShadowingInBlock(t *testing.T) {
	prog, errs := parseSource(t, `var int x = 1; if true { var string x = "inner"; x = "again"; }`)
	assertNoErrors(t, errs)

	ifStmt := prog.Stmts[1].(*ast.If)
	body := ifStmt.Branches[0].Body
	typ, ok := body.Scope.LookupType("x")
	if !ok || typ != runtime.KindString {
		t.Fatalf("expected inner x to be a string, got %v", typ)
	}
	if body.Scope.Parent() != prog.Scope {
		t.Fatalf("expected block scope to hang off the root scope")
	}
	if typ, _ := prog.Scope.LookupType("x"); typ != runtime.KindInt {
		t.Fatalf("expected outer x to stay int, got %v", typ)
	}
}

func TestUndeclaredNameRecovers(t *testing.T) {
	prog, errs := parseSource(t, "var int a = b + 1\nvar int c = 2\nd = 3\nc = 4\n")

	if got := countCategory(errs, diag.CategoryName); got != 2 || len(errs) != 2 {
		t.Fatalf("expected two NameErrors, got %v", errs)
	}
	if errs[0].Span.Line != 1 || errs[0].Span.Column != 13 {
		t.Fatalf("expected first error at 1:13, got %s", errs[0].Span)
	}
	if errs[1].Span.Line != 3 {
		t.Fatalf("expected second error on line 3, got %s", errs[1].Span)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected c declaration and assignment to survive, got %d statements", len(prog.Stmts))
	}
	if _, ok := prog.Stmts[1].(*ast.Assignment); !ok {
		t.Fatalf("expected assignment, got %T", prog.Stmts[1])
	}
}

func TestCompoundAssignment(t *testing.T) {
	prog, errs := parseSource(t, `var int x = 1; x += 2 * 3; x **= 2;`)
	assertNoErrors(t, errs)

	assign := prog.Stmts[1].(*ast.Assignment)
	bin, ok := assign.Value.(*ast.Binary)
	if !ok || bin.Op != lexer.PLUS {
		t.Fatalf("expected x + ..., got %#v", assign.Value)
	}
	if v, ok := bin.Left.(*ast.Variable); !ok || v.Name != "x" {
		t.Fatalf("expected left operand x, got %#v", bin.Left)
	}
	if right, ok := bin.Right.(*ast.Binary); !ok || right.Op != lexer.ASTERISK {
		t.Fatalf("expected right operand 2 * 3, got %#v", bin.Right)
	}
	if assign.Span().Column != 16 {
		t.Fatalf("expected assignment positioned at the target, got %s", assign.Span().Diag())
	}

	pow := prog.Stmts[2].(*ast.Assignment).Value.(*ast.Binary)
	if pow.Op != lexer.POWER {
		t.Fatalf("expected **, got %s", pow.Op)
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{
			src: "var int r = 1 + 2 * 3;",
			want: `Program
  Declaration var int r
    Binary +
      Int 1
      Binary *
        Int 2
        Int 3
`,
		},
		{
			src: "var int r = 2 ** 3 ** 2;",
			want: `Program
  Declaration var int r
    Binary **
      Int 2
      Binary **
        Int 3
        Int 2
`,
		},
		{
			src: "var float r = -2 ** -1;",
			want: `Program
  Declaration var float r
    Unary -
      Binary **
        Int 2
        Unary -
          Int 1
`,
		},
		{
			src: "var bool r = not 1 == 2 or true and false;",
			want: `Program
  Declaration var bool r
    BooleanOp or
      Not
        Comparison ==
          Int 1
          Int 2
      BooleanOp and
        Bool true
        Bool false
`,
		},
		{
			src: "var bool r = (1 + 2) * 3 >= 9 != false;",
			want: `Program
  Declaration var bool r
    Comparison !=
      Comparison >=
        Binary *
          Binary +
            Int 1
            Int 2
          Int 3
        Int 9
      Bool false
`,
		},
	}

	for _, tt := range tests {
		prog, errs := parseSource(t, tt.src)
		assertNoErrors(t, errs)
		if got := ast.Sprint(prog); got != tt.want {
			t.Fatalf("%s\nexpected:\n%s\ngot:\n%s", tt.src, tt.want, got)
		}
	}
}

func TestPositionsFollowFirstOperand(t *testing.T) {
	prog, errs := parseSource(t, "var int x = 1\nvar int y =\n  x * 2 + 3\n")
	assertNoErrors(t, errs)

	decl := prog.Stmts[1].(*ast.Declaration)
	span := decl.Span()
	if span.Line != 3 || span.Column != 3 {
		t.Fatalf("expected declaration at 3:3, got %d:%d", span.Line, span.Column)
	}
	if inner := decl.Value.(*ast.Binary).Left.Span(); inner != span {
		t.Fatalf("expected nested binary to share the position, got %v", inner)
	}
}

func TestControlFlow(t *testing.T) {
	src := `
var int i = 0
if i < 1 {
	i = 1
} elif i < 2 {
	i = 2
} else {
	i = 3
}
while i < 10 {
	i += 1
	if i == 5 { continue }
	if i == 8 { break }
}
loop {
	break
}
`
	prog, errs := parseSource(t, src)
	assertNoErrors(t, errs)

	if len(prog.Stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(prog.Stmts))
	}

	ifStmt := prog.Stmts[1].(*ast.If)
	if len(ifStmt.Branches) != 2 || ifStmt.Else == nil {
		t.Fatalf("expected if/elif/else, got %d branches else=%v", len(ifStmt.Branches), ifStmt.Else != nil)
	}

	while := prog.Stmts[2].(*ast.While)
	if len(while.Body.Stmts) != 3 {
		t.Fatalf("expected 3 statements in while body, got %d", len(while.Body.Stmts))
	}
	inner := while.Body.Stmts[1].(*ast.If).Branches[0].Body.Stmts[0]
	if _, ok := inner.(*ast.Continue); !ok {
		t.Fatalf("expected continue, got %T", inner)
	}

	loop := prog.Stmts[3].(*ast.While)
	if cond, ok := loop.Cond.(*ast.BoolLit); !ok || !cond.Value {
		t.Fatalf("expected loop to parse as while true, got %#v", loop.Cond)
	}
	if _, ok := loop.Body.Stmts[0].(*ast.Break); !ok {
		t.Fatalf("expected break, got %T", loop.Body.Stmts[0])
	}
}

func TestCalls(t *testing.T) {
	prog, errs := parseSource(t, `writeline(); write("a", 1 + 2, true); var int n = readInt("n? ");`)
	assertNoErrors(t, errs)

	empty := prog.Stmts[0].(*ast.Call)
	if empty.Name != "writeline" || len(empty.Args) != 0 {
		t.Fatalf("unexpected call %+v", empty)
	}
	write := prog.Stmts[1].(*ast.Call)
	if len(write.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(write.Args))
	}
	decl := prog.Stmts[2].(*ast.Declaration)
	if call, ok := decl.Value.(*ast.Call); !ok || call.Name != "readInt" {
		t.Fatalf("expected readInt call, got %#v", decl.Value)
	}
}

func TestMissingVarKeyword(t *testing.T) {
	prog, errs := parseSource(t, `int x = 1; x = 2;`)

	if len(errs) != 1 || errs[0].Category != diag.CategoryParser {
		t.Fatalf("expected one ParserError, got %v", errs)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected declaration to be recovered, got %d statements", len(prog.Stmts))
	}
}

func TestRecoveryContinuesAfterSyntaxError(t *testing.T) {
	prog, errs := parseSource(t, `var int = 5; var int y = 2 +; var int z = 3;`)

	if got := countCategory(errs, diag.CategoryParser); got != 2 || len(errs) != 2 {
		t.Fatalf("expected two ParserErrors, got %v", errs)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected only z to survive, got %d statements", len(prog.Stmts))
	}
	if decl := prog.Stmts[0].(*ast.Declaration); decl.Name != "z" {
		t.Fatalf("expected z, got %s", decl.Name)
	}
}

func TestFailedConditionKeepsBlockScope(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"if", "if z { var int a = 1; }\nvar int a = 2;"},
		{"while", "while q < 3 { var int a = 1; }\nvar int a = 2;"},
		{"elif chain", "if z { var int a = 1; } elif true { var int a = 2; } else { var int a = 3; }\nvar int a = 4;"},
		{"failing elif", "if true { var int a = 1; } elif z { var int a = 2; }\nvar int a = 3;"},
		{"newlines", "if z {\n    var int a = 1\n}\nvar int a = 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, errs := parseSource(t, tt.src)
			if got := countCategory(errs, diag.CategoryName); got != 1 || len(errs) != 1 {
				t.Fatalf("expected one NameError, got %v", errs)
			}
			if len(prog.Stmts) != 1 {
				t.Fatalf("expected the outer declaration to survive, got %d statements", len(prog.Stmts))
			}
			if _, ok := prog.Stmts[0].(*ast.Declaration); !ok {
				t.Fatalf("expected *ast.Declaration, got %T", prog.Stmts[0])
			}
		})
	}
}

func TestImplicitTerminatorBeforeBrace(t *testing.T) {
	_, errs := parseSource(t, `var int i = 0; while i < 3 { i = i + 1 }`)
	assertNoErrors(t, errs)
}

func TestMissingTerminator(t *testing.T) {
	_, errs := parseSource(t, `var int i = 0; i = 1`)
	if len(errs) != 1 || errs[0].Code != diag.CodeParserMissingTerminator {
		t.Fatalf("expected a missing terminator error, got %v", errs)
	}
}

func TestUnclosedBlock(t *testing.T) {
	_, errs := parseSource(t, "if true {\nwrite(1)\n")
	if len(errs) != 1 || errs[0].Category != diag.CategoryParser {
		t.Fatalf("expected one ParserError, got %v", errs)
	}
}

func TestStrayClosingBrace(t *testing.T) {
	prog, errs := parseSource(t, `}; var int x = 1;`)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected x to parse, got %d statements", len(prog.Stmts))
	}
}

func TestMaxDepth(t *testing.T) {
	_, errs := parseSource(t, `var int x = ((((((1))))));`, parser.WithMaxDepth(4))
	if len(errs) != 1 || errs[0].Code != diag.CodeParserTooDeep {
		t.Fatalf("expected a single nesting error, got %v", errs)
	}

	_, errs = parseSource(t, `var int x = ((((((1))))));`)
	assertNoErrors(t, errs)
}

func TestValueCannotSeeItsOwnDeclaration(t *testing.T) {
	_, errs := parseSource(t, `var int x = x + 1;`)
	if got := countCategory(errs, diag.CategoryName); got != 1 {
		t.Fatalf("expected NameError, got %v", errs)
	}
}
