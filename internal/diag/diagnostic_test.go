package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/akorn-lang/akorn/internal/diag"
)

func TestDiagnosticString(t *testing.T) {
	d := diag.New(diag.CategorySemantic, diag.CodeSemanticMismatch, "expected `int`, found string literal", diag.Span{Line: 3, Column: 14})

	want := "[SemanticError][line: 3, col: 14] expected `int`, found string literal"
	if d.String() != want {
		t.Fatalf("expected %q, got %q", want, d.String())
	}
}

func TestReporterCollectsInOrder(t *testing.T) {
	r := diag.NewReporter(nil)
	if r.HasErrors() {
		t.Fatalf("expected empty reporter")
	}

	r.Add(diag.New(diag.CategoryLexer, diag.CodeLexerIllegalRune, "first", diag.Span{Line: 1, Column: 1}))
	r.Add(diag.New(diag.CategoryName, diag.CodeNameUndefined, "second", diag.Span{Line: 2, Column: 5}))
	r.Add(diag.New(diag.CategoryName, diag.CodeNameUndefined, "third", diag.Span{Line: 4, Column: 2}))

	if !r.HasErrors() {
		t.Fatalf("expected reporter to have errors")
	}
	if got := r.Count(diag.CategoryName); got != 2 {
		t.Fatalf("expected 2 name errors, got %d", got)
	}
	if got := r.Diagnostics()[0].Message; got != "first" {
		t.Fatalf("expected first diagnostic first, got %q", got)
	}

	var buf bytes.Buffer
	r.Display(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[1] != "[NameError][line: 2, col: 5] second" {
		t.Fatalf("unexpected second line %q", lines[1])
	}

	r.Clear()
	if r.HasErrors() {
		t.Fatalf("expected reporter to be empty after Clear")
	}
}

func TestFormatterLimit(t *testing.T) {
	f := diag.NewFormatter()
	f.Limit = 1

	ds := []diag.Diagnostic{
		diag.New(diag.CategoryParser, diag.CodeParserUnexpectedToken, "a", diag.Span{Line: 1, Column: 1}),
		diag.New(diag.CategoryParser, diag.CodeParserUnexpectedToken, "b", diag.Span{Line: 1, Column: 2}),
		diag.New(diag.CategoryParser, diag.CodeParserUnexpectedToken, "c", diag.Span{Line: 1, Column: 3}),
	}

	var buf bytes.Buffer
	f.FormatAll(&buf, ds)

	want := "[ParserError][line: 1, col: 1] a\n... and 2 more\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatterSnippet(t *testing.T) {
	f := diag.NewFormatter()
	f.Snippets = true
	f.SetSource("main.ak", "var int x = 1;\nx = y;\n")

	d := diag.New(diag.CategoryName, diag.CodeNameUndefined, "name `y` is not declared", diag.Span{
		Filename: "main.ak",
		Line:     2,
		Column:   5,
		Start:    19,
		End:      20,
	}).WithHelp("declare it with `var` or `let` first")

	var buf bytes.Buffer
	f.Format(&buf, d)
	out := buf.String()

	if !strings.Contains(out, "2 | x = y;") {
		t.Fatalf("expected source line in output, got %q", out)
	}
	if !strings.Contains(out, "  |     ^\n") {
		t.Fatalf("expected caret under column 5, got %q", out)
	}
	if !strings.Contains(out, "help: declare it with `var` or `let` first") {
		t.Fatalf("expected help line, got %q", out)
	}
}
