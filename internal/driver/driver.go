// Package driver wires the lexer, normalizer, parser, checker and
// interpreter into the pipeline used by the command line tool.
package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/builtin"
	"github.com/akorn-lang/akorn/internal/config"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/interpreter"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/normalizer"
	"github.com/akorn-lang/akorn/internal/parser"
	"github.com/akorn-lang/akorn/internal/scope"
	"github.com/akorn-lang/akorn/internal/types"
)

// ErrCompile is returned by Run when compilation reported diagnostics.
var ErrCompile = errors.New("compilation failed")

// Unit is one source file moving through the pipeline.
type Unit struct {
	Filename string
	Source   string
	// Tokens are the normalized tokens the parser consumed.
	Tokens  []lexer.Token
	Program *ast.Program
	// Globals is set once the program has run.
	Globals *scope.Scope
}

// NewReporter returns a reporter rendering diagnostics as cfg asks.
func NewReporter(cfg *config.Config) *diag.Reporter {
	f := diag.NewFormatter()
	f.Snippets = cfg.Diagnostics.Snippets
	f.Limit = cfg.Diagnostics.Limit
	return diag.NewReporter(f)
}

// Tokens lexes and normalizes src.
func Tokens(filename, src string, cfg *config.Config, reporter *diag.Reporter) []lexer.Token {
	if f := reporter.Formatter(); f != nil {
		f.SetSource(filename, src)
	}
	tokens := lexer.TokenizeFile(filename, src, reporter)
	return normalizer.Normalize(tokens, reporter, normalizer.WithStyle(cfg.Style()))
}

// Compile runs the front end over src and, when it succeeds, the semantic
// checker. It reports whether no diagnostics were recorded.
func Compile(filename, src string, cfg *config.Config, reporter *diag.Reporter) (*Unit, bool) {
	unit := &Unit{Filename: filename, Source: src}
	unit.Tokens = Tokens(filename, src, cfg, reporter)
	unit.Program = parser.ParseProgram(unit.Tokens, reporter, parser.WithMaxDepth(cfg.Parser.MaxDepth))
	if reporter.HasErrors() {
		return unit, false
	}

	types.NewChecker(reporter, types.WithSignatures(cfg.Signatures())).Check(unit.Program)
	return unit, !reporter.HasErrors()
}

// Run compiles src and executes it with builtins reading from in and
// writing to out.
func Run(filename, src string, cfg *config.Config, in io.Reader, out io.Writer, reporter *diag.Reporter) (*Unit, error) {
	unit, ok := Compile(filename, src, cfg, reporter)
	if !ok {
		return unit, ErrCompile
	}

	table := cfg.BuiltinTable(builtin.NewConsole(in, out).Table())
	globals, err := interpreter.Interpret(unit.Program, table, reporter)
	unit.Globals = globals
	if err != nil {
		return unit, fmt.Errorf("run %s: %w", filename, err)
	}
	return unit, nil
}
