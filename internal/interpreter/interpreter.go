// Package interpreter executes checked akorn programs by walking the AST.
package interpreter

import (
	"errors"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/builtin"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/runtime"
	"github.com/akorn-lang/akorn/internal/scope"
)

// Signal tells enclosing statements how control leaves a statement.
type Signal int

const (
	SignalNormal Signal = iota
	SignalBreak
	SignalContinue
)

// Interpreter runs one program at a time.
type Interpreter struct {
	builtins  builtin.Table
	sink      diag.Sink
	globals   *scope.Scope
	env       *scope.Scope
	loopDepth int
}

// New creates an interpreter dispatching calls through table and
// reporting runtime errors to sink.
func New(table builtin.Table, sink diag.Sink) *Interpreter {
	return &Interpreter{
		builtins: table,
		sink:     sink,
	}
}

// Interpret runs prog and returns its global scope.
func Interpret(prog *ast.Program, table builtin.Table, sink diag.Sink) (*scope.Scope, error) {
	in := New(table, sink)
	err := in.Run(prog)
	return in.Globals(), err
}

// Globals returns the global scope of the last run.
func (in *Interpreter) Globals() *scope.Scope {
	return in.globals
}

// Run executes prog. The first runtime error is reported to the sink and
// returned; nothing after it runs.
func (in *Interpreter) Run(prog *ast.Program) error {
	in.globals = scope.New(nil)
	in.env = in.globals
	in.loopDepth = 0

	for _, stmt := range prog.Stmts {
		if _, err := in.execStmt(stmt); err != nil {
			var rerr *RuntimeError
			if errors.As(err, &rerr) {
				in.sink.Add(rerr.ToDiagnostic())
			}
			return err
		}
	}
	return nil
}

func (in *Interpreter) execStmt(stmt ast.Stmt) (Signal, error) {
	switch s := stmt.(type) {
	case *ast.Declaration:
		return SignalNormal, in.execDeclaration(s)
	case *ast.Assignment:
		return SignalNormal, in.execAssignment(s)
	case *ast.Call:
		_, err := in.evalCall(s)
		return SignalNormal, err
	case *ast.Block:
		return in.execBlock(s)
	case *ast.If:
		return in.execIf(s)
	case *ast.While:
		return in.execWhile(s)
	case *ast.Break:
		if in.loopDepth == 0 {
			return SignalNormal, nil
		}
		return SignalBreak, nil
	case *ast.Continue:
		if in.loopDepth == 0 {
			return SignalNormal, nil
		}
		return SignalContinue, nil
	}
	return SignalNormal, nil
}

// execBlock runs block in a fresh child scope and stops at the first
// signal that is not SignalNormal.
func (in *Interpreter) execBlock(block *ast.Block) (Signal, error) {
	outer := in.env
	in.env = scope.New(outer)
	defer func() { in.env = outer }()

	for _, stmt := range block.Stmts {
		sig, err := in.execStmt(stmt)
		if err != nil || sig != SignalNormal {
			return sig, err
		}
	}
	return SignalNormal, nil
}

func (in *Interpreter) execIf(s *ast.If) (Signal, error) {
	for _, branch := range s.Branches {
		ok, err := in.evalCondition(branch.Cond)
		if err != nil {
			return SignalNormal, err
		}
		if ok {
			return in.execBlock(branch.Body)
		}
	}
	if s.Else != nil {
		return in.execBlock(s.Else)
	}
	return SignalNormal, nil
}

func (in *Interpreter) execWhile(s *ast.While) (Signal, error) {
	in.loopDepth++
	defer func() { in.loopDepth-- }()

	for {
		ok, err := in.evalCondition(s.Cond)
		if err != nil {
			return SignalNormal, err
		}
		if !ok {
			return SignalNormal, nil
		}
		sig, err := in.execBlock(s.Body)
		if err != nil {
			return SignalNormal, err
		}
		if sig == SignalBreak {
			return SignalNormal, nil
		}
	}
}

func (in *Interpreter) execDeclaration(d *ast.Declaration) error {
	v, err := in.eval(d.Value)
	if err != nil {
		return err
	}
	v, err = coerce(v, d.Type, d.Name, d.Span())
	if err != nil {
		return err
	}
	in.env.Declare(d.Name, d.Type, d.Mutable, v)
	return nil
}

func (in *Interpreter) execAssignment(a *ast.Assignment) error {
	sym, ok := in.env.Lookup(a.Name)
	if !ok {
		return runtimeErrorf(diag.CodeRuntimeUndefined, a.Span(), "you tried to assign to a non-existent variable, '%s'", a.Name)
	}
	v, err := in.eval(a.Value)
	if err != nil {
		return err
	}
	v, err = coerce(v, sym.Type, a.Name, a.Span())
	if err != nil {
		return err
	}
	in.env.Assign(a.Name, v)
	return nil
}

// coerce prepares v for storage in a variable of kind want.
func coerce(v runtime.Value, want runtime.Kind, name string, span lexer.Span) (runtime.Value, error) {
	if runtime.IsNone(v) {
		return runtime.None, nil
	}
	if want == runtime.KindFloat {
		v = runtime.Widen(v)
	}
	if v.Kind() != want {
		return nil, runtimeErrorf(diag.CodeRuntimeTypeMismatch, span, "cannot store `%s` in `%s` variable '%s'", v.Kind(), want, name)
	}
	return v, nil
}
