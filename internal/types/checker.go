// Package types implements the static checks run between parsing and
// interpretation.
package types

import (
	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/builtin"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/scope"
)

// Checker performs type checking on the AST.
type Checker struct {
	sink       diag.Sink
	scope      *scope.Scope
	signatures map[string]builtin.Signature
}

// Option configures a Checker.
type Option func(*Checker)

// WithSignatures restricts the builtins calls are checked against.
func WithSignatures(sigs map[string]builtin.Signature) Option {
	return func(c *Checker) {
		c.signatures = sigs
	}
}

// NewChecker creates a new type checker reporting to sink.
func NewChecker(sink diag.Sink, opts ...Option) *Checker {
	c := &Checker{
		sink:       sink,
		signatures: builtin.Signatures,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckProgram checks prog with the default builtin signatures.
func CheckProgram(prog *ast.Program, sink diag.Sink) {
	NewChecker(sink).Check(prog)
}

// Check validates every statement of prog. It never stops at the first
// error.
func (c *Checker) Check(prog *ast.Program) {
	c.scope = scope.New(nil)
	c.checkStmts(prog.Stmts)
}

func (c *Checker) checkBlock(block *ast.Block) {
	outer := c.scope
	c.scope = scope.New(outer)
	c.checkStmts(block.Stmts)
	c.scope = outer
}

func (c *Checker) checkStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		c.checkStmt(stmt)
	}
}
