package types

import (
	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/runtime"
)

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Declaration:
		var value runtime.Value = runtime.None
		if _, isNone := s.Value.(*ast.NoneLit); !isNone {
			c.expect(s.Value, s.Type)
			value = runtime.Zero(s.Type)
		}
		c.scope.Declare(s.Name, s.Type, s.Mutable, value)
	case *ast.Assignment:
		c.checkAssignment(s)
	case *ast.Call:
		c.inferCall(s, false)
	case *ast.Block:
		c.checkBlock(s)
	case *ast.If:
		for _, branch := range s.Branches {
			c.checkCondition(branch.Cond)
			c.checkBlock(branch.Body)
		}
		if s.Else != nil {
			c.checkBlock(s.Else)
		}
	case *ast.While:
		c.checkCondition(s.Cond)
		c.checkBlock(s.Body)
	case *ast.Break, *ast.Continue:
	}
}

func (c *Checker) checkAssignment(s *ast.Assignment) {
	sym, ok := c.scope.Lookup(s.Name)
	if !ok {
		c.reportError(diag.CodeSemanticUndefined, s.Span(), "you tried to assign to a non-existent variable, '%s'", s.Name)
		return
	}
	if !sym.Mutable && !sym.IsNone {
		c.reportError(diag.CodeSemanticImmutable, s.Span(), "cannot assign twice to immutable variable '%s'", s.Name)
		return
	}
	if _, isNone := s.Value.(*ast.NoneLit); isNone {
		c.scope.Assign(s.Name, runtime.None)
		return
	}
	c.expect(s.Value, sym.Type)
	c.scope.Assign(s.Name, runtime.Zero(sym.Type))
}

// checkCondition requires cond to be a boolean expression.
func (c *Checker) checkCondition(cond ast.Expr) {
	switch e := cond.(type) {
	case *ast.Variable:
		sym, ok := c.scope.Lookup(e.Name)
		switch {
		case !ok:
			c.reportError(diag.CodeSemanticInvalidCondition, e.Span(), "the condition uses a non-existent variable, '%s'", e.Name)
		case sym.IsNone:
			c.reportError(diag.CodeSemanticInvalidCondition, e.Span(), "the condition uses variable '%s', which holds no value", e.Name)
		case sym.Type != runtime.KindBool:
			c.reportError(diag.CodeSemanticInvalidCondition, e.Span(), "the condition variable '%s' has type `%s`, expected `bool`", e.Name, sym.Type)
		}
	case *ast.BoolLit, *ast.Comparison, *ast.BooleanOp, *ast.NotBoolean, *ast.Call:
		c.expect(cond, runtime.KindBool)
	default:
		c.reportError(diag.CodeSemanticInvalidCondition, cond.Span(), "a condition must be a boolean expression, found %s", c.describe(cond))
	}
}
