package ast

import (
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/runtime"
	"github.com/akorn-lang/akorn/internal/scope"
)

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is a parsed source file together with its root scope.
type Program struct {
	Stmts []Stmt
	Scope *scope.Scope
}

// Span returns the span of the first statement.
func (p *Program) Span() lexer.Span {
	if len(p.Stmts) == 0 {
		return lexer.Span{Line: 1, Column: 1}
	}
	return p.Stmts[0].Span()
}

// NewProgram constructs a program node.
func NewProgram(stmts []Stmt, root *scope.Scope) *Program {
	return &Program{Stmts: stmts, Scope: root}
}

// Literals

// IntLit represents an integer literal.
type IntLit struct {
	Value int64
	span  lexer.Span
}

func (l *IntLit) Span() lexer.Span { return l.span }
func (*IntLit) exprNode()          {}

// NewIntLit constructs an integer literal node.
func NewIntLit(value int64, span lexer.Span) *IntLit {
	return &IntLit{Value: value, span: span}
}

// FloatLit represents a float literal.
type FloatLit struct {
	Value float64
	span  lexer.Span
}

func (l *FloatLit) Span() lexer.Span { return l.span }
func (*FloatLit) exprNode()          {}

// NewFloatLit constructs a float literal node.
func NewFloatLit(value float64, span lexer.Span) *FloatLit {
	return &FloatLit{Value: value, span: span}
}

// BoolLit represents `true` or `false`.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

func (l *BoolLit) Span() lexer.Span { return l.span }
func (*BoolLit) exprNode()          {}

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

// StringLit represents a string literal with escapes already decoded.
type StringLit struct {
	Value string
	span  lexer.Span
}

func (l *StringLit) Span() lexer.Span { return l.span }
func (*StringLit) exprNode()          {}

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

// NoneLit represents the `none` literal.
type NoneLit struct {
	span lexer.Span
}

func (l *NoneLit) Span() lexer.Span { return l.span }
func (*NoneLit) exprNode()          {}

// NewNoneLit constructs a none literal node.
func NewNoneLit(span lexer.Span) *NoneLit {
	return &NoneLit{span: span}
}

// Operators

// Unary represents numeric `+x` or `-x`.
type Unary struct {
	Op      lexer.TokenType
	Operand Expr
}

func (e *Unary) Span() lexer.Span { return e.Operand.Span() }
func (*Unary) exprNode()          {}

// NewUnary constructs a unary arithmetic node.
func NewUnary(op lexer.TokenType, operand Expr) *Unary {
	return &Unary{Op: op, Operand: operand}
}

// NotBoolean represents `not x`.
type NotBoolean struct {
	Operand Expr
}

func (e *NotBoolean) Span() lexer.Span { return e.Operand.Span() }
func (*NotBoolean) exprNode()          {}

// NewNotBoolean constructs a boolean negation node.
func NewNotBoolean(operand Expr) *NotBoolean {
	return &NotBoolean{Operand: operand}
}

// Binary represents arithmetic: + - * / % **.
type Binary struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

func (e *Binary) Span() lexer.Span { return e.Left.Span() }
func (*Binary) exprNode()          {}

// NewBinary constructs an arithmetic node.
func NewBinary(op lexer.TokenType, left, right Expr) *Binary {
	return &Binary{Op: op, Left: left, Right: right}
}

// Comparison represents == != < > <= >=.
type Comparison struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

func (e *Comparison) Span() lexer.Span { return e.Left.Span() }
func (*Comparison) exprNode()          {}

// NewComparison constructs a comparison node.
func NewComparison(op lexer.TokenType, left, right Expr) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

// BooleanOp represents short-circuiting `and` / `or`.
type BooleanOp struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

func (e *BooleanOp) Span() lexer.Span { return e.Left.Span() }
func (*BooleanOp) exprNode()          {}

// NewBooleanOp constructs a logical operator node.
func NewBooleanOp(op lexer.TokenType, left, right Expr) *BooleanOp {
	return &BooleanOp{Op: op, Left: left, Right: right}
}

// Variable represents a reference to a declared name.
type Variable struct {
	Name string
	span lexer.Span
}

func (e *Variable) Span() lexer.Span { return e.span }
func (*Variable) exprNode()          {}

// NewVariable constructs a variable reference node.
func NewVariable(name string, span lexer.Span) *Variable {
	return &Variable{Name: name, span: span}
}

// Call represents a builtin invocation. It is both an expression and a
// statement.
type Call struct {
	Name string
	Args []Expr
	span lexer.Span
}

func (c *Call) Span() lexer.Span { return c.span }
func (*Call) exprNode()          {}
func (*Call) stmtNode()          {}

// NewCall constructs a call node positioned at the callee name.
func NewCall(name string, args []Expr, span lexer.Span) *Call {
	return &Call{Name: name, Args: args, span: span}
}

// Statements

// Declaration introduces one variable. It is positioned at its value.
type Declaration struct {
	Name    string
	Type    runtime.Kind
	Mutable bool
	Value   Expr
}

func (d *Declaration) Span() lexer.Span { return d.Value.Span() }
func (*Declaration) stmtNode()          {}

// NewDeclaration constructs a declaration node. A nil value becomes a
// none literal at span.
func NewDeclaration(name string, typ runtime.Kind, mutable bool, value Expr, span lexer.Span) *Declaration {
	if value == nil {
		value = NewNoneLit(span)
	}
	return &Declaration{Name: name, Type: typ, Mutable: mutable, Value: value}
}

// Assignment rebinds an existing variable. It is positioned at its value.
type Assignment struct {
	Name  string
	Value Expr
}

func (a *Assignment) Span() lexer.Span { return a.Value.Span() }
func (*Assignment) stmtNode()          {}

// NewAssignment constructs an assignment node.
func NewAssignment(name string, value Expr) *Assignment {
	return &Assignment{Name: name, Value: value}
}

// Block is a braced statement list that owns its scope.
type Block struct {
	Stmts []Stmt
	Scope *scope.Scope
	span  lexer.Span
}

func (b *Block) Span() lexer.Span { return b.span }
func (*Block) stmtNode()          {}

// NewBlock constructs a block node positioned at its opening brace.
func NewBlock(stmts []Stmt, sc *scope.Scope, span lexer.Span) *Block {
	return &Block{Stmts: stmts, Scope: sc, span: span}
}

// Branch is one `if` or `elif` arm.
type Branch struct {
	Cond Expr
	Body *Block
}

func (b *Branch) Span() lexer.Span { return b.Cond.Span() }

// If holds its arms in source order plus an optional else block.
type If struct {
	Branches []*Branch
	Else     *Block
}

func (s *If) Span() lexer.Span { return s.Branches[0].Span() }
func (*If) stmtNode()          {}

// NewIf constructs a conditional node; branches must not be empty.
func NewIf(branches []*Branch, elseBlock *Block) *If {
	return &If{Branches: branches, Else: elseBlock}
}

// While loops while Cond holds. `loop` parses to a While over `true`.
type While struct {
	Cond Expr
	Body *Block
}

func (s *While) Span() lexer.Span { return s.Cond.Span() }
func (*While) stmtNode()          {}

// NewWhile constructs a loop node.
func NewWhile(cond Expr, body *Block) *While {
	return &While{Cond: cond, Body: body}
}

// Break exits the innermost loop.
type Break struct {
	span lexer.Span
}

func (s *Break) Span() lexer.Span { return s.span }
func (*Break) stmtNode()          {}

// NewBreak constructs a break node.
func NewBreak(span lexer.Span) *Break {
	return &Break{span: span}
}

// Continue restarts the innermost loop.
type Continue struct {
	span lexer.Span
}

func (s *Continue) Span() lexer.Span { return s.span }
func (*Continue) stmtNode()          {}

// NewContinue constructs a continue node.
func NewContinue(span lexer.Span) *Continue {
	return &Continue{span: span}
}
