package parser

import (
	"fmt"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/scope"
)

// DefaultMaxDepth bounds how deeply blocks and expressions may nest.
const DefaultMaxDepth = 512

type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth sets the nesting limit. Values below one keep the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// ParseError captures a recoverable parsing error with location context.
// It has already been reported to the sink when it is returned.
type ParseError struct {
	Category diag.Category
	Code     diag.Code
	Message  string
	Span     lexer.Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.Category, e.Span.Line, e.Span.Column, e.Message)
}

// ToDiagnostic converts the error into the shared diagnostic structure.
func (e *ParseError) ToDiagnostic() diag.Diagnostic {
	return diag.New(e.Category, e.Code, e.Message, e.Span.Diag())
}

// Parser is a recursive descent parser over a normalized token stream.
// Invariants:
//   - curTok is the token under examination and peekTok the one after it;
//     both only change through nextToken.
//   - scope is the innermost scope of the construct being parsed. Every
//     block swaps in a child scope for its body and restores the parent.
//   - parse functions return a non-nil error only after reporting it, so
//     callers never report twice.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	curTok  lexer.Token
	peekTok lexer.Token

	sink  diag.Sink
	scope *scope.Scope

	depth    int
	maxDepth int
}

// New returns a parser over tokens, which must end with EOF.
func New(tokens []lexer.Token, sink diag.Sink, opts ...Option) *Parser {
	cfg := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		tokens = append(tokens, lexer.Token{Type: lexer.EOF, Span: lexer.Span{Line: 1, Column: 1}})
	}

	p := &Parser{
		tokens:   tokens,
		pos:      -1,
		sink:     sink,
		scope:    scope.New(nil),
		maxDepth: cfg.maxDepth,
	}
	p.nextToken()
	return p
}

// ParseProgram is shorthand for New(tokens, sink, opts...).ParseProgram().
func ParseProgram(tokens []lexer.Token, sink diag.Sink, opts ...Option) *ast.Program {
	return New(tokens, sink, opts...).ParseProgram()
}

// ParseProgram parses every statement up to EOF. Diagnostics go to the
// sink; the returned program contains every statement that parsed.
func (p *Parser) ParseProgram() *ast.Program {
	stmts := p.parseStatementList(lexer.EOF)
	return ast.NewProgram(stmts, p.scope)
}

// nextToken advances the token window. Past the end it keeps yielding EOF.
func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curTok = p.tokens[p.pos]
	if p.pos+1 < len(p.tokens) {
		p.peekTok = p.tokens[p.pos+1]
	} else {
		p.peekTok = p.curTok
	}
}

// expect consumes curTok when it has type tt and reports a ParserError
// otherwise.
func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	tok := p.curTok
	if tok.Type != tt {
		return tok, p.unexpected(what)
	}
	p.nextToken()
	return tok, nil
}

// fail reports a diagnostic and returns it as an error.
func (p *Parser) fail(category diag.Category, code diag.Code, msg string, span lexer.Span) *ParseError {
	err := &ParseError{
		Category: category,
		Code:     code,
		Message:  msg,
		Span:     span,
	}
	p.sink.Add(err.ToDiagnostic())
	return err
}

// unexpected reports that curTok is not what the grammar needs here.
func (p *Parser) unexpected(expected string) *ParseError {
	return p.fail(diag.CategoryParser, diag.CodeParserUnexpectedToken,
		fmt.Sprintf("parser found something unexpected (expected: %s, got: %s)", expected, describe(p.curTok)),
		p.curTok.Span)
}

// enter bumps the nesting depth; every successful call must be paired
// with leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		return p.fail(diag.CategoryParser, diag.CodeParserTooDeep,
			fmt.Sprintf("nesting is deeper than the limit of %d", p.maxDepth), p.curTok.Span)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// synchronize skips tokens after a failed statement that started at
// token index start. It stops after a ';' or before anything that can
// begin a statement or close a block, and always makes progress.
func (p *Parser) synchronize(start int) {
	if p.pos == start && p.curTok.Type != lexer.EOF {
		p.nextToken()
	}
	for {
		switch p.curTok.Type {
		case lexer.EOF, lexer.RBRACE:
			return
		case lexer.SEMICOLON:
			p.nextToken()
			return
		case lexer.VAR, lexer.LET, lexer.IF, lexer.WHILE, lexer.LOOP, lexer.BREAK, lexer.CONTINUE:
			return
		case lexer.IDENT:
			if startsStatement(p.peekTok.Type) {
				return
			}
		}
		p.nextToken()
	}
}

// startsStatement reports whether an identifier followed by t reads as
// the start of an assignment or call statement.
func startsStatement(t lexer.TokenType) bool {
	if t == lexer.ASSIGN || t == lexer.LPAREN {
		return true
	}
	_, ok := lexer.CompoundOperator(t)
	return ok
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.IDENT:
		return fmt.Sprintf("identifier '%s'", tok.Value)
	case lexer.INT, lexer.FLOAT:
		return fmt.Sprintf("number %s", tok.Raw)
	case lexer.STRING:
		return fmt.Sprintf("string %s", tok.Raw)
	default:
		if tok.Raw != "" {
			return fmt.Sprintf("'%s'", tok.Raw)
		}
		return string(tok.Type)
	}
}
