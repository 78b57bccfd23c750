package parser

import (
	"fmt"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
	"github.com/akorn-lang/akorn/internal/runtime"
	"github.com/akorn-lang/akorn/internal/scope"
)

// parseStatementList parses statements until closing (RBRACE or EOF),
// which is left unconsumed.
func (p *Parser) parseStatementList(closing lexer.TokenType) []ast.Stmt {
	var stmts []ast.Stmt
	for p.curTok.Type != closing && p.curTok.Type != lexer.EOF {
		switch p.curTok.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			continue
		case lexer.RBRACE:
			p.unexpected("a statement")
			p.nextToken()
			continue
		}

		start := p.pos
		parsed, err := p.parseStatement()
		stmts = append(stmts, parsed...)
		if err != nil {
			p.synchronize(start)
		}
	}
	return stmts
}

// parseStatement parses one statement. A declaration list yields one
// statement per declared name.
func (p *Parser) parseStatement() ([]ast.Stmt, error) {
	switch p.curTok.Type {
	case lexer.VAR, lexer.LET:
		return p.parseDeclaration()

	case lexer.TYPE_INT, lexer.TYPE_FLOAT, lexer.TYPE_STRING, lexer.TYPE_BOOL:
		p.fail(diag.CategoryParser, diag.CodeParserMissingKeyword,
			"incorrect variable declaration, use the keyword 'var' or 'let' before the data type",
			p.curTok.Span)
		return p.parseDeclarationBody(true)

	case lexer.IDENT:
		switch {
		case p.peekTok.Type == lexer.LPAREN:
			call, err := p.parseCall()
			if err != nil {
				return nil, err
			}
			return single(call), p.expectTerminator()
		case p.peekTok.Type == lexer.ASSIGN:
			return p.parseAssignment()
		default:
			if _, ok := lexer.CompoundOperator(p.peekTok.Type); ok {
				return p.parseAssignment()
			}
		}
		p.nextToken()
		return nil, p.unexpected("'=' or '(' after an identifier")

	case lexer.IF:
		stmt, err := p.parseIf()
		return single(stmt), err

	case lexer.WHILE:
		stmt, err := p.parseWhile()
		return single(stmt), err

	case lexer.LOOP:
		stmt, err := p.parseLoop()
		return single(stmt), err

	case lexer.BREAK:
		span := p.curTok.Span
		p.nextToken()
		return single(ast.NewBreak(span)), p.expectTerminator()

	case lexer.CONTINUE:
		span := p.curTok.Span
		p.nextToken()
		return single(ast.NewContinue(span)), p.expectTerminator()

	case lexer.LBRACE:
		return nil, p.fail(diag.CategoryParser, diag.CodeParserUnexpectedToken,
			"a block must follow 'if', 'elif', 'else', 'while' or 'loop'", p.curTok.Span)

	default:
		return nil, p.unexpected("a statement")
	}
}

func single(stmt ast.Stmt) []ast.Stmt {
	if stmt == nil {
		return nil
	}
	return []ast.Stmt{stmt}
}

// expectTerminator accepts ';' or an implicit terminator before '}'.
func (p *Parser) expectTerminator() error {
	switch p.curTok.Type {
	case lexer.SEMICOLON:
		p.nextToken()
		return nil
	case lexer.RBRACE:
		return nil
	}
	return p.fail(diag.CategoryParser, diag.CodeParserMissingTerminator,
		fmt.Sprintf("expected ';' at the end of the statement, got %s", describe(p.curTok)),
		p.curTok.Span)
}

// parseDeclaration parses `(var|let) TYPE name [= expr] {, name [= expr]}`.
func (p *Parser) parseDeclaration() ([]ast.Stmt, error) {
	mutable := p.curTok.Type == lexer.VAR
	p.nextToken()
	if !lexer.IsTypeKeyword(p.curTok.Type) {
		return nil, p.unexpected("a data type (int, float, string, bool)")
	}
	return p.parseDeclarationBody(mutable)
}

// parseDeclarationBody parses from the type keyword onwards.
func (p *Parser) parseDeclarationBody(mutable bool) ([]ast.Stmt, error) {
	typ := kindOf(p.curTok.Type)
	p.nextToken()

	var stmts []ast.Stmt
	for {
		nameTok, err := p.expect(lexer.IDENT, "a variable name")
		if err != nil {
			return stmts, err
		}

		var value ast.Expr
		valueSpan := p.curTok.Span
		if p.curTok.Type == lexer.ASSIGN {
			p.nextToken()
			value, err = p.parseExpression()
			if err != nil {
				return stmts, err
			}
		}

		// The value is parsed first so `var int x = x;` cannot see itself.
		if p.scope.Declare(nameTok.Value, typ, mutable, staticValue(typ, value)) {
			stmts = append(stmts, ast.NewDeclaration(nameTok.Value, typ, mutable, value, valueSpan))
		} else {
			p.fail(diag.CategoryDeclaration, diag.CodeDeclarationDuplicate,
				fmt.Sprintf("you tried to redeclare an existing variable in scope, '%s'", nameTok.Value),
				nameTok.Span)
		}

		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
		if p.curTok.Type != lexer.IDENT {
			return stmts, p.unexpected("an identifier after ',' in a declaration list")
		}
	}
	return stmts, p.expectTerminator()
}

// staticValue is what the parser's scope records for a declaration: none
// for a missing or literal-none initializer, otherwise the zero value of
// the declared type.
func staticValue(typ runtime.Kind, value ast.Expr) runtime.Value {
	if value == nil {
		return runtime.None
	}
	if _, ok := value.(*ast.NoneLit); ok {
		return runtime.None
	}
	return runtime.Zero(typ)
}

func kindOf(t lexer.TokenType) runtime.Kind {
	switch t {
	case lexer.TYPE_INT:
		return runtime.KindInt
	case lexer.TYPE_FLOAT:
		return runtime.KindFloat
	case lexer.TYPE_STRING:
		return runtime.KindString
	case lexer.TYPE_BOOL:
		return runtime.KindBool
	}
	return runtime.KindInvalid
}

// parseAssignment parses `name = expr` and the compound forms, which
// become `name = name op expr`.
func (p *Parser) parseAssignment() ([]ast.Stmt, error) {
	nameTok := p.curTok
	p.nextToken()
	opTok := p.curTok
	p.nextToken()

	if _, ok := p.scope.Lookup(nameTok.Value); !ok {
		return nil, p.fail(diag.CategoryName, diag.CodeNameUndefined,
			fmt.Sprintf("you tried to assign to a non-existent variable, '%s'", nameTok.Value),
			nameTok.Span)
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if op, ok := lexer.CompoundOperator(opTok.Type); ok {
		value = ast.NewBinary(op, ast.NewVariable(nameTok.Value, nameTok.Span), value)
	}
	return single(ast.NewAssignment(nameTok.Value, value)), p.expectTerminator()
}

// parseBlock parses `{ stmts }` in a fresh child scope.
func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(lexer.LBRACE, "'{' to open a block")
	if err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	parent := p.scope
	p.scope = scope.New(parent)
	defer func() { p.scope = parent }()

	stmts := p.parseStatementList(lexer.RBRACE)
	block := ast.NewBlock(stmts, p.scope, open.Span)

	if p.curTok.Type != lexer.RBRACE {
		return block, p.fail(diag.CategoryParser, diag.CodeParserUnexpectedToken,
			"a '}' is expected when closing a block", p.curTok.Span)
	}
	p.nextToken()
	return block, nil
}

// parseIf parses `if cond {…} {elif cond {…}} [else {…}]`. A branch
// whose condition fails still has its block parsed, so the rest of the
// chain stays intact; the statement is then dropped.
func (p *Parser) parseIf() (ast.Stmt, error) {
	var (
		branches []*ast.Branch
		failed   error
	)
	for {
		p.nextToken() // consume 'if' / 'elif'

		cond, err := p.parseExpression()
		if err != nil {
			if !p.skipToBlock() {
				return nil, err
			}
			if failed == nil {
				failed = err
			}
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		branches = append(branches, &ast.Branch{Cond: cond, Body: body})

		if p.curTok.Type != lexer.ELIF {
			break
		}
	}

	var elseBlock *ast.Block
	if p.curTok.Type == lexer.ELSE {
		p.nextToken()
		var err error
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	if failed != nil {
		return nil, failed
	}
	return ast.NewIf(branches, elseBlock), nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	p.nextToken() // consume 'while'

	cond, condErr := p.parseExpression()
	if condErr != nil && !p.skipToBlock() {
		return nil, condErr
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if condErr != nil {
		return nil, condErr
	}
	return ast.NewWhile(cond, body), nil
}

// skipToBlock moves past the rest of a failed condition. It reports
// whether a '{' was found on the way.
func (p *Parser) skipToBlock() bool {
	for {
		switch p.curTok.Type {
		case lexer.LBRACE:
			return true
		case lexer.EOF, lexer.RBRACE, lexer.SEMICOLON:
			return false
		}
		p.nextToken()
	}
}

// parseLoop parses `loop {…}` as a while over `true`.
func (p *Parser) parseLoop() (ast.Stmt, error) {
	loopTok := p.curTok
	p.nextToken()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(ast.NewBoolLit(true, loopTok.Span), body), nil
}
