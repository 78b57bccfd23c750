package parser

import (
	"fmt"
	"strconv"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
)

// Precedence, lowest to highest:
//
//	or, and, not, == !=, < > <= >=, + -, * / %, unary + -, **, primary
//
// `**` is right associative and its right operand is a unary expression,
// so `2 ** -1` parses.

func (p *Parser) parseExpression() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.OR {
		p.nextToken()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBooleanOp(lexer.OR, left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.AND {
		p.nextToken()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.NewBooleanOp(lexer.AND, left, right)
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expr, error) {
	if p.curTok.Type != lexer.NOT {
		return p.parseEquality()
	}
	p.nextToken()
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	operand, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return ast.NewNotBoolean(operand), nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.EQ || p.curTok.Type == lexer.NOT_EQ {
		op := p.curTok.Type
		p.nextToken()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = ast.NewComparison(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for isRelational(p.curTok.Type) {
		op := p.curTok.Type
		p.nextToken()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.NewComparison(op, left, right)
	}
	return left, nil
}

func isRelational(t lexer.TokenType) bool {
	switch t {
	case lexer.LT, lexer.GT, lexer.LE, lexer.GE:
		return true
	}
	return false
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.PLUS || p.curTok.Type == lexer.MINUS {
		op := p.curTok.Type
		p.nextToken()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.ASTERISK || p.curTok.Type == lexer.SLASH || p.curTok.Type == lexer.PERCENT {
		op := p.curTok.Type
		p.nextToken()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.curTok.Type != lexer.PLUS && p.curTok.Type != lexer.MINUS {
		return p.parsePower()
	}
	op := p.curTok.Type
	p.nextToken()
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(op, operand), nil
}

func (p *Parser) parsePower() (ast.Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.curTok.Type != lexer.POWER {
		return base, nil
	}
	p.nextToken()
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(lexer.POWER, base, exponent), nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.curTok
	switch tok.Type {
	case lexer.INT:
		value, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.fail(diag.CategoryParser, diag.CodeParserUnexpectedToken,
				fmt.Sprintf("integer literal %s is out of range", tok.Raw), tok.Span)
		}
		p.nextToken()
		return ast.NewIntLit(value, tok.Span), nil

	case lexer.FLOAT:
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.fail(diag.CategoryParser, diag.CodeParserUnexpectedToken,
				fmt.Sprintf("float literal %s is out of range", tok.Raw), tok.Span)
		}
		p.nextToken()
		return ast.NewFloatLit(value, tok.Span), nil

	case lexer.STRING:
		p.nextToken()
		return ast.NewStringLit(tok.Value, tok.Span), nil

	case lexer.TRUE, lexer.FALSE:
		p.nextToken()
		return ast.NewBoolLit(tok.Type == lexer.TRUE, tok.Span), nil

	case lexer.NONE:
		p.nextToken()
		return ast.NewNoneLit(tok.Span), nil

	case lexer.LPAREN:
		p.nextToken()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')' to close the parenthesized expression"); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.IDENT:
		if p.peekTok.Type == lexer.LPAREN {
			return p.parseCall()
		}
		p.nextToken()
		if _, ok := p.scope.Lookup(tok.Value); !ok {
			return nil, p.fail(diag.CategoryName, diag.CodeNameUndefined,
				fmt.Sprintf("you tried to access a non-existent variable, '%s'", tok.Value),
				tok.Span)
		}
		return ast.NewVariable(tok.Value, tok.Span), nil

	default:
		return nil, p.unexpected("an expression")
	}
}

// parseCall parses `name(arg, …)`. Whether name is a known builtin is
// decided by the semantic checker.
func (p *Parser) parseCall() (*ast.Call, error) {
	nameTok := p.curTok
	p.nextToken() // name
	p.nextToken() // '('

	var args []ast.Expr
	if p.curTok.Type != lexer.RPAREN {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.curTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}
	if _, err := p.expect(lexer.RPAREN, fmt.Sprintf("',' or ')' in the call to '%s'", nameTok.Value)); err != nil {
		return nil, err
	}
	return ast.NewCall(nameTok.Value, args, nameTok.Span), nil
}
