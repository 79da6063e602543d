package parse

import (
	"fmt"

	"src.ember.sh/pkg/ast"
	"src.ember.sh/pkg/token"
)

type precedence int

// Precedence levels, from the lowest to the highest.
const (
	lowest precedence = iota
	equals
	lessGreater
	sum
	product
	prefix
	call
)

// Infix precedences of tokens. Tokens not in the map have the lowest
// precedence.
var precedences = map[token.Kind]precedence{
	token.EQ:       equals,
	token.NotEQ:    equals,
	token.LT:       lessGreater,
	token.GT:       lessGreater,
	token.Plus:     sum,
	token.Minus:    sum,
	token.Asterisk: product,
	token.Slash:    product,
	token.LParen:   call,
}

func (ps *parser) peekPrecedence() precedence { return precedences[ps.peek.Kind] }

func (ps *parser) curPrecedence() precedence { return precedences[ps.cur.Kind] }

// parseExpression parses an expression starting at the cursor, consuming
// infix operators that bind tighter than prec. On return the cursor is on the
// last token of the expression. It returns nil after recording an error.
func (ps *parser) parseExpression(prec precedence) ast.Expression {
	prefixFn := ps.prefixFns[ps.cur.Kind]
	if prefixFn == nil {
		ps.errorAt(ps.pos, ps.cur,
			fmt.Sprintf("no prefix parse function for %s found", ps.cur.Kind))
		return nil
	}
	left := prefixFn()
	for left != nil && prec < ps.peekPrecedence() {
		infixFn := ps.infixFns[ps.peek.Kind]
		if infixFn == nil {
			break
		}
		ps.advance()
		left = infixFn(left)
	}
	return left
}

func (ps *parser) parsePrimitive() ast.Expression {
	return &ast.Primitive{Token: ps.cur}
}

func (ps *parser) parsePrefix() ast.Expression {
	expr := &ast.Prefix{Token: ps.cur}
	ps.advance()
	if expr.Operand = ps.parseExpression(prefix); expr.Operand == nil {
		return nil
	}
	return expr
}

func (ps *parser) parseInfix(left ast.Expression) ast.Expression {
	expr := &ast.Infix{Token: ps.cur, Left: left}
	prec := ps.curPrecedence()
	ps.advance()
	if expr.Right = ps.parseExpression(prec); expr.Right == nil {
		return nil
	}
	return expr
}

func (ps *parser) parseGrouped() ast.Expression {
	ps.advance()
	expr := ps.parseExpression(lowest)
	if expr == nil || !ps.expectPeek(token.RParen) {
		return nil
	}
	return expr
}

func (ps *parser) parseIf() ast.Expression {
	expr := &ast.If{Token: ps.cur}
	if expr.If = ps.parseConditionBlock(); expr.If == nil {
		return nil
	}
	for ps.peek.Is(token.ElseIf) {
		ps.advance()
		b := ps.parseConditionBlock()
		if b == nil {
			return nil
		}
		expr.ElseIfs = append(expr.ElseIfs, b)
	}
	if ps.peek.Is(token.Else) {
		ps.advance()
		if expr.Else = ps.parseElseBlock(); expr.Else == nil {
			return nil
		}
	}
	return expr
}

// parseConditionBlock parses ( condition ) { block }, starting with the
// cursor on "if" or "else if".
func (ps *parser) parseConditionBlock() *ast.ConditionBlock {
	b := &ast.ConditionBlock{Token: ps.cur}
	if !ps.expectPeek(token.LParen) {
		return nil
	}
	ps.advance()
	if b.Condition = ps.parseExpression(lowest); b.Condition == nil {
		return nil
	}
	if !ps.expectPeek(token.RParen) || !ps.expectPeek(token.LBrace) {
		return nil
	}
	if b.Block = ps.parseBlock(); b.Block == nil {
		return nil
	}
	return b
}

// parseElseBlock parses { block }, starting with the cursor on "else".
func (ps *parser) parseElseBlock() *ast.ConditionBlock {
	b := &ast.ConditionBlock{Token: ps.cur}
	if !ps.expectPeek(token.LBrace) {
		return nil
	}
	if b.Block = ps.parseBlock(); b.Block == nil {
		return nil
	}
	return b
}

func (ps *parser) parseFunction() ast.Expression {
	expr := &ast.Function{Token: ps.cur}
	if !ps.expectPeek(token.LParen) {
		return nil
	}
	params, ok := ps.parseParams()
	if !ok || !ps.expectPeek(token.LBrace) {
		return nil
	}
	expr.Params = params
	if expr.Body = ps.parseBlock(); expr.Body == nil {
		return nil
	}
	return expr
}

// parseParams parses a possibly empty, comma-separated list of identifiers,
// starting with the cursor on "(" and ending on ")".
func (ps *parser) parseParams() ([]*ast.Primitive, bool) {
	params := []*ast.Primitive{}
	if ps.peek.Is(token.RParen) {
		ps.advance()
		return params, true
	}
	if !ps.expectPeek(token.Ident) {
		return nil, false
	}
	params = append(params, &ast.Primitive{Token: ps.cur})
	for ps.peek.Is(token.Comma) {
		ps.advance()
		if !ps.expectPeek(token.Ident) {
			return nil, false
		}
		params = append(params, &ast.Primitive{Token: ps.cur})
	}
	if !ps.expectPeek(token.RParen) {
		return nil, false
	}
	return params, true
}

func (ps *parser) parseCall(callee ast.Expression) ast.Expression {
	expr := &ast.Call{Token: ps.cur, Callee: callee}
	args, ok := ps.parseArgs()
	if !ok {
		return nil
	}
	expr.Args = args
	return expr
}

// parseArgs parses a possibly empty, comma-separated list of expressions,
// starting with the cursor on "(" and ending on ")".
func (ps *parser) parseArgs() ([]ast.Expression, bool) {
	args := []ast.Expression{}
	if ps.peek.Is(token.RParen) {
		ps.advance()
		return args, true
	}
	ps.advance()
	for {
		arg := ps.parseExpression(lowest)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		if !ps.peek.Is(token.Comma) {
			break
		}
		ps.advance()
		ps.advance()
	}
	if !ps.expectPeek(token.RParen) {
		return nil, false
	}
	return args, true
}
