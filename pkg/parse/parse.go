// Package parse implements the Ember parser.
//
// Statements and blocks are parsed by recursive descent; expressions are
// parsed by Pratt's top-down operator precedence method. The parser does not
// stop at the first error: a statement that fails to parse is dropped, the
// rest of it is skipped and parsing resumes with the next statement.
package parse

import (
	"fmt"

	"src.ember.sh/pkg/ast"
	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/lex"
	"src.ember.sh/pkg/token"
)

// Config keeps configuration options when parsing.
type Config struct {
	// Destination of warnings from the tokenizer. If nil, warnings are
	// dropped.
	Sink diag.Sink
}

// Parse parses the given source. It always returns a Program containing the
// statements that could be parsed. The returned error always has type *Error
// if it is not nil.
func Parse(src Source, cfg Config) (*ast.Program, error) {
	tokens := lex.Lex(src.Code, lex.Config{Sink: cfg.Sink})
	return parseTokens(src, tokens, cfg.Sink)
}

// ParseTokens is like Parse, but works on an already tokenized source. The
// tokens must end with an EOF token.
func ParseTokens(src Source, tokens []token.Token) (*ast.Program, error) {
	return parseTokens(src, tokens, nil)
}

func parseTokens(src Source, tokens []token.Token, sink diag.Sink) (*ast.Program, error) {
	ps := newParser(src, tokens)
	ps.sink = sink
	prog := ps.parseProgram()
	if len(ps.errors.Entries) > 0 {
		return prog, &ps.errors
	}
	return prog, nil
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(left ast.Expression) ast.Expression
)

type parser struct {
	src    Source
	tokens []token.Token
	// Index of cur in tokens.
	pos       int
	cur, peek token.Token
	errors    Error
	// Index of the token that caused the last error, or -1 if the error
	// has already been dealt with.
	errPos int
	// Also receives every parse error; may be nil.
	sink diag.Sink

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

func newParser(src Source, tokens []token.Token) *parser {
	ps := &parser{src: src, tokens: tokens, errPos: -1}
	ps.prefixFns = map[token.Kind]prefixParseFn{
		token.Ident:    ps.parsePrimitive,
		token.Int:      ps.parsePrimitive,
		token.True:     ps.parsePrimitive,
		token.False:    ps.parsePrimitive,
		token.Bang:     ps.parsePrefix,
		token.Minus:    ps.parsePrefix,
		token.LParen:   ps.parseGrouped,
		token.If:       ps.parseIf,
		token.Function: ps.parseFunction,
	}
	ps.infixFns = map[token.Kind]infixParseFn{
		token.LParen: ps.parseCall,
	}
	for kind := range precedences {
		if kind != token.LParen {
			ps.infixFns[kind] = ps.parseInfix
		}
	}
	ps.pos = -1
	ps.advance()
	return ps
}

// advance moves the cursor forward by one token. It never moves past the
// final EOF token.
func (ps *parser) advance() {
	if ps.pos+1 < len(ps.tokens) {
		ps.pos++
	}
	ps.cur = ps.tokens[ps.pos]
	if ps.pos+1 < len(ps.tokens) {
		ps.peek = ps.tokens[ps.pos+1]
	} else {
		ps.peek = ps.cur
	}
}

// expectPeek advances if the peek token has the given kind. Otherwise it
// records an error and leaves the cursor unchanged.
func (ps *parser) expectPeek(kind token.Kind) bool {
	if ps.peek.Is(kind) {
		ps.advance()
		return true
	}
	ps.errorAt(ps.pos+1, ps.peek,
		fmt.Sprintf("expected next token to be %s, got %s instead", kind, ps.peek.Kind))
	return false
}

func (ps *parser) errorAt(pos int, tok token.Token, msg string) {
	ps.errPos = pos
	ctx := diag.NewContext(ps.src.Name, ps.src.Code, tok)
	ps.errors.add(msg, ctx)
	diag.Logf(ps.sink, diag.SevError, "%s:%s: %s", ps.src.Name, ctx.Position(), msg)
}

// synchronize skips the rest of a statement that failed to parse. It moves
// the cursor to the next ";" or to the last token on the current line,
// whichever comes first. Inside a block it also stops before a "}". A block
// that was never parsed is skipped as a whole, however many lines it spans.
func (ps *parser) synchronize(inBlock bool) {
	for !ps.cur.Is(token.Semicolon) && !ps.cur.Is(token.EOF) {
		if ps.cur.Is(token.LBrace) {
			ps.skipBraces()
		}
		if ps.cur.Is(token.EOF) || ps.peek.Is(token.EOF) || ps.peek.Line > ps.cur.Line ||
			inBlock && ps.peek.Is(token.RBrace) {
			return
		}
		ps.advance()
	}
}

// skipBraces moves the cursor from a "{" to its matching "}", or to EOF.
func (ps *parser) skipBraces() {
	for depth := 0; !ps.cur.Is(token.EOF); ps.advance() {
		switch ps.cur.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth--; depth == 0 {
				return
			}
		}
	}
}

func (ps *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for ; !ps.cur.Is(token.EOF); ps.advance() {
		if stmt := ps.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			ps.synchronize(false)
		}
	}
	return prog
}

func (ps *parser) parseStatement() ast.Statement {
	switch ps.cur.Kind {
	case token.Let:
		return ps.parseLet()
	case token.Return:
		return ps.parseReturn()
	default:
		return ps.parseExpressionStatement()
	}
}

func (ps *parser) skipSemicolon() {
	if ps.peek.Is(token.Semicolon) {
		ps.advance()
	}
}

func (ps *parser) parseLet() ast.Statement {
	stmt := &ast.Let{Token: ps.cur}
	if !ps.expectPeek(token.Ident) {
		return nil
	}
	stmt.Name = &ast.Primitive{Token: ps.cur}
	if !ps.expectPeek(token.Assign) {
		return nil
	}
	ps.advance()
	if stmt.Value = ps.parseExpression(lowest); stmt.Value == nil {
		return nil
	}
	ps.skipSemicolon()
	return stmt
}

func (ps *parser) parseReturn() ast.Statement {
	stmt := &ast.Return{Token: ps.cur}
	ps.advance()
	if stmt.Value = ps.parseExpression(lowest); stmt.Value == nil {
		return nil
	}
	ps.skipSemicolon()
	return stmt
}

func (ps *parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: ps.cur}
	if stmt.Expr = ps.parseExpression(lowest); stmt.Expr == nil {
		return nil
	}
	ps.skipSemicolon()
	return stmt
}

// parseBlock parses a block, starting with the cursor on "{". It stops at the
// matching "}" or at EOF. If any statement in the block fails to parse, the
// rest of the block is still consumed, and nil is returned.
func (ps *parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: ps.cur}
	ok := true
	for ps.advance(); !ps.cur.Is(token.RBrace) && !ps.cur.Is(token.EOF); ps.advance() {
		stmt := ps.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
			continue
		}
		ok = false
		if ps.cur.Is(token.RBrace) && ps.errPos == ps.pos {
			// The closing brace of this block was the culprit.
			ps.errPos = -1
			break
		}
		ps.errPos = -1
		ps.synchronize(true)
	}
	if !ok {
		return nil
	}
	return block
}
