// Package lex implements the tokenizer of Ember.
package lex

import (
	"unicode/utf8"

	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/token"
)

// Config keeps configuration options when tokenizing.
type Config struct {
	// Destination of warnings, such as integer literals that overflow. If
	// nil, warnings are dropped.
	Sink diag.Sink
}

// Lex splits code into tokens. The result always ends with exactly one EOF
// token. Lex never fails: characters that don't start any token become
// Illegal tokens.
func Lex(code string, cfg Config) []token.Token {
	lx := &lexer{src: code, sink: cfg.Sink}
	var tokens []token.Token
	for {
		tok := lx.next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
	sink diag.Sink
}

// state is a snapshot of the cursor, used to undo lookahead.
type state struct{ pos, line, col int }

func (lx *lexer) save() state     { return state{lx.pos, lx.line, lx.col} }
func (lx *lexer) restore(s state) { lx.pos, lx.line, lx.col = s.pos, s.line, s.col }

const eof = -1

func (lx *lexer) peek() int {
	if lx.pos >= len(lx.src) {
		return eof
	}
	return int(lx.src[lx.pos])
}

func (lx *lexer) peekAt(i int) int {
	if lx.pos+i >= len(lx.src) {
		return eof
	}
	return int(lx.src[lx.pos+i])
}

// advance moves over n bytes on the current line.
func (lx *lexer) advance(n int) {
	lx.pos += n
	lx.col += n
}

func (lx *lexer) skipWhitespace() {
	for {
		switch lx.peek() {
		case ' ', '\t', '\r':
			lx.advance(1)
		case '\n':
			lx.pos++
			lx.line++
			lx.col = 0
		default:
			return
		}
	}
}

var singleChar = map[byte]token.Kind{
	'=': token.Assign, '+': token.Plus, '-': token.Minus, '!': token.Bang,
	'*': token.Asterisk, '/': token.Slash, '<': token.LT, '>': token.GT,
	',': token.Comma, ';': token.Semicolon,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
}

func (lx *lexer) next() token.Token {
	lx.skipWhitespace()
	r := lx.peek()
	switch {
	case r == eof:
		return token.New(token.EOF, "", diag.PointRanging(lx.line, lx.col))
	case (r == '=' || r == '!') && lx.peekAt(1) == '=':
		kind := token.EQ
		if r == '!' {
			kind = token.NotEQ
		}
		return lx.emit(kind, 2)
	case isLetter(r):
		return lx.word()
	case isDigit(r):
		return lx.number()
	}
	if kind, ok := singleChar[byte(r)]; ok {
		return lx.emit(kind, 1)
	}
	_, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	return lx.emit(token.Illegal, size)
}

// emit makes a token from the next n bytes and moves over them.
func (lx *lexer) emit(kind token.Kind, n int) token.Token {
	text := lx.src[lx.pos : lx.pos+n]
	tok := token.New(kind, text, diag.Ranging{Line: lx.line, From: lx.col, To: lx.col + n - 1})
	lx.advance(n)
	return tok
}

func (lx *lexer) span(pred func(int) bool) int {
	n := 0
	for pred(lx.peekAt(n)) {
		n++
	}
	return n
}

func (lx *lexer) word() token.Token {
	n := lx.span(isIdentChar)
	kind := token.LookupIdent(lx.src[lx.pos : lx.pos+n])
	if kind != token.Else {
		return lx.emit(kind, n)
	}
	elseTok := lx.emit(token.Else, n)
	if r, ok := lx.elseIf(elseTok.Ranging); ok {
		return token.New(token.ElseIf, "else if", r)
	}
	return elseTok
}

// elseIf checks whether the "else" just read is followed by the word "if". If
// so, it consumes "if" and returns the range of the combined token. Otherwise
// it leaves the cursor where it was.
func (lx *lexer) elseIf(elseRange diag.Ranging) (diag.Ranging, bool) {
	saved := lx.save()
	lx.skipWhitespace()
	if lx.peek() == 'i' && lx.peekAt(1) == 'f' && !isIdentChar(lx.peekAt(2)) {
		r := elseRange
		if lx.line == elseRange.Line {
			r.To = lx.col + 1
		}
		lx.advance(2)
		return r, true
	}
	lx.restore(saved)
	return diag.Ranging{}, false
}

func (lx *lexer) number() token.Token {
	n := lx.span(isDigit)
	text := lx.src[lx.pos : lx.pos+n]
	if !fitsInt64(text) {
		diag.Logf(lx.sink, diag.SevWarning,
			"integer literal %s at line %d overflows int64, using 0", text, lx.line+1)
		tok := lx.emit(token.Int, n)
		tok.Literal = token.IntLiteral(0)
		return tok
	}
	return lx.emit(token.Int, n)
}

const maxInt64 = "9223372036854775807"

// fitsInt64 reports whether a string of decimal digits is no larger than the
// maximum int64 value. Leading zeros count towards the length.
func fitsInt64(digits string) bool {
	switch {
	case len(digits) < len(maxInt64):
		return true
	case len(digits) > len(maxInt64):
		return false
	}
	return digits <= maxInt64
}

func isLetter(r int) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r int) bool { return '0' <= r && r <= '9' }

func isIdentChar(r int) bool { return isLetter(r) || isDigit(r) }
