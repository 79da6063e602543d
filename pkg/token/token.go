// Package token defines the lexical tokens of Ember.
package token

import (
	"strconv"

	"src.ember.sh/pkg/diag"
)

// Kind is the kind of a token.
type Kind int

// Possible values for Kind.
const (
	Illegal Kind = iota
	EOF

	// Identifiers and literals
	Ident
	Int

	// Operators
	Assign   // =
	Plus     // +
	Minus    // -
	Bang     // !
	Asterisk // *
	Slash    // /
	LT       // <
	GT       // >
	EQ       // ==
	NotEQ    // !=

	// Delimiters
	Comma     // ,
	Semicolon // ;
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }

	// Keywords
	Function
	Let
	True
	False
	If
	Else
	ElseIf
	Return
)

var kindNames = [...]string{
	Illegal: "ILLEGAL", EOF: "EOF",
	Ident: "IDENTIFIER", Int: "INT",
	Assign: "ASSIGN", Plus: "PLUS", Minus: "MINUS", Bang: "BANG",
	Asterisk: "ASTERISK", Slash: "SLASH", LT: "LT", GT: "GT",
	EQ: "EQ", NotEQ: "NOT_EQ",
	Comma: "COMMA", Semicolon: "SEMICOLON",
	LParen: "LPAREN", RParen: "RPAREN", LBrace: "LBRACE", RBrace: "RBRACE",
	Function: "FUNCTION", Let: "LET", True: "TRUE", False: "FALSE",
	If: "IF", Else: "ELSE", ElseIf: "ELSE_IF", Return: "RETURN",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Keywords maps reserved words to their kinds. The two-word "else if" is not
// a key; the tokenizer recognizes it specially.
var Keywords = map[string]Kind{
	"fn":     Function,
	"let":    Let,
	"true":   True,
	"false":  False,
	"if":     If,
	"else":   Else,
	"return": Return,
}

// LookupIdent returns the keyword kind of name, or Ident if name is not a
// keyword.
func LookupIdent(name string) Kind {
	if k, ok := Keywords[name]; ok {
		return k
	}
	return Ident
}

// Token is a lexical token. It embeds the 0-based line and the inclusive
// column range it was read from.
type Token struct {
	Kind    Kind
	Literal Literal
	diag.Ranging
}

// New builds a token of the given kind, deriving the literal variant from the
// kind. The text of Int, True and False tokens is converted to a number or a
// boolean; for Int, the caller is expected to have validated it already.
func New(kind Kind, text string, r diag.Ranging) Token {
	var lit Literal
	switch kind {
	case EOF:
	case Int:
		n, _ := strconv.ParseInt(text, 10, 64)
		lit = IntLiteral(n)
	case True, False:
		lit = BoolLiteral(kind == True)
	default:
		lit = TextLiteral(text)
	}
	return Token{kind, lit, r}
}

// String returns the literal of the token, in the form it appears in source.
func (t Token) String() string { return t.Literal.String() }

// GoString returns the kind and literal of the token, and is used when
// printing tokens in test failures.
func (t Token) GoString() string {
	return t.Kind.String() + " " + strconv.Quote(t.Literal.String())
}

// Is reports whether the token is of kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }
