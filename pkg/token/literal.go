package token

import "strconv"

type literalKind uint8

const (
	noLiteral literalKind = iota
	textLiteral
	intLiteral
	boolLiteral
)

// Literal is the value carried by a token. It is exactly one of none, text,
// integer or boolean.
type Literal struct {
	kind literalKind
	text string
	num  int64
	b    bool
}

// TextLiteral returns a text Literal.
func TextLiteral(s string) Literal { return Literal{kind: textLiteral, text: s} }

// IntLiteral returns an integer Literal.
func IntLiteral(n int64) Literal { return Literal{kind: intLiteral, num: n} }

// BoolLiteral returns a boolean Literal.
func BoolLiteral(b bool) Literal { return Literal{kind: boolLiteral, b: b} }

// IsNone reports whether the literal carries no value.
func (l Literal) IsNone() bool { return l.kind == noLiteral }

// Text returns the text of a text literal.
func (l Literal) Text() (string, bool) { return l.text, l.kind == textLiteral }

// Int returns the value of an integer literal.
func (l Literal) Int() (int64, bool) { return l.num, l.kind == intLiteral }

// Bool returns the value of a boolean literal.
func (l Literal) Bool() (bool, bool) { return l.b, l.kind == boolLiteral }

// Equal reports whether two literals hold the same variant and value.
func (l Literal) Equal(other Literal) bool { return l == other }

func (l Literal) String() string {
	switch l.kind {
	case textLiteral:
		return l.text
	case intLiteral:
		return strconv.FormatInt(l.num, 10)
	case boolLiteral:
		return strconv.FormatBool(l.b)
	default:
		return ""
	}
}
