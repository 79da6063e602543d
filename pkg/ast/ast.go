// Package ast defines the syntax tree of Ember.
//
// Every node embeds the token it originates from, which also gives it a
// Range method. The String method of each node returns a canonical rendering
// that makes the structure of the tree explicit: operators are fully
// parenthesized, so that "a + b * c" renders as "(a + (b * c))".
package ast

import (
	"strings"

	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/token"
)

// Node is implemented by all statements and expressions.
type Node interface {
	diag.Ranger
	String() string
}

// Statement is a Node that can appear directly in a program or a block.
type Statement interface {
	Node
	stmt()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expr()
}

// Program is the root of a syntax tree.
type Program struct {
	Statements []Statement
}

// Range returns the range of the first statement, or UnknownRanging if the
// program is empty.
func (p *Program) Range() diag.Ranging {
	if len(p.Statements) == 0 {
		return diag.UnknownRanging
	}
	return p.Statements[0].Range()
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Let binds the value of an expression to a name: let Name = Value;
type Let struct {
	token.Token
	Name  *Primitive
	Value Expression
}

// Return exits the enclosing function (or program) with a value.
type Return struct {
	token.Token
	Value Expression
}

// ExpressionStatement wraps an expression used as a statement. Its token is
// the first token of the expression.
type ExpressionStatement struct {
	token.Token
	Expr Expression
}

// Block is a brace-delimited sequence of statements.
type Block struct {
	token.Token
	Statements []Statement
}

// ConditionBlock is a block guarded by a condition, as used by the branches of
// an if expression. The token is "if", "else if" or "else"; Condition is nil
// only for "else".
type ConditionBlock struct {
	token.Token
	Condition Expression
	Block     *Block
}

func (*Let) stmt()                 {}
func (*Return) stmt()              {}
func (*ExpressionStatement) stmt() {}
func (*Block) stmt()               {}
func (*ConditionBlock) stmt()      {}

func (s *Let) String() string {
	return s.Literal.String() + " " + s.Name.String() + " = " + str(s.Value) + ";"
}

func (s *Return) String() string {
	return s.Literal.String() + " " + str(s.Value) + ";"
}

func (s *ExpressionStatement) String() string { return str(s.Expr) }

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Statements {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

func (c *ConditionBlock) String() string {
	if c.Condition == nil {
		return c.Literal.String() + " " + c.Block.String()
	}
	return c.Literal.String() + str(c.Condition) + " " + c.Block.String()
}

// Primitive is an identifier, integer or boolean literal. Which one is
// decided by the kind of its token.
type Primitive struct {
	token.Token
}

// Prefix is a unary operator applied to an operand. The token is the
// operator.
type Prefix struct {
	token.Token
	Operand Expression
}

// Infix is a binary operator applied to two operands. The token is the
// operator.
type Infix struct {
	token.Token
	Left  Expression
	Right Expression
}

// If is a conditional expression with any number of "else if" branches and
// an optional "else" branch.
type If struct {
	token.Token
	If      *ConditionBlock
	ElseIfs []*ConditionBlock
	Else    *ConditionBlock
}

// Function is a function literal.
type Function struct {
	token.Token
	Params []*Primitive
	Body   *Block
}

// Call is a function application. The token is the opening parenthesis.
type Call struct {
	token.Token
	Callee Expression
	Args   []Expression
}

func (*Primitive) expr() {}
func (*Prefix) expr()    {}
func (*Infix) expr()     {}
func (*If) expr()        {}
func (*Function) expr()  {}
func (*Call) expr()      {}

func (e *Primitive) String() string { return e.Literal.String() }

func (e *Prefix) String() string {
	return "(" + e.Literal.String() + str(e.Operand) + ")"
}

func (e *Infix) String() string {
	return "(" + str(e.Left) + " " + e.Literal.String() + " " + str(e.Right) + ")"
}

func (e *If) String() string {
	parts := []string{e.If.String()}
	for _, b := range e.ElseIfs {
		parts = append(parts, b.String())
	}
	if e.Else != nil {
		parts = append(parts, e.Else.String())
	}
	return strings.Join(parts, " ")
}

func (e *Function) String() string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.String()
	}
	return e.Literal.String() + "(" + strings.Join(params, ", ") + ") " + e.Body.String()
}

func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return str(e.Callee) + "(" + strings.Join(args, ", ") + ")"
}

// ParamNames returns the names of the parameters of the function.
func (e *Function) ParamNames() []string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Literal.String()
	}
	return names
}

// str renders a possibly nil node.
func str(n Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}
