package vals

import (
	"testing"

	"src.ember.sh/pkg/ast"
	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/token"
	. "src.ember.sh/pkg/tt"
)

func ident(name string) *ast.Primitive {
	return &ast.Primitive{Token: token.New(token.Ident, name, diag.Ranging{})}
}

var add = &Function{
	Params: []*ast.Primitive{ident("a"), ident("b")},
	Body: &ast.Block{Statements: []ast.Statement{
		&ast.ExpressionStatement{Expr: &ast.Infix{
			Token: token.New(token.Plus, "+", diag.Ranging{}),
			Left:  ident("a"), Right: ident("b")}},
	}},
	Env: NewEnv(),
}

func TestType(t *testing.T) {
	Test(t, Fn("Type", Value.Type), Table{
		Args(Integer(1)).Rets("int"),
		Args(True).Rets("bool"),
		Args(Null{}).Rets("NULL"),
		Args(&ReturnValue{Integer(1)}).Rets("RETURN_VALUE"),
		Args(&Error{"eval.go:1", "oops"}).Rets("ERROR_VALUE"),
		Args(add).Rets("FUNCTION"),
	})
}

func TestInspect(t *testing.T) {
	Test(t, Fn("Inspect", Value.Inspect), Table{
		Args(Integer(-42)).Rets("-42"),
		Args(True).Rets("true"),
		Args(False).Rets("false"),
		Args(Null{}).Rets("null"),
		Args(&ReturnValue{Integer(7)}).Rets("7"),
		Args(&Error{"eval.go:1", "Identifier not found: x"}).Rets("Identifier not found: x"),
		Args(add).Rets("fn(a, b) { (a + b) }"),
		Args(&Function{Body: &ast.Block{}}).Rets("fn() { }"),
	})
}

func TestIsTruthy(t *testing.T) {
	Test(t, Fn("IsTruthy", IsTruthy), Table{
		Args(True).Rets(true),
		Args(False).Rets(false),
		Args(Null{}).Rets(false),
		Args(Integer(1)).Rets(true),
		Args(Integer(0)).Rets(false),
		Args(Integer(-1)).Rets(false),
		Args(add).Rets(true),
	})
	if IsTruthy(nil) {
		t.Errorf("IsTruthy(nil) -> true")
	}
}

func TestIsError(t *testing.T) {
	Test(t, Fn("IsError", IsError), Table{
		Args(&Error{}).Rets(true),
		Args(Integer(0)).Rets(false),
	})
}

func TestUnwrap(t *testing.T) {
	Test(t, Fn("Unwrap", Unwrap), Table{
		Args(&ReturnValue{Integer(3)}).Rets(Integer(3)),
		Args(Integer(3)).Rets(Integer(3)),
	})
}

func TestBooleansAreIdentical(t *testing.T) {
	if Bool(1 < 2) != True || Bool(1 > 2) != False {
		t.Errorf("Bool does not yield the canonical values")
	}
	var a, b Value = Null{}, Null{}
	if a != b {
		t.Errorf("Null values are not identical")
	}
}
