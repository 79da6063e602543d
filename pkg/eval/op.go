package eval

import (
	"src.ember.sh/pkg/eval/vals"
	"src.ember.sh/pkg/token"
)

func (ev *Evaler) evalPrefix(op token.Kind, operand vals.Value) vals.Value {
	switch op {
	case token.Bang:
		return vals.Bool(!vals.IsTruthy(operand))
	case token.Minus:
		i, ok := operand.(vals.Integer)
		if !ok {
			return ev.errorf("No prefix - evaluator for: %s", typeOf(operand))
		}
		// Two's complement negation; the minimum integer negates to itself.
		return ^i + 1
	}
	return ev.errorf("Unknown prefix operator: %s", op)
}

func (ev *Evaler) evalInfix(op string, left, right vals.Value) vals.Value {
	if typeOf(left) != typeOf(right) {
		return ev.errorf("Type mismatch: %s %s %s", typeOf(left), op, typeOf(right))
	}
	switch l := left.(type) {
	case vals.Integer:
		return ev.evalIntegerInfix(op, l, right.(vals.Integer))
	case vals.Boolean, vals.Null, nil:
		switch op {
		case "==":
			return vals.Bool(left == right)
		case "!=":
			return vals.Bool(left != right)
		}
	}
	return ev.errorf("%s doesn't support : %s", typeOf(left), op)
}

func (ev *Evaler) evalIntegerInfix(op string, l, r vals.Integer) vals.Value {
	switch op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		if r == 0 {
			return ev.errorf("Division by zero")
		}
		return l / r
	case "<":
		return vals.Bool(l < r)
	case ">":
		return vals.Bool(l > r)
	case "==":
		return vals.Bool(l == r)
	case "!=":
		return vals.Bool(l != r)
	}
	return ev.errorf("%s doesn't support : %s", vals.IntegerType, op)
}
