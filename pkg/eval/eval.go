// Package eval implements the tree-walking evaluator of Ember.
package eval

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"src.ember.sh/pkg/ast"
	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/eval/vals"
	"src.ember.sh/pkg/logutil"
	"src.ember.sh/pkg/parse"
	"src.ember.sh/pkg/token"
)

var logger = logutil.GetLogger("[eval] ")

// Evaler evaluates syntax trees. It holds no state besides its configuration;
// state that persists between evaluations lives in the *vals.Env passed to
// each call.
type Evaler struct {
	// Destination of warnings and runtime errors. If nil, they are dropped.
	Sink diag.Sink
}

// NewEvaler creates a new Evaler that sends diagnostics to sink.
func NewEvaler(sink diag.Sink) *Evaler {
	return &Evaler{Sink: sink}
}

// EvalSource parses and evaluates src in env. If src has parse errors,
// nothing is evaluated, and the *parse.Error is returned. Runtime errors are
// reported through the returned value, which is then a *vals.Error.
func (ev *Evaler) EvalSource(src parse.Source, env *vals.Env) (vals.Value, error) {
	prog, err := parse.Parse(src, parse.Config{Sink: ev.Sink})
	if err != nil {
		return nil, err
	}
	logger.Printf("evaluating %d statements from %s", len(prog.Statements), src.Name)
	return ev.Eval(prog, env), nil
}

// Eval evaluates a node in env. A nil return value means that the node
// produced no value: this is the case for let statements, and for condition
// blocks whose condition is false.
func (ev *Evaler) Eval(node ast.Node, env *vals.Env) vals.Value {
	switch n := node.(type) {
	case *ast.Program:
		return ev.evalProgram(n, env)
	case *ast.ExpressionStatement:
		return ev.Eval(n.Expr, env)
	case *ast.Let:
		return ev.evalLet(n, env)
	case *ast.Return:
		v := ev.Eval(n.Value, env)
		if vals.IsError(v) {
			return v
		}
		return &vals.ReturnValue{Inner: v}
	case *ast.Block:
		return ev.evalBlock(n, env)
	case *ast.ConditionBlock:
		return ev.evalConditionBlock(n, env)
	case *ast.Primitive:
		return ev.evalPrimitive(n, env)
	case *ast.Prefix:
		operand := ev.Eval(n.Operand, env)
		if vals.IsError(operand) {
			return operand
		}
		return ev.evalPrefix(n.Kind, operand)
	case *ast.Infix:
		left := ev.Eval(n.Left, env)
		if vals.IsError(left) {
			return left
		}
		right := ev.Eval(n.Right, env)
		if vals.IsError(right) {
			return right
		}
		return ev.evalInfix(n.Literal.String(), left, right)
	case *ast.If:
		return ev.evalIf(n, env)
	case *ast.Function:
		return &vals.Function{Params: n.Params, Body: n.Body, Env: env}
	case *ast.Call:
		return ev.evalCall(n, env)
	}
	return nil
}

func (ev *Evaler) evalProgram(prog *ast.Program, env *vals.Env) vals.Value {
	var result vals.Value
	for _, stmt := range prog.Statements {
		result = ev.Eval(stmt, env)
		switch r := result.(type) {
		case *vals.ReturnValue:
			return r.Inner
		case *vals.Error:
			return r
		}
	}
	if result == nil {
		return vals.Null{}
	}
	return result
}

func (ev *Evaler) evalBlock(block *ast.Block, env *vals.Env) vals.Value {
	var result vals.Value
	for _, stmt := range block.Statements {
		result = ev.Eval(stmt, env)
		switch result.(type) {
		case *vals.ReturnValue, *vals.Error:
			return result
		}
	}
	if result == nil {
		return vals.Null{}
	}
	return result
}

func (ev *Evaler) evalLet(let *ast.Let, env *vals.Env) vals.Value {
	v := ev.Eval(let.Value, env)
	if vals.IsError(v) {
		return v
	}
	name := let.Name.Literal.String()
	if old, ok := env.Get(name); ok {
		diag.Logf(ev.Sink, diag.SevWarning,
			"Identifier: %s already exists in environment with value: %s", name, old.Inspect())
	}
	env.Set(name, v)
	return nil
}

// evalConditionBlock returns nil if the condition is false, so that the
// caller can move on to the next branch.
func (ev *Evaler) evalConditionBlock(b *ast.ConditionBlock, env *vals.Env) vals.Value {
	if b.Condition != nil {
		cond := ev.Eval(b.Condition, env)
		if vals.IsError(cond) {
			return cond
		}
		if !vals.IsTruthy(cond) {
			return nil
		}
	}
	return ev.Eval(b.Block, env)
}

func (ev *Evaler) evalIf(n *ast.If, env *vals.Env) vals.Value {
	if v := ev.evalConditionBlock(n.If, env); v != nil {
		return v
	}
	for _, b := range n.ElseIfs {
		if v := ev.evalConditionBlock(b, env); v != nil {
			return v
		}
	}
	if n.Else != nil {
		if v := ev.evalConditionBlock(n.Else, env); v != nil {
			return v
		}
	}
	return vals.Null{}
}

func (ev *Evaler) evalPrimitive(n *ast.Primitive, env *vals.Env) vals.Value {
	switch n.Kind {
	case token.Int:
		i, _ := n.Literal.Int()
		return vals.Integer(i)
	case token.True, token.False:
		b, _ := n.Literal.Bool()
		return vals.Bool(b)
	}
	name := n.Literal.String()
	if v, ok := env.Get(name); ok {
		return v
	}
	return ev.errorf("Identifier not found: %s", name)
}

func (ev *Evaler) evalCall(n *ast.Call, env *vals.Env) vals.Value {
	callee := ev.Eval(n.Callee, env)
	if vals.IsError(callee) {
		return callee
	}
	args := make([]vals.Value, len(n.Args))
	for i, argNode := range n.Args {
		arg := ev.Eval(argNode, env)
		if vals.IsError(arg) {
			return arg
		}
		args[i] = arg
	}
	return ev.apply(callee, args)
}

func (ev *Evaler) apply(callee vals.Value, args []vals.Value) vals.Value {
	fn, ok := callee.(*vals.Function)
	if !ok {
		return ev.errorf("Not a function: %s", typeOf(callee))
	}
	if len(args) != len(fn.Params) {
		return ev.errorf("Wrong number of arguments: want %d, got %d", len(fn.Params), len(args))
	}
	callEnv := vals.NewEnclosedEnv(fn.Env)
	for i, param := range fn.Params {
		callEnv.Set(param.Literal.String(), args[i])
	}
	return vals.Unwrap(ev.Eval(fn.Body, callEnv))
}

// errorf creates a runtime error, recording the location of its caller, and
// logs it.
func (ev *Evaler) errorf(format string, args ...any) *vals.Error {
	err := &vals.Error{Location: callerLocation(2), Message: fmt.Sprintf(format, args...)}
	diag.Logf(ev.Sink, diag.SevError, "%s: %s", err.Location, err.Message)
	return err
}

func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

// typeOf is like v.Type, but also works for nil.
func typeOf(v vals.Value) string {
	if v == nil {
		return vals.NullType
	}
	return v.Type()
}
