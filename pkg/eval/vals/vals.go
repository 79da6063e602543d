// Package vals contains the runtime values of Ember and the environment that
// binds names to them.
package vals

import (
	"strconv"
	"strings"

	"src.ember.sh/pkg/ast"
)

// Value is a runtime value. The set of implementations is closed: Integer,
// Boolean, Null, *ReturnValue, *Error and *Function.
type Value interface {
	// Type returns the name of the type of the value, as used in error
	// messages.
	Type() string
	// Inspect returns a human-readable representation of the value.
	Inspect() string
	value()
}

// Names of types.
const (
	IntegerType     = "int"
	BooleanType     = "bool"
	NullType        = "NULL"
	ReturnValueType = "RETURN_VALUE"
	ErrorType       = "ERROR_VALUE"
	FunctionType    = "FUNCTION"
)

// Integer is a signed 64-bit integer.
type Integer int64

// Boolean is a boolean. Since it is a value type, every true is identical to
// True and every false is identical to False.
type Boolean bool

// The two Boolean values.
const (
	True  Boolean = true
	False Boolean = false
)

// Null is the type of the absent value. All Null values are identical.
type Null struct{}

// ReturnValue wraps the value of a return statement while it propagates out
// of blocks. It never escapes a function call or a program.
type ReturnValue struct {
	Inner Value
}

// Error is a runtime error. Location identifies where in the evaluator the
// error was raised.
type Error struct {
	Location string
	Message  string
}

// Function is a closure. Params and Body are shared with the function literal
// that created it, and are never modified.
type Function struct {
	Params []*ast.Primitive
	Body   *ast.Block
	Env    *Env
}

func (Integer) value()      {}
func (Boolean) value()      {}
func (Null) value()         {}
func (*ReturnValue) value() {}
func (*Error) value()       {}
func (*Function) value()    {}

func (Integer) Type() string      { return IntegerType }
func (Boolean) Type() string      { return BooleanType }
func (Null) Type() string         { return NullType }
func (*ReturnValue) Type() string { return ReturnValueType }
func (*Error) Type() string       { return ErrorType }
func (*Function) Type() string    { return FunctionType }

func (i Integer) Inspect() string { return strconv.FormatInt(int64(i), 10) }

func (b Boolean) Inspect() string { return strconv.FormatBool(bool(b)) }

func (Null) Inspect() string { return "null" }

func (r *ReturnValue) Inspect() string { return r.Inner.Inspect() }

func (e *Error) Inspect() string { return e.Message }

func (f *Function) Inspect() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return "fn(" + strings.Join(params, ", ") + ") " + f.Body.String()
}

// Bool converts a Go bool to a Boolean.
func Bool(b bool) Boolean { return Boolean(b) }

// IsError reports whether v is an *Error.
func IsError(v Value) bool {
	_, ok := v.(*Error)
	return ok
}

// IsTruthy reports whether v counts as true in a condition. Null, false and
// integers that are not positive are falsy; everything else is truthy.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case nil, Null:
		return false
	case Boolean:
		return bool(v)
	case Integer:
		return v > 0
	default:
		return true
	}
}

// Unwrap returns the inner value if v is a *ReturnValue, and v otherwise.
func Unwrap(v Value) Value {
	if r, ok := v.(*ReturnValue); ok {
		return r.Inner
	}
	return v
}
