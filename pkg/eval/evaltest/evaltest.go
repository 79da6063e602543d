// Package evaltest provides a framework for testing Ember code.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("1 + 2").Evaluates(vals.Integer(3)),
//	    That("1 + true").Fails("Type mismatch: int + bool"))
package evaltest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/eval"
	"src.ember.sh/pkg/eval/vals"
	"src.ember.sh/pkg/parse"
	"src.ember.sh/pkg/tt"
)

// Case is a test case that can be used in Test.
type Case struct {
	codes []string
	setup func(env *vals.Env)
	want  result
}

type result struct {
	value        vals.Value
	errMsg       *string
	inspect      *string
	logs         []diag.Entry
	noLogs       bool
	doesNotParse bool
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines. To specify multiple pieces of code that are
// evaluated separately in the same environment, use the Then method.
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that evaluates the given code in addition, in the
// same environment. Expectations about the result apply to the last piece of
// code.
func (c Case) Then(lines ...string) Case {
	c.codes = append(c.codes, strings.Join(lines, "\n"))
	return c
}

// WithSetup returns a new Case with the given setup function run on the root
// environment before any code is evaluated.
func (c Case) WithSetup(f func(*vals.Env)) Case {
	c.setup = f
	return c
}

// Evaluates returns an altered Case that requires the code to evaluate to the
// given value.
func (c Case) Evaluates(v vals.Value) Case {
	c.want.value = v
	return c
}

// Fails returns an altered Case that requires the code to evaluate to a
// runtime error with the given message.
func (c Case) Fails(msg string) Case {
	c.want.errMsg = &msg
	return c
}

// Inspects returns an altered Case that requires the Inspect of the result to
// be s.
func (c Case) Inspects(s string) Case {
	c.want.inspect = &s
	return c
}

// Logs returns an altered Case that requires a diagnostic with the given
// severity and a text containing substr to be logged. It can be called
// multiple times.
func (c Case) Logs(sev diag.Severity, substr string) Case {
	c.want.logs = append(c.want.logs, diag.Entry{Severity: sev, Text: substr})
	return c
}

// LogsNothing returns an altered Case that requires no diagnostics to be
// logged.
func (c Case) LogsNothing() Case {
	c.want.noLogs = true
	return c
}

// DoesNotParse returns an altered Case that requires the last piece of code
// to have parse errors.
func (c Case) DoesNotParse() Case {
	c.want.doesNotParse = true
	return c
}

// Test runs test cases. Each test case is evaluated with a new Evaler and a
// new root environment.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			var sink diag.Collector
			ev := eval.NewEvaler(&sink)
			env := vals.NewEnv()
			if tc.setup != nil {
				tc.setup(env)
			}

			var v vals.Value
			var parseErr error
			for _, code := range tc.codes {
				v, parseErr = ev.EvalSource(parse.SourceForTest(code), env)
			}

			if tc.want.doesNotParse {
				if parseErr == nil {
					t.Errorf("got no parse error, want one")
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("parse error: %v", parseErr)
			}

			if tc.want.value != nil {
				if !cmp.Equal(tc.want.value, v, tt.CommonCmpOpt) {
					t.Errorf("got value %s, want %s", show(v), show(tc.want.value))
				}
			}
			if tc.want.errMsg != nil {
				if err, ok := v.(*vals.Error); !ok {
					t.Errorf("got value %s, want error %q", show(v), *tc.want.errMsg)
				} else if err.Message != *tc.want.errMsg {
					t.Errorf("got error %q, want %q", err.Message, *tc.want.errMsg)
				}
			} else if err, ok := v.(*vals.Error); ok && tc.want.value == nil && tc.want.inspect == nil {
				t.Errorf("got unexpected error %q", err.Message)
			}
			if tc.want.inspect != nil && (v == nil || v.Inspect() != *tc.want.inspect) {
				t.Errorf("got %s, want inspect %q", show(v), *tc.want.inspect)
			}
			entries := sink.Entries()
			for _, want := range tc.want.logs {
				if !hasLog(entries, want) {
					t.Errorf("want %s containing %q logged, got:\n%s", want.Severity, want.Text, sink.String())
				}
			}
			if tc.want.noLogs && len(entries) > 0 {
				t.Errorf("want nothing logged, got:\n%s", sink.String())
			}
		})
	}
}

func hasLog(entries []diag.Entry, want diag.Entry) bool {
	for _, e := range entries {
		if e.Severity == want.Severity && strings.Contains(e.Text, want.Text) {
			return true
		}
	}
	return false
}

func show(v vals.Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.Type() + " " + v.Inspect()
}
