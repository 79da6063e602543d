package eval

import (
	"regexp"
	"testing"

	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/eval/vals"
	"src.ember.sh/pkg/parse"
)

var locationPattern = regexp.MustCompile(`^\w+\.go:\d+$`)

func TestErrorLocation(t *testing.T) {
	ev := NewEvaler(nil)
	v, err := ev.EvalSource(parse.SourceForTest("1 + true"), vals.NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	e, ok := v.(*vals.Error)
	if !ok {
		t.Fatalf("got %v, want error", v)
	}
	if !locationPattern.MatchString(e.Location) {
		t.Errorf("Location = %q, does not look like file:line", e.Location)
	}
	if e.Inspect() != "Type mismatch: int + bool" {
		t.Errorf("Inspect() = %q", e.Inspect())
	}
}

func TestEvalSource_ParseErrorEvaluatesNothing(t *testing.T) {
	env := vals.NewEnv()
	var sink diag.Collector
	v, err := NewEvaler(&sink).EvalSource(parse.SourceForTest("let x = 1;\nlet = 2;"), env)
	if err == nil || v != nil {
		t.Errorf("got %v, %v; want nil value and parse error", v, err)
	}
	if _, ok := env.Get("x"); ok {
		t.Errorf("x bound despite parse error")
	}
}

func TestEval_NilForNoValue(t *testing.T) {
	ev := NewEvaler(nil)
	if v := ev.Eval(nil, vals.NewEnv()); v != nil {
		t.Errorf("Eval(nil) = %v", v)
	}
}

func TestFunctionLiteralIsShared(t *testing.T) {
	ev := NewEvaler(nil)
	env := vals.NewEnv()
	prog, _ := parse.Parse(parse.SourceForTest("fn(x) { x }"), parse.Config{})
	f1 := ev.Eval(prog, env).(*vals.Function)
	f2 := ev.Eval(prog, env).(*vals.Function)
	if f1 == f2 {
		t.Fatalf("each evaluation should create a new closure")
	}
	if f1.Body != f2.Body || len(f1.Params) != 1 || &f1.Params[0] != &f2.Params[0] {
		t.Errorf("closures do not share the syntax tree")
	}
	if prog.String() != "fn(x) { x }" {
		t.Errorf("syntax tree changed to %q", prog.String())
	}
}
