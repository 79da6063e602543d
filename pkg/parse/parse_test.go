package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.ember.sh/pkg/ast"
	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/token"
	. "src.ember.sh/pkg/tt"
)

// render parses code and returns the rendering of the program, with
// statements separated by "|" for readability, and the parse error messages.
func render(code string) (string, []string) {
	prog, err := Parse(SourceForTest(code), Config{})
	stmts := make([]string, len(prog.Statements))
	for i, s := range prog.Statements {
		stmts[i] = s.String()
	}
	var msgs []string
	for _, e := range UnpackErrors(err) {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(stmts, "|"), msgs
}

var noErrors []string

func TestParse_Precedence(t *testing.T) {
	Test(t, Fn("render", render), Table{
		Args("-a * b").Rets("((-a) * b)", noErrors),
		Args("!-a").Rets("(!(-a))", noErrors),
		Args("a + b + c").Rets("((a + b) + c)", noErrors),
		Args("a + b - c").Rets("((a + b) - c)", noErrors),
		Args("a * b * c").Rets("((a * b) * c)", noErrors),
		Args("a * b / c").Rets("((a * b) / c)", noErrors),
		Args("a + b / c").Rets("(a + (b / c))", noErrors),
		Args("a + b * c").Rets("(a + (b * c))", noErrors),
		Args("a + b * c + d / e - f").Rets("(((a + (b * c)) + (d / e)) - f)", noErrors),
		Args("3 + 4; -5 * 5").Rets("(3 + 4)|((-5) * 5)", noErrors),
		Args("5 > 4 == 3 < 4").Rets("((5 > 4) == (3 < 4))", noErrors),
		Args("5 < 4 != 3 > 4").Rets("((5 < 4) != (3 > 4))", noErrors),
		Args("3 + 4 * 5 == 3 * 1 + 4 * 5").
			Rets("((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))", noErrors),
		Args("true").Rets("true", noErrors),
		Args("3 > 5 == false").Rets("((3 > 5) == false)", noErrors),
		Args("1 + (2 + 3) + 4").Rets("((1 + (2 + 3)) + 4)", noErrors),
		Args("(5 + 5) * 2").Rets("((5 + 5) * 2)", noErrors),
		Args("-(5 + 5)").Rets("(-(5 + 5))", noErrors),
		Args("!(true == true)").Rets("(!(true == true))", noErrors),
		Args("a + add(b * c) + d").Rets("((a + add((b * c))) + d)", noErrors),
		Args("add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))").
			Rets("add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))", noErrors),
		Args("add(a + b + c * d / f + g)").
			Rets("add((((a + b) + ((c * d) / f)) + g))", noErrors),
	})
}

func TestParse_Statements(t *testing.T) {
	Test(t, Fn("render", render), Table{
		Args("let x = 5;").Rets("let x = 5;", noErrors),
		Args("let y = true").Rets("let y = true;", noErrors),
		Args("let foobar = y;").Rets("let foobar = y;", noErrors),
		Args("return 5;").Rets("return 5;", noErrors),
		Args("return x + y").Rets("return (x + y);", noErrors),
		Args("let x = 1;\nlet y = 2;\nx").Rets("let x = 1;|let y = 2;|x", noErrors),
		Args("").Rets("", noErrors),
	})
}

func TestParse_If(t *testing.T) {
	Test(t, Fn("render", render), Table{
		Args("if (x < y) { x }").Rets("if(x < y) { x }", noErrors),
		Args("if (x < y) { x } else { y }").Rets("if(x < y) { x } else { y }", noErrors),
		Args("if (x < y) { x } else if (x > y) { y } else if (z) { z; 1 } else { 0 }").
			Rets("if(x < y) { x } else if(x > y) { y } else ifz { z 1 } else { 0 }", noErrors),
		Args("if (a) { }").Rets("ifa { }", noErrors),
		Args("let r = if (x) { 1 } else { 2 };").Rets("let r = ifx { 1 } else { 2 };", noErrors),
	})
}

func TestParse_Functions(t *testing.T) {
	Test(t, Fn("render", render), Table{
		Args("fn(x, y) { x + y; }").Rets("fn(x, y) { (x + y) }", noErrors),
		Args("fn() {}").Rets("fn() { }", noErrors),
		Args("fn(x) {}").Rets("fn(x) { }", noErrors),
		Args("fn(x, y, z) {}").Rets("fn(x, y, z) { }", noErrors),
		Args("let add = fn(a, b) { return a + b; };").
			Rets("let add = fn(a, b) { return (a + b); };", noErrors),
		Args("add()").Rets("add()", noErrors),
		Args("fn(x) { x }(5)").Rets("fn(x) { x }(5)", noErrors),
		Args("f(1)(2)").Rets("f(1)(2)", noErrors),
	})
}

func TestParse_Errors(t *testing.T) {
	Test(t, Fn("render", render), Table{
		Args("let = 5;").Rets("", []string{
			"expected next token to be IDENTIFIER, got ASSIGN instead"}),
		Args("let x 5;").Rets("", []string{
			"expected next token to be ASSIGN, got INT instead"}),
		Args("let x = ;").Rets("", []string{
			"no prefix parse function for SEMICOLON found"}),
		Args("1 + @").Rets("", []string{
			"no prefix parse function for ILLEGAL found"}),
		Args("(1 + 2").Rets("", []string{
			"expected next token to be RPAREN, got EOF instead"}),
		Args("fn(x,) {}").Rets("", []string{
			"expected next token to be IDENTIFIER, got RPAREN instead"}),
		Args("if x { 1 }").Rets("", []string{
			"expected next token to be LPAREN, got IDENTIFIER instead"}),
		Args("if (x) { 1 } else 2").Rets("", []string{
			"expected next token to be LBRACE, got INT instead"}),
		Args("add(1, 2").Rets("", []string{
			"expected next token to be RPAREN, got EOF instead"}),
	})
}

func TestParse_Recovery(t *testing.T) {
	Test(t, Fn("render", render), Table{
		// The broken statement is dropped; its neighbors survive.
		Args("let x = 1;\nlet = 2;\nlet z = 3;").Rets("let x = 1;|let z = 3;", []string{
			"expected next token to be IDENTIFIER, got ASSIGN instead"}),
		Args("let x = 1; let = 2; let z = 3;").Rets("let x = 1;|let z = 3;", []string{
			"expected next token to be IDENTIFIER, got ASSIGN instead"}),
		// Without a semicolon, skipping stops at the end of the line.
		Args("let x 5\nlet y = 1;").Rets("let y = 1;", []string{
			"expected next token to be ASSIGN, got INT instead"}),
		// Each broken statement produces its own error.
		Args("let = 1;\nlet 2;\n3").Rets("3", []string{
			"expected next token to be IDENTIFIER, got ASSIGN instead",
			"expected next token to be IDENTIFIER, got INT instead"}),
		// An error inside a block drops the enclosing statement; the rest of
		// the block is skipped without further errors.
		Args("let f = fn() {\n  let = 1;\n  2\n};\nf()").Rets("f()", []string{
			"expected next token to be IDENTIFIER, got ASSIGN instead"}),
		Args("if (x) { 1 + }\ny").Rets("y", []string{
			"no prefix parse function for RBRACE found"}),
		Args("let f = fn() { let g = fn() { 1 + }; 2 };\n3").Rets("3", []string{
			"no prefix parse function for RBRACE found"}),
		// A block that the broken statement never got to parse is skipped
		// up to its closing brace, even across lines.
		Args("let a = 1;\nlet f = fn(x {\n  x\n};\nlet c = 3;").Rets("let a = 1;|let c = 3;", []string{
			"expected next token to be RPAREN, got LBRACE instead"}),
		Args("if x {\n  if (y) { 1 }\n  2\n}\n3").Rets("3", []string{
			"expected next token to be LPAREN, got IDENTIFIER instead"}),
		Args("{\n  1\n}\n2").Rets("2", []string{
			"no prefix parse function for LBRACE found"}),
		Args("let f = fn(x {\n  x").Rets("", []string{
			"expected next token to be RPAREN, got LBRACE instead"}),
	})
}

func TestParse_ErrorPositions(t *testing.T) {
	_, err := Parse(Source{Name: "a.em", Code: "let x = 1;\nlet = 2;"}, Config{})
	entries := UnpackErrors(err)
	if len(entries) != 1 {
		t.Fatalf("got %d errors, want 1", len(entries))
	}
	e := entries[0]
	if e.Type != "parse error" {
		t.Errorf("Type = %q", e.Type)
	}
	if want := (diag.Ranging{Line: 1, From: 4, To: 4}); e.Range() != want {
		t.Errorf("Range() = %v, want %v", e.Range(), want)
	}
	want := "parse error: a.em:2:5: expected next token to be IDENTIFIER, got ASSIGN instead"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParse_ReturnsNilErrorOnSuccess(t *testing.T) {
	_, err := Parse(SourceForTest("1 + 2"), Config{})
	if err != nil {
		t.Errorf("got error %v", err)
	}
}

func TestParse_ForwardsTokenizerWarnings(t *testing.T) {
	var sink diag.Collector
	prog, err := Parse(SourceForTest("99999999999999999999"), Config{Sink: &sink})
	if err != nil {
		t.Fatal(err)
	}
	if got := prog.String(); got != "0" {
		t.Errorf("got %q, want %q", got, "0")
	}
	if len(sink.Filter(diag.SevWarning)) != 1 {
		t.Errorf("want one warning, got %v", sink.Entries())
	}
}

func TestParse_LogsErrorsToSink(t *testing.T) {
	var sink diag.Collector
	_, err := Parse(Source{Name: "a.em", Code: "let = 1;\nlet x 2;"}, Config{Sink: &sink})
	if len(UnpackErrors(err)) != 2 {
		t.Fatalf("want two parse errors, got %v", err)
	}
	want := []string{
		"a.em:1:5: expected next token to be IDENTIFIER, got ASSIGN instead",
		"a.em:2:7: expected next token to be ASSIGN, got INT instead",
	}
	if diff := cmp.Diff(want, sink.Filter(diag.SevError)); diff != "" {
		t.Errorf("errors logged (-want +got):\n%s", diff)
	}
}

func TestParse_NodeTypes(t *testing.T) {
	prog, _ := Parse(SourceForTest("let f = fn(a) { a(1) }; if (f) { 1 } else if (2) { 2 } else { 3 }"), Config{})
	let := prog.Statements[0].(*ast.Let)
	fn := let.Value.(*ast.Function)
	if diff := cmp.Diff([]string{"a"}, fn.ParamNames()); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
	call := fn.Body.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.Call)
	if call.Kind != token.LParen || len(call.Args) != 1 {
		t.Errorf("unexpected call %v", call)
	}
	ifExpr := prog.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.If)
	if len(ifExpr.ElseIfs) != 1 || ifExpr.Else == nil || ifExpr.Else.Condition != nil {
		t.Errorf("unexpected if %v", ifExpr)
	}
	if ifExpr.ElseIfs[0].Kind != token.ElseIf {
		t.Errorf("else-if branch has kind %v", ifExpr.ElseIfs[0].Kind)
	}
}

func TestError_Show(t *testing.T) {
	_, err := Parse(Source{Name: "a.em", Code: "let = 1;\nlet 2;"}, Config{})
	show := err.(*Error).Show("")
	for _, want := range []string{
		"Multiple parse errors in a.em:",
		"expected next token to be IDENTIFIER, got ASSIGN instead",
		"a.em, line 2:",
	} {
		if !strings.Contains(show, want) {
			t.Errorf("Show() = %q, does not contain %q", show, want)
		}
	}
	if msg := err.Error(); !strings.HasPrefix(msg, "multiple parse errors in a.em: 1:5: ") {
		t.Errorf("Error() = %q", msg)
	}
}
