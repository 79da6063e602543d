package diag

import (
	"testing"

	"src.ember.sh/pkg/testutil"
	. "src.ember.sh/pkg/tt"
)

func setCulpritMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &culpritStart, start)
	testutil.Set(t, &culpritEnd, end)
}

var contextTests = []struct {
	name        string
	context     *Context
	indent      string
	wantShow    string
	wantCompact string
}{
	{
		name:        "culprit in the middle of the line",
		context:     NewContext("a.em", "let x = 5 + true;", Ranging{0, 8, 15}),
		indent:      "  ",
		wantShow:    "a.em, line 1:\n  let x = <5 + true>;",
		wantCompact: "a.em, line 1: let x = <5 + true>;",
	},
	{
		name:        "culprit on second line",
		context:     NewContext("a.em", "1;\nlet = 2;", PointRanging(1, 4)),
		indent:      "",
		wantShow:    "a.em, line 2:\nlet <=> 2;",
		wantCompact: "a.em, line 2: let <=> 2;",
	},
	{
		name:        "culprit at end of line",
		context:     NewContext("a.em", "let x", PointRanging(0, 5)),
		indent:      "",
		wantShow:    "a.em, line 1:\nlet x<^>",
		wantCompact: "a.em, line 1: let x<^>",
	},
	{
		name:        "culprit range exceeding line is clamped",
		context:     NewContext("a.em", "fn(", Ranging{0, 2, 10}),
		indent:      "",
		wantShow:    "a.em, line 1:\nfn<(>",
		wantCompact: "a.em, line 1: fn<(>",
	},
	{
		name:        "unknown position",
		context:     NewContext("a.em", "x", UnknownRanging),
		wantShow:    "a.em, unknown position",
		wantCompact: "a.em, unknown position",
	},
	{
		name:        "invalid line",
		context:     NewContext("a.em", "x", PointRanging(3, 0)),
		wantShow:    "a.em, invalid line 3",
		wantCompact: "a.em, invalid line 3",
	},
	{
		name:        "invalid position",
		context:     NewContext("a.em", "x", Ranging{0, 5, 2}),
		wantShow:    "a.em, invalid position 5-2",
		wantCompact: "a.em, invalid position 5-2",
	},
}

func TestContext(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	for _, test := range contextTests {
		t.Run(test.name, func(t *testing.T) {
			if show := test.context.Show(test.indent); show != test.wantShow {
				t.Errorf("Show() -> %q, want %q", show, test.wantShow)
			}
			if show := test.context.ShowCompact(test.indent); show != test.wantCompact {
				t.Errorf("ShowCompact() -> %q, want %q", show, test.wantCompact)
			}
		})
	}
}

func TestContext_Position(t *testing.T) {
	Test(t, Fn("Position", (*Context).Position), Table{
		Args(NewContext("a.em", "x\ny", PointRanging(0, 0))).Rets("1:1"),
		Args(NewContext("a.em", "x\n  y", Ranging{1, 2, 2})).Rets("2:3"),
	})
}
