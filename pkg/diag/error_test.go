package diag

import (
	"testing"

	"src.ember.sh/pkg/testutil"
)

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	testutil.Set(t, &messageStart, "{")
	testutil.Set(t, &messageEnd, "}")

	err := &Error{
		Type:    "parse error",
		Message: "expected next token to be IDENTIFIER, got ASSIGN",
		Context: *NewContext("a.em", "let = 5;", PointRanging(0, 4)),
	}

	wantErr := "parse error: a.em:1:5: expected next token to be IDENTIFIER, got ASSIGN"
	if s := err.Error(); s != wantErr {
		t.Errorf("Error() -> %q, want %q", s, wantErr)
	}

	wantShow := "Parse error: {expected next token to be IDENTIFIER, got ASSIGN}\n" +
		"  a.em, line 1: let <=> 5;"
	if s := err.Show(""); s != wantShow {
		t.Errorf("Show() -> %q, want %q", s, wantShow)
	}

	if r := err.Range(); r != (Ranging{0, 4, 4}) {
		t.Errorf("Range() -> %v", r)
	}
}
