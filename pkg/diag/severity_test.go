package diag

import (
	"testing"

	. "src.ember.sh/pkg/tt"
)

func TestSeverity_String(t *testing.T) {
	Test(t, Fn("String", Severity.String), Table{
		Args(SevMessage).Rets("message"),
		Args(SevWarning).Rets("warning"),
		Args(SevError).Rets("error"),
		Args(Severity(7)).Rets("severity(7)"),
	})
}

func TestParseSeverity(t *testing.T) {
	Test(t, Fn("ParseSeverity", ParseSeverity), Table{
		Args("warning").Rets(SevWarning, nil),
		Args("error").Rets(SevError, nil),
		Args("fatal").Rets(Severity(0), Any),
	})
}

func TestSeverity_UnmarshalText(t *testing.T) {
	var s Severity
	if err := s.UnmarshalText([]byte("error")); err != nil || s != SevError {
		t.Errorf("UnmarshalText(error) -> %v, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("loud")); err == nil {
		t.Errorf("UnmarshalText(loud) -> nil error")
	}
}
