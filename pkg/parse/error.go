package parse

import (
	"fmt"
	"strings"

	"src.ember.sh/pkg/diag"
)

const errorType = "parse error"

// Error stores multiple underlying parse errors, and can pretty print them.
type Error struct {
	Entries []*diag.Error
}

var _ diag.Shower = &Error{}

func (e *Error) add(msg string, ctx *diag.Context) {
	err := &diag.Error{Type: errorType, Message: msg, Context: *ctx}
	e.Entries = append(e.Entries, err)
}

// Error returns a string representation of the error.
func (e *Error) Error() string {
	switch len(e.Entries) {
	case 0:
		return "no parse error"
	case 1:
		return e.Entries[0].Error()
	default:
		sb := new(strings.Builder)
		fmt.Fprintf(sb, "multiple parse errors in %s: ", e.Entries[0].Context.Name)
		for i, e := range e.Entries {
			if i > 0 {
				fmt.Fprint(sb, "; ")
			}
			fmt.Fprintf(sb, "%s: %s", e.Context.Position(), e.Message)
		}
		return sb.String()
	}
}

// Show shows the error.
func (e *Error) Show(indent string) string {
	switch len(e.Entries) {
	case 0:
		return "no parse error"
	case 1:
		return e.Entries[0].Show(indent)
	default:
		sb := new(strings.Builder)
		fmt.Fprintf(sb, "Multiple parse errors in %s:", e.Entries[0].Context.Name)
		for _, e := range e.Entries {
			sb.WriteString("\n" + indent + "  ")
			diag.Complain(sb, e.Message)
			sb.WriteString(indent + "    ")
			sb.WriteString(e.Context.ShowCompact(indent + "      "))
		}
		return sb.String()
	}
}

// UnpackErrors returns the constituent parse errors if err is a *Error.
// Otherwise it returns nil.
func UnpackErrors(err error) []*diag.Error {
	if perr, ok := err.(*Error); ok {
		return perr.Entries
	}
	return nil
}
