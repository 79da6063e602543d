package diag

import (
	"fmt"
	"strings"
)

// Error represents an error with context that can be showed.
type Error struct {
	Type    string
	Message string
	Context Context
}

// Variables controlling the style of the message in Show.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s:%s: %s",
		e.Type, e.Context.Name, e.Context.Position(), e.Message)
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error.
func (e *Error) Show(indent string) string {
	header := fmt.Sprintf("%s: %s%s%s\n",
		title(e.Type), messageStart, e.Message, messageEnd)
	return header + indent + "  " + e.Context.ShowCompact(indent+"  ")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
