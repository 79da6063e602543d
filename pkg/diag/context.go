package diag

import (
	"fmt"
	"strings"
)

// Context is a range of text in a source code. It is typically used for
// errors that can be associated with a part of the source code, like parse
// errors and runtime diagnostics.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// Show shows a Context.
func (c *Context) Show(sourceIndent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Name + ", " + c.lineDesc() + "\n" + sourceIndent + c.relevantSource()
}

// ShowCompact shows a Context, with no line break between the source position
// description and the relevant source excerpt.
func (c *Context) ShowCompact(sourceIndent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Name + ", " + c.lineDesc() + " " + c.relevantSource()
}

// Position returns the 1-based "line:col" description used in plain error
// messages.
func (c *Context) Position() string {
	return fmt.Sprintf("%d:%d", c.Line+1, c.From+1)
}

func (c *Context) checkPosition() error {
	lines := strings.Split(c.Source, "\n")
	switch {
	case c.Line == -1:
		return fmt.Errorf("%s, unknown position", c.Name)
	case c.Line < 0 || c.Line >= len(lines):
		return fmt.Errorf("%s, invalid line %d", c.Name, c.Line)
	case c.From < 0 || c.From > c.To || c.From > len(lines[c.Line]):
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) lineDesc() string {
	return fmt.Sprintf("line %d:", c.Line+1)
}

func (c *Context) relevantSource() string {
	line := strings.Split(c.Source, "\n")[c.Line]
	line = strings.TrimSuffix(line, "\r")
	head := line[:c.From]
	culprit, tail := culpritPlaceHolder, ""
	if c.From < len(line) {
		to := c.To + 1
		if to > len(line) {
			to = len(line)
		}
		culprit, tail = line[c.From:to], line[to:]
	}
	return head + culpritStart + culprit + culpritEnd + tail
}
