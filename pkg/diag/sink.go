package diag

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// Sink accepts diagnostic messages emitted by the tokenizer, the parser and the
// evaluator. Implementations decide whether to print, persist or drop them.
type Sink interface {
	Log(sev Severity, text string)
}

// Logf formats its arguments and sends the result to the sink. A nil sink is
// allowed and drops the message.
func Logf(s Sink, sev Severity, format string, args ...any) {
	if s == nil {
		return
	}
	s.Log(sev, fmt.Sprintf(format, args...))
}

// Discard is a Sink that drops all messages.
var Discard Sink = discard{}

type discard struct{}

func (discard) Log(Severity, string) {}

// LoggerSink writes messages at or above Min to a *log.Logger, prefixed with
// the severity.
type LoggerSink struct {
	Logger *log.Logger
	Min    Severity
}

// NewLoggerSink returns a LoggerSink with the given logger and threshold.
func NewLoggerSink(l *log.Logger, min Severity) *LoggerSink {
	return &LoggerSink{l, min}
}

func (s *LoggerSink) Log(sev Severity, text string) {
	if sev < s.Min {
		return
	}
	s.Logger.Printf("[%s] %s", sev, text)
}

// Entry is a message recorded by a Collector.
type Entry struct {
	Severity Severity
	Text     string
}

func (e Entry) String() string { return e.Severity.String() + ": " + e.Text }

// Collector is a Sink that records all messages in memory.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *Collector) Log(sev Severity, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{sev, text})
}

// Entries returns a copy of all the recorded entries.
func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.entries...)
}

// Filter returns the texts of the recorded entries with the given severity.
func (c *Collector) Filter(sev Severity) []string {
	var texts []string
	for _, e := range c.Entries() {
		if e.Severity == sev {
			texts = append(texts, e.Text)
		}
	}
	return texts
}

// Reset drops all recorded entries.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

func (c *Collector) String() string {
	var sb strings.Builder
	for _, e := range c.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Tee returns a Sink that sends every message to all the given sinks. Nil
// sinks are skipped.
func Tee(sinks ...Sink) Sink {
	var nonNil tee
	for _, s := range sinks {
		if s != nil {
			nonNil = append(nonNil, s)
		}
	}
	return nonNil
}

type tee []Sink

func (t tee) Log(sev Severity, text string) {
	for _, s := range t {
		s.Log(sev, text)
	}
}
