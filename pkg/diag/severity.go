package diag

import "fmt"

// Severity is the severity of a diagnostic message.
type Severity int

// Possible values for Severity, from the least to the most severe.
const (
	SevMessage Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{"message", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity parses the name of a severity, as returned by
// [Severity.String].
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler, so that a Severity can be
// used directly in configuration files.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}
