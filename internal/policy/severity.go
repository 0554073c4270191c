package policy

import "fmt"

// Severity ranks how strictly a rule is enforced.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// SeverityOrder lists severities strictest first. Rendered sections
// follow this order regardless of how rules appear in the charter.
var SeverityOrder = []Severity{SeverityCritical, SeverityWarning, SeverityInfo}

// Rank returns the position of s in SeverityOrder, or -1 if s is not
// a known severity.
func (s Severity) Rank() int {
	for i, sev := range SeverityOrder {
		if s == sev {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the three known severities.
func (s Severity) Valid() bool {
	return s.Rank() >= 0
}

// ParseSeverity converts raw text into a Severity.
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown severity %q (want critical, warning, or info)", raw)
	}
	return s, nil
}
