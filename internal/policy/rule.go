package policy

import (
	"fmt"
	"regexp"
)

// Rule ids look like "QUAL-001": a short uppercase prefix and a
// three-digit number.
var ruleIDPattern = regexp.MustCompile(`^[A-Z]{2,6}-\d{3}$`)

// Rule is a single policy statement. ID is the override key across
// scopes; everything else is the definition.
type Rule struct {
	ID               string   `yaml:"id"`
	Rule             string   `yaml:"rule"`
	Severity         Severity `yaml:"severity"`
	Tags             []string `yaml:"tags,omitempty"`
	Rationale        string   `yaml:"rationale,omitempty"`
	Detector         string   `yaml:"detector,omitempty"`
	AutoFix          bool     `yaml:"auto_fix,omitempty"`
	ExampleViolation string   `yaml:"example_violation,omitempty"`
	ExampleFix       string   `yaml:"example_fix,omitempty"`
}

// HasTag reports whether the rule carries the given tag.
func (r Rule) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate checks the structural constraints a single rule must meet.
func (r Rule) Validate() error {
	if !ruleIDPattern.MatchString(r.ID) {
		return fmt.Errorf("rule id %q does not match PREFIX-NNN (e.g. QUAL-001)", r.ID)
	}
	if r.Rule == "" {
		return fmt.Errorf("rule %s has empty rule text", r.ID)
	}
	if !r.Severity.Valid() {
		return fmt.Errorf("rule %s has unknown severity %q", r.ID, r.Severity)
	}
	return nil
}
