package imprint

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"egokit/internal/policy"
)

// Confidence grades how often a pattern recurred.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"   // 5+ occurrences
	ConfidenceMedium Confidence = "medium" // 3-4
	ConfidenceLow    Confidence = "low"    // 2
)

// Suggestion is a draft rule in the charter's own schema, ready to
// paste into a scope after review.
type Suggestion struct {
	Rule        policy.Rule `yaml:"rule"`
	Pattern     string      `yaml:"pattern"`
	Confidence  Confidence  `yaml:"confidence"`
	Occurrences int         `yaml:"occurrences"`
	Examples    []string    `yaml:"examples,omitempty"`
}

// Suggest converts findings into draft rules. Patterns seen fewer than
// twice are dropped; a single mention is an instruction, not a policy.
func Suggest(findings []Finding) []Suggestion {
	var out []Suggestion
	for _, f := range findings {
		conf, ok := grade(f.Occurrences)
		if !ok {
			continue
		}
		out = append(out, Suggestion{
			Rule: policy.Rule{
				ID:       fmt.Sprintf("LEARN-%03d", len(out)+1),
				Rule:     f.RuleText,
				Severity: severityFor(conf),
				Tags:     []string{"learned", string(f.Kind)},
			},
			Pattern:     f.Name,
			Confidence:  conf,
			Occurrences: f.Occurrences,
			Examples:    f.Examples,
		})
	}
	return out
}

func grade(occurrences int) (Confidence, bool) {
	switch {
	case occurrences >= 5:
		return ConfidenceHigh, true
	case occurrences >= 3:
		return ConfidenceMedium, true
	case occurrences == 2:
		return ConfidenceLow, true
	}
	return "", false
}

// severityFor keeps learned rules advisory: nothing mined from logs
// becomes critical without a human promoting it.
func severityFor(c Confidence) policy.Severity {
	if c == ConfidenceHigh {
		return policy.SeverityWarning
	}
	return policy.SeverityInfo
}

// MarshalSuggestions renders suggestions as a YAML document for
// review.
func MarshalSuggestions(suggestions []Suggestion) ([]byte, error) {
	return yaml.Marshal(map[string][]Suggestion{"suggestions": suggestions})
}
