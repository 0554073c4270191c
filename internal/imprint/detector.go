package imprint

import "regexp"

// Kind distinguishes what a detected pattern says about the session.
type Kind string

const (
	KindCorrection Kind = "correction"
	KindStyle      Kind = "style"
)

// pattern is one thing worth counting in user turns.
type pattern struct {
	Name     string
	Kind     Kind
	RuleText string
	re       *regexp.Regexp
}

// The detector battery. Order is the emission order of findings, so
// suggestions keep stable ids across runs on the same log.
var patterns = []pattern{
	{
		Name:     "explicit-prohibition",
		Kind:     KindCorrection,
		RuleText: "Respect repeatedly stated prohibitions without being reminded.",
		re:       regexp.MustCompile(`(?i)\b(don't|do not|stop|never)\b`),
	},
	{
		Name:     "course-correction",
		Kind:     KindCorrection,
		RuleText: "Confirm the intended approach before large changes; course corrections recur in this team's sessions.",
		re:       regexp.MustCompile(`(?i)\b(actually|instead|that's wrong|not what i)\b`),
	},
	{
		Name:     "tool-substitution",
		Kind:     KindCorrection,
		RuleText: "Prefer the tools and libraries this team names over familiar alternatives.",
		re:       regexp.MustCompile(`(?i)\buse\s+\S+\s+(instead of|not|rather than)\s+\S+`),
	},
	{
		Name:     "style-nit",
		Kind:     KindStyle,
		RuleText: "Follow the team's stated formatting and naming conventions on first writing.",
		re:       regexp.MustCompile(`(?i)\b(format|formatting|indent|naming|rename|style)\b`),
	},
}

const maxExamples = 3

// Finding is one pattern's frequency across a set of events.
type Finding struct {
	Name        string
	Kind        Kind
	RuleText    string
	Occurrences int
	Examples    []string
}

// Detect counts pattern hits in user turns only; assistant text would
// inflate counts with its own restatements.
func Detect(events []Event) []Finding {
	var out []Finding
	for _, p := range patterns {
		f := Finding{Name: p.Name, Kind: p.Kind, RuleText: p.RuleText}
		for _, ev := range events {
			if ev.Role != "user" {
				continue
			}
			if p.re.MatchString(ev.Text) {
				f.Occurrences++
				if len(f.Examples) < maxExamples {
					f.Examples = append(f.Examples, ev.Text)
				}
			}
		}
		if f.Occurrences > 0 {
			out = append(out, f)
		}
	}
	return out
}
