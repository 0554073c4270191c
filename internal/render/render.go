// Package render turns a resolved policy context into artifact text.
// Every function here is pure: identical contexts render to
// byte-identical output, and nothing run-dependent (timestamps, host
// names, paths) appears inside managed regions.
package render

import (
	"fmt"
	"sort"
	"strings"

	"egokit/internal/policy"
	"egokit/internal/resolver"
)

// Marker lines delimiting the managed region of the primary artifact.
const (
	BeginMarker = "<!-- egokit:begin generated -->"
	EndMarker   = "<!-- egokit:end generated -->"
)

// SecurityTag marks rules that are duplicated into the cross-cutting
// security section.
const SecurityTag = "security"

// Artifact is one file the compiler emits. Managed artifacts own only
// the marker-delimited region of their target; the rest of the file
// belongs to humans.
type Artifact struct {
	Path    string
	Body    string
	Managed bool
}

var severityHeadings = map[policy.Severity]string{
	policy.SeverityCritical: "Critical rules",
	policy.SeverityWarning:  "Warnings",
	policy.SeverityInfo:     "Guidance",
}

// Primary renders the managed body of the primary artifact (CLAUDE.md).
// Sections appear in fixed severity order; inside each section,
// categories keep first-seen order and rules keep resolution order.
func Primary(ctx *resolver.Context) string {
	var b strings.Builder
	b.WriteString("# Engineering Policy\n\n")
	fmt.Fprintf(&b, "Scope chain: %s\n", ctx.ChainString())

	for _, sev := range policy.SeverityOrder {
		writeSeveritySection(&b, ctx, sev)
	}
	writeSecuritySection(&b, ctx)
	writeBehaviorSection(&b, ctx.Behavior)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeSeveritySection(b *strings.Builder, ctx *resolver.Context, sev policy.Severity) {
	var lines []string
	for _, cat := range ctx.Categories {
		var catLines []string
		for _, r := range cat.Rules {
			if r.Severity == sev {
				catLines = append(catLines, ruleLine(r))
			}
		}
		if len(catLines) > 0 {
			lines = append(lines, "\n### "+categoryHeading(cat.Name)+"\n")
			lines = append(lines, catLines...)
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n", severityHeadings[sev])
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
}

func writeSecuritySection(b *strings.Builder, ctx *resolver.Context) {
	var lines []string
	for _, cat := range ctx.Categories {
		for _, r := range cat.Rules {
			if r.HasTag(SecurityTag) {
				lines = append(lines, ruleLine(r))
			}
		}
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n## Security considerations\n\n")
	b.WriteString("These rules also appear in their severity sections above.\n\n")
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
}

func writeBehaviorSection(b *strings.Builder, bc policy.BehaviorConfig) {
	if bc.IsZero() {
		return
	}
	b.WriteString("\n## Operating mode\n")
	if bc.Role != "" {
		fmt.Fprintf(b, "\nRole: %s\n", bc.Role)
	}
	if bc.Tone != nil {
		b.WriteString("\n### Tone\n\n")
		if bc.Tone.Voice != "" {
			fmt.Fprintf(b, "- Voice: %s\n", bc.Tone.Voice)
		}
		if bc.Tone.Verbosity != "" {
			fmt.Fprintf(b, "- Verbosity: %s\n", bc.Tone.Verbosity)
		}
		for _, f := range bc.Tone.Formatting {
			fmt.Fprintf(b, "- Formatting: %s\n", f)
		}
	}
	if len(bc.Defaults) > 0 {
		b.WriteString("\n### Defaults\n\n")
		for _, k := range sortedKeys(bc.Defaults) {
			fmt.Fprintf(b, "- %s: %s\n", k, bc.Defaults[k])
		}
	}
	if len(bc.ReviewerChecklist) > 0 {
		b.WriteString("\n### Reviewer checklist\n\n")
		for _, item := range bc.ReviewerChecklist {
			fmt.Fprintf(b, "- %s\n", item)
		}
	}
	if len(bc.AskWhenUnsure) > 0 {
		b.WriteString("\n### Ask before proceeding when\n\n")
		for _, item := range bc.AskWhenUnsure {
			fmt.Fprintf(b, "- %s\n", item)
		}
	}
	if len(bc.Personas) > 0 {
		b.WriteString("\n### Personas\n")
		names := make([]string, 0, len(bc.Personas))
		for name := range bc.Personas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := bc.Personas[name]
			fmt.Fprintf(b, "\n**%s**\n\n", name)
			if p.Focus != "" {
				fmt.Fprintf(b, "- Focus: %s\n", p.Focus)
			}
			if p.Verbosity != "" {
				fmt.Fprintf(b, "- Verbosity: %s\n", p.Verbosity)
			}
			if p.Voice != "" {
				fmt.Fprintf(b, "- Voice: %s\n", p.Voice)
			}
		}
	}
}

func ruleLine(r resolver.ResolvedRule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **%s** %s", r.ID, r.Rule.Rule)
	if r.Rationale != "" {
		fmt.Fprintf(&b, " _(%s)_", r.Rationale)
	}
	if r.ExampleViolation != "" {
		fmt.Fprintf(&b, "\n  - Avoid: `%s`", r.ExampleViolation)
	}
	if r.ExampleFix != "" {
		fmt.Fprintf(&b, "\n  - Prefer: `%s`", r.ExampleFix)
	}
	return b.String()
}

func categoryHeading(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	if len(words) > 0 && words[0] != "" {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
