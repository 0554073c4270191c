package render

import (
	"fmt"
	"strings"

	"egokit/internal/policy"
	"egokit/internal/resolver"
)

// SystemPrompt renders a compact plain-text fragment for injection
// into an assistant's system prompt (e.g. a CLI --append-system-prompt
// flag). It carries the non-negotiable rules inline and defers the
// rest to the primary document; like Primary, it is a pure function of
// the context.
func SystemPrompt(ctx *resolver.Context) string {
	var b strings.Builder
	b.WriteString("You operate under a compiled engineering policy.\n")
	if ctx.Behavior.Role != "" {
		fmt.Fprintf(&b, "Role: %s\n", ctx.Behavior.Role)
	}

	var critical []resolver.ResolvedRule
	for _, cat := range ctx.Categories {
		for _, r := range cat.Rules {
			if r.Severity == policy.SeverityCritical {
				critical = append(critical, r)
			}
		}
	}
	if len(critical) > 0 {
		b.WriteString("\nNon-negotiable rules:\n")
		for _, r := range critical {
			fmt.Fprintf(&b, "- [%s] %s\n", r.ID, r.Rule.Rule)
		}
	}

	counts := ctx.RuleCount()
	fmt.Fprintf(&b, "\nThe full policy (%d critical, %d warning, %d info) lives in %s; consult it before deviating.\n",
		counts[policy.SeverityCritical],
		counts[policy.SeverityWarning],
		counts[policy.SeverityInfo],
		PrimaryPath)
	return b.String()
}
