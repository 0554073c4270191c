package render

import (
	"fmt"
	"path"
	"strings"

	"egokit/internal/policy"
	"egokit/internal/resolver"
)

// PrimaryPath is where the managed policy document lives, relative to
// the target repository root.
const PrimaryPath = "CLAUDE.md"

// Tool directories that receive identical copies of every secondary
// prompt document.
var secondaryDirs = []string{
	".claude/commands",
	".codex/prompts",
}

// SecondaryDocs renders the fixed set of prompt documents. Each body
// is parameterized only by severity counts and category names, so two
// compilations of the same context produce byte-identical files in
// both tool directories.
func SecondaryDocs(ctx *resolver.Context) []Artifact {
	bodies := map[string]string{
		"validate.md":         validateDoc(ctx),
		"checkpoint.md":       checkpointDoc(ctx),
		"refresh-policies.md": refreshDoc(ctx),
	}
	var out []Artifact
	for _, name := range []string{"validate.md", "checkpoint.md", "refresh-policies.md"} {
		for _, dir := range secondaryDirs {
			out = append(out, Artifact{Path: path.Join(dir, name), Body: bodies[name]})
		}
	}
	return out
}

func countsLine(ctx *resolver.Context) string {
	counts := ctx.RuleCount()
	return fmt.Sprintf("%d critical, %d warning, %d info",
		counts[policy.SeverityCritical],
		counts[policy.SeverityWarning],
		counts[policy.SeverityInfo])
}

func categoriesLine(ctx *resolver.Context) string {
	names := ctx.CategoryNames()
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

func validateDoc(ctx *resolver.Context) string {
	return fmt.Sprintf(`# Validate against policy

Check the current changes against every rule in %s
(%s across categories: %s).

1. Re-read the Critical rules section first.
2. For each touched file, list the rules that apply and whether the
   change satisfies them.
3. Flag any critical violation before anything else.
`, PrimaryPath, countsLine(ctx), categoriesLine(ctx))
}

func checkpointDoc(ctx *resolver.Context) string {
	return fmt.Sprintf(`# Checkpoint

Pause and confirm the work so far still complies with %s
(%s).

- Summarize what changed since the last checkpoint.
- Name the policy categories touched (%s) and the rules consulted.
- Only continue once open critical findings are resolved.
`, PrimaryPath, countsLine(ctx), categoriesLine(ctx))
}

func refreshDoc(ctx *resolver.Context) string {
	return fmt.Sprintf(`# Refresh policies

Re-read %s in full before continuing. The managed region currently
carries %s.

Treat the re-read document as authoritative over anything remembered
from earlier in the session.
`, PrimaryPath, countsLine(ctx))
}
