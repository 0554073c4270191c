package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"egokit/internal/policy"
	"egokit/internal/resolver"
)

const renderCharter = `
version: 1.0.0
scopes:
  global:
    code_quality:
      - {id: QUAL-001, rule: Keep functions short., severity: warning}
      - {id: QUAL-002, rule: No panics in libraries., severity: critical, rationale: Callers cannot recover.}
    security:
      - {id: SEC-001, rule: Never log secrets., severity: critical, tags: [security]}
    docs:
      - {id: DOCS-001, rule: Update the changelog., severity: info}
`

func renderContext(t *testing.T, behaviors map[policy.ScopeKey]policy.BehaviorConfig) *resolver.Context {
	t.Helper()
	var c policy.Charter
	require.NoError(t, yaml.Unmarshal([]byte(renderCharter), &c))
	require.NoError(t, c.Validate())
	ctx, err := resolver.Resolve(&c, behaviors, nil)
	require.NoError(t, err)
	return ctx
}

func TestPrimary_SectionOrder(t *testing.T) {
	body := Primary(renderContext(t, nil))

	critical := strings.Index(body, "## Critical rules")
	warnings := strings.Index(body, "## Warnings")
	guidance := strings.Index(body, "## Guidance")
	security := strings.Index(body, "## Security considerations")
	require.True(t, critical >= 0 && warnings >= 0 && guidance >= 0 && security >= 0, "missing section in:\n%s", body)
	assert.Less(t, critical, warnings)
	assert.Less(t, warnings, guidance)
	assert.Less(t, guidance, security)
}

func TestPrimary_SecurityRulesDuplicated(t *testing.T) {
	body := Primary(renderContext(t, nil))

	// SEC-001 appears both in the critical section and the cross-cut.
	assert.Equal(t, 2, strings.Count(body, "**SEC-001**"))
	// Untagged rules appear once.
	assert.Equal(t, 1, strings.Count(body, "**QUAL-001**"))
}

func TestPrimary_Deterministic(t *testing.T) {
	behaviors := map[policy.ScopeKey]policy.BehaviorConfig{
		policy.GlobalScope: {
			Role:     "Reviewer",
			Defaults: map[string]string{"b": "2", "a": "1", "c": "3"},
			Personas: map[string]policy.Persona{"z": {Focus: "x"}, "a": {Focus: "y"}},
		},
	}
	a := Primary(renderContext(t, behaviors))
	b := Primary(renderContext(t, behaviors))
	assert.Equal(t, a, b)
}

func TestPrimary_NoTimestamps(t *testing.T) {
	body := Primary(renderContext(t, nil))
	// Nothing date-like may appear in managed content.
	assert.NotRegexp(t, regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), body)
}

func TestPrimary_BehaviorSection(t *testing.T) {
	behaviors := map[policy.ScopeKey]policy.BehaviorConfig{
		policy.GlobalScope: {
			Role:          "Staff engineer",
			Tone:          &policy.Tone{Voice: "direct", Verbosity: "concise"},
			AskWhenUnsure: []string{"deleting data"},
		},
	}
	body := Primary(renderContext(t, behaviors))
	assert.Contains(t, body, "## Operating mode")
	assert.Contains(t, body, "Role: Staff engineer")
	assert.Contains(t, body, "- Voice: direct")
	assert.Contains(t, body, "- deleting data")
}

func TestPrimary_OmitsEmptySections(t *testing.T) {
	var c policy.Charter
	require.NoError(t, yaml.Unmarshal([]byte(`
version: 1.0.0
scopes:
  global:
    docs:
      - {id: DOCS-001, rule: Update the changelog., severity: info}
`), &c))
	ctx, err := resolver.Resolve(&c, nil, nil)
	require.NoError(t, err)

	body := Primary(ctx)
	assert.NotContains(t, body, "## Critical rules")
	assert.NotContains(t, body, "## Warnings")
	assert.NotContains(t, body, "## Security considerations")
	assert.NotContains(t, body, "## Operating mode")
	assert.Contains(t, body, "## Guidance")
}

func TestSecondaryDocs_MirroredAcrossTools(t *testing.T) {
	docs := SecondaryDocs(renderContext(t, nil))
	require.Len(t, docs, 6)

	byPath := make(map[string]string, len(docs))
	for _, d := range docs {
		assert.False(t, d.Managed)
		byPath[d.Path] = d.Body
	}
	for _, name := range []string{"validate.md", "checkpoint.md", "refresh-policies.md"} {
		claude, ok := byPath[".claude/commands/"+name]
		require.True(t, ok, "missing .claude copy of %s", name)
		codex, ok := byPath[".codex/prompts/"+name]
		require.True(t, ok, "missing .codex copy of %s", name)
		assert.Equal(t, claude, codex, "%s differs between tool directories", name)
	}
}

func TestSecondaryDocs_ParameterizedByCountsOnly(t *testing.T) {
	docs := SecondaryDocs(renderContext(t, nil))
	for _, d := range docs {
		assert.Contains(t, d.Body, PrimaryPath)
		// Rule text never leaks into secondary documents.
		assert.NotContains(t, d.Body, "Never log secrets.")
	}
	assert.Contains(t, docs[0].Body, "2 critical, 1 warning, 1 info")
}
