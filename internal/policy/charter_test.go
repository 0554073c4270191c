package policy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const charterDoc = `
version: 1.2.0
scopes:
  global:
    code_quality:
      - id: QUAL-001
        rule: Functions stay under 50 lines.
        severity: warning
        tags: [style]
      - id: QUAL-002
        rule: No panics in library code.
        severity: critical
        rationale: Callers cannot recover sensibly.
    security:
      - id: SEC-001
        rule: Never log credentials.
        severity: critical
        tags: [security]
  "team:backend":
    code_quality:
      - id: QUAL-001
        rule: Functions stay under 40 lines.
        severity: warning
`

func TestCharterDecode_PreservesOrder(t *testing.T) {
	var c Charter
	require.NoError(t, yaml.Unmarshal([]byte(charterDoc), &c))
	require.NoError(t, c.Validate())

	assert.Equal(t, "1.2.0", c.Version)
	require.Len(t, c.Scopes, 2)
	assert.Equal(t, "global", c.Scopes[0].Key.String())
	assert.Equal(t, "team:backend", c.Scopes[1].Key.String())

	global := c.Scopes[0]
	require.Len(t, global.Categories, 2)
	assert.Equal(t, "code_quality", global.Categories[0].Name)
	assert.Equal(t, "security", global.Categories[1].Name)

	qual := global.Categories[0].Rules
	require.Len(t, qual, 2)
	if diff := cmp.Diff(Rule{
		ID:       "QUAL-001",
		Rule:     "Functions stay under 50 lines.",
		Severity: SeverityWarning,
		Tags:     []string{"style"},
	}, qual[0]); diff != "" {
		t.Errorf("rule mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Callers cannot recover sensibly.", qual[1].Rationale)
}

func TestCharterScope(t *testing.T) {
	var c Charter
	require.NoError(t, yaml.Unmarshal([]byte(charterDoc), &c))

	sp, ok := c.Scope(ScopeKey{Level: LevelTeam, Name: "backend"})
	require.True(t, ok)
	assert.Equal(t, "Functions stay under 40 lines.", sp.Categories[0].Rules[0].Rule)

	_, ok = c.Scope(ScopeKey{Level: LevelUser, Name: "dana"})
	assert.False(t, ok)
}

func TestCharterValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "bad version",
			doc:  "version: v1\nscopes: {}\n",
			want: "not MAJOR.MINOR.PATCH",
		},
		{
			name: "bad rule id",
			doc: `version: 1.0.0
scopes:
  global:
    quality:
      - {id: lowercase-1, rule: x, severity: info}
`,
			want: "does not match PREFIX-NNN",
		},
		{
			name: "bad severity",
			doc: `version: 1.0.0
scopes:
  global:
    quality:
      - {id: QUAL-001, rule: x, severity: fatal}
`,
			want: "unknown severity",
		},
		{
			name: "duplicate id in category",
			doc: `version: 1.0.0
scopes:
  global:
    quality:
      - {id: QUAL-001, rule: x, severity: info}
      - {id: QUAL-001, rule: y, severity: info}
`,
			want: "duplicate rule id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Charter
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &c))
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCharterDecode_UnknownScope(t *testing.T) {
	var c Charter
	err := yaml.Unmarshal([]byte("version: 1.0.0\nscopes:\n  org:acme: {}\n"), &c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scope level")
}
