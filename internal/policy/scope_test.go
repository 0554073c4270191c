package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScopeKey(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ScopeKey
		wantErr bool
	}{
		{name: "global", raw: "global", want: ScopeKey{Level: LevelGlobal}},
		{name: "session", raw: "session", want: ScopeKey{Level: LevelSession}},
		{name: "named team", raw: "team:backend", want: ScopeKey{Level: LevelTeam, Name: "backend"}},
		{name: "named project", raw: "project:payments", want: ScopeKey{Level: LevelProject, Name: "payments"}},
		{name: "named user", raw: "user:dana", want: ScopeKey{Level: LevelUser, Name: "dana"}},
		{name: "team missing name", raw: "team", wantErr: true},
		{name: "team empty name", raw: "team:", wantErr: true},
		{name: "global with name", raw: "global:x", wantErr: true},
		{name: "session with name", raw: "session:now", wantErr: true},
		{name: "unknown level", raw: "org:acme", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScopeKey(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScopeKeyString_RoundTrip(t *testing.T) {
	for _, raw := range []string{"global", "team:backend", "project:payments", "user:dana", "session"} {
		k, err := ParseScopeKey(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, k.String())
	}
}

func TestNormalizeChain(t *testing.T) {
	team := ScopeKey{Level: LevelTeam, Name: "backend"}
	proj := ScopeKey{Level: LevelProject, Name: "payments"}
	user := ScopeKey{Level: LevelUser, Name: "dana"}

	tests := []struct {
		name    string
		in      []ScopeKey
		want    []ScopeKey
		wantErr bool
	}{
		{
			name: "empty chain gets global",
			in:   nil,
			want: []ScopeKey{GlobalScope},
		},
		{
			name: "global prepended",
			in:   []ScopeKey{team, proj},
			want: []ScopeKey{GlobalScope, team, proj},
		},
		{
			name: "explicit global kept",
			in:   []ScopeKey{GlobalScope, user},
			want: []ScopeKey{GlobalScope, user},
		},
		{
			name:    "descending rejected",
			in:      []ScopeKey{proj, team},
			wantErr: true,
		},
		{
			name:    "duplicate level rejected",
			in:      []ScopeKey{team, {Level: LevelTeam, Name: "frontend"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeChain(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChain(t *testing.T) {
	chain, err := ParseChain([]string{"team:backend", "user:dana"})
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, GlobalScope, chain[0])
	assert.Equal(t, "team:backend", chain[1].String())
	assert.Equal(t, "user:dana", chain[2].String())

	_, err = ParseChain([]string{"user:dana", "team:backend"})
	assert.Error(t, err)
}
