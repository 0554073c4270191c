package policy

import (
	"fmt"
	"strings"
)

// Level is a tier in the scope precedence chain. Later levels override
// earlier ones.
type Level string

const (
	LevelGlobal  Level = "global"
	LevelTeam    Level = "team"
	LevelProject Level = "project"
	LevelUser    Level = "user"
	LevelSession Level = "session"
)

var levelRank = map[Level]int{
	LevelGlobal:  0,
	LevelTeam:    1,
	LevelProject: 2,
	LevelUser:    3,
	LevelSession: 4,
}

// ScopeKey identifies one scope in the precedence chain. Team, project,
// and user scopes carry a name; global and session never do.
type ScopeKey struct {
	Level Level
	Name  string
}

// GlobalScope is the implicit base of every chain.
var GlobalScope = ScopeKey{Level: LevelGlobal}

// ParseScopeKey parses "level" or "level:name" text such as
// "global" or "team:backend".
func ParseScopeKey(raw string) (ScopeKey, error) {
	level, name, hasName := strings.Cut(raw, ":")
	k := ScopeKey{Level: Level(level), Name: name}
	rank, known := levelRank[k.Level]
	if !known {
		return ScopeKey{}, fmt.Errorf("unknown scope level %q in %q", level, raw)
	}
	named := rank == levelRank[LevelTeam] || rank == levelRank[LevelProject] || rank == levelRank[LevelUser]
	if named && (!hasName || name == "") {
		return ScopeKey{}, fmt.Errorf("scope %q requires a name, e.g. %q", level, level+":backend")
	}
	if !named && hasName {
		return ScopeKey{}, fmt.Errorf("scope %q does not take a name (got %q)", level, raw)
	}
	return k, nil
}

// String renders the key in its canonical "level[:name]" form.
func (k ScopeKey) String() string {
	if k.Name == "" {
		return string(k.Level)
	}
	return string(k.Level) + ":" + k.Name
}

// Rank returns the precedence rank of the key's level.
func (k ScopeKey) Rank() int {
	return levelRank[k.Level]
}

// NormalizeChain validates a scope chain and prepends the global scope
// when it is absent. Levels must be strictly ascending so that
// precedence is unambiguous.
func NormalizeChain(chain []ScopeKey) ([]ScopeKey, error) {
	if len(chain) == 0 || chain[0].Level != LevelGlobal {
		chain = append([]ScopeKey{GlobalScope}, chain...)
	}
	for i := 1; i < len(chain); i++ {
		if chain[i].Rank() <= chain[i-1].Rank() {
			return nil, fmt.Errorf("scope chain not strictly ascending: %s follows %s",
				chain[i], chain[i-1])
		}
	}
	return chain, nil
}

// ParseChain parses and normalizes raw scope texts in one step.
func ParseChain(raw []string) ([]ScopeKey, error) {
	chain := make([]ScopeKey, 0, len(raw))
	for _, r := range raw {
		k, err := ParseScopeKey(r)
		if err != nil {
			return nil, err
		}
		chain = append(chain, k)
	}
	return NormalizeChain(chain)
}
