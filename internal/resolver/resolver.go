// Package resolver flattens a charter and a set of behavior configs
// along a scope chain into the effective policy for one compilation.
package resolver

import (
	"strings"

	"egokit/internal/policy"
)

// ResolvedRule is a rule together with the scope whose definition won.
type ResolvedRule struct {
	policy.Rule
	Scope policy.ScopeKey
}

// Category is a resolved rule group. Rules keep the display position
// of their first appearance even when a later scope redefines them.
type Category struct {
	Name  string
	Rules []ResolvedRule
}

// Context is the resolved input to rendering. It is not mutated after
// Resolve returns.
type Context struct {
	Chain      []policy.ScopeKey
	Categories []Category
	Behavior   policy.BehaviorConfig
}

// Resolve walks the chain from broadest to narrowest scope. A rule id
// seen again replaces the earlier definition in place; a new id
// appends to its category, and new categories append in first-seen
// order. Behaviors merge field-wise over the same walk.
func Resolve(charter *policy.Charter, behaviors map[policy.ScopeKey]policy.BehaviorConfig, chain []policy.ScopeKey) (*Context, error) {
	chain, err := policy.NormalizeChain(chain)
	if err != nil {
		return nil, err
	}

	ctx := &Context{Chain: chain}
	// position of each rule id: category index and index within it
	type pos struct{ cat, idx int }
	seen := make(map[string]pos)
	catIndex := make(map[string]int)

	for _, key := range chain {
		sp, ok := charter.Scope(key)
		if !ok {
			continue
		}
		for _, cat := range sp.Categories {
			ci, ok := catIndex[cat.Name]
			if !ok {
				ci = len(ctx.Categories)
				catIndex[cat.Name] = ci
				ctx.Categories = append(ctx.Categories, Category{Name: cat.Name})
			}
			for _, r := range cat.Rules {
				rr := ResolvedRule{Rule: r, Scope: key}
				if p, dup := seen[r.ID]; dup {
					ctx.Categories[p.cat].Rules[p.idx] = rr
					continue
				}
				seen[r.ID] = pos{cat: ci, idx: len(ctx.Categories[ci].Rules)}
				ctx.Categories[ci].Rules = append(ctx.Categories[ci].Rules, rr)
			}
		}
		if b, ok := behaviors[key]; ok {
			ctx.Behavior = mergeBehavior(ctx.Behavior, b)
		}
	}
	return ctx, nil
}

// RuleCount returns the number of resolved rules at each severity.
func (c *Context) RuleCount() map[policy.Severity]int {
	counts := make(map[policy.Severity]int, len(policy.SeverityOrder))
	for _, cat := range c.Categories {
		for _, r := range cat.Rules {
			counts[r.Severity]++
		}
	}
	return counts
}

// CategoryNames returns category names in display order.
func (c *Context) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// ChainString renders the chain for logs and document headers.
func (c *Context) ChainString() string {
	parts := make([]string, len(c.Chain))
	for i, k := range c.Chain {
		parts[i] = k.String()
	}
	return strings.Join(parts, " < ")
}
