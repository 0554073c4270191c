package policy

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Category is an ordered group of rules under one heading. Document
// order in the charter is display order, so categories decode from
// yaml.Node rather than a Go map.
type Category struct {
	Name  string
	Rules []Rule
}

// ScopePolicies holds one scope's categories in document order.
type ScopePolicies struct {
	Key        ScopeKey
	Categories []Category
}

// Charter is the parsed charter.yaml: a version plus per-scope rule
// categories.
type Charter struct {
	Version string
	Scopes  []ScopePolicies
}

// UnmarshalYAML decodes a charter while preserving the document order
// of scopes, categories, and rules.
func (c *Charter) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("charter: expected a mapping at the top level")
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "version":
			if err := val.Decode(&c.Version); err != nil {
				return fmt.Errorf("charter: version: %w", err)
			}
		case "scopes":
			if err := c.decodeScopes(val); err != nil {
				return err
			}
		default:
			return fmt.Errorf("charter: unknown top-level key %q", key.Value)
		}
	}
	return nil
}

func (c *Charter) decodeScopes(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("charter: scopes must be a mapping")
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		sk, err := ParseScopeKey(key.Value)
		if err != nil {
			return fmt.Errorf("charter: %w", err)
		}
		sp := ScopePolicies{Key: sk}
		if val.Kind != yaml.MappingNode {
			return fmt.Errorf("charter: scope %s must map categories to rule lists", sk)
		}
		for j := 0; j < len(val.Content); j += 2 {
			catKey, catVal := val.Content[j], val.Content[j+1]
			cat := Category{Name: catKey.Value}
			if err := catVal.Decode(&cat.Rules); err != nil {
				return fmt.Errorf("charter: scope %s category %s: %w", sk, cat.Name, err)
			}
			sp.Categories = append(sp.Categories, cat)
		}
		c.Scopes = append(c.Scopes, sp)
	}
	return nil
}

// Scope returns the policies declared for key, if any.
func (c *Charter) Scope(key ScopeKey) (ScopePolicies, bool) {
	for _, sp := range c.Scopes {
		if sp.Key == key {
			return sp, true
		}
	}
	return ScopePolicies{}, false
}

// Validate applies the semantic checks that schema validation cannot
// express: version shape, rule constraints, and id uniqueness within
// one scope and category.
func (c *Charter) Validate() error {
	if !semverPattern.MatchString(c.Version) {
		return fmt.Errorf("charter version %q is not MAJOR.MINOR.PATCH", c.Version)
	}
	for _, sp := range c.Scopes {
		for _, cat := range sp.Categories {
			seen := make(map[string]bool, len(cat.Rules))
			for _, r := range cat.Rules {
				if err := r.Validate(); err != nil {
					return fmt.Errorf("scope %s category %s: %w", sp.Key, cat.Name, err)
				}
				if seen[r.ID] {
					return fmt.Errorf("scope %s category %s: duplicate rule id %s", sp.Key, cat.Name, r.ID)
				}
				seen[r.ID] = true
			}
		}
	}
	return nil
}
