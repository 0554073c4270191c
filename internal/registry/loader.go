// Package registry loads and validates a policy registry directory:
// charter.yaml plus one behavior document per scope under behavior/.
// Loading is all-or-nothing: any schema or semantic violation in any
// file fails the whole load.
package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"egokit/internal/policy"
)

// CharterFile is the registry's rule document, relative to the
// registry root.
const CharterFile = "charter.yaml"

// BehaviorDir holds one BehaviorConfig per scope. The scope key is
// encoded in the relative path: global.yaml, team/backend.yaml,
// user/dana.yaml.
const BehaviorDir = "behavior"

// Registry is a fully validated policy registry.
type Registry struct {
	Dir       string
	Charter   policy.Charter
	Behaviors map[policy.ScopeKey]policy.BehaviorConfig
}

// Load reads and validates the registry at dir. It returns either a
// registry with every document validated, or the full set of
// violations joined into one error and no registry at all.
func Load(dir string) (*Registry, error) {
	reg := &Registry{
		Dir:       dir,
		Behaviors: make(map[policy.ScopeKey]policy.BehaviorConfig),
	}
	var errs []error

	charterPath := filepath.Join(dir, CharterFile)
	raw, err := os.ReadFile(charterPath)
	if err != nil {
		return nil, fmt.Errorf("registry: read charter: %w", err)
	}
	if verrs := validateSchema(CharterFile, raw, charterSchema); len(verrs) > 0 {
		errs = append(errs, verrs...)
	} else if err := yaml.Unmarshal(raw, &reg.Charter); err != nil {
		errs = append(errs, &ValidationError{File: CharterFile, Msg: err.Error()})
	} else if err := reg.Charter.Validate(); err != nil {
		errs = append(errs, &ValidationError{File: CharterFile, Msg: err.Error()})
	}

	errs = append(errs, loadBehaviors(dir, reg)...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return reg, nil
}

func loadBehaviors(dir string, reg *Registry) []error {
	root := filepath.Join(dir, BehaviorDir)
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	var errs []error
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		file := filepath.ToSlash(filepath.Join(BehaviorDir, rel))

		key, err := scopeFromPath(rel)
		if err != nil {
			errs = append(errs, &ValidationError{File: file, Msg: err.Error()})
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, &ValidationError{File: file, Msg: err.Error()})
			return nil
		}
		if verrs := validateSchema(file, raw, behaviorSchema); len(verrs) > 0 {
			errs = append(errs, verrs...)
			return nil
		}
		var cfg policy.BehaviorConfig
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			errs = append(errs, &ValidationError{File: file, Msg: err.Error()})
			return nil
		}
		if _, dup := reg.Behaviors[key]; dup {
			errs = append(errs, &ValidationError{File: file, Msg: fmt.Sprintf("duplicate behavior for scope %s", key)})
			return nil
		}
		reg.Behaviors[key] = cfg
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("registry: walk %s: %w", BehaviorDir, walkErr))
	}
	return errs
}

// scopeFromPath decodes a behavior file's scope key from its relative
// path: "global.yaml" -> global, "team/backend.yaml" -> team:backend.
func scopeFromPath(rel string) (policy.ScopeKey, error) {
	slug := strings.TrimSuffix(filepath.ToSlash(rel), ".yaml")
	raw := strings.Replace(slug, "/", ":", 1)
	if strings.Contains(raw, "/") {
		return policy.ScopeKey{}, fmt.Errorf("behavior path nested too deep: %s", rel)
	}
	return policy.ParseScopeKey(raw)
}
