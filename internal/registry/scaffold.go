package registry

import (
	"fmt"
	"os"
	"path/filepath"
)

const starterCharter = `version: 1.0.0
scopes:
  global:
    code_quality:
      - id: QUAL-001
        rule: Prefer small, single-purpose functions.
        severity: warning
        tags: [style]
    security:
      - id: SEC-001
        rule: Never commit credentials or tokens.
        severity: critical
        tags: [security]
`

const starterBehavior = `role: Senior engineer pairing on this repository
tone:
  voice: direct
  verbosity: concise
ask_when_unsure:
  - deleting files
  - changing public APIs
`

// Scaffold writes a starter registry at dir. It refuses to touch a
// directory that already contains a charter.
func Scaffold(dir string) error {
	charterPath := filepath.Join(dir, CharterFile)
	if _, err := os.Stat(charterPath); err == nil {
		return fmt.Errorf("registry already initialized: %s exists", charterPath)
	}
	if err := os.MkdirAll(filepath.Join(dir, BehaviorDir), 0o755); err != nil {
		return fmt.Errorf("scaffold: %w", err)
	}
	if err := os.WriteFile(charterPath, []byte(starterCharter), 0o644); err != nil {
		return fmt.Errorf("scaffold: %w", err)
	}
	globalPath := filepath.Join(dir, BehaviorDir, "global.yaml")
	if err := os.WriteFile(globalPath, []byte(starterBehavior), 0o644); err != nil {
		return fmt.Errorf("scaffold: %w", err)
	}
	return nil
}
