package imprint

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store keeps suggestion history across imprint runs so recurring
// patterns can be tracked and already-reviewed ones recognized.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS suggestions (
	pattern     TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	rule_text   TEXT NOT NULL,
	severity    TEXT NOT NULL,
	confidence  TEXT NOT NULL,
	occurrences INTEGER NOT NULL,
	runs        INTEGER NOT NULL DEFAULT 1
);`

// OpenStore opens (creating if needed) the suggestion database at
// path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("imprint store: open: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("imprint store: ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record upserts one suggestion, accumulating occurrence counts and
// run totals across invocations.
func (s *Store) Record(sug Suggestion) error {
	_, err := s.db.Exec(`
INSERT INTO suggestions (pattern, kind, rule_text, severity, confidence, occurrences)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(pattern) DO UPDATE SET
	occurrences = suggestions.occurrences + excluded.occurrences,
	confidence  = excluded.confidence,
	severity    = excluded.severity,
	runs        = suggestions.runs + 1`,
		sug.Pattern, tagKind(sug), sug.Rule.Rule, string(sug.Rule.Severity),
		string(sug.Confidence), sug.Occurrences)
	if err != nil {
		return fmt.Errorf("imprint store: record %s: %w", sug.Pattern, err)
	}
	return nil
}

// History is one stored pattern's accumulated state.
type History struct {
	Pattern     string
	Kind        Kind
	RuleText    string
	Occurrences int
	Runs        int
}

// All returns stored history ordered by total occurrences, most
// frequent first.
func (s *Store) All() ([]History, error) {
	rows, err := s.db.Query(`
SELECT pattern, kind, rule_text, occurrences, runs
FROM suggestions ORDER BY occurrences DESC, pattern`)
	if err != nil {
		return nil, fmt.Errorf("imprint store: query: %w", err)
	}
	defer rows.Close()

	var out []History
	for rows.Next() {
		var h History
		if err := rows.Scan(&h.Pattern, &h.Kind, &h.RuleText, &h.Occurrences, &h.Runs); err != nil {
			return nil, fmt.Errorf("imprint store: scan: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func tagKind(sug Suggestion) string {
	for _, t := range sug.Rule.Tags {
		if t == string(KindCorrection) || t == string(KindStyle) {
			return t
		}
	}
	return string(KindCorrection)
}
