// Package inject owns the marker-delimited region of a shared file.
// It never touches text outside the markers and is a pure function of
// its inputs, so injecting the same body twice is a fixed point.
package inject

import "strings"

// State classifies what the injector found in the existing text.
type State int

const (
	// StateCreated means the target did not exist; a full template
	// with placeholder human sections was produced.
	StateCreated State = iota
	// StateSpliced means exactly one well-ordered marker pair was
	// found and only the region between them was replaced; every
	// byte outside the pair is preserved exactly.
	StateSpliced
	// StateMalformed means the markers were missing, duplicated, or
	// out of order. Orphaned marker lines are stripped and the
	// managed block appended with a fresh pair, so a later run finds
	// a well-formed file again. Non-marker text is kept for a human
	// to reconcile.
	StateMalformed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateSpliced:
		return "spliced"
	case StateMalformed:
		return "malformed"
	}
	return "unknown"
}

// Result carries the new file text and how it was produced.
type Result struct {
	Text  string
	State State
}

const (
	createdHeader = "Notes above the managed block are yours and survive recompilation."
	createdFooter = "Notes below the managed block are yours and survive recompilation."
)

// Inject places body between the begin and end marker lines of
// existing. An empty existing text means the file is absent and a
// fresh template is created around the managed block.
func Inject(existing, body, begin, end string) Result {
	block := begin + "\n" + strings.TrimRight(body, "\n") + "\n" + end

	if existing == "" {
		text := "<!-- " + createdHeader + " -->\n\n" +
			block + "\n\n" +
			"<!-- " + createdFooter + " -->\n"
		return Result{Text: text, State: StateCreated}
	}

	lines := strings.Split(existing, "\n")
	beginAt, endAt := markerPositions(lines, begin, end)
	if beginAt < 0 || endAt < 0 || endAt < beginAt {
		return Result{Text: appendFresh(lines, block, begin, end), State: StateMalformed}
	}

	// Splice replaces only the marker pair and what lies between;
	// everything around it comes back byte-identical, including the
	// presence or absence of a final newline.
	var b strings.Builder
	for _, l := range lines[:beginAt] {
		b.WriteString(l + "\n")
	}
	b.WriteString(block)
	tail := lines[endAt+1:]
	if len(tail) > 0 {
		b.WriteString("\n" + strings.Join(tail, "\n"))
	}
	return Result{Text: b.String(), State: StateSpliced}
}

// appendFresh repairs a malformed file: orphaned marker lines go,
// human text stays, and one fresh managed block lands at the end.
// Stripping the strays keeps repeated repairs from stacking blocks.
func appendFresh(lines []string, block, begin, end string) string {
	kept := lines[:0:0]
	for _, l := range lines {
		switch strings.TrimSpace(l) {
		case begin, end:
		default:
			kept = append(kept, l)
		}
	}
	prefix := strings.TrimRight(strings.Join(kept, "\n"), "\n")
	if prefix == "" {
		return block + "\n"
	}
	return prefix + "\n\n" + block + "\n"
}

// markerPositions returns the line indexes of the single begin and end
// markers, or -1s when either marker is absent or repeated.
func markerPositions(lines []string, begin, end string) (int, int) {
	beginAt, endAt := -1, -1
	for i, l := range lines {
		switch strings.TrimSpace(l) {
		case begin:
			if beginAt >= 0 {
				return -1, -1
			}
			beginAt = i
		case end:
			if endAt >= 0 {
				return -1, -1
			}
			endAt = i
		}
	}
	return beginAt, endAt
}
