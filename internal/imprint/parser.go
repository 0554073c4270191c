// Package imprint mines assistant session logs for recurring human
// corrections and turns them into draft policy rules. Detection is
// plain regex and frequency counting; suggestions are written out for
// human review and never fed back into compilation.
package imprint

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// Event is one conversational turn extracted from a session log.
type Event struct {
	Role string
	Text string
}

// sessionLine matches the JSONL shape of Claude Code session logs.
// Content is either a plain string or a list of typed blocks.
type sessionLine struct {
	Type    string `json:"type"`
	Message struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

// ParseSession reads a JSONL session log. Lines that do not decode or
// carry no text are skipped; log mining tolerates noise by design.
func ParseSession(r io.Reader) ([]Event, error) {
	var events []Event
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var sl sessionLine
		if err := json.Unmarshal([]byte(line), &sl); err != nil {
			continue
		}
		if sl.Type != "user" && sl.Type != "assistant" {
			continue
		}
		text := contentText(sl.Message.Content)
		if text == "" {
			continue
		}
		role := sl.Message.Role
		if role == "" {
			role = sl.Type
		}
		events = append(events, Event{Role: role, Text: text})
	}
	return events, sc.Err()
}

// contentText flattens message content to plain text, joining the
// text blocks of structured content.
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var blocks []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}
	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}
