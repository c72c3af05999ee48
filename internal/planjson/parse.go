// Package planjson tolerantly extracts the Planner agent's JSON reply
// from free-form model text. It is grounded in the teacher's
// internal/fileblocks.Parse, which scans lines for fenced-block markers
// rather than relying on a single regex over the whole response: here
// the markers are plain ``` fences (optionally language-tagged) instead
// of fileblocks' `file=` annotation, because the Planner is expected to
// reply with a single JSON object rather than a set of named files.
// Candidate validation uses gjson rather than a strict struct decode,
// so a block can be rejected for missing the currentTest key before
// paying for a full unmarshal into model.TestCase.
package planjson

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ntolman/tddorc/internal/model"
)

// Output is the Planner's decoded reply. CurrentTest is nil once every
// test in the feature's plan has been completed.
type Output struct {
	CurrentTest *model.TestCase `json:"currentTest"`
}

// ErrNoCandidate is returned when no fenced block or bare JSON object in
// the text decodes into something carrying a currentTest key.
var ErrNoCandidate = errors.New("planjson: no candidate JSON object with a currentTest field found")

// Parse scans text for fenced code blocks and returns the last one whose
// JSON object has a top-level "currentTest" key, so a final fenced block
// overrides any earlier draft or example block in the same reply. Extra
// fields in that object are ignored. If no fenced block qualifies, the
// whole trimmed text is tried as a last resort.
func Parse(text string) (Output, error) {
	blocks := extractBlocks(text)
	for i := len(blocks) - 1; i >= 0; i-- {
		if out, ok := decodeCandidate(blocks[i]); ok {
			return out, nil
		}
	}
	if out, ok := decodeCandidate(strings.TrimSpace(text)); ok {
		return out, nil
	}
	return Output{}, ErrNoCandidate
}

// decodeCandidate reports ok=true only when raw parses as a JSON object
// that explicitly carries a "currentTest" key (including an explicit
// null), distinguishing "no test left" from "not the right block". The
// presence check uses gjson, which reports Exists() for an explicit
// null value, unlike a plain map lookup after a failed strict decode.
func decodeCandidate(raw string) (Output, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !gjson.Valid(raw) {
		return Output{}, false
	}
	if !gjson.Get(raw, "currentTest").Exists() {
		return Output{}, false
	}
	var out Output
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Output{}, false
	}
	return out, true
}

var fenceOpen = "```"

// extractBlocks returns the content of every fenced code block in text,
// in order of appearance, tolerating an optional language tag on the
// opening fence (e.g. ```json).
func extractBlocks(text string) []string {
	lines := strings.Split(text, "\n")
	var blocks []string
	var buf strings.Builder
	inBlock := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inBlock {
			if strings.HasPrefix(trimmed, fenceOpen) {
				inBlock = true
				buf.Reset()
			}
			continue
		}
		if trimmed == fenceOpen {
			blocks = append(blocks, buf.String())
			inBlock = false
			buf.Reset()
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
	}

	return blocks
}
