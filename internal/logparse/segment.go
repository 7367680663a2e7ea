// Package logparse segments OCR'd game-log text into timestamped entries
// and normalizes entry bodies for classification.
package logparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// timestampRe matches the literal date-time token that anchors every log
// entry in the recognized text.
var timestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

// timestampLayout parses the anchor token; instants are taken at UTC.
const timestampLayout = "2006-01-02 15:04:05"

// Entry is one segmented log line: the raw timestamp token and everything
// up to the next token (or end of input), untrimmed.
type Entry struct {
	Timestamp string
	Body      string
}

// Segment splits a raw text blob into entries. Each entry starts at a
// timestamp token and its body runs up to the next token, so no characters
// between the first token and the end of input are lost. Text with no
// timestamp tokens yields no entries.
func Segment(text string) []Entry {
	locs := timestampRe.FindAllStringIndex(text, -1)
	entries := make([]Entry, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		entries = append(entries, Entry{
			Timestamp: text[loc[0]:loc[1]],
			Body:      text[loc[1]:end],
		})
	}
	return entries
}

// Normalize prepares a body for classification: hyphens become spaces
// (the OCR frequently corrupts dashes inside parenthesized counts), the
// text is lowercased and surrounding whitespace is trimmed. Every
// classifier sees bodies normalized exactly this way.
func Normalize(body string) string {
	return strings.TrimSpace(strings.ToLower(strings.ReplaceAll(body, "-", " ")))
}

// ParseTimestamp converts a segmented timestamp token to epoch seconds,
// interpreting it at UTC offset zero.
func ParseTimestamp(ts string) (int64, error) {
	t, err := time.Parse(timestampLayout, ts)
	if err != nil {
		return 0, fmt.Errorf("logparse: parse timestamp %q: %w", ts, err)
	}
	return t.UTC().Unix(), nil
}
