// Package stats parses alliance kill-rating screenshots and diffs
// consecutive snapshots per user.
package stats

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// allianceRe pulls the 3-letter alliance code and the kill count out of a
// rating line, e.g. "744 (BaS)Black Sins 3,140,163,399" after comma
// stripping.
var allianceRe = regexp.MustCompile(`\((\w{3})\)\D*?(\d+)`)

// ParseReport extracts alliance kill counts from recognized rating text.
// Lines are separated by '#' rank markers; the text before the first marker
// is the report header and is dropped. Unparseable lines are logged and
// skipped.
func ParseReport(text string) map[string]int64 {
	parts := strings.Split(text, "#")
	stats := make(map[string]int64)
	if len(parts) < 2 {
		return stats
	}
	for _, line := range parts[1:] {
		line = strings.ReplaceAll(line, ",", "")
		m := allianceRe.FindStringSubmatch(line)
		if m == nil {
			log.Printf("stats: can't parse %q", line)
			continue
		}
		kills, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			log.Printf("stats: can't parse kill count in %q: %v", line, err)
			continue
		}
		stats[m[1]] = kills
	}
	return stats
}
