package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatDiff renders a diff as a chat reply: comparison header, elapsed
// interval, then alliances sorted by delta descending in a monospace
// block. A nil diff asks for more data.
func FormatDiff(d *DiffResult) string {
	if d == nil {
		return "Не найдены первоначальные данные\nНужно больше данных"
	}

	type row struct {
		alliance string
		delta    int64
	}
	rows := make([]row, 0, len(d.Diff))
	for alliance, delta := range d.Diff {
		rows = append(rows, row{alliance, delta})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].delta != rows[j].delta {
			return rows[i].delta > rows[j].delta
		}
		return rows[i].alliance < rows[j].alliance
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Сравнение с %s\n", d.PrevDate)
	fmt.Fprintf(&b, "Прошло %s\n\n", (time.Duration(d.IntervalSec) * time.Second).String())
	b.WriteString("```\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s: %14s\n", r.alliance, groupDigits(r.delta))
	}
	b.WriteString("```")
	return b.String()
}

// groupDigits formats n with thousands separators, e.g. 3140163 -> "3,140,163".
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
