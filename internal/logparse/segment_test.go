package logparse

import (
	"strings"
	"testing"
)

func TestSegment_NoTimestamps(t *testing.T) {
	entries := Segment("случайный текст без дат вообще")
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestSegment_Empty(t *testing.T) {
	if entries := Segment(""); len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestSegment_CountMatchesTokens(t *testing.T) {
	text := "заголовок 2023-03-14 04:54:32 первая запись 2023-03-12 19:53:32 вторая запись 2023-03-12 05:15:24 третья"
	entries := Segment(text)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Timestamp != "2023-03-14 04:54:32" {
		t.Errorf("Timestamp = %q, want %q", entries[0].Timestamp, "2023-03-14 04:54:32")
	}
	if strings.TrimSpace(entries[0].Body) != "первая запись" {
		t.Errorf("Body = %q, want %q", entries[0].Body, "первая запись")
	}
	if strings.TrimSpace(entries[2].Body) != "третья" {
		t.Errorf("last Body = %q, want %q", entries[2].Body, "третья")
	}
}

func TestSegment_Reconstruction(t *testing.T) {
	// Concatenating timestamp+body for every entry must reproduce the
	// original text from the first timestamp onward.
	text := "prefix 2023-03-05 21:06:48 неудачное повышение 2023-03-05 19:20:44 успешное повышение"
	entries := Segment(text)

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Timestamp)
		b.WriteString(e.Body)
	}
	want := text[len("prefix "):]
	if b.String() != want {
		t.Errorf("reconstructed %q, want %q", b.String(), want)
	}
}

func TestSegment_LastEntryRunsToEnd(t *testing.T) {
	text := "2023-03-14 04:54:32 единственная запись до конца"
	entries := Segment(text)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Body != " единственная запись до конца" {
		t.Errorf("Body = %q", entries[0].Body)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("  Паук-Скакун (1 *) ")
	want := "паук скакун (1 *)"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalize_HyphenOnly(t *testing.T) {
	if got := Normalize("-"); got != "" {
		t.Errorf("Normalize(\"-\") = %q, want empty", got)
	}
}

func TestParseTimestamp_UTC(t *testing.T) {
	sec, err := ParseTimestamp("2023-03-14 04:54:32")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	// 2023-03-14T04:54:32Z
	if sec != 1678769672 {
		t.Errorf("sec = %d, want 1678769672", sec)
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	if _, err := ParseTimestamp("2023-13-99 99:99:99"); err == nil {
		t.Error("want error for invalid timestamp")
	}
}
