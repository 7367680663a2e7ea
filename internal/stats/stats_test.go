package stats

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseReport(t *testing.T) {
	text := "Рейтинг Убийств Альянса (Сезон) " +
		"#1 744 (BaS)Black Sins 3,140,163,399 " +
		"#2 155 (GGO)Gods of Greece 2,977,136,057 " +
		"#3 101 (MFA)Mafia 2,337,433,831"
	got := ParseReport(text)
	if len(got) != 3 {
		t.Fatalf("got %d alliances, want 3", len(got))
	}
	if got["BaS"] != 3140163399 {
		t.Errorf("BaS = %d, want 3140163399", got["BaS"])
	}
	if got["GGO"] != 2977136057 {
		t.Errorf("GGO = %d, want 2977136057", got["GGO"])
	}
	if got["MFA"] != 2337433831 {
		t.Errorf("MFA = %d, want 2337433831", got["MFA"])
	}
}

func TestParseReport_SkipsGarbageLines(t *testing.T) {
	text := "заголовок #1 744 (BaS)Black Sins 3,140 #2 мусор без кода"
	got := ParseReport(text)
	if len(got) != 1 {
		t.Fatalf("got %d alliances, want 1", len(got))
	}
	if got["BaS"] != 3140 {
		t.Errorf("BaS = %d, want 3140", got["BaS"])
	}
}

func TestParseReport_NoMarkers(t *testing.T) {
	got := ParseReport("просто текст без рангов")
	if len(got) != 0 {
		t.Errorf("got %d alliances, want 0", len(got))
	}
}

func TestNewSnapshot_DateFromSeconds(t *testing.T) {
	snap := NewSnapshot(1678769672, "u1", "ivan", map[string]int64{"BaS": 1})
	if snap.Date != "2023-03-14 04:54:32" {
		t.Errorf("Date = %q, want %q", snap.Date, "2023-03-14 04:54:32")
	}
	if snap.DateSec != 1678769672 {
		t.Errorf("DateSec = %d", snap.DateSec)
	}
}

func TestHistory_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	h := NewHistory(path)

	if err := h.Append(NewSnapshot(100, "u1", "ivan", map[string]int64{"BaS": 10})); err != nil {
		t.Fatal(err)
	}
	if err := h.Append(NewSnapshot(200, "u2", "petr", map[string]int64{"GGO": 20})); err != nil {
		t.Fatal(err)
	}

	snaps, err := h.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if snaps[0].UserID != "u1" || snaps[1].UserID != "u2" {
		t.Errorf("user order = %s, %s", snaps[0].UserID, snaps[1].UserID)
	}
	if snaps[1].Stats["GGO"] != 20 {
		t.Errorf("GGO = %d, want 20", snaps[1].Stats["GGO"])
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent.jsonl"))
	snaps, err := h.Load()
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if snaps != nil {
		t.Errorf("got %d snapshots, want none", len(snaps))
	}
}

func TestHistory_ForUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	h := NewHistory(path)

	// Appended out of date order; ForUser sorts ascending.
	if err := h.Append(NewSnapshot(300, "u1", "ivan", nil)); err != nil {
		t.Fatal(err)
	}
	if err := h.Append(NewSnapshot(100, "u1", "ivan", nil)); err != nil {
		t.Fatal(err)
	}
	if err := h.Append(NewSnapshot(200, "u2", "petr", nil)); err != nil {
		t.Fatal(err)
	}

	snaps, err := h.ForUser("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if snaps[0].DateSec != 100 || snaps[1].DateSec != 300 {
		t.Errorf("dates = %d, %d, want ascending", snaps[0].DateSec, snaps[1].DateSec)
	}
}

func TestDiff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	h := NewHistory(path)

	if err := h.Append(NewSnapshot(100, "u1", "ivan", map[string]int64{"BaS": 100, "GGO": 50})); err != nil {
		t.Fatal(err)
	}
	if err := h.Append(NewSnapshot(160, "u1", "ivan", map[string]int64{"BaS": 150, "GGO": 50, "MFA": 30})); err != nil {
		t.Fatal(err)
	}

	d, err := h.Diff("u1")
	if err != nil {
		t.Fatal(err)
	}
	if d == nil {
		t.Fatal("Diff = nil, want result")
	}
	if d.IntervalSec != 60 {
		t.Errorf("IntervalSec = %d, want 60", d.IntervalSec)
	}
	if d.Diff["BaS"] != 50 {
		t.Errorf("BaS delta = %d, want 50", d.Diff["BaS"])
	}
	if d.Diff["GGO"] != 0 {
		t.Errorf("GGO delta = %d, want 0", d.Diff["GGO"])
	}
	// MFA is absent from the older snapshot and counts from zero.
	if d.Diff["MFA"] != 30 {
		t.Errorf("MFA delta = %d, want 30", d.Diff["MFA"])
	}
}

func TestDiff_NeedsTwoSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	h := NewHistory(path)

	if err := h.Append(NewSnapshot(100, "u1", "ivan", map[string]int64{"BaS": 100})); err != nil {
		t.Fatal(err)
	}
	d, err := h.Diff("u1")
	if err != nil {
		t.Fatal(err)
	}
	if d != nil {
		t.Errorf("Diff = %+v, want nil for a single snapshot", d)
	}
}

func TestDiffLatest_PicksMostRecentUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	h := NewHistory(path)

	if err := h.Append(NewSnapshot(100, "u1", "ivan", map[string]int64{"BaS": 10})); err != nil {
		t.Fatal(err)
	}
	if err := h.Append(NewSnapshot(200, "u1", "ivan", map[string]int64{"BaS": 15})); err != nil {
		t.Fatal(err)
	}
	if err := h.Append(NewSnapshot(150, "u2", "petr", map[string]int64{"GGO": 5})); err != nil {
		t.Fatal(err)
	}

	d, err := h.DiffLatest()
	if err != nil {
		t.Fatal(err)
	}
	if d == nil {
		t.Fatal("DiffLatest = nil, want u1 diff")
	}
	if d.Diff["BaS"] != 5 {
		t.Errorf("BaS delta = %d, want 5", d.Diff["BaS"])
	}
}

func TestDiffLatest_EmptyHistory(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent.jsonl"))
	d, err := h.DiffLatest()
	if err != nil {
		t.Fatal(err)
	}
	if d != nil {
		t.Errorf("DiffLatest = %+v, want nil", d)
	}
}

func TestFormatDiff_Nil(t *testing.T) {
	got := FormatDiff(nil)
	want := "Не найдены первоначальные данные\nНужно больше данных"
	if got != want {
		t.Errorf("FormatDiff(nil) = %q, want %q", got, want)
	}
}

func TestFormatDiff(t *testing.T) {
	d := &DiffResult{
		PrevDate:    "2023-03-14 04:54:32",
		IntervalSec: 3600,
		Diff:        map[string]int64{"BaS": 1234567, "GGO": 50, "MFA": 50},
	}
	got := FormatDiff(d)

	if !strings.HasPrefix(got, "Сравнение с 2023-03-14 04:54:32\n") {
		t.Errorf("missing comparison header in %q", got)
	}
	if !strings.Contains(got, "Прошло 1h0m0s\n") {
		t.Errorf("missing interval line in %q", got)
	}
	if !strings.Contains(got, fmt.Sprintf("BaS: %14s", "1,234,567")) {
		t.Errorf("missing grouped delta in %q", got)
	}
	// Largest delta first, ties break alphabetically.
	bas := strings.Index(got, "BaS:")
	ggo := strings.Index(got, "GGO:")
	mfa := strings.Index(got, "MFA:")
	if !(bas < ggo && ggo < mfa) {
		t.Errorf("row order wrong: BaS=%d GGO=%d MFA=%d", bas, ggo, mfa)
	}
}

func TestGroupDigits(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{3140163399, "3,140,163,399"},
		{-1234567, "-1,234,567"},
	}
	for _, c := range cases {
		if got := groupDigits(c.in); got != c.want {
			t.Errorf("groupDigits(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
