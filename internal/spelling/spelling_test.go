package spelling

import (
	"os"
	"path/filepath"
	"testing"
)

func testCorrector() *Corrector {
	return NewCorrector(NewDictionary([]string{
		"скорпион",
		"гигантский богомол",
		"жук атлас",
	}))
}

func TestCorrect_ShortTokenPassThrough(t *testing.T) {
	c := testCorrector()
	for _, tok := range []string{"", "а", "жук", "abc"} {
		if got := c.Correct(tok); got != tok {
			t.Errorf("Correct(%q) = %q, want unchanged", tok, got)
		}
	}
}

func TestCorrect_ExactMatch(t *testing.T) {
	c := testCorrector()
	if got := c.Correct("скорпион"); got != "скорпион" {
		t.Errorf("Correct = %q, want %q", got, "скорпион")
	}
}

func TestCorrect_WithinDistance(t *testing.T) {
	c := testCorrector()
	// OCR misread: "скоwрпион" is one insertion away from "скорпион".
	if got := c.Correct("скоwрпион"); got != "скорпион" {
		t.Errorf("Correct = %q, want %q", got, "скорпион")
	}
}

func TestCorrect_NoCloseEntry(t *testing.T) {
	c := testCorrector()
	if got := c.Correct("совершенно другое слово"); got != "совершенно другое слово" {
		t.Errorf("Correct = %q, want unchanged", got)
	}
}

func TestCorrect_FirstMatchWinsByDictionaryOrder(t *testing.T) {
	// Both entries are within distance 3 of the token; the earlier one
	// must win even though the later one is closer.
	c := NewCorrector(NewDictionary([]string{"паукк", "пауки"}))
	if got := c.Correct("пауки"); got != "паукк" {
		t.Errorf("Correct = %q, want first dictionary entry %q", got, "паукк")
	}
}

func TestCorrect_Idempotent(t *testing.T) {
	c := testCorrector()
	for _, tok := range []string{"скоwрпион", "жук  атлас", "нечто", "ab"} {
		once := c.Correct(tok)
		twice := c.Correct(once)
		if once != twice {
			t.Errorf("Correct not idempotent for %q: %q != %q", tok, once, twice)
		}
	}
}

func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	content := "скорпион\n\n  жук атлас  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	dict, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	if dict.Len() != 2 {
		t.Errorf("Len = %d, want 2", dict.Len())
	}
	c := NewCorrector(dict)
	if got := c.Correct("жук атлаз"); got != "жук атлас" {
		t.Errorf("Correct = %q, want %q", got, "жук атлас")
	}
}

func TestLoadDictionary_Missing(t *testing.T) {
	if _, err := LoadDictionary(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("want error for missing dictionary file")
	}
}
