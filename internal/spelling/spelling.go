// Package spelling canonicalizes noisy OCR tokens against a fixed
// dictionary of known entity names.
package spelling

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxDistance is the largest edit distance still considered the same word.
const maxDistance = 3

// minCorrectableLen guards short tokens: below this length almost any
// dictionary word is within reach and corrections would be guesses.
const minCorrectableLen = 4

// Dictionary is an ordered, immutable list of canonical names. Order
// matters: the corrector returns the first entry within distance, not the
// closest one, so ties break by file order.
type Dictionary struct {
	words []string
}

// NewDictionary builds a Dictionary from the given words, preserving order.
func NewDictionary(words []string) *Dictionary {
	cp := make([]string, len(words))
	copy(cp, words)
	return &Dictionary{words: cp}
}

// LoadDictionary reads a newline-delimited dictionary file. Blank lines are
// skipped; entry order is preserved.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spelling: open dictionary %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("spelling: read dictionary %s: %w", path, err)
	}
	return &Dictionary{words: words}, nil
}

// Len returns the number of dictionary entries.
func (d *Dictionary) Len() int { return len(d.words) }

// Corrector maps noisy tokens to canonical dictionary entries.
type Corrector struct {
	dict *Dictionary
}

// NewCorrector creates a Corrector over the given dictionary.
func NewCorrector(dict *Dictionary) *Corrector {
	return &Corrector{dict: dict}
}

// Correct returns the first dictionary entry within edit distance 3 of the
// token, scanning in dictionary order. Tokens shorter than four characters
// pass through unchanged, as does any token with no close entry.
func (c *Corrector) Correct(token string) string {
	if len([]rune(token)) < minCorrectableLen {
		return token
	}
	for _, w := range c.dict.words {
		if levenshtein.ComputeDistance(token, w) <= maxDistance {
			return w
		}
	}
	return token
}
