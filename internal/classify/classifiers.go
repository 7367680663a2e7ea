package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Keyword triggers. A classifier only runs when its trigger is present in
// the normalized body, keeping false positives low.
const (
	TriggerGrant   = "получено"
	TriggerDegrade = "неудачное повышение звезды"
	TriggerSuccess = "успешное повышение звезды"
	TriggerAnt     = "из за муравья"

	// Ignorable lines: resource-cost records that carry no event.
	TriggerBreakthrough = "для прорыва"
	TriggerQuickUpgrade = "для быстрого повышения"
)

// Grammar patterns. Bodies are already normalized (lowercased, hyphens
// replaced), and the OCR garbles punctuation freely, so the patterns accept
// any single character where a colon or closing bracket should be.
var (
	grantRe   = regexp.MustCompile(`^в результате (.+?) получено. (.+?) ?\(.*?(\d+)`)
	degradeRe = regexp.MustCompile(`^(неудачное повышение звезды) (.+?) \(.*?(\d+).*[,.] (.+?) ?\(.*?(\d+).*деградировал`)
	successRe = regexp.MustCompile(`^(успешное повышение звезды) (.+?) ?\(.*?(\d+).*? потрачено. (.+?) ?\(.*?(\d+)`)
	antRe     = regexp.MustCompile(`^из за муравья(.+?), получил\(.\) (.+?)$`)
)

// GrantClassifier extracts creature grants ("в результате X получено: Y (N").
// The level bound rejects multi-digit OCR misreads.
type GrantClassifier struct {
	MaxLevel int // accepted levels are strictly below this
}

// Classify returns the grant event, or nil when the grammar does not match
// or the level is out of bounds.
func (c GrantClassifier) Classify(body string) *CreatureEvent {
	m := grantRe.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	level, err := strconv.Atoi(m[3])
	if err != nil || level >= c.MaxLevel {
		return nil
	}
	return &CreatureEvent{
		Type:          m[1],
		Creature:      m[2],
		CreatureLevel: level,
	}
}

// UpgradeClassifier extracts star-upgrade outcomes (failed upgrades that
// degrade the donor, or successful upgrades that consume it). Level bounds
// differ between the two grammars, so both are explicit fields; a zero
// DonorMaxLevel disables the donor bound.
type UpgradeClassifier struct {
	Pattern       *regexp.Regexp
	MaxLevel      int
	DonorMaxLevel int
}

// Classify returns the upgrade event, or nil on grammar mismatch or a level
// out of bounds.
func (c UpgradeClassifier) Classify(body string) *CreatureEvent {
	m := c.Pattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	level, err := strconv.Atoi(m[3])
	if err != nil || level >= c.MaxLevel {
		return nil
	}
	donorLevel, err := strconv.Atoi(m[5])
	if err != nil {
		return nil
	}
	if c.DonorMaxLevel > 0 && donorLevel >= c.DonorMaxLevel {
		return nil
	}
	return &CreatureEvent{
		Type:          m[1],
		Creature:      m[2],
		CreatureLevel: level,
		Donor:         m[4],
		DonorLevel:    donorLevel,
		HasDonor:      true,
	}
}

// NewDegradeClassifier matches failed star upgrades. Only the upgraded
// creature's level is bounded.
func NewDegradeClassifier() UpgradeClassifier {
	return UpgradeClassifier{Pattern: degradeRe, MaxLevel: 11}
}

// NewSuccessClassifier matches successful star upgrades; both levels are
// bounded.
func NewSuccessClassifier() UpgradeClassifier {
	return UpgradeClassifier{Pattern: successRe, MaxLevel: 11, DonorMaxLevel: 10}
}

// ClassifyAnt extracts a special-ant grant ("из за муравья X, получил(а) Y").
// Returns nil when the grammar does not match.
func ClassifyAnt(body string) *AntEvent {
	m := antRe.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	return &AntEvent{
		Type: strings.TrimSpace(m[1]),
		Ant:  strings.TrimSpace(m[2]),
	}
}
