// Package classify turns normalized log-entry bodies into typed game
// events. Each grammar has its own classifier, gated by a keyword trigger;
// the Router tries them in a fixed order and tags the result.
package classify

// Kind is the routing outcome for a single log entry.
type Kind int

const (
	// Failed means no grammar matched (or a numeric field was out of
	// bounds); the line needs human review.
	Failed Kind = iota
	// Parsed means a classifier produced a typed event.
	Parsed
	// Ignored means the line is a known non-event (breakthrough costs,
	// quick-upgrade costs, blank bodies) and is dropped silently.
	Ignored
	// Skipped means the event was already recorded; no duplicate write.
	Skipped
)

// String returns the outcome kind name.
func (k Kind) String() string {
	switch k {
	case Failed:
		return "failed"
	case Parsed:
		return "parsed"
	case Ignored:
		return "ignored"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// Outcome is the tagged result of routing one entry.
type Outcome struct {
	Kind   Kind
	Event  *CreatureEvent // set when Kind == Parsed
	Reason string         // set when Kind == Skipped
}

// CreatureEvent is a typed wild-creature log event. Grant events have no
// donor; upgrade events (successful or failed) consume one.
type CreatureEvent struct {
	Type          string // event label: grant source or upgrade phrase
	Creature      string
	CreatureLevel int
	Donor         string // empty for grants
	DonorLevel    int
	HasDonor      bool
}

// AntEvent is a typed special-ant grant.
type AntEvent struct {
	Type string // acquisition mechanism
	Ant  string
}
