package stats

// DiffResult compares a user's two most recent snapshots.
type DiffResult struct {
	PrevDate    string           // date of the older snapshot
	IntervalSec int64            // seconds between the two snapshots
	Diff        map[string]int64 // per-alliance kill delta
}

// Diff computes the kill delta between the user's two most recent
// snapshots. Alliances absent from the older snapshot count from zero.
// Returns nil when fewer than two snapshots exist.
func (h *History) Diff(userID string) (*DiffResult, error) {
	snaps, err := h.ForUser(userID)
	if err != nil {
		return nil, err
	}
	if len(snaps) < 2 {
		return nil, nil
	}
	prev, last := snaps[len(snaps)-2], snaps[len(snaps)-1]

	diff := make(map[string]int64, len(last.Stats))
	for alliance, kills := range last.Stats {
		diff[alliance] = kills - prev.Stats[alliance]
	}
	return &DiffResult{
		PrevDate:    prev.Date,
		IntervalSec: last.DateSec - prev.DateSec,
		Diff:        diff,
	}, nil
}

// DiffLatest computes the diff for whichever user posted most recently,
// used by the scheduled digest. Returns nil on an empty history.
func (h *History) DiffLatest() (*DiffResult, error) {
	snaps, err := h.Load()
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	latest := snaps[0]
	for _, s := range snaps[1:] {
		if s.DateSec > latest.DateSec {
			latest = s
		}
	}
	return h.Diff(latest.UserID)
}
