package stats

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"
)

// Snapshot is one kill-rating batch as stored in the history file, one
// JSON object per line.
type Snapshot struct {
	Date     string           `json:"date"` // "2006-01-02 15:04:05", derived from DateSec
	DateSec  int64            `json:"date_sec"`
	UserID   string           `json:"user_id"`
	Username string           `json:"username"`
	Stats    map[string]int64 `json:"stats"`
}

// NewSnapshot builds a Snapshot with Date derived from dateSec (UTC).
func NewSnapshot(dateSec int64, userID, username string, stats map[string]int64) Snapshot {
	return Snapshot{
		Date:     time.Unix(dateSec, 0).UTC().Format("2006-01-02 15:04:05"),
		DateSec:  dateSec,
		UserID:   userID,
		Username: username,
		Stats:    stats,
	}
}

// History is the append-only JSON-lines snapshot log. Appends are
// serialized; reads open the file fresh each time.
type History struct {
	path string
	mu   sync.Mutex
}

// NewHistory creates a History over the given file path. The file is
// created on first append.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Append writes one snapshot line to the history file.
func (h *History) Append(snap Snapshot) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("stats: marshal snapshot: %w", err)
	}
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("stats: open history %s: %w", h.path, err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("stats: append history: %w", err)
	}
	return nil
}

// Load reads every snapshot in the history file. A missing file is an
// empty history, not an error.
func (h *History) Load() ([]Snapshot, error) {
	f, err := os.Open(h.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats: open history %s: %w", h.path, err)
	}
	defer f.Close()

	var snaps []Snapshot
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(line, &snap); err != nil {
			return nil, fmt.Errorf("stats: parse history line: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stats: read history %s: %w", h.path, err)
	}
	return snaps, nil
}

// ForUser returns the user's snapshots sorted by date ascending.
func (h *History) ForUser(userID string) ([]Snapshot, error) {
	snaps, err := h.Load()
	if err != nil {
		return nil, err
	}
	var out []Snapshot
	for _, s := range snaps {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
