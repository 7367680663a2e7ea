// Package pipeline runs one recognized-text batch through segmentation,
// classification and persistence, and reports an aggregate outcome.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/grishanin/antlog/internal/classify"
	"github.com/grishanin/antlog/internal/logparse"
	"github.com/grishanin/antlog/internal/models"
	"github.com/grishanin/antlog/internal/stats"
	"github.com/grishanin/antlog/internal/store"
)

// Report headers. The recognized text is dispatched to a flow when its
// header appears anywhere in the batch.
const (
	HeaderKillStats = "Рейтинг Убийств Альянса (Сезон)"
	HeaderAntGrants = "Запись о получении Оранжевых Спец"
	HeaderCreatures = "Журнал Оранжевых Существ"
)

// Notifier delivers review messages back to the submitting user.
// Delivery is best-effort; failures never affect persistence.
type Notifier interface {
	Notify(ctx context.Context, target, text string) error
}

// Message carries the chat context of the photo that produced a batch.
type Message struct {
	UserID   string
	Username string
	ReplyTo  string // notification target (channel or user)
	Date     int64  // unix seconds of the chat message
	FileName string // archival image file name, recorded in audit rows
}

// Summary aggregates per-batch outcomes. One line's failure never aborts
// its siblings.
type Summary struct {
	Parsed  int
	Failed  int
	Ignored int
	Skipped int
}

// Pipeline wires the segmenter, router, store, notifier and stat history
// into the per-message processing flow. Safe for concurrent use: all
// mutable state lives in the store, whose key constraints resolve races.
type Pipeline struct {
	store    *store.Store
	router   *classify.Router
	notifier Notifier
	history  *stats.History
}

// New creates a Pipeline. The router's existence checks run against st.
func New(st *store.Store, notifier Notifier, history *stats.History) *Pipeline {
	return &Pipeline{
		store:    st,
		router:   classify.NewRouter(st),
		notifier: notifier,
		history:  history,
	}
}

// Process dispatches one recognized-text batch by report header. Text
// matching no known header is ignored entirely.
func (p *Pipeline) Process(ctx context.Context, text string, msg Message) (Summary, error) {
	switch {
	case strings.Contains(text, HeaderKillStats):
		return p.processKillStats(ctx, text, msg)
	case strings.Contains(text, HeaderAntGrants):
		return p.processAntGrants(ctx, text, msg)
	case strings.Contains(text, HeaderCreatures):
		return p.processCreatures(ctx, text, msg)
	}
	return Summary{}, nil
}

// processCreatures handles the wild-creature journal: every segmented line
// is routed, parsed events are stored, and both parsed and failed lines
// get an audit row. Ignored and skipped lines leave no trace.
func (p *Pipeline) processCreatures(ctx context.Context, text string, msg Message) (Summary, error) {
	var sum Summary
	var errs []error

	for _, entry := range logparse.Segment(text) {
		dt, err := logparse.ParseTimestamp(entry.Timestamp)
		if err != nil {
			sum.Failed++
			p.notify(ctx, msg.ReplyTo, "Can't parse: "+strings.TrimSpace(entry.Body))
			log.Printf("pipeline: %s: bad timestamp %q", msg.FileName, entry.Timestamp)
			continue
		}
		body := logparse.Normalize(entry.Body)

		outcome, err := p.router.Route(ctx, dt, body)
		if err != nil {
			sum.Failed++
			errs = append(errs, err)
			continue
		}

		switch outcome.Kind {
		case classify.Parsed:
			if err := p.store.CreateCreature(ctx, dt, outcome.Event); err != nil {
				sum.Failed++
				errs = append(errs, err)
				continue
			}
			sum.Parsed++
			if err := p.auditCreature(ctx, dt, body, msg, true); err != nil {
				errs = append(errs, err)
			}
		case classify.Failed:
			sum.Failed++
			p.notify(ctx, msg.ReplyTo, "Can't parse: "+body)
			log.Printf("pipeline: %s can't parse %s %q", msg.FileName, entry.Timestamp, body)
			if err := p.auditCreature(ctx, dt, body, msg, false); err != nil {
				errs = append(errs, err)
			}
		case classify.Ignored:
			sum.Ignored++
		case classify.Skipped:
			sum.Skipped++
		}
	}
	return sum, errors.Join(errs...)
}

// auditCreature writes the raw-text audit row for a routed creature line.
func (p *Pipeline) auditCreature(ctx context.Context, dt int64, body string, msg Message, parsed bool) error {
	return p.store.CreateRawText(ctx, models.RawText{
		Dt:       dt,
		Message:  body,
		Type:     "creature",
		FilePath: msg.FileName,
		Parsed:   parsed,
	})
}

// processAntGrants handles the special-ant record. This flow writes no
// raw-text rows; failures are only reported back to the user.
func (p *Pipeline) processAntGrants(ctx context.Context, text string, msg Message) (Summary, error) {
	var sum Summary
	var errs []error

	for _, entry := range logparse.Segment(text) {
		body := logparse.Normalize(entry.Body)
		if body == "" {
			sum.Ignored++
			continue
		}
		dt, err := logparse.ParseTimestamp(entry.Timestamp)
		if err != nil {
			sum.Failed++
			p.notify(ctx, msg.ReplyTo, "Can't parse: "+body)
			continue
		}
		ev := classify.ClassifyAnt(body)
		if ev == nil {
			sum.Failed++
			p.notify(ctx, msg.ReplyTo, "Can't parse: "+body)
			log.Printf("pipeline: can't parse %q", body)
			continue
		}
		if err := p.store.CreateAntGrant(ctx, dt, ev.Ant, ev.Type); err != nil {
			sum.Failed++
			errs = append(errs, err)
			continue
		}
		sum.Parsed++
	}
	return sum, errors.Join(errs...)
}

// processKillStats handles the alliance kill rating: per-alliance rows are
// stored, the batch is appended to the snapshot history, and the diff
// against the user's previous snapshot is sent back.
func (p *Pipeline) processKillStats(ctx context.Context, text string, msg Message) (Summary, error) {
	var sum Summary
	var errs []error

	report := stats.ParseReport(text)
	log.Printf("pipeline: kill stats from %s (%s): %d alliances", msg.UserID, msg.Username, len(report))

	for alliance, kills := range report {
		rec := models.KillStat{
			Dt:       msg.Date,
			Alliance: alliance,
			UserID:   msg.UserID,
			Username: msg.Username,
			Kills:    kills,
		}
		if err := p.store.CreateKillStat(ctx, rec); err != nil {
			sum.Failed++
			errs = append(errs, err)
			continue
		}
		sum.Parsed++
	}

	snap := stats.NewSnapshot(msg.Date, msg.UserID, msg.Username, report)
	if err := p.history.Append(snap); err != nil {
		errs = append(errs, err)
	}

	diff, err := p.history.Diff(msg.UserID)
	if err != nil {
		errs = append(errs, err)
	} else {
		p.notify(ctx, msg.ReplyTo, stats.FormatDiff(diff))
	}
	return sum, errors.Join(errs...)
}

// notify sends a review message, best-effort.
func (p *Pipeline) notify(ctx context.Context, target, text string) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Notify(ctx, target, text); err != nil {
		log.Printf("pipeline: notify %s: %v", target, err)
	}
}

// Describe renders a Summary for operator output.
func (s Summary) Describe() string {
	return fmt.Sprintf("parsed=%d failed=%d ignored=%d skipped=%d",
		s.Parsed, s.Failed, s.Ignored, s.Skipped)
}
