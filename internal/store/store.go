// Package store is the persistence gateway. Writes are upsert-if-absent:
// a duplicate natural key is logged and swallowed, never an error. Entity
// names pass through the spelling corrector at this boundary, on probes as
// well as writes, so dedup sees the same canonical names the tables hold.
package store

import (
	"context"
	"fmt"
	"log"

	"github.com/grishanin/antlog/internal/classify"
	"github.com/grishanin/antlog/internal/models"
	"github.com/grishanin/antlog/internal/spelling"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps the database handle and the entity corrector.
type Store struct {
	db        *gorm.DB
	corrector *spelling.Corrector
}

// New creates a Store.
func New(db *gorm.DB, corrector *spelling.Corrector) *Store {
	return &Store{db: db, corrector: corrector}
}

// DB exposes the underlying handle for read-only dashboard queries.
func (s *Store) DB() *gorm.DB { return s.db }

// CreateAntGrant records an ant grant, correcting both name fields. A row
// with the same (dt, ant) key is left untouched.
func (s *Store) CreateAntGrant(ctx context.Context, dt int64, ant, grantType string) error {
	rec := models.AntGrant{
		Dt:   dt,
		Ant:  s.corrector.Correct(ant),
		Type: s.corrector.Correct(grantType),
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if res.Error != nil {
		return fmt.Errorf("store: create ant grant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("store: ant grant already exists: dt=%d ant=%q", rec.Dt, rec.Ant)
	}
	return nil
}

// CreateCreature records a creature event at the given timestamp. Name
// fields are corrected; levels are stored as extracted. A row with the
// same (dt, type, creature, level) key is left untouched.
func (s *Store) CreateCreature(ctx context.Context, dt int64, ev *classify.CreatureEvent) error {
	rec := models.WildCreature{
		Dt:            dt,
		Type:          s.corrector.Correct(ev.Type),
		Creature:      s.corrector.Correct(ev.Creature),
		CreatureLevel: ev.CreatureLevel,
	}
	if ev.HasDonor {
		donor := s.corrector.Correct(ev.Donor)
		donorLevel := ev.DonorLevel
		rec.DonorCreature = &donor
		rec.DonorCreatureLevel = &donorLevel
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if res.Error != nil {
		return fmt.Errorf("store: create creature event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("store: creature event already exists: dt=%d type=%q creature=%q level=%d",
			rec.Dt, rec.Type, rec.Creature, rec.CreatureLevel)
	}
	return nil
}

// CreatureExists probes for a creature event by its full natural key,
// with names corrected the same way writes are.
func (s *Store) CreatureExists(ctx context.Context, dt int64, eventType, creature string, level int) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.WildCreature{}).
		Where("dt = ? AND type = ? AND creature = ? AND creature_level = ?",
			dt, s.corrector.Correct(eventType), s.corrector.Correct(creature), level).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("store: creature exists: %w", err)
	}
	return n > 0, nil
}

// UpgradeExists probes for any upgrade event with this label at this
// timestamp. The creature name is intentionally not part of the probe.
func (s *Store) UpgradeExists(ctx context.Context, label string, dt int64) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.WildCreature{}).
		Where("type = ? AND dt = ?", label, dt).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("store: upgrade exists: %w", err)
	}
	return n > 0, nil
}

// CreateKillStat records one alliance row of a kill-rating snapshot. A row
// with the same (dt, alliance) key is left untouched.
func (s *Store) CreateKillStat(ctx context.Context, rec models.KillStat) error {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if res.Error != nil {
		return fmt.Errorf("store: create kill stat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("store: kill stat already exists: dt=%d alliance=%s", rec.Dt, rec.Alliance)
	}
	return nil
}

// CreateRawText appends an audit row for a routed log line.
func (s *Store) CreateRawText(ctx context.Context, rec models.RawText) error {
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("store: create raw text: %w", err)
	}
	return nil
}

// ReplaceKillStats rebuilds the kill-stat table from the given rows, used
// by the history reimport maintenance command.
func (s *Store) ReplaceKillStats(ctx context.Context, rows []models.KillStat) error {
	db := s.db.WithContext(ctx)
	if err := db.Migrator().DropTable(&models.KillStat{}); err != nil {
		return fmt.Errorf("store: drop kill stats: %w", err)
	}
	if err := db.AutoMigrate(&models.KillStat{}); err != nil {
		return fmt.Errorf("store: migrate kill stats: %w", err)
	}
	for _, rec := range rows {
		if err := s.CreateKillStat(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
