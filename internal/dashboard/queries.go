package dashboard

import (
	"time"

	"github.com/grishanin/antlog/internal/models"
	"gorm.io/gorm"
)

// UnparsedRow holds one unparsed raw-text line for review display.
type UnparsedRow struct {
	ID       uint      `json:"id"`
	Dt       time.Time `json:"dt"`
	Message  string    `json:"message"`
	Type     string    `json:"type"`
	FilePath string    `json:"file_path"`
}

// UnparsedLines returns raw-text rows that failed parsing, newest first.
func UnparsedLines(db *gorm.DB, limit int) ([]UnparsedRow, error) {
	if limit <= 0 {
		limit = 100
	}
	var recs []models.RawText
	if err := db.Where("parsed = ?", false).
		Order("dt DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}

	rows := make([]UnparsedRow, len(recs))
	for i, r := range recs {
		rows[i] = UnparsedRow{
			ID:       r.ID,
			Dt:       time.Unix(r.Dt, 0).UTC(),
			Message:  r.Message,
			Type:     r.Type,
			FilePath: r.FilePath,
		}
	}
	return rows, nil
}

// CreatureRow holds one creature event for display.
type CreatureRow struct {
	Dt            time.Time `json:"dt"`
	Type          string    `json:"type"`
	Creature      string    `json:"creature"`
	CreatureLevel int       `json:"creature_level"`
	Donor         *string   `json:"donor,omitempty"`
	DonorLevel    *int      `json:"donor_level,omitempty"`
}

// RecentCreatures returns the latest creature events, newest first.
func RecentCreatures(db *gorm.DB, limit int) ([]CreatureRow, error) {
	if limit <= 0 {
		limit = 100
	}
	var recs []models.WildCreature
	if err := db.Order("dt DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}

	rows := make([]CreatureRow, len(recs))
	for i, r := range recs {
		rows[i] = CreatureRow{
			Dt:            time.Unix(r.Dt, 0).UTC(),
			Type:          r.Type,
			Creature:      r.Creature,
			CreatureLevel: r.CreatureLevel,
			Donor:         r.DonorCreature,
			DonorLevel:    r.DonorCreatureLevel,
		}
	}
	return rows, nil
}

// StatRow holds one alliance row of the most recent kill-stat snapshot.
type StatRow struct {
	Dt       time.Time `json:"dt"`
	Alliance string    `json:"alliance"`
	Username string    `json:"username"`
	Kills    int64     `json:"kills"`
}

// LatestStats returns all alliance rows sharing the most recent snapshot
// timestamp, highest kills first. An empty table yields an empty slice.
func LatestStats(db *gorm.DB) ([]StatRow, error) {
	var latest models.KillStat
	err := db.Order("dt DESC").Limit(1).Find(&latest).Error
	if err != nil {
		return nil, err
	}
	if latest.Dt == 0 {
		return []StatRow{}, nil
	}

	var recs []models.KillStat
	if err := db.Where("dt = ?", latest.Dt).
		Order("kills DESC").Find(&recs).Error; err != nil {
		return nil, err
	}

	rows := make([]StatRow, len(recs))
	for i, r := range recs {
		rows[i] = StatRow{
			Dt:       time.Unix(r.Dt, 0).UTC(),
			Alliance: r.Alliance,
			Username: r.Username,
			Kills:    r.Kills,
		}
	}
	return rows, nil
}
