package db

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/grishanin/antlog/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.AntGrant{},
		&models.WildCreature{},
		&models.KillStat{},
		&models.RawText{},
		&models.ImprovementCost{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedCosts rebuilds the improvement-cost table from a semicolon-separated
// CSV file with a header row. Columns: level_from;level_to;
// optimized_cost_success;full_cost;optimized_cost_fail;
// optimized_egg_success;optimized_egg_fail;full_egg.
func SeedCosts(db *gorm.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("db: open costs %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	if _, err := r.Read(); err != nil { // header
		return fmt.Errorf("db: read costs header: %w", err)
	}

	if err := db.Migrator().DropTable(&models.ImprovementCost{}); err != nil {
		return fmt.Errorf("db: drop improvement_costs: %w", err)
	}
	if err := db.AutoMigrate(&models.ImprovementCost{}); err != nil {
		return fmt.Errorf("db: migrate improvement_costs: %w", err)
	}

	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("db: read costs line %d: %w", line+1, err)
		}
		line++
		if len(rec) < 8 {
			return fmt.Errorf("db: costs line %d: want 8 columns, got %d", line, len(rec))
		}
		vals := make([]int, 8)
		for i, s := range rec[:8] {
			v, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("db: costs line %d column %d: %w", line, i+1, err)
			}
			vals[i] = v
		}
		cost := models.ImprovementCost{
			LevelFrom:            vals[0],
			LevelTo:              vals[1],
			OptimizedCostSuccess: vals[2],
			FullCost:             vals[3],
			OptimizedCostFail:    vals[4],
			OptimizedEggSuccess:  vals[5],
			OptimizedEggFail:     vals[6],
			FullEgg:              vals[7],
		}
		if err := db.Create(&cost).Error; err != nil {
			return fmt.Errorf("db: insert cost %d->%d: %w", cost.LevelFrom, cost.LevelTo, err)
		}
	}
	return nil
}
