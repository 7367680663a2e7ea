package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grishanin/antlog/internal/classify"
	"github.com/grishanin/antlog/internal/config"
	"github.com/grishanin/antlog/internal/db"
	"github.com/grishanin/antlog/internal/models"
	"github.com/grishanin/antlog/internal/spelling"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Connect(config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	dict := spelling.NewDictionary([]string{"скорпион", "гигантский богомол", "события", "муравей бульдог"})
	return New(conn, spelling.NewCorrector(dict))
}

func TestCreateAntGrant_CorrectsAndDedups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateAntGrant(ctx, 100, "муравейй бульдог", "события"); err != nil {
		t.Fatal(err)
	}
	// Same key after correction: the second write is a no-op, not an error.
	if err := s.CreateAntGrant(ctx, 100, "муравей бульдог", "события"); err != nil {
		t.Fatal(err)
	}

	var rows []models.AntGrant
	if err := s.DB().Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Ant != "муравей бульдог" {
		t.Errorf("Ant = %q, want corrected name", rows[0].Ant)
	}
}

func TestCreateCreature_Grant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ev := &classify.CreatureEvent{Type: "события", Creature: "скоwрпион", CreatureLevel: 3}
	if err := s.CreateCreature(ctx, 200, ev); err != nil {
		t.Fatal(err)
	}

	var rec models.WildCreature
	if err := s.DB().First(&rec).Error; err != nil {
		t.Fatal(err)
	}
	if rec.Creature != "скорпион" {
		t.Errorf("Creature = %q, want %q", rec.Creature, "скорпион")
	}
	if rec.DonorCreature != nil {
		t.Errorf("DonorCreature = %v, want nil for a grant", *rec.DonorCreature)
	}
}

func TestCreateCreature_Upgrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ev := &classify.CreatureEvent{
		Type:          "успешное повышение звезды",
		Creature:      "скорпион",
		CreatureLevel: 7,
		Donor:         "гигантский богомл",
		DonorLevel:    6,
		HasDonor:      true,
	}
	if err := s.CreateCreature(ctx, 300, ev); err != nil {
		t.Fatal(err)
	}

	var rec models.WildCreature
	if err := s.DB().First(&rec).Error; err != nil {
		t.Fatal(err)
	}
	if rec.DonorCreature == nil || *rec.DonorCreature != "гигантский богомол" {
		t.Errorf("DonorCreature = %v, want corrected donor", rec.DonorCreature)
	}
	if rec.DonorCreatureLevel == nil || *rec.DonorCreatureLevel != 6 {
		t.Errorf("DonorCreatureLevel = %v, want 6", rec.DonorCreatureLevel)
	}
}

func TestCreatureExists_ProbesCorrectedKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ev := &classify.CreatureEvent{Type: "события", Creature: "скорпион", CreatureLevel: 3}
	if err := s.CreateCreature(ctx, 400, ev); err != nil {
		t.Fatal(err)
	}

	// The probe corrects its inputs, so a misspelled name still hits the
	// stored row.
	exists, err := s.CreatureExists(ctx, 400, "события", "скоwрпион", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("CreatureExists = false, want true for corrected name")
	}

	exists, err = s.CreatureExists(ctx, 400, "события", "скорпион", 4)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("CreatureExists = true for a different level, want false")
	}
}

func TestUpgradeExists_ByLabelAndTimestampOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ev := &classify.CreatureEvent{
		Type:          "неудачное повышение звезды",
		Creature:      "скорпион",
		CreatureLevel: 9,
		Donor:         "скорпион",
		DonorLevel:    8,
		HasDonor:      true,
	}
	if err := s.CreateCreature(ctx, 500, ev); err != nil {
		t.Fatal(err)
	}

	exists, err := s.UpgradeExists(ctx, "неудачное повышение звезды", 500)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("UpgradeExists = false, want true")
	}

	exists, err = s.UpgradeExists(ctx, "неудачное повышение звезды", 501)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("UpgradeExists = true at a different timestamp, want false")
	}
}

func TestCreateKillStat_Dedup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := models.KillStat{Dt: 600, Alliance: "GGO", UserID: "u1", Username: "ivan", Kills: 123456}
	if err := s.CreateKillStat(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.Kills = 999
	if err := s.CreateKillStat(ctx, rec); err != nil {
		t.Fatal(err)
	}

	var got models.KillStat
	if err := s.DB().First(&got).Error; err != nil {
		t.Fatal(err)
	}
	if got.Kills != 123456 {
		t.Errorf("Kills = %d, want the first write preserved", got.Kills)
	}
}

func TestCreateRawText(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := models.RawText{Dt: 700, Message: "нераспознанная строка", Type: "creature", FilePath: "700_u1.jpg", Parsed: false}
	if err := s.CreateRawText(ctx, rec); err != nil {
		t.Fatal(err)
	}

	var n int64
	if err := s.DB().Model(&models.RawText{}).Where("parsed = ?", false).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("unparsed rows = %d, want 1", n)
	}
}

func TestReplaceKillStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateKillStat(ctx, models.KillStat{Dt: 1, Alliance: "AAA", UserID: "u1", Username: "ivan", Kills: 1}); err != nil {
		t.Fatal(err)
	}

	rows := []models.KillStat{
		{Dt: 2, Alliance: "BBB", UserID: "u2", Username: "petr", Kills: 10},
		{Dt: 2, Alliance: "CCC", UserID: "u2", Username: "petr", Kills: 20},
	}
	if err := s.ReplaceKillStats(ctx, rows); err != nil {
		t.Fatal(err)
	}

	var got []models.KillStat
	if err := s.DB().Order("alliance").Find(&got).Error; err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].Alliance != "BBB" || got[1].Alliance != "CCC" {
		t.Errorf("alliances = %s, %s", got[0].Alliance, got[1].Alliance)
	}
}
