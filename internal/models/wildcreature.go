package models

// WildCreature records one wild-creature log event: a grant, or the outcome
// of a star upgrade (successful or failed). Upgrade events carry the donor
// creature that was consumed. Natural key is (dt, type, creature,
// creature_level).
type WildCreature struct {
	Dt                 int64  `gorm:"primaryKey;autoIncrement:false"`
	Type               string `gorm:"primaryKey;size:191"` // event label, e.g. the upgrade phrase or grant source
	Creature           string `gorm:"primaryKey;size:191"`
	CreatureLevel      int    `gorm:"primaryKey;autoIncrement:false"`
	DonorCreature      *string `gorm:"size:191"`
	DonorCreatureLevel *int
}
