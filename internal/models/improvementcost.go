package models

// ImprovementCost is the static star-upgrade cost table, seeded from CSV by
// `antlog db seed-costs`. Natural key is (level_from, level_to).
type ImprovementCost struct {
	LevelFrom int `gorm:"primaryKey;autoIncrement:false"`
	LevelTo   int `gorm:"primaryKey;autoIncrement:false"`

	OptimizedCostSuccess int
	FullCost             int
	OptimizedCostFail    int

	OptimizedEggSuccess int
	OptimizedEggFail    int
	FullEgg             int
}
