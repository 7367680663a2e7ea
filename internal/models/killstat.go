package models

// KillStat is one alliance row of a season kill-rating screenshot. A single
// screenshot produces several rows sharing the same dt. Natural key is
// (dt, alliance).
type KillStat struct {
	Dt       int64  `gorm:"primaryKey;autoIncrement:false"`
	Alliance string `gorm:"primaryKey;size:3"`
	UserID   string `gorm:"size:64;index"`
	Username string `gorm:"size:64"`
	Kills    int64
}
