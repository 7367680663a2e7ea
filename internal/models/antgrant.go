package models

// AntGrant records the acquisition of a named special ant. The natural key
// is (dt, ant): the same ant granted at the same second is one event.
type AntGrant struct {
	Dt   int64  `gorm:"primaryKey;autoIncrement:false"`
	Ant  string `gorm:"primaryKey;size:191"`
	Type string `gorm:"size:191"` // acquisition mechanism, as written in the log
}
