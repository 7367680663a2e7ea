package models

// RawText is the audit trail of segmented log lines. Every routed creature
// line is recorded here with its parse outcome so unparsed lines can be
// reviewed later. Rows are append-only.
type RawText struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Dt       int64  `gorm:"index"`
	Message  string `gorm:"type:text"`
	Type     string `gorm:"size:16"` // event kind, e.g. "creature"
	FilePath string `gorm:"size:128"`
	Parsed   bool   `gorm:"default:false;index"`
}
