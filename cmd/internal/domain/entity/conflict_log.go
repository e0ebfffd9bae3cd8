package entity

// ConflictDetectionLog is an append-only audit record, written once per
// conflict check and never updated.
type ConflictDetectionLog struct {
	ID                int64  `gorm:"primaryKey"`
	UserID            int64  `gorm:"not null;index"`
	ProposedDate      string `gorm:"not null"` // "YYYY-MM-DD"
	ProposedStartTime string `gorm:"not null"` // "HH:MM"
	ProposedEndTime   string `gorm:"not null"` // "HH:MM"
	HasConflict       bool   `gorm:"not null"`
	ConflictCount     int    `gorm:"not null"`
	Severity          string `gorm:"not null"`
	AiSuggestionUsed  bool   `gorm:"not null"` // reserved for a future assistant loop
	CreatedAt         int64  `gorm:"not null"`
}
