package entity

// UserPreference holds per-user scheduling preferences. One row per user,
// lazily created with defaults on first access.
type UserPreference struct {
	ID                     int64  `gorm:"primaryKey"`
	UserID                 int64  `gorm:"not null;uniqueIndex"`
	WorkDayStart           string `gorm:"not null"` // "HH:MM"
	WorkDayEnd             string `gorm:"not null"` // "HH:MM", must be after WorkDayStart
	IncludeWeekends        bool   `gorm:"not null"`
	DefaultEventDuration   int    `gorm:"not null"` // minutes
	BufferTimeBeforeEvents int    `gorm:"not null"` // minutes
	BufferTimeAfterEvents  int    `gorm:"not null"` // minutes
	DefaultReminderTime    int    `gorm:"not null"` // minutes
	Theme                  string `gorm:"not null"`
	NotificationEnabled    bool   `gorm:"not null"`
	EmailNotifications     bool   `gorm:"not null"`
	CreatedAt              int64  `gorm:"not null"`
	UpdatedAt              int64  `gorm:"not null"`
}
