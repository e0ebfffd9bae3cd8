package entity

// Event type values.
const (
	EventTypeMeeting     = "MEETING"
	EventTypeAppointment = "APPOINTMENT"
	EventTypeTask        = "TASK"
	EventTypeReminder    = "REMINDER"
	EventTypePersonal    = "PERSONAL"
	EventTypeOther       = "OTHER"
)

// Priority values.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Status values. Cancelled events are kept as rows but are excluded
// from conflict evaluation and export.
const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Visibility values.
const (
	VisibilityPublic  = "PUBLIC"
	VisibilityPrivate = "PRIVATE"
	VisibilityShared  = "SHARED"
)

type CalendarEvent struct {
	ID          int64  `gorm:"primaryKey"`
	UID         string `gorm:"not null;uniqueIndex"` // iCalendar UID, assigned on creation
	UserID      int64  `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Location    string
	StartsAt    int64 `gorm:"not null"` // epoch millis, UTC
	EndsAt      int64 `gorm:"not null"`
	Timezone    string
	EventType   string `gorm:"not null"`
	Priority    string `gorm:"not null"`
	AllDay      bool   `gorm:"not null"`
	Status      string `gorm:"not null"`
	Visibility  string `gorm:"not null"`
	CreatedAt   int64  `gorm:"not null"`
	UpdatedAt   int64  `gorm:"not null"`
}
