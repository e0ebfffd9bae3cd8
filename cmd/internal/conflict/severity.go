package conflict

import "calassist/cmd/internal/domain/entity"

// Severity classifies how much a proposal collides with existing events.
type Severity string

const (
	SeverityNone     Severity = "NONE"
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

// conflictMinutes is the actual (unbuffered) overlap between the proposal
// and an event, floored at zero. A buffered-only conflict contributes
// nothing to the total instead of a negative duration.
func conflictMinutes(proposedStart, proposedEnd, eventStart, eventEnd int) int {
	start := max(proposedStart, eventStart)
	end := min(proposedEnd, eventEnd)
	if end <= start {
		return 0
	}
	return end - start
}

// classifySeverity maps the summed unbuffered overlap minutes across all
// conflicts to a tier. Thresholds: 0 conflicts -> NONE, <=15 -> MINOR,
// <=60 -> MODERATE, >60 -> SEVERE.
func classifySeverity(conflicts []*entity.CalendarEvent, proposedStart, proposedEnd int) Severity {
	if len(conflicts) == 0 {
		return SeverityNone
	}

	total := 0
	for _, ev := range conflicts {
		total += conflictMinutes(proposedStart, proposedEnd, MinuteOfDay(ev.StartsAt), MinuteOfDay(ev.EndsAt))
	}

	switch {
	case total <= 15:
		return SeverityMinor
	case total <= 60:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}
