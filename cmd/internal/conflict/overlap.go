package conflict

import "calassist/cmd/internal/domain/entity"

// DefaultBufferMinutes is the margin applied around a proposed interval
// when no user preference is available.
const DefaultBufferMinutes = 15

// overlaps reports whether the proposed interval, expanded by buffer
// minutes on both ends, is not disjoint from the event interval. All
// values are minutes since midnight on the same day.
func overlaps(proposedStart, proposedEnd, eventStart, eventEnd, buffer int) bool {
	bufferedStart := proposedStart - buffer
	bufferedEnd := proposedEnd + buffer
	return !(bufferedEnd < eventStart || bufferedStart > eventEnd)
}

// findConflicts returns the non-cancelled events whose intervals collide
// with the buffered proposal, preserving the input order.
func findConflicts(events []*entity.CalendarEvent, proposedStart, proposedEnd, buffer int) []*entity.CalendarEvent {
	var conflicts []*entity.CalendarEvent
	for _, ev := range events {
		if ev.Status == entity.StatusCancelled {
			continue
		}
		if overlaps(proposedStart, proposedEnd, MinuteOfDay(ev.StartsAt), MinuteOfDay(ev.EndsAt), buffer) {
			conflicts = append(conflicts, ev)
		}
	}
	return conflicts
}
