package conflict

import (
	"sort"

	"calassist/cmd/internal/domain/entity"
)

// TimeSuggestion is an alternative slot for a proposal that could not be
// scheduled as requested.
type TimeSuggestion struct {
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Confidence float64 `json:"confidence"` // in [0, 1]
	Reason     string  `json:"reason"`
}

const maxSuggestions = 5

// schedulePrefs is the minute-of-day view of a UserPreference row the
// strategies work with.
type schedulePrefs struct {
	workStart    int
	workEnd      int
	bufferBefore int
	bufferAfter  int
}

var defaultSchedulePrefs = schedulePrefs{
	workStart:    9 * 60,
	workEnd:      17 * 60,
	bufferBefore: DefaultBufferMinutes,
	bufferAfter:  DefaultBufferMinutes,
}

func newSchedulePrefs(p *entity.UserPreference) schedulePrefs {
	if p == nil {
		return defaultSchedulePrefs
	}
	ws, werr := ParseClock(p.WorkDayStart)
	we, eerr := ParseClock(p.WorkDayEnd)
	if werr != nil || eerr != nil || ws >= we {
		return defaultSchedulePrefs
	}
	return schedulePrefs{
		workStart:    ws,
		workEnd:      we,
		bufferBefore: p.BufferTimeBeforeEvents,
		bufferAfter:  p.BufferTimeAfterEvents,
	}
}

// strategyInput carries everything a strategy may look at. Strategies are
// pure functions over it.
type strategyInput struct {
	date          string
	duration      int // requested duration, minutes
	originalStart int // originally requested start, minute of day
	events        []*entity.CalendarEvent
	prefs         schedulePrefs
}

type strategy struct {
	name string
	run  func(strategyInput) []TimeSuggestion
}

// The closed set of suggestion strategies. Adding a strategy is a local
// change here.
var strategies = []strategy{
	{name: "adjacent-slot", run: adjacentSlots},
	{name: "next-day", run: nextDaySlots},
	{name: "preference-window", run: preferenceWindows},
}

// generateSuggestions runs every strategy, merges the candidates and
// returns the top suggestions ranked by confidence.
func generateSuggestions(in strategyInput) []TimeSuggestion {
	var merged []TimeSuggestion
	for _, s := range strategies {
		merged = append(merged, s.run(in)...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	if len(merged) > maxSuggestions {
		merged = merged[:maxSuggestions]
	}
	return merged
}

// adjacentSlots walks the free gaps of the proposed day: work-day start to
// first event, between consecutive events, and last event to work-day
// end. The trailing gap uses the after-event buffer and a fixed 0.7
// confidence.
func adjacentSlots(in strategyInput) []TimeSuggestion {
	var slots []TimeSuggestion
	p := in.prefs

	current := p.workStart
	for _, ev := range sortedActive(in.events) {
		eventStart := MinuteOfDay(ev.StartsAt)
		eventEnd := MinuteOfDay(ev.EndsAt)

		if eventStart-current >= in.duration+p.bufferBefore {
			start := current + p.bufferBefore
			slots = append(slots, TimeSuggestion{
				Date:       in.date,
				StartTime:  FormatClock(start),
				EndTime:    FormatClock(start + in.duration),
				Confidence: confidenceFor(current, in.originalStart),
				Reason:     "adjacent free slot",
			})
		}

		if eventEnd > current {
			current = eventEnd
		}
	}

	if p.workEnd-current >= in.duration+p.bufferAfter {
		start := current + p.bufferAfter
		slots = append(slots, TimeSuggestion{
			Date:       in.date,
			StartTime:  FormatClock(start),
			EndTime:    FormatClock(start + in.duration),
			Confidence: 0.7,
			Reason:     "evening free slot",
		})
	}
	return slots
}

// nextDaySlots scans offsets around the originally requested start on the
// following day, keeping slots strictly inside the work day.
func nextDaySlots(in strategyInput) []TimeSuggestion {
	next, err := nextDay(in.date)
	if err != nil {
		return nil
	}

	var slots []TimeSuggestion
	for offset := -60; offset <= 60; offset += 30 {
		start := in.originalStart + offset
		end := start + in.duration
		if start <= in.prefs.workStart || end >= in.prefs.workEnd {
			continue
		}
		slots = append(slots, TimeSuggestion{
			Date:       next,
			StartTime:  FormatClock(start),
			EndTime:    FormatClock(end),
			Confidence: confidenceFor(start, in.originalStart) * 0.8,
			Reason:     "same time next day",
		})
	}
	return slots
}

// preferenceWindows checks two fixed candidate windows: a morning window
// capped at 12:00 and an afternoon window starting at 14:00. It is the
// only strategy GetSmartSuggestions runs.
func preferenceWindows(in strategyInput) []TimeSuggestion {
	var slots []TimeSuggestion

	morningStart := max(in.prefs.workStart, 9*60)
	morningEnd := 12 * 60
	if morningEnd-morningStart >= in.duration {
		slots = append(slots, TimeSuggestion{
			Date:       in.date,
			StartTime:  FormatClock(morningStart),
			EndTime:    FormatClock(morningStart + in.duration),
			Confidence: 0.8,
			Reason:     "best morning slot",
		})
	}

	afternoonStart := 14 * 60
	afternoonEnd := min(in.prefs.workEnd, 17*60)
	if afternoonEnd-afternoonStart >= in.duration {
		slots = append(slots, TimeSuggestion{
			Date:       in.date,
			StartTime:  FormatClock(afternoonStart),
			EndTime:    FormatClock(afternoonStart + in.duration),
			Confidence: 0.75,
			Reason:     "best afternoon slot",
		})
	}
	return slots
}

// confidenceFor decays with the distance between a suggested start and
// the originally requested start.
func confidenceFor(suggested, original int) float64 {
	switch diff := absMinutes(suggested - original); {
	case diff <= 30:
		return 0.9
	case diff <= 60:
		return 0.7
	case diff <= 120:
		return 0.5
	default:
		return 0.3
	}
}

func sortedActive(events []*entity.CalendarEvent) []*entity.CalendarEvent {
	active := make([]*entity.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Status != entity.StatusCancelled {
			active = append(active, ev)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return MinuteOfDay(active[i].StartsAt) < MinuteOfDay(active[j].StartsAt)
	})
	return active
}
