// Package conflict implements the conflict detection and suggestion
// engine. It decides whether a proposed event collides with a user's
// existing calendar, classifies the severity of a collision, and proposes
// alternative time slots ranked by confidence. The engine is stateless
// and performs no I/O of its own: it reads through the three narrow
// interfaces below and returns decision objects.
//
// The engine is a decision aid, not a locking scheduler. Two concurrent
// checks that both observe a free slot can still lead to a double-booking
// if both callers go on to create an event; serializing bookings is the
// calendar store's problem, not handled here.
package conflict

import (
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"calassist/cmd/internal/domain/entity"
)

type EventSource interface {
	// EventsBetween returns the user's non-cancelled events with a start
	// inside [dayStart, dayEnd), ordered by start time.
	EventsBetween(userID, dayStart, dayEnd int64) ([]*entity.CalendarEvent, error)
}

type PreferenceSource interface {
	// GetOrCreate returns the user's preference row, creating it with
	// defaults on first access.
	GetOrCreate(userID int64) (*entity.UserPreference, error)
}

type AuditSink interface {
	Append(entry *entity.ConflictDetectionLog) error
}

// CheckRequest is a proposal to schedule an event.
type CheckRequest struct {
	EventTitle   string
	ProposedDate string // "YYYY-MM-DD"
	StartTime    string // "HH:MM"
	EndTime      string // "HH:MM"
	Location     string
	Description  string
}

// CheckResult is the decision for a CheckRequest. It is always produced,
// even when a collaborator read fails; only malformed input yields an
// error instead.
type CheckResult struct {
	HasConflict       bool
	ConflictingEvents []*entity.CalendarEvent
	Severity          Severity
	Suggestions       []TimeSuggestion
	Message           string
}

type SuggestionsRequest struct {
	Date      string // "YYYY-MM-DD"
	Duration  int    // minutes
	EventType string
	Location  string
}

type SuggestionsResult struct {
	Date         string
	OptimalSlots []TimeSuggestion
	Preferences  *entity.UserPreference
	Message      string
}

type Engine struct {
	events EventSource
	prefs  PreferenceSource
	audit  AuditSink
}

func NewEngine(events EventSource, prefs PreferenceSource, audit AuditSink) *Engine {
	return &Engine{events: events, prefs: prefs, audit: audit}
}

// CheckConflict evaluates a proposal against the user's existing events
// on the proposed date. The overlap buffer is driven from the user's
// before-event buffer preference, falling back to the fixed default when
// the preference row cannot be loaded; in that degraded case the result
// carries no suggestions.
func (e *Engine) CheckConflict(req *CheckRequest, userID int64) (*CheckResult, error) {
	proposedStart, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", req.StartTime, err)
	}
	proposedEnd, err := ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", req.EndTime, err)
	}
	if proposedEnd <= proposedStart {
		return nil, errors.New("end time must be after start time")
	}
	dayStart, dayEnd, err := dayWindow(req.ProposedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid proposed date %q: %w", req.ProposedDate, err)
	}

	events, err := e.events.EventsBetween(userID, dayStart, dayEnd)
	if err != nil {
		log.Errorf("failed to fetch events for user %d on %s: %v", userID, req.ProposedDate, err)
		return &CheckResult{
			HasConflict: false,
			Severity:    SeverityNone,
			Message:     "conflict check unavailable: could not read existing events",
		}, nil
	}

	prefs, perr := e.prefs.GetOrCreate(userID)
	if perr != nil {
		log.Errorf("failed to load preferences for user %d: %v", userID, perr)
		prefs = nil
	}

	buffer := DefaultBufferMinutes
	if prefs != nil {
		buffer = prefs.BufferTimeBeforeEvents
	}

	conflicts := findConflicts(events, proposedStart, proposedEnd, buffer)
	severity := classifySeverity(conflicts, proposedStart, proposedEnd)

	var suggestions []TimeSuggestion
	if len(conflicts) > 0 && prefs != nil {
		suggestions = generateSuggestions(strategyInput{
			date:          req.ProposedDate,
			duration:      proposedEnd - proposedStart,
			originalStart: proposedStart,
			events:        events,
			prefs:         newSchedulePrefs(prefs),
		})
	}

	e.emitAudit(userID, req, len(conflicts), severity)

	message := "no conflict in this time slot"
	if len(conflicts) > 0 {
		message = fmt.Sprintf("found %d conflicting event(s), consider adjusting the time", len(conflicts))
	}

	return &CheckResult{
		HasConflict:       len(conflicts) > 0,
		ConflictingEvents: conflicts,
		Severity:          severity,
		Suggestions:       suggestions,
		Message:           message,
	}, nil
}

// SmartSuggestions proposes optimal slots for a date and duration without
// a concrete proposal to collide with. Only the preference-window
// strategy runs, uncapped.
func (e *Engine) SmartSuggestions(req *SuggestionsRequest, userID int64) (*SuggestionsResult, error) {
	if _, _, err := dayWindow(req.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("invalid duration %d", req.Duration)
	}

	prefs, err := e.prefs.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("load preferences for user %d: %w", userID, err)
	}

	slots := preferenceWindows(strategyInput{
		date:     req.Date,
		duration: req.Duration,
		prefs:    newSchedulePrefs(prefs),
	})

	return &SuggestionsResult{
		Date:         req.Date,
		OptimalSlots: slots,
		Preferences:  prefs,
		Message:      fmt.Sprintf("found %d optimal time slot(s)", len(slots)),
	}, nil
}

// emitAudit appends a detection record, best effort. A sink failure is
// logged and never alters the decision.
func (e *Engine) emitAudit(userID int64, req *CheckRequest, conflictCount int, severity Severity) {
	entry := &entity.ConflictDetectionLog{
		UserID:            userID,
		ProposedDate:      req.ProposedDate,
		ProposedStartTime: req.StartTime,
		ProposedEndTime:   req.EndTime,
		HasConflict:       conflictCount > 0,
		ConflictCount:     conflictCount,
		Severity:          string(severity),
		AiSuggestionUsed:  false,
		CreatedAt:         time.Now().UTC().UnixMilli(),
	}
	if err := e.audit.Append(entry); err != nil {
		log.Errorf("failed to append conflict detection log for user %d: %v", userID, err)
	}
}
