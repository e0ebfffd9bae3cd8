package conflict

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calassist/cmd/internal/domain/entity"
)

type fakeEventSource struct {
	events []*entity.CalendarEvent
	err    error
}

func (f *fakeEventSource) EventsBetween(userID, dayStart, dayEnd int64) ([]*entity.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.CalendarEvent
	for _, ev := range f.events {
		if ev.UserID == userID && ev.StartsAt >= dayStart && ev.StartsAt < dayEnd {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakePreferenceSource struct {
	pref *entity.UserPreference
	err  error
}

func (f *fakePreferenceSource) GetOrCreate(userID int64) (*entity.UserPreference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pref, nil
}

type fakeAuditSink struct {
	entries []*entity.ConflictDetectionLog
	err     error
}

func (f *fakeAuditSink) Append(entry *entity.ConflictDetectionLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func defaultPreference() *entity.UserPreference {
	return &entity.UserPreference{
		UserID:                 1,
		WorkDayStart:           "09:00",
		WorkDayEnd:             "17:00",
		DefaultEventDuration:   60,
		BufferTimeBeforeEvents: 15,
		BufferTimeAfterEvents:  15,
	}
}

func newTestEngine(events *fakeEventSource, prefs *fakePreferenceSource, audit *fakeAuditSink) *Engine {
	return NewEngine(events, prefs, audit)
}

func checkRequest(start, end string) *CheckRequest {
	return &CheckRequest{
		EventTitle:   "sync",
		ProposedDate: testDate,
		StartTime:    start,
		EndTime:      end,
	}
}

// Scenario: one event 10:00-11:00, proposal 10:30-11:30. 30 minutes of
// overlap is MODERATE.
func TestCheckConflictModerateOverlap(t *testing.T) {
	events := &fakeEventSource{events: []*entity.CalendarEvent{testEvent(t, 1, "10:00", "11:00")}}
	audit := &fakeAuditSink{}
	engine := newTestEngine(events, &fakePreferenceSource{pref: defaultPreference()}, audit)

	result, err := engine.CheckConflict(checkRequest("10:30", "11:30"), 1)
	require.NoError(t, err)

	assert.True(t, result.HasConflict)
	require.Len(t, result.ConflictingEvents, 1)
	assert.Equal(t, int64(1), result.ConflictingEvents[0].ID)
	assert.Equal(t, SeverityModerate, result.Severity)
	assert.Equal(t, "found 1 conflicting event(s), consider adjusting the time", result.Message)

	assert.NotEmpty(t, result.Suggestions)
	assert.LessOrEqual(t, len(result.Suggestions), maxSuggestions)
	assert.True(t, sort.SliceIsSorted(result.Suggestions, func(i, j int) bool {
		return result.Suggestions[i].Confidence > result.Suggestions[j].Confidence
	}))

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, int64(1), entry.UserID)
	assert.Equal(t, testDate, entry.ProposedDate)
	assert.True(t, entry.HasConflict)
	assert.Equal(t, 1, entry.ConflictCount)
	assert.Equal(t, string(SeverityModerate), entry.Severity)
	assert.False(t, entry.AiSuggestionUsed)
}

// Scenario: one event 10:00-11:00, proposal 12:00-13:00. The buffered
// proposal 11:45-13:15 does not reach the event.
func TestCheckConflictNoConflict(t *testing.T) {
	events := &fakeEventSource{events: []*entity.CalendarEvent{testEvent(t, 1, "10:00", "11:00")}}
	audit := &fakeAuditSink{}
	engine := newTestEngine(events, &fakePreferenceSource{pref: defaultPreference()}, audit)

	result, err := engine.CheckConflict(checkRequest("12:00", "13:00"), 1)
	require.NoError(t, err)

	assert.False(t, result.HasConflict)
	assert.Empty(t, result.ConflictingEvents)
	assert.Equal(t, SeverityNone, result.Severity)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, "no conflict in this time slot", result.Message)

	require.Len(t, audit.entries, 1)
	assert.False(t, audit.entries[0].HasConflict)
	assert.Equal(t, 0, audit.entries[0].ConflictCount)
}

func TestCheckConflictUsesPreferenceBuffer(t *testing.T) {
	// Gap of 20 minutes between event end and proposal start: a conflict
	// with the default 15-minute buffer only if the preference widens it.
	events := &fakeEventSource{events: []*entity.CalendarEvent{testEvent(t, 1, "10:00", "11:00")}}
	pref := defaultPreference()
	pref.BufferTimeBeforeEvents = 30
	engine := newTestEngine(events, &fakePreferenceSource{pref: pref}, &fakeAuditSink{})

	result, err := engine.CheckConflict(checkRequest("11:20", "12:00"), 1)
	require.NoError(t, err)

	assert.True(t, result.HasConflict)
	assert.Equal(t, SeverityMinor, result.Severity) // buffered-only, zero actual overlap
}

func TestCheckConflictIdempotent(t *testing.T) {
	events := &fakeEventSource{events: []*entity.CalendarEvent{
		testEvent(t, 1, "10:00", "11:00"),
		testEvent(t, 2, "11:30", "12:30"),
	}}
	engine := newTestEngine(events, &fakePreferenceSource{pref: defaultPreference()}, &fakeAuditSink{})

	first, err := engine.CheckConflict(checkRequest("10:30", "11:45"), 1)
	require.NoError(t, err)
	second, err := engine.CheckConflict(checkRequest("10:30", "11:45"), 1)
	require.NoError(t, err)

	assert.Equal(t, first.HasConflict, second.HasConflict)
	assert.Equal(t, first.Severity, second.Severity)
	assert.Equal(t, first.ConflictingEvents, second.ConflictingEvents)
	assert.Equal(t, first.Suggestions, second.Suggestions)
}

func TestCheckConflictAuditFailureSwallowed(t *testing.T) {
	events := &fakeEventSource{events: []*entity.CalendarEvent{testEvent(t, 1, "10:00", "11:00")}}
	audit := &fakeAuditSink{err: errors.New("sink down")}
	engine := newTestEngine(events, &fakePreferenceSource{pref: defaultPreference()}, audit)

	result, err := engine.CheckConflict(checkRequest("10:30", "11:30"), 1)
	require.NoError(t, err)

	assert.True(t, result.HasConflict)
	assert.Equal(t, SeverityModerate, result.Severity)
}

// A failing preference read degrades the result: the check still runs
// with the default buffer but no suggestions are produced.
func TestCheckConflictPreferenceFailureDegrades(t *testing.T) {
	events := &fakeEventSource{events: []*entity.CalendarEvent{testEvent(t, 1, "10:00", "11:00")}}
	prefs := &fakePreferenceSource{err: errors.New("store down")}
	engine := newTestEngine(events, prefs, &fakeAuditSink{})

	result, err := engine.CheckConflict(checkRequest("10:30", "11:30"), 1)
	require.NoError(t, err)

	assert.True(t, result.HasConflict)
	assert.Equal(t, SeverityModerate, result.Severity)
	assert.Empty(t, result.Suggestions)
}

func TestCheckConflictEventFetchFailure(t *testing.T) {
	events := &fakeEventSource{err: errors.New("store down")}
	engine := newTestEngine(events, &fakePreferenceSource{pref: defaultPreference()}, &fakeAuditSink{})

	result, err := engine.CheckConflict(checkRequest("10:00", "11:00"), 1)
	require.NoError(t, err)

	assert.False(t, result.HasConflict)
	assert.Equal(t, SeverityNone, result.Severity)
	assert.Contains(t, result.Message, "unavailable")
}

func TestCheckConflictRejectsMalformedInput(t *testing.T) {
	engine := newTestEngine(&fakeEventSource{}, &fakePreferenceSource{pref: defaultPreference()}, &fakeAuditSink{})

	tests := []struct {
		name string
		req  *CheckRequest
	}{
		{"bad date", &CheckRequest{ProposedDate: "03/10/2025", StartTime: "10:00", EndTime: "11:00"}},
		{"bad start time", &CheckRequest{ProposedDate: testDate, StartTime: "25:61", EndTime: "11:00"}},
		{"bad end time", &CheckRequest{ProposedDate: testDate, StartTime: "10:00", EndTime: "noon"}},
		{"end before start", &CheckRequest{ProposedDate: testDate, StartTime: "11:00", EndTime: "10:00"}},
		{"zero length", &CheckRequest{ProposedDate: testDate, StartTime: "10:00", EndTime: "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.CheckConflict(tt.req, 1)
			assert.Error(t, err)
		})
	}
}

// Scenario: default preferences, 60 minutes. Morning 09:00-10:00 at 0.8
// and afternoon 14:00-15:00 at 0.75.
func TestSmartSuggestionsDefaultPreferences(t *testing.T) {
	engine := newTestEngine(&fakeEventSource{}, &fakePreferenceSource{pref: defaultPreference()}, &fakeAuditSink{})

	result, err := engine.SmartSuggestions(&SuggestionsRequest{Date: testDate, Duration: 60}, 1)
	require.NoError(t, err)

	assert.Equal(t, testDate, result.Date)
	require.NotNil(t, result.Preferences)
	assert.Equal(t, "found 2 optimal time slot(s)", result.Message)

	require.Len(t, result.OptimalSlots, 2)
	assert.Equal(t, "09:00", result.OptimalSlots[0].StartTime)
	assert.Equal(t, "10:00", result.OptimalSlots[0].EndTime)
	assert.Equal(t, 0.8, result.OptimalSlots[0].Confidence)
	assert.Equal(t, "14:00", result.OptimalSlots[1].StartTime)
	assert.Equal(t, "15:00", result.OptimalSlots[1].EndTime)
	assert.Equal(t, 0.75, result.OptimalSlots[1].Confidence)
}

func TestSmartSuggestionsRejectsMalformedInput(t *testing.T) {
	engine := newTestEngine(&fakeEventSource{}, &fakePreferenceSource{pref: defaultPreference()}, &fakeAuditSink{})

	_, err := engine.SmartSuggestions(&SuggestionsRequest{Date: "next tuesday", Duration: 60}, 1)
	assert.Error(t, err)

	_, err = engine.SmartSuggestions(&SuggestionsRequest{Date: testDate, Duration: 0}, 1)
	assert.Error(t, err)
}

func TestSmartSuggestionsPreferenceFailure(t *testing.T) {
	engine := newTestEngine(&fakeEventSource{}, &fakePreferenceSource{err: errors.New("store down")}, &fakeAuditSink{})

	_, err := engine.SmartSuggestions(&SuggestionsRequest{Date: testDate, Duration: 60}, 1)
	assert.Error(t, err)
}
