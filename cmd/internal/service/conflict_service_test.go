package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calassist/cmd/internal/conflict"
	"calassist/cmd/internal/domain/entity"
)

type fakeEngine struct {
	lastCheck       *conflict.CheckRequest
	lastSuggestions *conflict.SuggestionsRequest
	checkResult     *conflict.CheckResult
}

func (f *fakeEngine) CheckConflict(req *conflict.CheckRequest, userID int64) (*conflict.CheckResult, error) {
	f.lastCheck = req
	return f.checkResult, nil
}

func (f *fakeEngine) SmartSuggestions(req *conflict.SuggestionsRequest, userID int64) (*conflict.SuggestionsResult, error) {
	f.lastSuggestions = req
	return &conflict.SuggestionsResult{
		Date:        req.Date,
		Preferences: &entity.UserPreference{UserID: userID, WorkDayStart: "09:00", WorkDayEnd: "17:00"},
		Message:     "found 0 optimal time slot(s)",
	}, nil
}

func TestCheckConflictMapsEngineResult(t *testing.T) {
	engine := &fakeEngine{checkResult: &conflict.CheckResult{
		HasConflict: true,
		ConflictingEvents: []*entity.CalendarEvent{{
			ID: 3, UserID: 1, Title: "standup", Status: entity.StatusNotStarted,
		}},
		Severity: conflict.SeverityModerate,
		Message:  "found 1 conflicting event(s), consider adjusting the time",
	}}
	svc := NewConflictService(engine, newTestValidate())

	resp, apierr := svc.CheckConflict(&ConflictCheckRequest{
		ProposedDate: "2025-03-10",
		StartTime:    "10:30",
		EndTime:      "11:30",
	}, 1)
	require.Nil(t, apierr)

	assert.True(t, resp.HasConflict)
	assert.Equal(t, "MODERATE", resp.Severity)
	require.Len(t, resp.ConflictingEvents, 1)
	assert.Equal(t, "standup", resp.ConflictingEvents[0].Title)
	require.NotNil(t, engine.lastCheck)
	assert.Equal(t, "2025-03-10", engine.lastCheck.ProposedDate)
}

func TestCheckConflictValidationFailsFast(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewConflictService(engine, newTestValidate())

	_, apierr := svc.CheckConflict(&ConflictCheckRequest{
		ProposedDate: "10.03.2025",
		StartTime:    "10:30",
		EndTime:      "11:30",
	}, 1)

	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
	assert.Nil(t, engine.lastCheck, "engine must not run on invalid input")
}

func TestSmartSuggestionsDefaultsDuration(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewConflictService(engine, newTestValidate())

	_, apierr := svc.SmartSuggestions(&SmartSuggestionsRequest{Date: "2025-03-10"}, 1)
	require.Nil(t, apierr)

	require.NotNil(t, engine.lastSuggestions)
	assert.Equal(t, 60, engine.lastSuggestions.Duration)
}

func TestSmartSuggestionsRejectsBadDuration(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewConflictService(engine, newTestValidate())

	_, apierr := svc.SmartSuggestions(&SmartSuggestionsRequest{Date: "2025-03-10", Duration: 3}, 1)

	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
	assert.Nil(t, engine.lastSuggestions)
}
