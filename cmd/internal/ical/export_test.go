package ical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calassist/cmd/internal/domain/entity"
)

func TestEncode(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	events := []*entity.CalendarEvent{{
		UID:         "11111111-2222-3333-4444-555555555555",
		Title:       "design review",
		Description: "quarterly planning",
		Location:    "room 4",
		StartsAt:    start.UnixMilli(),
		EndsAt:      start.Add(time.Hour).UnixMilli(),
	}}

	data, err := Encode(events)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "VERSION:2.0")
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "UID:11111111-2222-3333-4444-555555555555")
	assert.Contains(t, out, "SUMMARY:design review")
	assert.Contains(t, out, "LOCATION:room 4")
	assert.Contains(t, out, "DTSTART:20250310T100000Z")
	assert.Contains(t, out, "DTEND:20250310T110000Z")
	assert.Contains(t, out, "END:VCALENDAR")
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
}
