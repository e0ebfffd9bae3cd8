// Package ical renders calendar events as an iCalendar document.
package ical

import (
	"bytes"
	"time"

	goical "github.com/emersion/go-ical"

	"calassist/cmd/internal/domain/entity"
)

const productID = "-//calassist//calendar assistant//EN"

// Encode builds a VCALENDAR from the given events. Callers are expected
// to filter cancelled events beforehand.
func Encode(events []*entity.CalendarEvent) ([]byte, error) {
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropProductID, productID)
	cal.Props.SetText(goical.PropVersion, "2.0")

	now := time.Now().UTC()
	for _, ev := range events {
		vevent := goical.NewEvent()
		vevent.Props.SetText(goical.PropUID, ev.UID)
		vevent.Props.SetDateTime(goical.PropDateTimeStamp, now)
		vevent.Props.SetText(goical.PropSummary, ev.Title)
		if ev.Description != "" {
			vevent.Props.SetText(goical.PropDescription, ev.Description)
		}
		if ev.Location != "" {
			vevent.Props.SetText(goical.PropLocation, ev.Location)
		}
		vevent.Props.SetDateTime(goical.PropDateTimeStart, time.UnixMilli(ev.StartsAt).UTC())
		vevent.Props.SetDateTime(goical.PropDateTimeEnd, time.UnixMilli(ev.EndsAt).UTC())
		cal.Children = append(cal.Children, vevent.Component)
	}

	var buf bytes.Buffer
	if err := goical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
