package conflict

import "time"

// The engine does single-day interval arithmetic: all comparisons happen
// on minute-of-day values in UTC. Buffered bounds crossing midnight are
// not handled.

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"

	minutesPerDay = 24 * 60
)

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(m int) string {
	return time.Date(0, 1, 1, 0, m, 0, 0, time.UTC).Format(clockLayout)
}

// MinuteOfDay returns the minute-of-day component of a UTC epoch-millis
// instant.
func MinuteOfDay(millis int64) int {
	return int(millis/60000) % minutesPerDay
}

// dayWindow returns the UTC epoch-millis half-open window [start, end)
// covering the given "YYYY-MM-DD" date.
func dayWindow(date string) (int64, int64, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, 0, err
	}
	return t.UnixMilli(), t.AddDate(0, 0, 1).UnixMilli(), nil
}

func nextDay(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(dateLayout), nil
}

func absMinutes(m int) int {
	if m < 0 {
		return -m
	}
	return m
}
