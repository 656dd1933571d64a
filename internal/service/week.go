package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/luvi2001/yfcapp/internal/apperr"
)

// Accepted date layouts. The mobile client sends Date.toDateString()
// ("Mon Mar 03 2025"); other callers send ISO dates or full timestamps.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon Jan 02 2006",
	"Mon Jan 2 2006",
	"Jan 2, 2006",
}

// ParseDate reads a caller supplied calendar date and returns its UTC
// midnight. Timestamps keep the calendar day written in their own offset.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperr.Invalid(field, "is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, apperr.Invalid(field, "cannot parse date %q", s)
}

// Day truncates t to midnight UTC of the calendar date it shows.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Week is a canonical Monday..Sunday pair, both at midnight UTC.
type Week struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the week containing the calendar date of t.
func WeekOf(t time.Time) Week {
	day := Day(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start := day.AddDate(0, 0, -offset)
	return Week{Start: start, End: start.AddDate(0, 0, 6)}
}

func (w Week) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// NormalizeWeek parses the supplied boundaries and snaps them to the
// canonical week of weekStart. weekEnd must land in that same week.
func NormalizeWeek(weekStart, weekEnd string) (Week, error) {
	start, err := ParseDate("weekStart", weekStart)
	if err != nil {
		return Week{}, err
	}
	end, err := ParseDate("weekEnd", weekEnd)
	if err != nil {
		return Week{}, err
	}
	w := WeekOf(start)
	if !w.Contains(end) {
		return Week{}, apperr.Invalid("weekEnd", "must fall in the week starting %s", w.Start.Format("2006-01-02"))
	}
	return w, nil
}

// MonthRange returns [first day of month, first day of next month).
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// ParseMonthYear reads a 1-12 month and a four digit year from query strings.
func ParseMonthYear(month, year string) (int, time.Month, error) {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, apperr.Invalid("month", "must be 1-12, got %q", month)
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1900 || y > 9999 {
		return 0, 0, apperr.Invalid("year", "invalid year %q", year)
	}
	return y, time.Month(m), nil
}
