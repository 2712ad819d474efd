package schedule

import (
	"fmt"
	"time"
)

// WeeklyTemplate maps a weekday to the movement scheduled for it.
// Not every weekday needs to be present.
type WeeklyTemplate map[time.Weekday]Movement

// Cycle is a fixed, inclusive date range governed by one recurring
// weekly movement template.
type Cycle struct {
	Name     string         `json:"name"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Template WeeklyTemplate `json:"template"`
}

// Contains reports whether the given date falls within the cycle's
// inclusive [start, end] range. Only the calendar day matters.
func (c Cycle) Contains(date time.Time) bool {
	day := Day(date)
	return !day.Before(Day(c.Start)) && !day.After(Day(c.End))
}

// Day truncates a timestamp to its calendar day (UTC).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date string.
func ParseDay(s string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return day, nil
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}
