// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// DateLayout is the calendar date format accepted by dashboard filters
const DateLayout = "2006-01-02"

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// ParseDateUTC parses a YYYY-MM-DD value as midnight UTC
func ParseDateUTC(value string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StartOfNextDay returns midnight UTC of the day after t
func StartOfNextDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}
