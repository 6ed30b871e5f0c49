// ABOUTME: Calendar-date helpers shared by the models and storage layers.
// ABOUTME: Dates are carried as UTC midnight of the caller's local calendar day.
package models

import "time"

// DateFormat is the layout used to store and display calendar dates.
const DateFormat = "2006-01-02"

// Truncate drops the clock from t, keeping the calendar day as seen in t's
// own location. The result is midnight UTC so dates compare with Equal.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar day.
func Today() time.Time {
	return Truncate(time.Now())
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
