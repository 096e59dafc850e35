package util

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD) as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseDateDefault parses a date or returns def if s is empty or invalid.
func ParseDateDefault(s string, def time.Time) time.Time {
	if s == "" {
		return def
	}
	t, err := ParseDate(s)
	if err != nil {
		return def
	}
	return t
}

// Midnight truncates t to UTC midnight, the canonical bar/pivot date form.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time { return Midnight(time.Now()) }
