package samiti

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
}

// NormalizeDate coerces a submitted date string to a calendar date. A blank
// value and a value that fails every layout both become nil rather than an
// error; a value carrying a time component is truncated to its date portion.
func NormalizeDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}

// FormatDate renders a stored date for the wire, empty when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
