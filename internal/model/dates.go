package model

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the storage format of claim timestamps (always UTC).
const TimestampLayout = "2006-01-02 15:04:05"

var dateLayouts = []string{
	DateLayout,
	"1/2/2006",
	"01/02/2006",
}

var timestampLayouts = []string{
	time.RFC3339,
	TimestampLayout,
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// ParseDate parses a calendar date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseTimestamp parses a date and time in any of the accepted layouts.
// Timestamps without a zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := ParseDate(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
