package model

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-03-07", "3/7/2025", "03/07/2025", " 2025-03-07 "} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "tomorrow", "2025-13-01", "32/01/2025"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q): expected error", in)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-07 10:15:30", time.Date(2025, time.March, 7, 10, 15, 30, 0, time.UTC)},
		{"2025-03-07 10:15", time.Date(2025, time.March, 7, 10, 15, 0, 0, time.UTC)},
		{"3/7/2025 10:15", time.Date(2025, time.March, 7, 10, 15, 0, 0, time.UTC)},
		{"2025-03-07T12:15:30+02:00", time.Date(2025, time.March, 7, 10, 15, 30, 0, time.UTC)},
		{"2025-03-07", time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseTimestamp("yesterday at noon"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}
