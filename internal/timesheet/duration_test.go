package timesheet

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00:00"},
		{6*time.Hour + 16*time.Minute + 2*time.Second, "6:16:02"},
		{10*time.Hour + 27*time.Minute + 5*time.Second, "10:27:05"},
		{59 * time.Second, "0:00:59"},
		{1500 * time.Millisecond, "0:00:01"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTotal(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{54*time.Minute + 47*time.Second, "00:54:47"},
		{32*time.Hour + 54*time.Minute + 47*time.Second, "32:54:47"},
		{125 * time.Hour, "125:00:00"},
		{-30 * time.Minute, "-00:30:00"},
		{-(8*time.Hour + 5*time.Second), "-08:00:05"},
	}

	for _, tt := range tests {
		if got := FormatTotal(tt.in); got != tt.want {
			t.Errorf("FormatTotal(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
