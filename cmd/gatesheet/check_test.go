package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goodtune/gatesheet/internal/attendance"
	"github.com/goodtune/gatesheet/internal/timesheet"
	"github.com/rs/zerolog"
)

func TestCheckLog_Sample(t *testing.T) {
	var out bytes.Buffer

	if err := checkLog(&out, sampleInput, timesheet.DefaultRules(), zerolog.Nop()); err != nil {
		t.Fatalf("checkLog failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"2019-02-04 (Monday)",
		"2019-02-07 (Thursday)",
		"(removed)",
		"Day 2019-02-07 Work 9:23:53 ot 32:54:47 00:54:47",
		"Swipes loaded:      22",
		"Central removed:    14",
		"Swipes kept:        8",
		"Report rows:        4",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestCheckLog_LoadError(t *testing.T) {
	input := writeInput(t, "Date;Event;Gate\n2019-02-04 08:00:00;Entry;A\n04/02/2019;Exit;A\n")

	var out bytes.Buffer
	err := checkLog(&out, input, timesheet.DefaultRules(), zerolog.Nop())
	if !errors.Is(err, attendance.ErrFormat) {
		t.Fatalf("Expected ErrFormat, got %v", err)
	}

	got := out.String()
	for _, want := range []string{"Wrong data format", "Line:  3", `"04/02/2019"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestCheckLog_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := checkLog(&out, filepath.Join(t.TempDir(), "absent.csv"), timesheet.DefaultRules(), zerolog.Nop())
	if !errors.Is(err, attendance.ErrIO) {
		t.Fatalf("Expected ErrIO, got %v", err)
	}
	if !strings.Contains(out.String(), "File reading error") {
		t.Errorf("Expected file reading error, got:\n%s", out.String())
	}
}

func TestKeptSwipes(t *testing.T) {
	base := time.Date(2019, 2, 4, 8, 0, 0, 0, time.UTC)
	records := attendance.Log{
		{Timestamp: base, Kind: attendance.Entry, Gate: "A"},
		{Timestamp: base.Add(time.Hour), Kind: attendance.Exit, Gate: "A"},
		{Timestamp: base.Add(2 * time.Hour), Kind: attendance.Entry, Gate: "A"},
		{Timestamp: base.Add(9 * time.Hour), Kind: attendance.Exit, Gate: "A"},
	}

	kept := keptSwipes(records, timesheet.Clean(records))
	want := []bool{true, false, false, true}

	for i := range want {
		if kept[i] != want[i] {
			t.Errorf("Record %d: expected kept=%v, got %v", i, want[i], kept[i])
		}
	}
}
