package event

import (
	"testing"
	"time"
)

func TestParseHeaderDate(t *testing.T) {
	d, ok := ParseHeaderDate("Montag, 01.01.2024")
	if !ok {
		t.Fatal("expected header date to parse")
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 1 {
		t.Errorf("parsed %v, expected 2024-01-01", d)
	}
	if d.Location() != Zone() {
		t.Errorf("parsed in %v, expected %s", d.Location(), ReferenceTimezone)
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Errorf("expected wall-clock midnight, got %v", d)
	}
}

func TestParseHeaderDateRejectsBadInput(t *testing.T) {
	for _, input := range []string{
		"01.01.2024",         // no weekday prefix
		"Montag, 2024-01-01", // wrong date format
		"Montag, 32.01.2024", // impossible day
		"",
	} {
		if _, ok := ParseHeaderDate(input); ok {
			t.Errorf("ParseHeaderDate(%q) parsed, expected rejection", input)
		}
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, Zone())
	got := At(date, "10:30")
	expected := time.Date(2024, 1, 1, 10, 30, 0, 0, Zone())
	if !got.Equal(expected) {
		t.Errorf("At = %v, expected %v", got, expected)
	}
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, Zone())
	dates := Window(now, 7)

	if len(dates) != 7 {
		t.Fatalf("expected 7 dates, got %d", len(dates))
	}
	if DayKey(dates[0]) != "2024-06-14" {
		t.Errorf("window starts at %s, expected yesterday 2024-06-14", DayKey(dates[0]))
	}
	if DayKey(dates[6]) != "2024-06-20" {
		t.Errorf("window ends at %s, expected 2024-06-20", DayKey(dates[6]))
	}
	for i, d := range dates {
		if d.Hour() != 0 {
			t.Errorf("date %d is not wall-clock midnight: %v", i, d)
		}
	}
}

func TestDayKey(t *testing.T) {
	// 23:30 UTC on Jan 1 is already Jan 2 in Zurich.
	utc := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	if got := DayKey(utc); got != "2024-01-02" {
		t.Errorf("DayKey(%v) = %s, expected 2024-01-02", utc, got)
	}
}
