package cache

import (
	"testing"
	"time"

	"github.com/javierperezm/fitnesspark-ical/internal/event"
)

func TestEventsKey(t *testing.T) {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, event.Zone())

	got := EventsKey(169, date)
	expected := "fitnesspark-shop-day-events-169-2024-01-02"
	if got != expected {
		t.Errorf("EventsKey = %q, expected %q", got, expected)
	}
}

func TestEventsKeyUsesReferenceTimezoneDay(t *testing.T) {
	// 23:30 UTC is already the next day in Zurich; the key must follow the
	// reference timezone, not UTC.
	utc := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	if got := EventsKey(5, utc); got != "fitnesspark-shop-day-events-5-2024-01-02" {
		t.Errorf("EventsKey = %q, expected the Zurich-local day", got)
	}
}
