package event

import (
	"strings"
	"sync"
	"time"
)

// ReferenceTimezone is the fixed zone used to interpret every date and time
// label on the upstream page, regardless of server locale.
const ReferenceTimezone = "Europe/Zurich"

var (
	zoneOnce sync.Once
	zone     *time.Location
)

// Zone returns the reference timezone.
func Zone() *time.Location {
	zoneOnce.Do(func() {
		var err error
		zone, err = time.LoadLocation(ReferenceTimezone)
		if err != nil {
			// Containers without tzdata still get a usable offset.
			zone = time.FixedZone("CET", 3600)
		}
	})
	return zone
}

// ParseHeaderDate parses a date-header cell like "Montag, 01.01.2024" into a
// wall-clock midnight in the reference timezone. The second return value is
// false when the text does not follow the expected shape.
func ParseHeaderDate(text string) (time.Time, bool) {
	_, datePart, found := strings.Cut(text, ", ")
	if !found {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("02.01.2006", strings.TrimSpace(datePart), Zone())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// At combines a calendar date with an "HH:MM" label into a zoned instant.
func At(date time.Time, clock string) time.Time {
	h, m := parseClock(clock)
	d := date.In(Zone())
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, Zone())
}

// DayKey formats an instant as its yyyy-mm-dd date in the reference
// timezone. Used both for upstream query parameters and cache keys.
func DayKey(t time.Time) string {
	return t.In(Zone()).Format("2006-01-02")
}

// StartOfDay returns wall-clock midnight of t's day in the reference
// timezone. This is deliberately not UTC midnight.
func StartOfDay(t time.Time) time.Time {
	d := t.In(Zone())
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, Zone())
}

// Window returns `days` consecutive dates starting the day before now in the
// reference timezone. The scrape window deliberately reaches one day back so
// classes late yesterday stay on the feed across midnight.
func Window(now time.Time, days int) []time.Time {
	start := StartOfDay(now).AddDate(0, 0, -1)
	dates := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}
