package event

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultDurationMinutes is assumed when a time range has no end token.
const DefaultDurationMinutes = 60

// Separator between the two clock tokens. The upstream page uses both the
// ASCII hyphen and the EN DASH, always surrounded by whitespace.
var timeRangeSeparator = regexp.MustCompile(`\s[–-]\s`)

// SplitTimeRange splits a "HH:MM - HH:MM" range into its start and end
// labels. The end label is empty when the input holds a single time.
func SplitTimeRange(s string) (start, end string) {
	parts := timeRangeSeparator.Split(s, 2)
	start = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}

// DurationMinutes computes the duration of a time range in minutes. A range
// without an end token gets DefaultDurationMinutes; unparsable numeric
// components count as 0. A range wrapping past midnight ("23:30 - 00:15")
// yields a negative duration; known edge case, deliberately not corrected.
func DurationMinutes(s string) int {
	start, end := SplitTimeRange(s)
	if end == "" {
		return DefaultDurationMinutes
	}
	sh, sm := parseClock(start)
	eh, em := parseClock(end)
	return (eh*60 + em) - (sh*60 + sm)
}

// parseClock reads an "HH:MM" label, treating unparsable parts as 0.
func parseClock(s string) (hours, minutes int) {
	hh, mm, _ := strings.Cut(s, ":")
	hours, _ = strconv.Atoi(strings.TrimSpace(hh))
	minutes, _ = strconv.Atoi(strings.TrimSpace(mm))
	return hours, minutes
}
