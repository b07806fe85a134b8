package event

import (
	"regexp"
	"strconv"
)

// CourseStatus describes the booking state of a class.
type CourseStatus string

const (
	StatusAvailable CourseStatus = "available"
	StatusFull      CourseStatus = "full"
	StatusCancelled CourseStatus = "cancelled"
	StatusPending   CourseStatus = "pending"
	StatusUnknown   CourseStatus = "unknown"
)

// Pattern for "<n> Frei" (German: n free slots remaining).
var freeSlotsPattern = regexp.MustCompile(`(\d+)\s*Frei`)

// statusLabels maps exact upstream status strings to a status. The page has
// been served in two different character encodings historically, so the
// mojibake spelling of "verfügbar" must map the same as the correct one.
var statusLabels = map[string]CourseStatus{
	"nicht mehr verfügbar":  StatusCancelled,
	"nicht mehr verfÃ¼gbar": StatusCancelled,
	"ausgebucht":            StatusFull,
	"Anstehend":             StatusPending,
}

// ClassifyStatus maps a trimmed status cell text to a CourseStatus and a
// free-slot count. Only StatusAvailable carries a non-zero count.
func ClassifyStatus(text string) (CourseStatus, int) {
	if m := freeSlotsPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return StatusAvailable, n
	}
	if status, ok := statusLabels[text]; ok {
		return status, 0
	}
	return StatusUnknown, 0
}
