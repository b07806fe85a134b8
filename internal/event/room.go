package event

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RoomID identifies where a class takes place. Positive values are numbered
// course rooms, RoomPool marks pool classes, RoomUnknown is the default when
// the room cell cannot be classified.
type RoomID int

const (
	RoomUnknown RoomID = 0
	RoomPool    RoomID = -1
)

var courseRoomPattern = regexp.MustCompile(`Kursraum\s+(\d+)`)

// ClassifyRoom maps a trimmed room cell text to a RoomID. The numbered
// course-room pattern takes precedence over the pool keyword when both are
// present ("Bad Kursraum 2" is room 2, not the pool).
func ClassifyRoom(text string) RoomID {
	if strings.Contains(text, "Bad") && !strings.Contains(text, "Kursraum") {
		return RoomPool
	}
	if m := courseRoomPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return RoomID(n)
	}
	return RoomUnknown
}

func (r RoomID) String() string {
	if r == RoomPool {
		return "pool"
	}
	return strconv.Itoa(int(r))
}

// MarshalJSON encodes the pool sentinel as the string "pool" and every other
// room as its number, matching the cached wire format.
func (r RoomID) MarshalJSON() ([]byte, error) {
	if r == RoomPool {
		return []byte(`"pool"`), nil
	}
	return []byte(strconv.Itoa(int(r))), nil
}

// UnmarshalJSON accepts either a room number or the string "pool".
func (r *RoomID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "pool" {
			*r = RoomPool
			return nil
		}
		return fmt.Errorf("unexpected room value %q", s)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("parsing room: %w", err)
	}
	*r = RoomID(n)
	return nil
}
