package event

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// Event represents a single bookable Fitnesspark class instance.
type Event struct {
	Shop      int          `json:"shop"`
	Start     time.Time    `json:"fullDate"`
	TimeStart string       `json:"timeStart"`
	Duration  int          `json:"duration"` // minutes
	Name      string       `json:"name"`
	Status    CourseStatus `json:"status"`
	FreeSlots int          `json:"freeSlots"`
	Location  string       `json:"location"`
	Room      RoomID       `json:"room"`
	Trainer   string       `json:"trainer"`
}

// FilterOption is a selectable location or category sourced from the page
// filter controls. The lists are shared process-wide and reflect the most
// recent successful scrape.
type FilterOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ID returns a deterministic identifier for the event based on its start
// instant, name, trainer, and location. Used as the calendar UID.
func (e *Event) ID() string {
	h := sha1.New()
	fmt.Fprintf(h, "%d%s%s%s", e.Start.UnixMilli(), e.Name, e.Trainer, e.Location)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// End returns the event end instant derived from its duration.
func (e *Event) End() time.Time {
	return e.Start.Add(time.Duration(e.Duration) * time.Minute)
}
