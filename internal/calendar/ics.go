package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javierperezm/fitnesspark-ical/internal/event"
)

const productID = "-//fitnesspark-ical//schedule//DE"

// statusMarker prefixes the event summary so the booking state is visible
// in calendar clients that do not render descriptions.
var statusMarker = map[event.CourseStatus]string{
	event.StatusAvailable: "✅",
	event.StatusFull:      "❌",
	event.StatusCancelled: "❌",
	event.StatusPending:   "⏳",
	event.StatusUnknown:   "❓",
}

// Generate renders the events as a single VCALENDAR. Events are sorted
// chronologically; input order does not matter.
func Generate(name string, events []event.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(event.ReferenceTimezone)

	sorted := make([]event.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	stamp := time.Now().UTC()
	for _, e := range sorted {
		ve := cal.AddEvent(e.ID())
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(e.Start)
		ve.SetEndAt(e.End())
		ve.SetSummary(summary(e))
		ve.SetDescription(description(e))
		ve.SetLocation(e.Location)
	}

	return cal.Serialize()
}

func summary(e event.Event) string {
	title := e.Name
	if e.Trainer != "" {
		title = fmt.Sprintf("%s → %s", e.Name, e.Trainer)
	}
	marker, ok := statusMarker[e.Status]
	if !ok {
		marker = statusMarker[event.StatusUnknown]
	}
	return marker + " " + title
}

func description(e event.Event) string {
	lines := []string{
		fmt.Sprintf("Status: %s", e.Status),
	}
	if e.Status == event.StatusAvailable {
		lines = append(lines, fmt.Sprintf("Free slots: %d", e.FreeSlots))
	}
	if e.Trainer != "" {
		lines = append(lines, fmt.Sprintf("Trainer: %s", e.Trainer))
	}
	if e.Room != event.RoomUnknown {
		lines = append(lines, fmt.Sprintf("Room: %s", e.Room))
	}
	return strings.Join(lines, "\n")
}
