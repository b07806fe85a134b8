package cache

import (
	"fmt"
	"time"

	"github.com/javierperezm/fitnesspark-ical/internal/event"
)

// Shared keys holding the most-recently-observed filter option lists. Every
// successful scrape overwrites them; readers get the latest (last-write-wins).
const (
	KeyLocations  = "locations"
	KeyCategories = "categories"
)

// EventsKey is the cache key for the event list of one (shop, day) pair. The
// day component is the date in the reference timezone, so a key never
// straddles two local days.
func EventsKey(shop int, date time.Time) string {
	return fmt.Sprintf("fitnesspark-shop-day-events-%d-%s", shop, event.DayKey(date))
}
