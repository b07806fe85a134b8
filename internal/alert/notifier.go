package alert

import (
	"context"

	"github.com/javierperezm/fitnesspark-ical/internal/scraper"
)

// Notifier defines the interface for delivering a batch of structure-drift
// findings out of band.
type Notifier interface {
	// Notify delivers one batch of validation failures.
	Notify(ctx context.Context, failures []scraper.ValidationResult) error
}
