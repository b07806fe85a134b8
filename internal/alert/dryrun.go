package alert

import (
	"context"

	"go.uber.org/zap"

	"github.com/javierperezm/fitnesspark-ical/internal/scraper"
)

// LogNotifier writes the alert batch to the log instead of delivering it.
// Used when no webhook is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs every failure in the batch.
func (n *LogNotifier) Notify(_ context.Context, failures []scraper.ValidationResult) error {
	n.logger.Warn("structure alert (no webhook configured)",
		zap.Int("failures", len(failures)))
	for _, f := range failures {
		n.logger.Warn("validation failure",
			zap.Int("shop", f.Shop),
			zap.Time("timestamp", f.Timestamp),
			zap.Any("errors", f.Errors))
	}
	return nil
}
