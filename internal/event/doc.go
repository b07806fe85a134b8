// Package event provides the types and parsing helpers for Fitnesspark
// course events.
//
// The event package handles event representation and identification plus the
// small text classifiers the scraper relies on: time-range splitting, status
// labels, and room labels. Each event is assigned a deterministic SHA1-based
// ID generated from its start instant, class name, trainer, and location,
// enabling stable calendar UIDs across scrapes.
package event
