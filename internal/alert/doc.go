// Package alert delivers structure-drift notifications.
//
// The orchestrator batches all validation failures of one run and hands them
// to a single Notifier call after the scrape queue drains. Delivery is best
// effort: a failing notifier never fails the run.
package alert
