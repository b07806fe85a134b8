// Package worker orchestrates the scheduled scrape.
//
// One run covers a fixed day window (yesterday onwards, reference timezone)
// across the configured shop set. Cached (shop, day) pairs are served
// directly; misses are queued and drained strictly one at a time with a
// pause between remote fetches, as politeness toward the scraped site. The
// drain is the only place remote calls happen, so at most one fetch is ever
// in flight.
package worker
