// Package server exposes the cached event feed over HTTP.
//
// The read endpoints never reach the upstream site; they serve whatever the
// cache holds. The cron endpoint triggers a scrape cycle and is guarded by a
// shared secret.
package server
