// Package scraper provides HTTP fetching and HTML parsing for Fitnesspark
// class schedules.
//
// The scraper fetches the booking shop's course list endpoint per shop and
// day, unwraps the JSON envelope around the rendered HTML fragment, and
// extracts typed events plus the location/category filter lists. A structure
// validator inspects every fetched document against the shapes the extractor
// expects, so upstream HTML drift surfaces as an alert instead of silently
// degraded data.
package scraper
