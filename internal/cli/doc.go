// Package cli implements the command-line interface for fitnesspark-ical.
//
// The cli package provides the Cobra-based CLI with two commands: scrape runs
// one scrape cycle and prints the feed, serve runs the HTTP server with the
// periodic scrape schedule. It wires together the config, cache, scraper,
// worker and server packages.
package cli
