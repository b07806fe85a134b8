// Package cache provides the Redis-backed event cache, its key scheme and
// the freshness policy for cached schedule days.
package cache
