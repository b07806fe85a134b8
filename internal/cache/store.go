// Package cache provides the key-value store the scraper caches results in,
// plus the key scheme and TTL policy for per-shop per-day entries.
package cache

import (
	"context"
	"time"
)

// Store is the capability interface the scraper consumes. Get distinguishes
// a miss (false, nil) from a store failure (false, err); callers decide
// whether a failure degrades to a miss. Set persists without expiry, Expire
// attaches a lifetime afterwards.
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
