package cache

import (
	"math"
	"time"
)

const (
	// MinTTL applies to days less than 24h ahead, where seat counts still
	// move.
	MinTTL = time.Hour
	// MaxTTL applies from the end of the scrape window onwards.
	MaxTTL = 24 * time.Hour

	windowHours = 7 * 24
)

// TTL computes the cache lifetime for events on the target date. Inside the
// window the lifetime ramps linearly from MinTTL at 24h ahead to MaxTTL at
// 168h ahead: further-future days change less often, and the ramp avoids a
// hard cliff. Pure function of (target, now), rounded to whole seconds.
func TTL(target, now time.Time) time.Duration {
	hoursAhead := target.Sub(now).Hours()

	switch {
	case hoursAhead < 24:
		return MinTTL
	case hoursAhead >= windowHours:
		return MaxTTL
	}

	minSec := MinTTL.Seconds()
	maxSec := MaxTTL.Seconds()
	sec := minSec + (hoursAhead-24)*((maxSec-minSec)/(windowHours-24))
	return time.Duration(math.Round(sec)) * time.Second
}
