package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/javierperezm/fitnesspark-ical/internal/alert"
	"github.com/javierperezm/fitnesspark-ical/internal/cache"
	"github.com/javierperezm/fitnesspark-ical/internal/event"
	"github.com/javierperezm/fitnesspark-ical/internal/scraper"
)

const (
	// DefaultWindowDays covers yesterday through five days ahead.
	DefaultWindowDays = 7
	// DefaultDelay is the pause between two remote fetches. Configurable,
	// never removed: the upstream site must not see request bursts.
	DefaultDelay = 750 * time.Millisecond
)

// Fetcher retrieves the rendered schedule HTML for one shop and day.
type Fetcher interface {
	FetchDay(ctx context.Context, shop int, date time.Time) (string, error)
}

// task describes one queued (shop, day) scrape.
type task struct {
	shop int
	date time.Time
}

// FetchFailure records a (shop, day) pair that could not be scraped. The run
// skips the pair and continues; failures surface in the run result.
type FetchFailure struct {
	Shop int       `json:"shop"`
	Date time.Time `json:"date"`
	Err  string    `json:"error"`
}

// Result aggregates one orchestrator run.
type Result struct {
	Events             []event.Event
	ValidationFailures []scraper.ValidationResult
	FetchFailures      []FetchFailure
	CacheHits          int
	Scraped            int
}

// Options tunes a Worker. Zero values select the defaults.
type Options struct {
	Shops      []int
	WindowDays int
	Delay      time.Duration
}

// Worker runs scrape cycles against the cache and the remote schedule
// source. A single Worker must not run overlapping cycles against the same
// cache keys; runs are not coordinated.
type Worker struct {
	store     cache.Store
	fetcher   Fetcher
	extractor *scraper.Extractor
	notifier  alert.Notifier
	logger    *zap.Logger

	shops      []int
	windowDays int
	delay      time.Duration

	now func() time.Time
}

// New creates a Worker.
func New(store cache.Store, fetcher Fetcher, extractor *scraper.Extractor, notifier alert.Notifier, logger *zap.Logger, opts Options) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if len(opts.Shops) == 0 {
		opts.Shops = []int{169}
	}
	return &Worker{
		store:      store,
		fetcher:    fetcher,
		extractor:  extractor,
		notifier:   notifier,
		logger:     logger,
		shops:      opts.Shops,
		windowDays: opts.WindowDays,
		delay:      opts.Delay,
		now:        time.Now,
	}
}

// Run executes one scrape cycle: serve cache hits, queue misses, drain the
// queue sequentially, then send at most one batched drift alert. The result
// event order follows enqueue order and is not chronological; consumers must
// sort if they need an ordering.
func (w *Worker) Run(ctx context.Context) (*Result, error) {
	dates := event.Window(w.now(), w.windowDays)
	result := &Result{}

	var queue []task
	for _, date := range dates {
		for _, shop := range w.shops {
			var cached []event.Event
			found, err := w.store.Get(ctx, cache.EventsKey(shop, date), &cached)
			if err != nil {
				// Store trouble degrades to a miss by policy.
				w.logger.Warn("cache get failed, treating as miss",
					zap.Int("shop", shop), zap.String("date", event.DayKey(date)), zap.Error(err))
				found = false
			}
			if found {
				result.CacheHits++
				result.Events = append(result.Events, cached...)
				continue
			}
			queue = append(queue, task{shop: shop, date: date})
		}
	}

	w.logger.Info("scrape queue built",
		zap.Int("tasks", len(queue)),
		zap.Int("cache_hits", result.CacheHits),
		zap.Ints("shops", w.shops))

	start := w.now()
	for i, t := range queue {
		if i > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(w.delay):
			}
		}

		day, err := w.runTask(ctx, t)
		if err != nil {
			w.logger.Warn("scrape task failed, skipping pair",
				zap.Int("shop", t.shop), zap.String("date", event.DayKey(t.date)), zap.Error(err))
			result.FetchFailures = append(result.FetchFailures, FetchFailure{
				Shop: t.shop, Date: t.date, Err: err.Error(),
			})
			continue
		}

		if !day.Validation.Valid {
			w.logger.Warn("html validation failed",
				zap.Int("shop", t.shop),
				zap.String("date", event.DayKey(t.date)),
				zap.Int("errors", len(day.Validation.Errors)))
			result.ValidationFailures = append(result.ValidationFailures, day.Validation)
		}

		result.Events = append(result.Events, day.Events...)
		result.Scraped++
	}

	w.logger.Info("scrape queue drained",
		zap.Duration("elapsed", w.now().Sub(start)),
		zap.Int("events", len(result.Events)),
		zap.Int("fetch_failures", len(result.FetchFailures)))

	if len(result.ValidationFailures) > 0 && w.notifier != nil {
		if err := w.notifier.Notify(ctx, result.ValidationFailures); err != nil {
			// Alerting is best effort and never fails the run.
			w.logger.Error("structure alert delivery failed", zap.Error(err))
		}
	}

	return result, nil
}

// runTask scrapes one (shop, day) pair, caches the events with the TTL
// policy, and upserts the shared filter lists.
func (w *Worker) runTask(ctx context.Context, t task) (*scraper.DayResult, error) {
	html, err := w.fetcher.FetchDay(ctx, t.shop, t.date)
	if err != nil {
		return nil, fmt.Errorf("fetching shop %d for %s: %w", t.shop, event.DayKey(t.date), err)
	}

	day, err := w.extractor.ExtractDay(html, t.shop)
	if err != nil {
		return nil, fmt.Errorf("extracting shop %d for %s: %w", t.shop, event.DayKey(t.date), err)
	}

	key := cache.EventsKey(t.shop, t.date)
	if err := w.store.Set(ctx, key, day.Events); err != nil {
		w.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	} else if err := w.store.Expire(ctx, key, cache.TTL(t.date, w.now())); err != nil {
		w.logger.Warn("cache expire failed", zap.String("key", key), zap.Error(err))
	}

	w.saveFilters(ctx, day)

	return day, nil
}

// saveFilters upserts the shared location/category lists. Every successful
// scrape overwrites them (last-write-wins); empty lists are not persisted so
// a drifted page cannot wipe the last good state.
func (w *Worker) saveFilters(ctx context.Context, day *scraper.DayResult) {
	if len(day.Locations) > 0 {
		if err := w.store.Set(ctx, cache.KeyLocations, day.Locations); err != nil {
			w.logger.Warn("saving locations failed", zap.Error(err))
		}
	}
	if len(day.Categories) > 0 {
		if err := w.store.Set(ctx, cache.KeyCategories, day.Categories); err != nil {
			w.logger.Warn("saving categories failed", zap.Error(err))
		}
	}
}

// ReadEvents serves the public read path: cache only, best effort. A total
// cache outage yields an empty result, never an error.
func (w *Worker) ReadEvents(ctx context.Context, shops []int) []event.Event {
	if len(shops) == 0 {
		shops = w.shops
	}

	events := make([]event.Event, 0)
	for _, date := range event.Window(w.now(), w.windowDays) {
		for _, shop := range shops {
			var cached []event.Event
			found, err := w.store.Get(ctx, cache.EventsKey(shop, date), &cached)
			if err != nil {
				w.logger.Warn("cache get failed on read path",
					zap.Int("shop", shop), zap.String("date", event.DayKey(date)), zap.Error(err))
				continue
			}
			if found {
				events = append(events, cached...)
			}
		}
	}
	return events
}
