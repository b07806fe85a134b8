package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javierperezm/fitnesspark-ical/internal/alert"
	"github.com/javierperezm/fitnesspark-ical/internal/cache"
	"github.com/javierperezm/fitnesspark-ical/internal/calendar"
	"github.com/javierperezm/fitnesspark-ical/internal/config"
	"github.com/javierperezm/fitnesspark-ical/internal/logger"
	"github.com/javierperezm/fitnesspark-ical/internal/scraper"
	"github.com/javierperezm/fitnesspark-ical/internal/server"
	"github.com/javierperezm/fitnesspark-ical/internal/worker"
)

var (
	flagFormat string
	flagShops  string
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fitnesspark-ical",
		Short: "Scrape Fitnesspark course schedules into a calendar feed",
		Long: `Scrapes the Fitnesspark booking site's course schedule, caches the
normalized events, and serves them as an iCalendar feed.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute runs the CLI and exits on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run one scrape cycle and print the feed",
		RunE:  runScrape,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or ical")
	cmd.Flags().StringVar(&flagShops, "shops", "", "Comma-separated shop ids (default from config)")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server with the periodic scrape schedule",
		RunE:  runServe,
	}
}

// app holds the wired application components shared by both commands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *cache.RedisStore
	worker *worker.Worker
}

func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	// A cache outage degrades to scrape-every-time rather than failing start.
	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, running without cache", zap.Error(err))
		client = nil
	}
	store := cache.NewRedisStore(client)

	fetcher := scraper.NewClient(cfg.Scraper.BaseURL, cfg.Scraper.FetchTimeout, cfg.Scraper.MaxRetries)
	extractor := scraper.NewExtractor(logr)

	var notifier alert.Notifier
	if cfg.Alert.WebhookURL != "" {
		notifier = alert.NewWebhookNotifier(cfg.Alert.WebhookURL)
	} else {
		notifier = alert.NewLogNotifier(logr)
	}

	w := worker.New(store, fetcher, extractor, notifier, logr, worker.Options{
		Shops:      cfg.Scraper.Shops,
		WindowDays: cfg.Scraper.WindowDays,
		Delay:      cfg.Scraper.Delay,
	})

	return &app{cfg: cfg, logger: logr, store: store, worker: w}, nil
}

func runScrape(cmd *cobra.Command, args []string) error {
	// The flag overrides the environment before config is read.
	if flagShops != "" {
		os.Setenv("SCRAPER_SHOPS", flagShops)
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.store.Close()

	result, err := a.worker.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("scrape cycle: %w", err)
	}

	switch flagFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.Events)
	case "ical":
		fmt.Fprint(cmd.OutOrStdout(), calendar.Generate("Fitnesspark Events", result.Events))
		return nil
	case "text":
		for _, e := range result.Events {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%dm) %s [%s] %s\n",
				e.Start.Format("2006-01-02"), e.TimeStart, e.Duration, e.Name, e.Status, e.Trainer)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d events, %d scraped, %d cache hits, %d fetch failures\n",
			len(result.Events), result.Scraped, result.CacheHits, len(result.FetchFailures))
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ical')", flagFormat)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.store.Close()
	defer a.logger.Sync() //nolint:errcheck

	sched := cron.New()
	if _, err := sched.AddFunc(a.cfg.Cron.Schedule, func() {
		if _, err := a.worker.Run(cmd.Context()); err != nil {
			a.logger.Error("scheduled scrape failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", a.cfg.Cron.Schedule, err)
	}
	sched.Start()
	defer sched.Stop()
	a.logger.Info("scrape schedule registered", zap.String("schedule", a.cfg.Cron.Schedule))

	srv := server.New(a.worker, a.store, a.cfg, a.logger)
	return srv.Run()
}
