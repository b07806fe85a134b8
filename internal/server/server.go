package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/javierperezm/fitnesspark-ical/internal/cache"
	"github.com/javierperezm/fitnesspark-ical/internal/calendar"
	"github.com/javierperezm/fitnesspark-ical/internal/config"
	"github.com/javierperezm/fitnesspark-ical/internal/event"
	"github.com/javierperezm/fitnesspark-ical/internal/worker"
)

const calendarName = "Fitnesspark Events"

// Orchestrator is the scrape cycle as the HTTP layer sees it.
type Orchestrator interface {
	Run(ctx context.Context) (*worker.Result, error)
	ReadEvents(ctx context.Context, shops []int) []event.Event
}

// Server wires the HTTP routes to the orchestrator and the cache.
type Server struct {
	orch   Orchestrator
	store  cache.Store
	cfg    *config.Config
	logger *zap.Logger
}

func New(orch Orchestrator, store cache.Store, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{orch: orch, store: store, cfg: cfg, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/ical", s.handleFeed)
	r.GET("/api/filters", s.handleFilters)
	r.GET("/api/cron", s.handleCron)

	return r
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("server starting", zap.String("addr", addr), zap.String("env", s.cfg.Env))
	return s.Router().Run(addr)
}

// handleFeed serves the cached events as iCalendar, JSON or plain text.
func (s *Server) handleFeed(c *gin.Context) {
	shops := parseShopsParam(c.Query("shops"))
	events := s.orch.ReadEvents(c.Request.Context(), shops)

	switch c.DefaultQuery("format", "ical") {
	case "json":
		c.JSON(http.StatusOK, events)
	case "text":
		c.String(http.StatusOK, renderText(events))
	case "ical":
		c.Header("Content-Disposition", `attachment; filename="fitnesspark.ics"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8",
			[]byte(calendar.Generate(calendarName, events)))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format"})
	}
}

// handleFilters serves the shared location and category lists.
func (s *Server) handleFilters(c *gin.Context) {
	ctx := c.Request.Context()

	locations := make([]event.FilterOption, 0)
	if _, err := s.store.Get(ctx, cache.KeyLocations, &locations); err != nil {
		s.logger.Warn("reading locations failed", zap.Error(err))
	}
	categories := make([]event.FilterOption, 0)
	if _, err := s.store.Get(ctx, cache.KeyCategories, &categories); err != nil {
		s.logger.Warn("reading categories failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"locations":  locations,
		"categories": categories,
	})
}

// handleCron triggers one scrape cycle. The endpoint is secret-guarded and
// disabled entirely when no secret is configured.
func (s *Server) handleCron(c *gin.Context) {
	if !s.authorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := s.orch.Run(c.Request.Context())
	if err != nil {
		s.logger.Error("scrape cycle failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                 true,
		"events":             len(result.Events),
		"scraped":            result.Scraped,
		"cacheHits":          result.CacheHits,
		"fetchFailures":      len(result.FetchFailures),
		"validationFailures": len(result.ValidationFailures),
	})
}

func (s *Server) authorized(c *gin.Context) bool {
	secret := s.cfg.Cron.Secret
	if secret == "" {
		return false
	}
	if header := c.GetHeader("Authorization"); header == "Bearer "+secret {
		return true
	}
	return c.Query("secret") == secret
}

// parseShopsParam reads a comma-separated shop list from the query string.
// Empty or invalid input yields nil so the orchestrator's default applies.
func parseShopsParam(raw string) []int {
	if raw == "" {
		return nil
	}
	var shops []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		shops = append(shops, n)
	}
	return shops
}

func renderText(events []event.Event) string {
	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "%s %s (%dm) %s [%s] %s\n",
			e.Start.Format("2006-01-02"), e.TimeStart, e.Duration, e.Name, e.Status, e.Trainer)
	}
	return b.String()
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
