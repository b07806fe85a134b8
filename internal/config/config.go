// Package config loads application configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultShop is used when no shop set is configured (169 = Zug).
const DefaultShop = 169

type Config struct {
	Env  string
	Port int

	Redis   RedisConfig
	Scraper ScraperConfig
	Alert   AlertConfig
	Cron    CronConfig
	Log     LogConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ScraperConfig tunes the fetch orchestration.
type ScraperConfig struct {
	BaseURL      string
	Shops        []int
	WindowDays   int
	Delay        time.Duration // pause between remote fetches, never zero in production
	FetchTimeout time.Duration
	MaxRetries   int
}

// AlertConfig configures structure-drift alert delivery. An empty webhook URL
// disables delivery; failures are then only logged.
type AlertConfig struct {
	WebhookURL string
}

// CronConfig guards and schedules the periodic scrape.
type CronConfig struct {
	Secret   string
	Schedule string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Scraper = ScraperConfig{
		BaseURL:      v.GetString("SCRAPER_BASE_URL"),
		Shops:        parseShops(v.GetString("SCRAPER_SHOPS")),
		WindowDays:   v.GetInt("SCRAPER_WINDOW_DAYS"),
		Delay:        parseDuration(v.GetString("SCRAPER_DELAY"), 750*time.Millisecond),
		FetchTimeout: parseDuration(v.GetString("SCRAPER_FETCH_TIMEOUT"), 30*time.Second),
		MaxRetries:   v.GetInt("SCRAPER_MAX_RETRIES"),
	}

	cfg.Alert = AlertConfig{
		WebhookURL: v.GetString("ALERT_WEBHOOK_URL"),
	}

	cfg.Cron = CronConfig{
		Secret:   v.GetString("CRON_SECRET"),
		Schedule: v.GetString("CRON_SCHEDULE"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SCRAPER_BASE_URL", "https://shop-fp-national.fitnesspark.ch/shop/courses/category/")
	v.SetDefault("SCRAPER_SHOPS", strconv.Itoa(DefaultShop))
	v.SetDefault("SCRAPER_WINDOW_DAYS", 7)
	v.SetDefault("SCRAPER_DELAY", "750ms")
	v.SetDefault("SCRAPER_FETCH_TIMEOUT", "30s")
	v.SetDefault("SCRAPER_MAX_RETRIES", 3)

	v.SetDefault("ALERT_WEBHOOK_URL", "")

	v.SetDefault("CRON_SECRET", "")
	v.SetDefault("CRON_SCHEDULE", "@every 6h")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// parseShops reads a comma-separated shop id list, dropping anything that is
// not a number. An empty or fully invalid list falls back to DefaultShop.
func parseShops(raw string) []int {
	parts := strings.Split(raw, ",")
	shops := make([]int, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			continue
		}
		shops = append(shops, n)
	}
	if len(shops) == 0 {
		return []int{DefaultShop}
	}
	return shops
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
