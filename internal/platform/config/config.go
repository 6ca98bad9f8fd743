package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"session-analytics-service/internal/analytics/core/engine"

	"github.com/spf13/cast"
)

const (
	SourcePostgres = "postgres"
	SourceRemote   = "remote"
)

type Config struct {
	HTTPAddr      string        // e.g. ":8080"
	PostgresDSN   string        // required for SOURCE=postgres and for ingestion
	Source        string        // postgres | remote
	RemoteBaseURL string        // e.g. "http://dashboard-backend:3000"
	RemoteTimeout time.Duration // e.g. 10s
	RedisAddr     string        // empty disables the collection cache
	CacheTTL      time.Duration // e.g. 30s
	LogLevel      string
	LogPretty     bool
	SchemaFile    string // optional YAML overlay of the field schemas
	BucketOrder   engine.Order
	Location      *time.Location
	MonthLabels   engine.MonthLabels
}

// Load reads the service configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		Source:        strings.ToLower(getenv("SOURCE", SourcePostgres)),
		RemoteBaseURL: os.Getenv("REMOTE_BASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		SchemaFile:    os.Getenv("SCHEMA_FILE"),
	}

	var err error
	if cfg.RemoteTimeout, err = duration("REMOTE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = duration("CACHE_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}

	if s := os.Getenv("LOG_PRETTY"); s != "" {
		if cfg.LogPretty, err = cast.ToBoolE(s); err != nil {
			return Config{}, fmt.Errorf("LOG_PRETTY: %w", err)
		}
	}

	if cfg.BucketOrder, err = engine.ParseOrder(os.Getenv("BUCKET_ORDER")); err != nil {
		return Config{}, fmt.Errorf("BUCKET_ORDER: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(getenv("TIMEZONE", "UTC")); err != nil {
		return Config{}, fmt.Errorf("TIMEZONE: %w", err)
	}

	if cfg.MonthLabels, err = ParseMonthLabels(os.Getenv("MONTH_LABELS")); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Source {
	case SourcePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is not set")
		}
	case SourceRemote:
		if c.RemoteBaseURL == "" {
			return fmt.Errorf("REMOTE_BASE_URL is required when SOURCE=remote")
		}
	default:
		return fmt.Errorf("SOURCE must be %q or %q, got %q", SourcePostgres, SourceRemote, c.Source)
	}
	return nil
}

// ParseMonthLabels maps a language code to month labels; Portuguese is the
// dashboard default.
func ParseMonthLabels(s string) (engine.MonthLabels, error) {
	switch strings.ToLower(s) {
	case "", "pt", "pt-br":
		return engine.PortugueseMonths, nil
	case "en":
		return engine.EnglishMonths, nil
	}
	return engine.MonthLabels{}, fmt.Errorf("MONTH_LABELS: unsupported language %q", s)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
