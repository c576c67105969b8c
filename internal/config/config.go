package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/thinkscotty/newsdesk/internal/models"
)

type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Store     StoreConfig     `yaml:"store"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Dedup     DedupConfig     `yaml:"dedup"`
	Location  LocationConfig  `yaml:"location"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type StoreConfig struct {
	Driver    string `yaml:"driver"` // sqlite, redis or memory
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type FetchConfig struct {
	ParallelLimit         int    `yaml:"parallel_limit"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	UserAgent             string `yaml:"user_agent"`
	HeadlinesPerCategory  int    `yaml:"headlines_per_category"`
}

type DedupConfig struct {
	Threshold float64 `yaml:"threshold"`
	NGramSize int     `yaml:"ngram_size"`
}

type LocationConfig struct {
	Enabled       bool   `yaml:"enabled"`
	BatchSize     int    `yaml:"batch_size"`
	BatchPauseMS  int    `yaml:"batch_pause_ms"`
	GeocoderURL   string `yaml:"geocoder_url"`
	MinIntervalMS int    `yaml:"min_interval_ms"`
}

type SchedulerConfig struct {
	IntervalMinutes int      `yaml:"interval_minutes"`
	Categories      []string `yaml:"categories"`
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "newsdesk", "config.yaml")
}

func defaultStorePath() string {
	return filepath.Join(xdg.DataHome, "newsdesk", "newsdesk.db")
}

func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Driver:    "sqlite",
			Path:      defaultStorePath(),
			RedisAddr: "localhost:6379",
			KeyPrefix: "newsdesk:",
		},
		Fetch: FetchConfig{
			ParallelLimit:         8,
			RequestTimeoutSeconds: 20,
			HeadlinesPerCategory:  2,
		},
		Dedup: DedupConfig{
			Threshold: 0.85,
			NGramSize: 3,
		},
		Location: LocationConfig{
			Enabled:       true,
			BatchSize:     10,
			BatchPauseMS:  500,
			GeocoderURL:   "https://nominatim.openstreetmap.org",
			MinIntervalMS: 1100,
		},
		Scheduler: SchedulerConfig{
			IntervalMinutes: 30,
			Categories:      []string{"Technology", "Finance", "World"},
		},
	}
}

// Load reads a YAML config file and merges it over defaults, then applies
// NEWSDESK_* environment overrides. If the file does not exist, defaults are
// used without error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		slog.Debug("No config file found, using defaults", "path", path)
	default:
		return cfg, err
	}

	applyEnv(&cfg, os.Getenv)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("NEWSDESK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("NEWSDESK_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := getenv("NEWSDESK_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := getenv("NEWSDESK_REDIS_ADDR"); v != "" {
		cfg.Store.RedisAddr = v
	}
	if v := getenv("NEWSDESK_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Store.RedisDB = db
		} else {
			slog.Warn("Ignoring invalid NEWSDESK_REDIS_DB", "value", v)
		}
	}
	if v := getenv("NEWSDESK_GEOCODER_URL"); v != "" {
		cfg.Location.GeocoderURL = v
	}
}

// Validate rejects values the pipeline cannot run with.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Fetch.ParallelLimit <= 0 {
		return fmt.Errorf("fetch.parallel_limit must be positive")
	}
	if c.Dedup.Threshold > 1 {
		return fmt.Errorf("dedup.threshold must be at most 1")
	}
	for _, name := range c.Scheduler.Categories {
		if _, ok := models.ParseCategory(name); !ok {
			return fmt.Errorf("unknown scheduler category %q", name)
		}
	}
	return nil
}

// SlogLevel maps logging.level to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SchedulerCategories returns the configured categories in order, skipping unknown names.
func (c Config) SchedulerCategories() []models.Category {
	var out []models.Category
	for _, name := range c.Scheduler.Categories {
		if cat, ok := models.ParseCategory(name); ok {
			out = append(out, cat)
		}
	}
	return out
}
