package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkscotty/newsdesk/internal/models"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(t, def.Fetch, cfg.Fetch)
	assert.Equal(t, def.Dedup, cfg.Dedup)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Contains(t, cfg.Store.Path, filepath.Join("newsdesk", "newsdesk.db"))
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
store:
  driver: memory
dedup:
  threshold: 0
scheduler:
  categories: [sports, Health]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 0.0, cfg.Dedup.Threshold)
	assert.Equal(t, 3, cfg.Dedup.NGramSize)
	assert.Equal(t, 8, cfg.Fetch.ParallelLimit)
	assert.Equal(t, []models.Category{models.CategorySports, models.CategoryHealth}, cfg.SchedulerCategories())
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"bad yaml":     "logging: [",
		"bad driver":   "store:\n  driver: mongo\n",
		"bad category": "scheduler:\n  categories: [Weather]\n",
		"bad limit":    "fetch:\n  parallel_limit: 0\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"NEWSDESK_LOG_LEVEL":    "warn",
		"NEWSDESK_STORE_DRIVER": "redis",
		"NEWSDESK_REDIS_ADDR":   "cache:6380",
		"NEWSDESK_REDIS_DB":     "not-a-number",
		"NEWSDESK_GEOCODER_URL": "http://geo.local",
	}
	cfg := DefaultConfig()
	applyEnv(&cfg, func(k string) string { return env[k] })

	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "cache:6380", cfg.Store.RedisAddr)
	assert.Equal(t, 0, cfg.Store.RedisDB)
	assert.Equal(t, "http://geo.local", cfg.Location.GeocoderURL)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("NEWSDESK_STORE_PATH", "/tmp/elsewhere.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.db", cfg.Store.Path)
}
