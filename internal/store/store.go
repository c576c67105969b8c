// Package store is the key-value persistence capability: bookmarks, read
// state, geocode cache, topic history, signals, filter config and source
// selection are all JSON values under fixed string keys.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	deskerr "github.com/thinkscotty/newsdesk/internal/errors"
)

const (
	KeyBookmarks       = "bookmarks"
	KeyReadArticles    = "read_articles"
	KeyGeocodeCache    = "geocode_cache"
	KeyTopicHistory    = "topic_history"
	KeyTodaysSignals   = "todays_signals"
	KeyFilterConfig    = "filter_config"
	KeySourceSelection = "source_selection"
	KeyCategoryOrder   = "category_priority"
	KeySportsOrder     = "sports_priority"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("store: key not found")

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadJSON decodes the value at key into a T. Missing keys, backend errors
// and undecodable values all yield fallback; the latter two are logged.
func LoadJSON[T any](ctx context.Context, kv KV, key string, fallback T) T {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("Failed to read persisted value", "key", key, "error", err)
		}
		return fallback
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Warn("Discarding corrupt persisted value", "error", deskerr.NewCacheCorrupt(key, err))
		return fallback
	}
	return v
}

// SaveJSON encodes v and stores it at key.
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Memory is a process-local KV, used when persistence is disabled and in tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error { return nil }
