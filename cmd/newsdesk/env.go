package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thinkscotty/newsdesk/internal/aggregator"
	"github.com/thinkscotty/newsdesk/internal/config"
	"github.com/thinkscotty/newsdesk/internal/feeds"
	"github.com/thinkscotty/newsdesk/internal/geocode"
	"github.com/thinkscotty/newsdesk/internal/location"
	"github.com/thinkscotty/newsdesk/internal/scraper"
	"github.com/thinkscotty/newsdesk/internal/similarity"
	"github.com/thinkscotty/newsdesk/internal/store"
	"github.com/thinkscotty/newsdesk/internal/trends"
)

// env is everything a command needs, built once per invocation.
type env struct {
	cfg     config.Config
	kv      store.KV
	catalog *feeds.Catalog
	scraper *scraper.Scraper
	user    *store.UserState
	locator *location.Engine
	agg     *aggregator.Aggregator
}

func openStore(ctx context.Context, sc config.StoreConfig) (store.KV, error) {
	switch strings.ToLower(sc.Driver) {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		r := store.NewRedis(sc.RedisAddr, sc.RedisDB, sc.KeyPrefix)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			r.Close()
			return nil, fmt.Errorf("connect redis %s: %w", sc.RedisAddr, err)
		}
		return r, nil
	default:
		return store.OpenSQLite(sc.Path)
	}
}

// newEnv wires the pipeline from cfg. A nil fetcher means the colly scraper.
func newEnv(ctx context.Context, cfg config.Config, fetcher scraper.Fetcher) (*env, error) {
	kv, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	catalog := feeds.NewCatalog(feeds.DefaultSources(), kv)
	catalog.LoadSelection(ctx)
	catalog.LoadPriorities(ctx)

	sc := scraper.New(cfg.Fetch.UserAgent, time.Duration(cfg.Fetch.RequestTimeoutSeconds)*time.Second)
	if fetcher == nil {
		fetcher = sc
	}

	var locator *location.Engine
	if cfg.Location.Enabled {
		var geo geocode.Geocoder
		if cfg.Location.GeocoderURL != "" {
			geo = geocode.New(cfg.Location.GeocoderURL, cfg.Fetch.UserAgent,
				time.Duration(cfg.Location.MinIntervalMS)*time.Millisecond)
		}
		locator = location.New(nil, geo, kv, location.Options{
			BatchSize:  cfg.Location.BatchSize,
			BatchPause: time.Duration(cfg.Location.BatchPauseMS) * time.Millisecond,
		})
	}

	user := store.NewUserState(kv)
	agg := aggregator.New(aggregator.Deps{
		Catalog:  catalog,
		Fetcher:  fetcher,
		Dedup:    similarity.New(cfg.Dedup.Threshold, cfg.Dedup.NGramSize),
		Location: locator,
		Trends:   trends.New(kv),
		User:     user,
	}, aggregator.Options{
		ParallelLimit:        cfg.Fetch.ParallelLimit,
		HeadlinesPerCategory: cfg.Fetch.HeadlinesPerCategory,
	})

	slog.Debug("Pipeline ready", "store", cfg.Store.Driver, "sources", len(catalog.All()), "locations", locator != nil)

	return &env{
		cfg:     cfg,
		kv:      kv,
		catalog: catalog,
		scraper: sc,
		user:    user,
		locator: locator,
		agg:     agg,
	}, nil
}

func (e *env) Close() error {
	return e.kv.Close()
}
