package scheduler

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/thinkscotty/newsdesk/internal/aggregator"
	"github.com/thinkscotty/newsdesk/internal/models"
)

// Refresher loads one category. *aggregator.Aggregator satisfies it.
type Refresher interface {
	FetchFeeds(ctx context.Context, category models.Category, sub *models.SportsSubcategory) aggregator.Result
}

type Scheduler struct {
	refresher  Refresher
	categories []models.Category
	interval   time.Duration
	parallel   int
	locks      sync.Map // per-category locks: category -> *sync.Mutex

	// OnResult, if set, is called after each refresh once location tagging finished.
	OnResult func(models.Category, aggregator.Result)
}

func New(r Refresher, categories []models.Category, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &Scheduler{refresher: r, categories: categories, interval: interval, parallel: 2}
}

// lockCategory acquires a per-category mutex without blocking.
// Returns nil and false if the category is already being refreshed.
func (s *Scheduler) lockCategory(c models.Category) (*sync.Mutex, bool) {
	val, _ := s.locks.LoadOrStore(c, &sync.Mutex{})
	mu := val.(*sync.Mutex)
	if mu.TryLock() {
		return mu, true
	}
	return nil, false
}

// Run refreshes every configured category immediately and then once per interval.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Scheduler started", "interval", s.interval, "categories", len(s.categories))

	s.RefreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.RefreshAll(ctx)
		}
	}
}

// RefreshAll refreshes the configured categories, a few at a time.
func (s *Scheduler) RefreshAll(ctx context.Context) {
	sem := make(chan struct{}, s.parallel)
	var wg sync.WaitGroup
	for _, category := range s.categories {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(c models.Category) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			s.RefreshCategory(ctx, c)
		}(category)
	}
	wg.Wait()
}

// RefreshCategory fetches one category unless a refresh of it is already
// running, and reports whether it ran.
func (s *Scheduler) RefreshCategory(ctx context.Context, c models.Category) bool {
	mu, ok := s.lockCategory(c)
	if !ok {
		slog.Debug("Category already being refreshed, skipping", "category", c)
		return false
	}
	defer mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic in category refresh", "category", c, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	start := time.Now()
	res := s.refresher.FetchFeeds(ctx, c, nil)
	if res.State.Kind == aggregator.StateError {
		slog.Warn("Category refresh failed", "category", c, "reason", res.State.Message())
	} else {
		slog.Info("Refreshed category", "category", c, "articles", len(res.Articles), "duration", time.Since(start).Round(time.Millisecond))
	}
	for _, sig := range res.Signals {
		slog.Info("Signal", "type", sig.Type, "topic", sig.Topic, "message", sig.Message)
	}

	tagged := 0
	for patch := range res.Locations {
		tagged += models.ApplyGeoTags(res.Articles, patch)
	}
	if tagged > 0 {
		slog.Debug("Location tagging finished", "category", c, "tagged", tagged)
	}

	if s.OnResult != nil {
		s.OnResult(c, res)
	}
	return true
}
