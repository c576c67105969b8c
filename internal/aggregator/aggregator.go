// Package aggregator fetches selected feeds concurrently, merges them into
// one newest-first list and runs the enrichment passes over it.
package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	deskerr "github.com/thinkscotty/newsdesk/internal/errors"
	"github.com/thinkscotty/newsdesk/internal/feed"
	"github.com/thinkscotty/newsdesk/internal/feeds"
	"github.com/thinkscotty/newsdesk/internal/filter"
	"github.com/thinkscotty/newsdesk/internal/intelligence"
	"github.com/thinkscotty/newsdesk/internal/location"
	"github.com/thinkscotty/newsdesk/internal/models"
	"github.com/thinkscotty/newsdesk/internal/scraper"
	"github.com/thinkscotty/newsdesk/internal/search"
	"github.com/thinkscotty/newsdesk/internal/similarity"
	"github.com/thinkscotty/newsdesk/internal/store"
	"github.com/thinkscotty/newsdesk/internal/trends"
)

// Result is the outcome of one fetch. Locations delivers exactly one patch
// once background location tagging finishes, then closes.
type Result struct {
	Articles  []models.Article      `json:"articles"`
	State     LoadState             `json:"state"`
	Signals   []models.Signal       `json:"signals,omitempty"`
	Locations <-chan location.Patch `json:"-"`
}

type Options struct {
	ParallelLimit        int
	HeadlinesPerCategory int
}

func DefaultOptions() Options {
	return Options{ParallelLimit: 8, HeadlinesPerCategory: 2}
}

// Deps are the collaborators of an Aggregator. Catalog and Fetcher are
// required; Location may be nil to skip location tagging.
type Deps struct {
	Catalog      *feeds.Catalog
	Fetcher      scraper.Fetcher
	Parser       *feed.Parser
	Dedup        *similarity.Checker
	Search       *search.Engine
	Intelligence *intelligence.Engine
	Location     *location.Engine
	Trends       *trends.Engine
	User         *store.UserState
	Now          func() time.Time
}

type Aggregator struct {
	catalog *feeds.Catalog
	fetcher scraper.Fetcher
	parser  *feed.Parser
	dedup   *similarity.Checker
	search  *search.Engine
	intel   *intelligence.Engine
	locator *location.Engine
	trends  *trends.Engine
	user    *store.UserState
	now     func() time.Time
	opts    Options

	generation atomic.Uint64

	mu         sync.RWMutex
	current    []models.Article
	currentGen uint64
	state      LoadState
}

func New(d Deps, opts Options) *Aggregator {
	if opts.ParallelLimit <= 0 {
		opts.ParallelLimit = DefaultOptions().ParallelLimit
	}
	if opts.HeadlinesPerCategory <= 0 {
		opts.HeadlinesPerCategory = DefaultOptions().HeadlinesPerCategory
	}
	a := &Aggregator{
		catalog: d.Catalog,
		fetcher: d.Fetcher,
		parser:  d.Parser,
		dedup:   d.Dedup,
		search:  d.Search,
		intel:   d.Intelligence,
		locator: d.Location,
		trends:  d.Trends,
		user:    d.User,
		now:     d.Now,
		opts:    opts,
	}
	if a.parser == nil {
		a.parser = feed.NewParser()
	}
	if a.dedup == nil {
		a.dedup = similarity.New(0, 3)
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.search == nil {
		a.search = search.NewWithClock(a.now)
	}
	if a.intel == nil {
		a.intel = intelligence.NewWithClock(a.now)
	}
	if a.trends == nil {
		a.trends = trends.NewWithClock(nil, a.now)
	}
	if a.user == nil {
		a.user = store.NewUserState(store.NewMemory())
	}
	return a
}

// FetchFeeds loads the selected sources of one category, optionally narrowed
// to a sports subcategory.
func (a *Aggregator) FetchFeeds(ctx context.Context, category models.Category, sub *models.SportsSubcategory) Result {
	return a.run(ctx, a.catalog.Selected(category, sub), &enrichScope{category: category, sports: sub})
}

// FetchAllCategories loads a few selected sources from every category.
func (a *Aggregator) FetchAllCategories(ctx context.Context) Result {
	return a.run(ctx, a.catalog.Headlines(a.opts.HeadlinesPerCategory), nil)
}

// FetchCustomFeed loads the given sources regardless of their selection flags.
func (a *Aggregator) FetchCustomFeed(ctx context.Context, sourceIDs []string) Result {
	return a.run(ctx, a.catalog.ByIDs(sourceIDs), nil)
}

// FilteredFeeds searches and then filters the current article set.
func (a *Aggregator) FilteredFeeds(ctx context.Context, query string, cfg filter.Config) []models.Article {
	articles, _ := a.Current()
	matched := a.search.Search(query, articles)
	return filter.Apply(matched, cfg, a.user.ReadSet(ctx), a.now())
}

func (a *Aggregator) TodaysSignals(ctx context.Context) []models.Signal {
	return a.trends.TodaysSignals(ctx)
}

// GenerateContext scores article against the user's saved bookmarks and read history.
func (a *Aggregator) GenerateContext(ctx context.Context, article models.Article, category models.Category,
	subcategory string, sports *models.SportsSubcategory) *models.RelevanceContext {
	return a.intel.GenerateContext(article, category, subcategory, sports, a.user.ReadSet(ctx), a.user.Bookmarks(ctx))
}

func (a *Aggregator) GenerateImplications(article models.Article, category models.Category,
	subcategory string, sports *models.SportsSubcategory) *models.Implications {
	return a.intel.GenerateImplications(article, category, subcategory, sports)
}

// Current returns a copy of the most recently published article set and its state.
func (a *Aggregator) Current() ([]models.Article, LoadState) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.Article(nil), a.current...), a.state
}

// enrichScope fixes the category used by enrichment. Nil means each article
// is enriched under its own source's category.
type enrichScope struct {
	category models.Category
	sports   *models.SportsSubcategory
}

func (a *Aggregator) run(ctx context.Context, sources []models.Source, scope *enrichScope) Result {
	gen := a.generation.Add(1)
	a.setLoading(gen)

	if len(sources) == 0 {
		return a.finish(ctx, gen, nil, Failed(deskerr.NewNoSourcesSelected()), nil)
	}

	articles := a.fetchSources(ctx, sources)
	if len(articles) == 0 {
		return a.finish(ctx, gen, nil, Failed(deskerr.NewNoArticlesFound()), nil)
	}

	a.enrich(ctx, articles, sources, scope)
	signals := a.trends.GenerateSignals(ctx, articles)
	return a.finish(ctx, gen, articles, Loaded(), signals)
}

// fetchSources fetches and parses every source concurrently. A failing
// source contributes nothing. Results are merged in source order, then
// de-duplicated and sorted newest first.
func (a *Aggregator) fetchSources(ctx context.Context, sources []models.Source) []models.Article {
	perSource := make([][]models.Article, len(sources))

	sem := make(chan struct{}, a.opts.ParallelLimit)
	var wg sync.WaitGroup

	for i, source := range sources {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(i int, src models.Source) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("Source fetch panicked", "source", src.Name, "panic", fmt.Sprint(r))
				}
			}()

			sem <- struct{}{}
			defer func() { <-sem }()

			articles, err := a.fetchSource(ctx, src)
			if err != nil {
				slog.Warn("Source failed, skipping", "source", src.Name, "code", deskerr.CodeOf(err), "error", err)
				return
			}
			perSource[i] = articles
		}(i, source)
	}

	wg.Wait()

	merged := merge(perSource)
	kept, dropped := a.dedup.Dedupe(merged)
	if dropped > 0 {
		slog.Debug("Dropped duplicate articles", "count", dropped)
	}
	feed.SortNewestFirst(kept)
	return kept
}

func (a *Aggregator) fetchSource(ctx context.Context, src models.Source) ([]models.Article, error) {
	raw, err := a.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	articles, err := a.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		articles[i].SourceName = src.Name
		articles[i].Category = src.Category
	}
	slog.Debug("Fetched source", "source", src.Name, "articles", len(articles))
	return articles, nil
}

func merge(perSource [][]models.Article) []models.Article {
	var out []models.Article
	for _, articles := range perSource {
		out = append(out, articles...)
	}
	return out
}

// enrich sets Context and Implications on each article. A failure on one
// article leaves its enrichment fields nil.
func (a *Aggregator) enrich(ctx context.Context, articles []models.Article, sources []models.Source, scope *enrichScope) {
	bookmarks := a.user.Bookmarks(ctx)
	readSet := a.user.ReadSet(ctx)

	subBySource := make(map[string]models.SportsSubcategory, len(sources))
	for _, s := range sources {
		if s.Subcategory != "" {
			subBySource[s.Name] = s.Subcategory
		}
	}

	for i := range articles {
		category := articles[i].Category
		var sports *models.SportsSubcategory
		if scope != nil {
			category = scope.category
			sports = scope.sports
		} else if sub, ok := subBySource[articles[i].SourceName]; ok {
			sports = &sub
		}
		a.enrichOne(&articles[i], category, sports, readSet, bookmarks)
	}
}

func (a *Aggregator) enrichOne(article *models.Article, category models.Category, sports *models.SportsSubcategory,
	readSet, bookmarks map[string]bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Enrichment panicked", "article", article.ID, "panic", fmt.Sprint(r))
			article.Context = nil
			article.Implications = nil
		}
	}()
	label := ""
	if sports != nil {
		label = string(*sports)
	}
	article.Context = a.intel.GenerateContext(*article, category, label, sports, readSet, bookmarks)
	article.Implications = a.intel.GenerateImplications(*article, category, label, sports)
}

func (a *Aggregator) setLoading(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen == a.generation.Load() {
		a.state = LoadState{Kind: StateLoading}
	}
}

// finish publishes the result if gen is still the newest fetch, then starts
// location tagging for loaded results. Tagging stops early if ctx ends.
func (a *Aggregator) finish(ctx context.Context, gen uint64, articles []models.Article, state LoadState, signals []models.Signal) Result {
	a.mu.Lock()
	if gen == a.generation.Load() {
		a.current = articles
		a.currentGen = gen
		a.state = state
	} else {
		slog.Debug("Discarding stale fetch result", "generation", gen)
	}
	a.mu.Unlock()

	if state.Kind == StateError {
		slog.Info("Fetch finished without articles", "reason", state.Message())
	}

	out := append([]models.Article(nil), articles...)
	locations := make(chan location.Patch, 1)
	if a.locator == nil || len(out) == 0 {
		locations <- location.Patch{}
		close(locations)
	} else {
		snapshot := append([]models.Article(nil), articles...)
		go a.tagLocations(ctx, gen, snapshot, locations)
	}
	return Result{Articles: out, State: state, Signals: signals, Locations: locations}
}

// tagLocations runs detached from the caller. The patch is applied to the
// published set only if no newer fetch has replaced it, and is always sent.
func (a *Aggregator) tagLocations(ctx context.Context, gen uint64, articles []models.Article, out chan<- location.Patch) {
	defer close(out)
	patch := location.Patch{}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Location tagging panicked", "panic", fmt.Sprint(r))
		}
		out <- patch
	}()

	patch = a.locator.DetectBatch(ctx, articles)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.currentGen == gen && gen == a.generation.Load() {
		models.ApplyGeoTags(a.current, patch)
	}
}
