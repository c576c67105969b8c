package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/thinkscotty/newsdesk/internal/aggregator"
	"github.com/thinkscotty/newsdesk/internal/config"
	deskerr "github.com/thinkscotty/newsdesk/internal/errors"
	"github.com/thinkscotty/newsdesk/internal/filter"
	"github.com/thinkscotty/newsdesk/internal/location"
	"github.com/thinkscotty/newsdesk/internal/models"
	"github.com/thinkscotty/newsdesk/internal/scheduler"
	"github.com/thinkscotty/newsdesk/internal/scraper"
	"github.com/thinkscotty/newsdesk/internal/search"
	"github.com/thinkscotty/newsdesk/internal/store"
)

type app struct {
	stdout  io.Writer
	stderr  io.Writer
	fetcher scraper.Fetcher
	env     *env
}

// newCLIApp creates the CLI application with all commands. A nil fetcher
// uses the network.
func newCLIApp(stdout, stderr io.Writer, fetcher scraper.Fetcher) *cli.App {
	a := &app{stdout: stdout, stderr: stderr, fetcher: fetcher}
	cliApp := &cli.App{
		Name:      "newsdesk",
		Usage:     "Fetch, search, annotate and watch RSS/Atom news feeds",
		Version:   fmt.Sprintf("%s (built %s)", version, buildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, EnvVars: []string{"NEWSDESK_CONFIG"}, Usage: "Path to configuration file"},
			&cli.StringFlag{Name: "log-level", Usage: "Override logging.level (debug|info|warn|error)"},
		},
		Before: a.before,
		After:  a.after,
		Commands: []*cli.Command{
			a.fetchCmd(),
			a.headlinesCmd(),
			a.customCmd(),
			a.searchCmd(),
			a.signalsCmd(),
			a.sourcesCmd(),
			a.selectCmd("select", true),
			a.selectCmd("deselect", false),
			a.bookmarkCmd(),
			a.readCmd(),
			a.priorityCmd(),
			a.discoverCmd(),
			a.mapCmd(),
			a.watchCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	cliApp.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return cliApp
}

func (a *app) before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return a.outputError(deskerr.NewInvalidRequest(err.Error()))
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	e, err := newEnv(c.Context, cfg, a.fetcher)
	if err != nil {
		return a.outputError(deskerr.NewInternal(err))
	}
	a.env = e
	return nil
}

func (a *app) after(_ *cli.Context) error {
	if a.env == nil {
		return nil
	}
	if err := a.env.Close(); err != nil {
		slog.Warn("Failed to close store", "error", err)
	}
	a.env = nil
	return nil
}

func categoryFlag() cli.Flag {
	return &cli.StringFlag{Name: "category", Aliases: []string{"C"}, Usage: "Category name, e.g. Technology"}
}

func sportFlag() cli.Flag {
	return &cli.StringFlag{Name: "sport", Usage: "Sports subcategory, e.g. NBA (Sports only)"}
}

func noLocationsFlag() cli.Flag {
	return &cli.BoolFlag{Name: "no-locations", Usage: "Do not wait for location tagging"}
}

// fetchCmd creates the fetch command.
func (a *app) fetchCmd() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch the selected sources of one category",
		Flags: []cli.Flag{categoryFlag(), sportFlag(), noLocationsFlag()},
		Action: func(c *cli.Context) error {
			cat, sub, err := parseScope(c)
			if err != nil {
				return a.outputError(err)
			}
			res := a.env.agg.FetchFeeds(c.Context, cat, sub)
			return a.outputResult(c, res)
		},
	}
}

func (a *app) headlinesCmd() *cli.Command {
	return &cli.Command{
		Name:  "headlines",
		Usage: "Fetch a few sources from every category",
		Flags: []cli.Flag{noLocationsFlag()},
		Action: func(c *cli.Context) error {
			return a.outputResult(c, a.env.agg.FetchAllCategories(c.Context))
		},
	}
}

func (a *app) customCmd() *cli.Command {
	return &cli.Command{
		Name:      "custom",
		Usage:     "Fetch an explicit list of sources, ignoring selection",
		ArgsUsage: "<id> [id...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ids", Usage: "Comma-separated source IDs"},
			noLocationsFlag(),
		},
		Action: func(c *cli.Context) error {
			ids := append(splitList(c.String("ids")), c.Args().Slice()...)
			if len(ids) == 0 {
				return a.outputError(deskerr.NewInvalidRequest("at least one source id is required"))
			}
			return a.outputResult(c, a.env.agg.FetchCustomFeed(c.Context, ids))
		},
	}
}

type searchOutput struct {
	Query    string           `json:"query"`
	Criteria search.Criteria  `json:"criteria"`
	Filter   filter.Config    `json:"filter"`
	Total    int              `json:"total"`
	Articles []models.Article `json:"articles"`
}

// searchCmd fetches, then applies a free-text query and the filter config.
func (a *app) searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search freshly fetched articles with a natural-language query",
		ArgsUsage: "<query words...>",
		Flags: []cli.Flag{
			categoryFlag(),
			sportFlag(),
			&cli.BoolFlag{Name: "images", Usage: "Only articles with a thumbnail"},
			&cli.BoolFlag{Name: "hide-read", Usage: "Hide articles marked read"},
			&cli.StringFlag{Name: "date", Usage: "Date window: all|today|yesterday|last7days|last30days"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "Source names to hide (repeatable)"},
			&cli.StringFlag{Name: "sort", Usage: "Sort: none|date|source|title"},
			&cli.BoolFlag{Name: "asc", Usage: "Sort ascending"},
			&cli.BoolFlag{Name: "save", Usage: "Persist the resulting filter settings"},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			var res aggregator.Result
			if c.IsSet("category") {
				cat, sub, err := parseScope(c)
				if err != nil {
					return a.outputError(err)
				}
				res = a.env.agg.FetchFeeds(ctx, cat, sub)
			} else {
				res = a.env.agg.FetchAllCategories(ctx)
			}
			if res.State.Kind == aggregator.StateError {
				return a.outputError(res.State.Err)
			}

			cfg := store.LoadJSON(ctx, a.env.kv, store.KeyFilterConfig, filter.DefaultConfig())
			applyFilterFlags(c, &cfg)
			if c.Bool("save") {
				if err := store.SaveJSON(ctx, a.env.kv, store.KeyFilterConfig, cfg); err != nil {
					return a.outputError(deskerr.NewInternal(err))
				}
			}

			query := strings.Join(c.Args().Slice(), " ")
			articles := a.env.agg.FilteredFeeds(ctx, query, cfg)
			return a.outputJSON(searchOutput{
				Query:    query,
				Criteria: search.New().Parse(query),
				Filter:   cfg,
				Total:    len(articles),
				Articles: articles,
			})
		},
	}
}

func applyFilterFlags(c *cli.Context, cfg *filter.Config) {
	if c.IsSet("images") {
		cfg.OnlyWithImages = c.Bool("images")
	}
	if c.IsSet("hide-read") {
		cfg.HideRead = c.Bool("hide-read")
	}
	if c.IsSet("date") {
		cfg.DateFilter = filter.ParseDateFilter(c.String("date"))
	}
	if c.IsSet("exclude") {
		cfg.ExcludedSources = c.StringSlice("exclude")
	}
	if c.IsSet("sort") {
		cfg.SortOption = filter.ParseSortOption(c.String("sort"))
	}
	if c.IsSet("asc") {
		cfg.Ascending = c.Bool("asc")
	}
}

func (a *app) signalsCmd() *cli.Command {
	return &cli.Command{
		Name:  "signals",
		Usage: "Show today's held trend signals",
		Action: func(c *cli.Context) error {
			signals := a.env.agg.TodaysSignals(c.Context)
			if signals == nil {
				signals = []models.Signal{}
			}
			return a.outputJSON(signals)
		},
	}
}

func (a *app) sourcesCmd() *cli.Command {
	return &cli.Command{
		Name:  "sources",
		Usage: "List catalog sources",
		Flags: []cli.Flag{
			categoryFlag(),
			&cli.BoolFlag{Name: "selected", Usage: "Only selected sources"},
		},
		Action: func(c *cli.Context) error {
			sources := a.env.catalog.All()
			if c.IsSet("category") {
				cat, ok := models.ParseCategory(c.String("category"))
				if !ok {
					return a.outputError(deskerr.NewInvalidRequest(fmt.Sprintf("unknown category %q", c.String("category"))))
				}
				sources = a.env.catalog.InCategory(cat)
			}
			if c.Bool("selected") {
				kept := sources[:0]
				for _, s := range sources {
					if s.IsSelected {
						kept = append(kept, s)
					}
				}
				sources = kept
			}
			return a.outputJSON(sources)
		},
	}
}

func (a *app) selectCmd(name string, selected bool) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     fmt.Sprintf("Mark a source as %sed", name),
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return a.outputError(deskerr.NewInvalidRequest("source id is required"))
			}
			if err := a.env.catalog.SetSelected(c.Context, id, selected); err != nil {
				return a.outputError(deskerr.NewInvalidRequest(err.Error()))
			}
			return a.outputJSON(map[string]any{"id": id, "selected": selected})
		},
	}
}

func (a *app) bookmarkCmd() *cli.Command {
	return &cli.Command{
		Name:      "bookmark",
		Usage:     "Toggle a bookmark on an article ID",
		ArgsUsage: "<article-id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return a.outputError(deskerr.NewInvalidRequest("article id is required"))
			}
			on, err := a.env.user.ToggleBookmark(c.Context, id)
			if err != nil {
				return a.outputError(deskerr.NewInternal(err))
			}
			return a.outputJSON(map[string]any{"id": id, "bookmarked": on})
		},
	}
}

func (a *app) readCmd() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Mark article IDs as read",
		ArgsUsage: "<article-id> [article-id...]",
		Action: func(c *cli.Context) error {
			ids := c.Args().Slice()
			if len(ids) == 0 {
				return a.outputError(deskerr.NewInvalidRequest("at least one article id is required"))
			}
			if err := a.env.user.MarkRead(c.Context, ids...); err != nil {
				return a.outputError(deskerr.NewInternal(err))
			}
			return a.outputJSON(map[string]any{"read": ids})
		},
	}
}

type priorityOutput struct {
	Categories []models.Category          `json:"categories"`
	Sports     []models.SportsSubcategory `json:"sports,omitempty"`
}

func (a *app) priorityCmd() *cli.Command {
	return &cli.Command{
		Name:  "priority",
		Usage: "Show or change category and sports priority",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "categories", Usage: "Comma-separated categories, highest priority first"},
			&cli.StringFlag{Name: "sports", Usage: "Comma-separated sports, highest priority first"},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			if v := c.String("categories"); v != "" {
				var order []models.Category
				for _, name := range splitList(v) {
					cat, ok := models.ParseCategory(name)
					if !ok {
						return a.outputError(deskerr.NewInvalidRequest(fmt.Sprintf("unknown category %q", name)))
					}
					order = append(order, cat)
				}
				if err := a.env.catalog.SetCategoryOrder(ctx, order); err != nil {
					return a.outputError(deskerr.NewInternal(err))
				}
			}
			if v := c.String("sports"); v != "" {
				var order []models.SportsSubcategory
				for _, name := range splitList(v) {
					sub, ok := models.ParseSportsSubcategory(name)
					if !ok {
						return a.outputError(deskerr.NewInvalidRequest(fmt.Sprintf("unknown sport %q", name)))
					}
					order = append(order, sub)
				}
				if err := a.env.catalog.SetSportsOrder(ctx, order); err != nil {
					return a.outputError(deskerr.NewInternal(err))
				}
			}
			return a.outputJSON(priorityOutput{
				Categories: a.env.catalog.CategoryOrder(),
				Sports:     a.env.catalog.SportsOrder(),
			})
		},
	}
}

func (a *app) discoverCmd() *cli.Command {
	return &cli.Command{
		Name:      "discover",
		Usage:     "Check that a URL (feed or web page) yields a usable feed",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Display name for the candidate source"},
		},
		Action: func(c *cli.Context) error {
			u := c.Args().First()
			if u == "" {
				return a.outputError(deskerr.NewInvalidRequest("url is required"))
			}
			return a.outputJSON(a.env.scraper.ValidateSource(c.Context, u, c.String("name")))
		},
	}
}

type mapOutput struct {
	Tagged   int                `json:"tagged"`
	Clusters []location.Cluster `json:"clusters"`
}

func (a *app) mapCmd() *cli.Command {
	return &cli.Command{
		Name:  "map",
		Usage: "Fetch a category and group located articles by place",
		Flags: []cli.Flag{
			categoryFlag(),
			sportFlag(),
			&cli.Float64Flag{Name: "radius", Value: 50, Usage: "Cluster radius in kilometres"},
		},
		Action: func(c *cli.Context) error {
			var res aggregator.Result
			if c.IsSet("category") {
				cat, sub, err := parseScope(c)
				if err != nil {
					return a.outputError(err)
				}
				res = a.env.agg.FetchFeeds(c.Context, cat, sub)
			} else {
				res = a.env.agg.FetchAllCategories(c.Context)
			}
			if res.State.Kind == aggregator.StateError {
				return a.outputError(res.State.Err)
			}
			settle(res)
			clusters := location.ClusterArticles(res.Articles, c.Float64("radius"))
			tagged := 0
			for _, cl := range clusters {
				tagged += len(cl.ArticleIDs)
			}
			if clusters == nil {
				clusters = []location.Cluster{}
			}
			return a.outputJSON(mapOutput{Tagged: tagged, Clusters: clusters})
		},
	}
}

func (a *app) watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Refresh the configured categories on an interval until interrupted",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "interval", Usage: "Override scheduler.interval_minutes"},
		},
		Action: func(c *cli.Context) error {
			interval := time.Duration(a.env.cfg.Scheduler.IntervalMinutes) * time.Minute
			if c.IsSet("interval") {
				interval = c.Duration("interval")
			}
			categories := a.env.cfg.SchedulerCategories()
			if len(categories) == 0 {
				return a.outputError(deskerr.NewInvalidRequest("scheduler.categories is empty"))
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			slog.Info("Starting newsdesk watch", "version", version, "categories", categories, "interval", interval)
			scheduler.New(a.env.agg, categories, interval).Run(ctx)
			slog.Info("Watch stopped")
			return nil
		},
	}
}

// outputResult waits for location tagging unless --no-locations is set, then
// prints the result or its terminal error.
func (a *app) outputResult(c *cli.Context, res aggregator.Result) error {
	if res.State.Kind == aggregator.StateError {
		return a.outputError(res.State.Err)
	}
	if !c.Bool("no-locations") {
		settle(res)
	}
	return a.outputJSON(res)
}

// settle applies the location patch to res.Articles once it arrives.
func settle(res aggregator.Result) {
	for patch := range res.Locations {
		models.ApplyGeoTags(res.Articles, patch)
	}
}

func parseScope(c *cli.Context) (models.Category, *models.SportsSubcategory, error) {
	name := c.String("category")
	if name == "" {
		return "", nil, deskerr.NewInvalidRequest("--category is required")
	}
	cat, ok := models.ParseCategory(name)
	if !ok {
		return "", nil, deskerr.NewInvalidRequest(fmt.Sprintf("unknown category %q", name))
	}
	if s := c.String("sport"); s != "" {
		if cat != models.CategorySports {
			return "", nil, deskerr.NewInvalidRequest("--sport only applies to Sports")
		}
		sub, ok := models.ParseSportsSubcategory(s)
		if !ok {
			return "", nil, deskerr.NewInvalidRequest(fmt.Sprintf("unknown sport %q", s))
		}
		return cat, &sub, nil
	}
	return cat, nil, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// outputJSON outputs value as formatted JSON.
func (a *app) outputJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type errorOutput struct {
	Code    deskerr.ErrorCode `json:"code"`
	Message string            `json:"message"`
}

// outputError writes err as JSON to stderr and exits with status 1.
func (a *app) outputError(err error) error {
	var dErr *deskerr.DeskError
	if !errors.As(err, &dErr) {
		dErr = deskerr.NewInternal(err)
	}
	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(errorOutput{Code: dErr.Code, Message: dErr.Message})
	return cli.Exit("", 1)
}
