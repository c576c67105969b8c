// Package location tags articles with the single most likely place they are
// about, resolving coordinates through a gazetteer, a persisted cache and a
// network geocoder, in that order.
package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	deskerr "github.com/thinkscotty/newsdesk/internal/errors"
	"github.com/thinkscotty/newsdesk/internal/geocode"
	"github.com/thinkscotty/newsdesk/internal/models"
	"github.com/thinkscotty/newsdesk/internal/store"
)

const contentPrefixRunes = 500

// countryQualifiers are appended to a bare name, in order, when the bare
// lookup finds nothing.
var countryQualifiers = []string{"USA", "UK", "France", "Germany", "China", "Japan"}

// Coordinate is the persisted form of a geocode result.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Patch maps article IDs to detected locations.
type Patch map[string]models.GeoTag

type Options struct {
	// BatchSize articles are processed between pauses. Zero disables pacing.
	BatchSize  int
	BatchPause time.Duration
}

func DefaultOptions() Options {
	return Options{BatchSize: 10, BatchPause: 500 * time.Millisecond}
}

type cached struct {
	name  string
	coord Coordinate
}

type Engine struct {
	extractor PlaceExtractor
	geocoder  geocode.Geocoder
	kv        store.KV
	opts      Options
	sleep     func(ctx context.Context, d time.Duration) error

	// mu is held for a whole resolve so a name reaches the network at most once.
	mu      sync.Mutex
	loaded  bool
	dynamic map[string]cached
	misses  map[string]bool
}

// New creates an Engine. A nil extractor uses CapitalizedExtractor; a nil
// geocoder resolves from the gazetteer and cache only; a nil kv keeps the
// dynamic cache in memory.
func New(extractor PlaceExtractor, geocoder geocode.Geocoder, kv store.KV, opts Options) *Engine {
	if extractor == nil {
		extractor = CapitalizedExtractor{}
	}
	return &Engine{
		extractor: extractor,
		geocoder:  geocoder,
		kv:        kv,
		opts:      opts,
		sleep:     sleepContext,
		dynamic:   make(map[string]cached),
		misses:    make(map[string]bool),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// normalizeName folds case and diacritics so "São Paulo" and "sao paulo" share a key.
func normalizeName(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(folder, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}

// DetectLocation returns the best place mention in the article with its
// coordinates, or nil when no candidate resolves.
func (e *Engine) DetectLocation(ctx context.Context, article models.Article) *models.GeoTag {
	text := analysisText(article)
	if text == "" {
		return nil
	}
	best, ok := e.bestCandidate(ctx, text)
	if !ok {
		return nil
	}
	coord, ok := e.resolve(ctx, best.name)
	if !ok {
		return nil
	}
	return &models.GeoTag{
		DetectedLocation: best.name,
		Latitude:         coord.Lat,
		Longitude:        coord.Lon,
		ConfidenceScore:  best.confidence,
	}
}

// DetectBatch tags articles in order, pausing after every BatchSize articles.
// A panic while tagging one article leaves that article untagged. Cancelling
// ctx returns the tags found so far.
func (e *Engine) DetectBatch(ctx context.Context, articles []models.Article) Patch {
	patch := make(Patch)
	for i, a := range articles {
		if ctx.Err() != nil {
			break
		}
		if tag := e.detectSafe(ctx, a); tag != nil {
			patch[a.ID] = *tag
		}
		n := i + 1
		if e.opts.BatchSize > 0 && n%e.opts.BatchSize == 0 && n < len(articles) {
			if err := e.sleep(ctx, e.opts.BatchPause); err != nil {
				break
			}
		}
	}
	slog.Debug("Location batch complete", "articles", len(articles), "tagged", len(patch))
	return patch
}

func (e *Engine) detectSafe(ctx context.Context, a models.Article) (tag *models.GeoTag) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Location detection panicked", "article", a.ID, "panic", fmt.Sprint(r))
			tag = nil
		}
	}()
	return e.DetectLocation(ctx, a)
}

// analysisText joins title, description and the start of content, skipping empty parts.
func analysisText(a models.Article) string {
	var parts []string
	if t := strings.TrimSpace(a.Title); t != "" {
		parts = append(parts, t)
	}
	if d := models.StripHTML(a.Description); d != "" {
		parts = append(parts, d)
	}
	if c := models.StripHTML(a.Content); c != "" {
		if utf8.RuneCountInString(c) > contentPrefixRunes {
			c = string([]rune(c)[:contentPrefixRunes])
		}
		parts = append(parts, c)
	}
	return strings.Join(parts, "\n")
}

type candidate struct {
	name       string
	confidence float64
}

// candidates scores the extracted spans. A span with no locative cue is kept
// only when it already resolves offline, so capitalized non-places never
// reach the geocoder.
func (e *Engine) candidates(ctx context.Context, text string) []candidate {
	var out []candidate
	for _, span := range e.extractor.ExtractPlaces(text) {
		name := strings.TrimSpace(span.Name)
		if rejected(name) {
			continue
		}
		if !span.Cued && !e.known(ctx, name) {
			continue
		}
		out = append(out, candidate{name: name, confidence: score(name, span.Start, text)})
	}
	return out
}

// bestCandidate returns the first candidate with the highest confidence.
func (e *Engine) bestCandidate(ctx context.Context, text string) (candidate, bool) {
	var best candidate
	found := false
	for _, c := range e.candidates(ctx, text) {
		if !found || c.confidence > best.confidence {
			best = c
			found = true
		}
	}
	return best, found
}

func rejected(name string) bool {
	return utf8.RuneCountInString(name) < 3 || !isCapitalized(name) || blacklist[normalizeName(name)]
}

func score(name string, start int, text string) float64 {
	s := 0.5
	if isCapitalized(name) {
		s += 0.1
	}
	if strings.Contains(name, " ") {
		s += 0.15
	}
	if g, ok := gazetteer[normalizeName(name)]; ok {
		switch g.kind {
		case kindCity:
			s += 0.25
		case kindCountry:
			s += 0.2
		}
	}
	if start == 0 {
		s -= 0.15
	}
	if strings.Count(text, name) >= 2 {
		s += 0.1
	}
	return min(max(s, 0), 1)
}

// resolve looks name up in the dynamic cache, then the gazetteer, then the
// geocoder with each country qualifier. Hits from the network are written
// through under the original name.
func (e *Engine) resolve(ctx context.Context, name string) (Coordinate, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadLocked(ctx)

	key := normalizeName(name)
	if c, ok := e.dynamic[key]; ok {
		return c.coord, true
	}
	if g, ok := gazetteer[key]; ok {
		return Coordinate{Lat: g.lat, Lon: g.lon}, true
	}
	if e.misses[key] || e.geocoder == nil {
		return Coordinate{}, false
	}

	transient := false
	queries := append([]string{name}, qualified(name)...)
	for _, q := range queries {
		lat, lon, err := e.geocoder.Geocode(ctx, q)
		if err == nil {
			coord := Coordinate{Lat: lat, Lon: lon}
			e.dynamic[key] = cached{name: name, coord: coord}
			e.persistLocked(ctx)
			return coord, true
		}
		if ctx.Err() != nil {
			return Coordinate{}, false
		}
		if !deskerr.Is(err, deskerr.ErrGeocodeNotFound) {
			transient = true
			slog.Debug("Geocode attempt failed", "query", q, "error", err)
		}
	}
	if !transient {
		e.misses[key] = true
	}
	slog.Debug("No coordinates for place", "name", name)
	return Coordinate{}, false
}

// known reports whether name resolves from the gazetteer or the dynamic cache.
func (e *Engine) known(ctx context.Context, name string) bool {
	key := normalizeName(name)
	if _, ok := gazetteer[key]; ok {
		return true
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadLocked(ctx)
	_, ok := e.dynamic[key]
	return ok
}

func qualified(name string) []string {
	out := make([]string, 0, len(countryQualifiers))
	for _, q := range countryQualifiers {
		out = append(out, name+", "+q)
	}
	return out
}

func (e *Engine) loadLocked(ctx context.Context) {
	if e.loaded {
		return
	}
	e.loaded = true
	if e.kv == nil {
		return
	}
	persisted := store.LoadJSON(ctx, e.kv, store.KeyGeocodeCache, map[string]Coordinate{})
	for name, c := range persisted {
		e.dynamic[normalizeName(name)] = cached{name: name, coord: c}
	}
}

func (e *Engine) persistLocked(ctx context.Context) {
	if e.kv == nil {
		return
	}
	out := make(map[string]Coordinate, len(e.dynamic))
	for _, c := range e.dynamic {
		out[c.name] = c.coord
	}
	if err := store.SaveJSON(ctx, e.kv, store.KeyGeocodeCache, out); err != nil {
		slog.Warn("Failed to persist geocode cache", "error", err)
	}
}

// CacheSize reports how many names the dynamic cache holds.
func (e *Engine) CacheSize(ctx context.Context) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadLocked(ctx)
	return len(e.dynamic)
}
