// Package trends detects daily topic spikes and cross-source convergence
// against a rolling seven-day history.
package trends

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thinkscotty/newsdesk/internal/models"
	"github.com/thinkscotty/newsdesk/internal/store"
)

const (
	MaxSignals     = 5
	historyDays    = 7
	dayLayout      = "2006-01-02"
	momentumMin    = 3
	convergenceMin = 4
	genericSources = 5
)

// DayCount is one day of history for a topic.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// History maps topic labels to per-day counts, oldest first.
type History map[string][]DayCount

type Engine struct {
	kv    store.KV
	now   func() time.Time
	newID func() string

	mu      sync.Mutex
	loaded  bool
	signals []models.Signal
}

// New creates an Engine backed by kv. A nil kv keeps history in memory only.
func New(kv store.KV) *Engine {
	return NewWithClock(kv, time.Now)
}

func NewWithClock(kv store.KV, now func() time.Time) *Engine {
	if kv == nil {
		kv = store.NewMemory()
	}
	return &Engine{kv: kv, now: now, newID: uuid.NewString}
}

// TodaysSignals returns the signals held for the current calendar day.
func (e *Engine) TodaysSignals(ctx context.Context) []models.Signal {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadLocked(ctx)
	e.dropStaleLocked(e.now())
	return append([]models.Signal(nil), e.signals...)
}

// GenerateSignals analyzes the articles published today, returns at most
// MaxSignals signals (momentum first, then convergence), and records
// today's counts in the persisted history.
func (e *Engine) GenerateSignals(ctx context.Context, articles []models.Article) []models.Signal {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.loadLocked(ctx)
	e.dropStaleLocked(now)

	counts, sources := countTopics(articles, now)
	history := store.LoadJSON(ctx, e.kv, store.KeyTopicHistory, History{})
	if history == nil {
		history = History{}
	}
	today := now.Format(dayLayout)

	var momentum, convergence []models.Signal
	for _, t := range topics {
		count := counts[t.label]
		if count == 0 {
			continue
		}
		outlets := sources[t.label]
		baseline := Baseline(history[t.label], now)

		if count >= momentumMin && float64(count) >= 2*baseline {
			momentum = append(momentum, e.signal(now, models.SignalTopicMomentum, t.label,
				fmt.Sprintf("%s is surging: %d stories today from %d sources (7-day average %.1f)",
					t.label, count, len(outlets), baseline)))
		}

		if count >= convergenceMin && len(outlets) >= convergenceMin {
			if credible := countCredible(outlets); credible >= 2 {
				convergence = append(convergence, e.signal(now, models.SignalCrossSourceConvergence, t.label,
					fmt.Sprintf("%s is covered by multiple high-credibility outlets (%d of %d sources)",
						t.label, credible, len(outlets))))
			} else if len(outlets) >= genericSources {
				convergence = append(convergence, e.signal(now, models.SignalCrossSourceConvergence, t.label,
					fmt.Sprintf("%s is reported by %d sources", t.label, len(outlets))))
			}
		}
	}

	generated := append(momentum, convergence...)
	if len(generated) > MaxSignals {
		generated = generated[:MaxSignals]
	}

	e.recordLocked(ctx, history, counts, today, now)
	e.holdLocked(ctx, generated)

	slog.Debug("Signals generated", "today_articles", countToday(articles, now), "signals", len(generated))
	return append([]models.Signal(nil), generated...)
}

func (e *Engine) signal(now time.Time, kind models.SignalType, topic, msg string) models.Signal {
	return models.Signal{ID: e.newID(), Message: msg, Date: now, Type: kind, Topic: topic}
}

// Baseline is the mean per-day count over the seven days before now's day.
// Today's entry is excluded. No entries means a baseline of zero.
func Baseline(entries []DayCount, now time.Time) float64 {
	today := models.StartOfDay(now)
	from := today.AddDate(0, 0, -historyDays).Format(dayLayout)
	to := today.Format(dayLayout)

	sum, n := 0, 0
	for _, d := range entries {
		if d.Day >= from && d.Day < to {
			sum += d.Count
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func countTopics(articles []models.Article, now time.Time) (map[string]int, map[string]map[string]bool) {
	counts := make(map[string]int)
	sources := make(map[string]map[string]bool)
	for _, a := range articles {
		if a.PostDate == nil || !models.SameDay(now, *a.PostDate) {
			continue
		}
		text := articleText(a)
		for _, t := range topics {
			if !containsAny(text, t.keywords) {
				continue
			}
			counts[t.label]++
			if a.SourceName != "" {
				if sources[t.label] == nil {
					sources[t.label] = make(map[string]bool)
				}
				sources[t.label][a.SourceName] = true
			}
		}
	}
	return counts, sources
}

func countToday(articles []models.Article, now time.Time) int {
	n := 0
	for _, a := range articles {
		if a.PostDate != nil && models.SameDay(now, *a.PostDate) {
			n++
		}
	}
	return n
}

func countCredible(outlets map[string]bool) int {
	n := 0
	for name := range outlets {
		lower := strings.ToLower(name)
		if containsAny(lower, highCredibility) {
			n++
		}
	}
	return n
}

func articleText(a models.Article) string {
	body := a.DisplayContent()
	if body == models.NoContentPlaceholder {
		body = ""
	}
	return strings.ToLower(a.Title + " " + body)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// recordLocked upserts today's count for every topic and prunes entries
// older than the history window.
func (e *Engine) recordLocked(ctx context.Context, history History, counts map[string]int, today string, now time.Time) {
	cutoff := models.StartOfDay(now).AddDate(0, 0, -historyDays).Format(dayLayout)
	for _, t := range topics {
		var kept []DayCount
		for _, d := range history[t.label] {
			if d.Day >= cutoff && d.Day != today {
				kept = append(kept, d)
			}
		}
		kept = append(kept, DayCount{Day: today, Count: counts[t.label]})
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Day < kept[j].Day })
		history[t.label] = kept
	}
	for label := range history {
		if !isTopic(label) {
			delete(history, label)
		}
	}
	if err := store.SaveJSON(ctx, e.kv, store.KeyTopicHistory, history); err != nil {
		slog.Warn("Failed to save topic history", "error", err)
	}
}

func isTopic(label string) bool {
	for _, t := range topics {
		if t.label == label {
			return true
		}
	}
	return false
}

// holdLocked merges generated signals into today's held set. A newer signal
// replaces a held one with the same type and topic.
func (e *Engine) holdLocked(ctx context.Context, generated []models.Signal) {
	held := append([]models.Signal(nil), generated...)
	fresh := make(map[string]bool, len(generated))
	for _, s := range generated {
		fresh[string(s.Type)+"|"+s.Topic] = true
	}
	for _, s := range e.signals {
		if !fresh[string(s.Type)+"|"+s.Topic] {
			held = append(held, s)
		}
	}
	if len(held) > MaxSignals {
		held = held[:MaxSignals]
	}
	e.signals = held
	if err := store.SaveJSON(ctx, e.kv, store.KeyTodaysSignals, held); err != nil {
		slog.Warn("Failed to save today's signals", "error", err)
	}
}

func (e *Engine) loadLocked(ctx context.Context) {
	if e.loaded {
		return
	}
	e.loaded = true
	e.signals = store.LoadJSON(ctx, e.kv, store.KeyTodaysSignals, []models.Signal{})
}

func (e *Engine) dropStaleLocked(now time.Time) {
	kept := e.signals[:0]
	for _, s := range e.signals {
		if models.SameDay(now, s.Date) {
			kept = append(kept, s)
		}
	}
	e.signals = kept
}
