// Package filter applies the user's declarative view settings to an article list.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/thinkscotty/newsdesk/internal/models"
)

type DateFilter string

const (
	DateAll        DateFilter = "all"
	DateToday      DateFilter = "today"
	DateYesterday  DateFilter = "yesterday"
	DateLast7Days  DateFilter = "last7days"
	DateLast30Days DateFilter = "last30days"
)

type SortOption string

const (
	SortNone   SortOption = "none"
	SortDate   SortOption = "date"
	SortSource SortOption = "source"
	SortTitle  SortOption = "title"
)

// Config is persisted under store.KeyFilterConfig.
type Config struct {
	OnlyWithImages  bool       `json:"only_with_images"`
	HideRead        bool       `json:"hide_read"`
	DateFilter      DateFilter `json:"date_filter"`
	ExcludedSources []string   `json:"excluded_sources"`
	SortOption      SortOption `json:"sort_option"`
	Ascending       bool       `json:"ascending"`
}

func DefaultConfig() Config {
	return Config{DateFilter: DateAll, SortOption: SortNone}
}

// ParseDateFilter maps user input to a DateFilter; unknown values mean all.
func ParseDateFilter(s string) DateFilter {
	switch f := DateFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case DateToday, DateYesterday, DateLast7Days, DateLast30Days:
		return f
	}
	return DateAll
}

func ParseSortOption(s string) SortOption {
	switch o := SortOption(strings.ToLower(strings.TrimSpace(s))); o {
	case SortDate, SortSource, SortTitle:
		return o
	}
	return SortNone
}

// Apply filters and sorts articles without modifying the input slice.
// Steps run in a fixed order: images, read, date window, excluded sources, sort.
func Apply(articles []models.Article, cfg Config, readSet map[string]bool, now time.Time) []models.Article {
	excluded := make(map[string]bool, len(cfg.ExcludedSources))
	for _, s := range cfg.ExcludedSources {
		excluded[s] = true
	}
	inWindow := dateWindow(cfg.DateFilter, now)

	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if cfg.OnlyWithImages && !a.HasThumbnail() {
			continue
		}
		if cfg.HideRead && readSet[a.ID] {
			continue
		}
		if inWindow != nil && (a.PostDate == nil || !inWindow(*a.PostDate)) {
			continue
		}
		if excluded[a.SourceName] {
			continue
		}
		out = append(out, a)
	}

	sortArticles(out, cfg.SortOption, cfg.Ascending)
	return out
}

// dateWindow returns nil for DateAll.
func dateWindow(f DateFilter, now time.Time) func(time.Time) bool {
	switch f {
	case DateToday:
		return func(t time.Time) bool { return models.SameDay(now, t) }
	case DateYesterday:
		yesterday := now.AddDate(0, 0, -1)
		return func(t time.Time) bool { return models.SameDay(yesterday, t) }
	case DateLast7Days:
		start := now.AddDate(0, 0, -7)
		return func(t time.Time) bool { return !t.Before(start) }
	case DateLast30Days:
		start := now.AddDate(0, 0, -30)
		return func(t time.Time) bool { return !t.Before(start) }
	}
	return nil
}

func sortArticles(articles []models.Article, opt SortOption, ascending bool) {
	var less func(a, b models.Article) bool
	switch opt {
	case SortDate:
		less = func(a, b models.Article) bool { return dateLess(a.PostDate, b.PostDate, ascending) }
	case SortSource:
		less = func(a, b models.Article) bool {
			return ordered(strings.ToLower(a.SourceName), strings.ToLower(b.SourceName), ascending)
		}
	case SortTitle:
		less = func(a, b models.Article) bool {
			return ordered(strings.ToLower(a.Title), strings.ToLower(b.Title), ascending)
		}
	default:
		return
	}
	sort.SliceStable(articles, func(i, j int) bool { return less(articles[i], articles[j]) })
}

func ordered(a, b string, ascending bool) bool {
	if ascending {
		return a < b
	}
	return a > b
}

// dateLess puts undated articles after dated ones when descending and
// before them when ascending.
func dateLess(a, b *time.Time, ascending bool) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return ascending
	case b == nil:
		return !ascending
	case ascending:
		return a.Before(*b)
	default:
		return a.After(*b)
	}
}
