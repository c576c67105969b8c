package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thinkscotty/newsdesk/internal/models"
)

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func at(t time.Time) *time.Time { return &t }

func ids(articles []models.Article) []string {
	out := []string{}
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func sample() []models.Article {
	return []models.Article{
		{ID: "a", Title: "Bravo", SourceName: "BBC", Thumbnail: "https://img/a.jpg", PostDate: at(now.Add(-time.Hour))},
		{ID: "b", Title: "alpha", SourceName: "NPR", PostDate: at(now.Add(-26 * time.Hour))},
		{ID: "c", Title: "Charlie", SourceName: "CNN", Thumbnail: "https://img/c.jpg"},
		{ID: "d", Title: "Delta", SourceName: "BBC", PostDate: at(now.AddDate(0, 0, -10))},
		{ID: "e", Title: "Echo", SourceName: "Reuters", Thumbnail: "https://img/e.jpg", PostDate: at(now.AddDate(0, 0, -40))},
	}
}

func TestApplyFilters(t *testing.T) {
	read := map[string]bool{"a": true}
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"default keeps everything", DefaultConfig(), []string{"a", "b", "c", "d", "e"}},
		{"images only", Config{OnlyWithImages: true}, []string{"a", "c", "e"}},
		{"hide read", Config{HideRead: true}, []string{"b", "c", "d", "e"}},
		{"today", Config{DateFilter: DateToday}, []string{"a"}},
		{"yesterday", Config{DateFilter: DateYesterday}, []string{"b"}},
		{"last 7 days", Config{DateFilter: DateLast7Days}, []string{"a", "b"}},
		{"last 30 days", Config{DateFilter: DateLast30Days}, []string{"a", "b", "d"}},
		{"excluded sources", Config{ExcludedSources: []string{"BBC", "CNN"}}, []string{"b", "e"}},
		{"combined", Config{OnlyWithImages: true, HideRead: true, ExcludedSources: []string{"Reuters"}}, []string{"c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sample(), tt.cfg, read, now)))
		})
	}
}

func TestApplySort(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"date descending puts undated last", Config{SortOption: SortDate}, []string{"a", "b", "d", "e", "c"}},
		{"date ascending puts undated first", Config{SortOption: SortDate, Ascending: true}, []string{"c", "e", "d", "b", "a"}},
		{"title ascending ignores case", Config{SortOption: SortTitle, Ascending: true}, []string{"b", "a", "c", "d", "e"}},
		{"source descending is stable", Config{SortOption: SortSource}, []string{"e", "b", "c", "a", "d"}},
		{"none keeps input order", Config{SortOption: SortNone}, []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sample(), tt.cfg, nil, now)))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	read := map[string]bool{"e": true}
	configs := []Config{
		DefaultConfig(),
		{OnlyWithImages: true, SortOption: SortTitle},
		{HideRead: true, DateFilter: DateLast30Days, SortOption: SortDate},
		{ExcludedSources: []string{"NPR"}, SortOption: SortDate, Ascending: true},
		{SortOption: SortSource, Ascending: true},
	}
	for _, cfg := range configs {
		once := Apply(sample(), cfg, read, now)
		twice := Apply(once, cfg, read, now)
		assert.Equal(t, ids(once), ids(twice))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := sample()
	Apply(in, Config{SortOption: SortTitle}, nil, now)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(in))
}

func TestParseOptions(t *testing.T) {
	assert.Equal(t, DateLast7Days, ParseDateFilter(" Last7Days "))
	assert.Equal(t, DateAll, ParseDateFilter("forever"))
	assert.Equal(t, SortTitle, ParseSortOption("TITLE"))
	assert.Equal(t, SortNone, ParseSortOption(""))
}
