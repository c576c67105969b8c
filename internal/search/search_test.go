package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkscotty/newsdesk/internal/models"
)

// Saturday afternoon, local time.
var fixedNow = time.Date(2026, 10, 17, 15, 0, 0, 0, time.Local)

func testEngine() *Engine {
	return NewWithClock(func() time.Time { return fixedNow })
}

func at(t time.Time) *time.Time { return &t }

func TestSearchEmptyQueryReturnsInput(t *testing.T) {
	articles := []models.Article{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, articles, testEngine().Search("", articles))
	assert.Equal(t, articles, testEngine().Search("   ", articles))
}

func TestTechNewsFromToday(t *testing.T) {
	var articles []models.Article
	for i := 0; i < 5; i++ {
		articles = append(articles, models.Article{
			ID:       fmt.Sprintf("today-%d", i),
			Title:    "Chip launch",
			PostDate: at(fixedNow.Add(-time.Duration(i) * time.Hour)),
		})
		articles = append(articles, models.Article{
			ID:       fmt.Sprintf("yesterday-%d", i),
			Title:    "Chip launch",
			PostDate: at(fixedNow.Add(-24*time.Hour - time.Duration(i)*time.Hour)),
		})
	}

	e := testEngine()
	c := e.Parse("tech news from today")
	require.NotNil(t, c.DateRange)
	assert.Empty(t, c.Keywords)
	assert.Empty(t, c.Source)
	require.NotNil(t, c.Category)
	assert.Equal(t, models.CategoryTechnology, *c.Category)

	got := e.Search("tech news from today", articles)
	require.Len(t, got, 5)
	for _, a := range got {
		assert.True(t, models.SameDay(*a.PostDate, fixedNow), a.ID)
	}
}

func TestDatePhrases(t *testing.T) {
	today := models.StartOfDay(fixedNow)
	cases := []struct {
		query string
		start time.Time
		end   time.Time
	}{
		{"today", today, fixedNow},
		{"yesterday", today.AddDate(0, 0, -1), today.Add(-time.Nanosecond)},
		{"last week", fixedNow.AddDate(0, 0, -7), fixedNow},
		{"past week", fixedNow.AddDate(0, 0, -7), fixedNow},
		{"this week", time.Date(2026, 10, 12, 0, 0, 0, 0, time.Local), fixedNow},
		{"last month", fixedNow.AddDate(0, -1, 0), fixedNow},
		{"last 24 hours", fixedNow.Add(-24 * time.Hour), fixedNow},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			c := testEngine().Parse(tc.query)
			require.NotNil(t, c.DateRange)
			assert.Equal(t, tc.start, c.DateRange.Start)
			assert.Equal(t, tc.end, c.DateRange.End)
		})
	}
}

func TestStartOfWeekOnMonday(t *testing.T) {
	monday := time.Date(2026, 10, 12, 9, 0, 0, 0, time.Local)
	assert.Equal(t, models.StartOfDay(monday), startOfWeek(monday))
	sunday := time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)
	assert.Equal(t, models.StartOfDay(monday), startOfWeek(sunday))
}

func TestSourceExtraction(t *testing.T) {
	e := testEngine()

	c := e.Parse("climate stories from bbc")
	assert.Equal(t, "bbc", c.Source)
	assert.Equal(t, []string{"climate"}, c.Keywords)

	c = e.Parse("markets from wsj")
	assert.Equal(t, "wall street journal", c.Source)

	c = e.Parse("earnings from seekingalpha")
	assert.Equal(t, "seekingalpha", c.Source)
	assert.Equal(t, []string{"earnings"}, c.Keywords)

	c = e.Parse("elections from yesterday")
	assert.Empty(t, c.Source)
	assert.NotNil(t, c.DateRange)
}

func TestSourcePredicate(t *testing.T) {
	articles := []models.Article{
		{ID: "1", Title: "Storm", SourceName: "BBC News - World"},
		{ID: "2", Title: "Storm", SourceName: "NPR World"},
		{ID: "3", Title: "Storm"},
	}
	got := testEngine().Search("storm from bbc", articles)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestKeywordsAreOr(t *testing.T) {
	articles := []models.Article{
		{ID: "1", Title: "Tesla recalls vehicles"},
		{ID: "2", Title: "Markets", Description: "<p>Nvidia shares rally</p>"},
		{ID: "3", Title: "Weather update"},
	}
	c := testEngine().Parse("tesla nvidia")
	assert.Equal(t, []string{"tesla", "nvidia"}, c.Keywords)

	got := testEngine().Search("tesla nvidia", articles)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
}

func TestKeywordFiltering(t *testing.T) {
	c := testEngine().Parse("show me the latest AI and ev news about tesla tesla")
	assert.Equal(t, []string{"tesla"}, c.Keywords)
}

func TestUndatedArticleFailsDatePredicate(t *testing.T) {
	articles := []models.Article{
		{ID: "dated", Title: "x", PostDate: at(fixedNow)},
		{ID: "undated", Title: "x"},
	}
	got := testEngine().Search("today", articles)
	require.Len(t, got, 1)
	assert.Equal(t, "dated", got[0].ID)
}

func TestCategoryIsNotApplied(t *testing.T) {
	articles := []models.Article{
		{ID: "1", Title: "Quarterly results", Category: models.CategoryFinance},
		{ID: "2", Title: "Quarterly results", Category: models.CategoryTechnology},
	}
	c := testEngine().Parse("sports")
	require.NotNil(t, c.Category)
	assert.Equal(t, models.CategorySports, *c.Category)
	assert.False(t, c.IsEmpty())
	assert.Len(t, testEngine().Search("sports", articles), 2)
}

func TestPlaceholderIsNotSearchable(t *testing.T) {
	articles := []models.Article{
		{ID: "empty", Title: "Headline only"},
		{ID: "body", Title: "Headline", Description: "Tickets available now"},
	}
	got := testEngine().Search("available", articles)
	require.Len(t, got, 1)
	assert.Equal(t, "body", got[0].ID)
	assert.Empty(t, testEngine().Search("content", articles))
}

func TestOnlyMatchedCategoryWordsAreConsumed(t *testing.T) {
	c := testEngine().Parse("tech music reviews")
	require.NotNil(t, c.Category)
	assert.Equal(t, models.CategoryTechnology, *c.Category)
	assert.Equal(t, []string{"music", "reviews"}, c.Keywords)
}
