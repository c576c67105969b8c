package trends

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkscotty/newsdesk/internal/models"
	"github.com/thinkscotty/newsdesk/internal/store"
)

var day = time.Date(2026, 10, 17, 15, 0, 0, 0, time.Local)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newEngine(kv store.KV) (*Engine, *clock) {
	c := &clock{t: day}
	e := NewWithClock(kv, c.now)
	n := 0
	e.newID = func() string {
		n++
		return fmt.Sprintf("sig-%d", n)
	}
	return e, c
}

func article(title, source string, at time.Time) models.Article {
	return models.Article{ID: title + source, Title: title, SourceName: source, PostDate: &at}
}

func byType(signals []models.Signal, kind models.SignalType) []models.Signal {
	var out []models.Signal
	for _, s := range signals {
		if s.Type == kind {
			out = append(out, s)
		}
	}
	return out
}

func TestMomentumWithNoHistory(t *testing.T) {
	e, _ := newEngine(nil)
	articles := []models.Article{
		article("Inflation cools", "Source A", day),
		article("Inflation data due", "Source B", day.Add(-time.Hour)),
		article("Inflation, inflation, inflation", "Source C", day.Add(-2*time.Hour)),
	}

	signals := e.GenerateSignals(context.Background(), articles)
	require.Len(t, signals, 1)
	assert.Equal(t, models.SignalTopicMomentum, signals[0].Type)
	assert.Equal(t, "Inflation", signals[0].Topic)
	assert.Contains(t, signals[0].Message, "3 stories today from 3 sources")
}

func TestMomentumAgainstBaseline(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	var entries []DayCount
	for i := 1; i <= 7; i++ {
		entries = append(entries, DayCount{Day: day.AddDate(0, 0, -i).Format(dayLayout), Count: 2})
	}
	entries = append(entries, DayCount{Day: day.Format(dayLayout), Count: 50})
	require.NoError(t, store.SaveJSON(ctx, kv, store.KeyTopicHistory, History{"Recession": entries}))

	assert.Equal(t, 2.0, Baseline(entries, day))

	e, _ := newEngine(kv)
	three := []models.Article{
		article("Recession fears", "A", day),
		article("Recession odds", "B", day),
		article("Recession watch", "C", day),
	}
	assert.Empty(t, e.GenerateSignals(ctx, three))

	four := append(three, article("Recession talk", "D", day))
	signals := e.GenerateSignals(ctx, four)
	require.NotEmpty(t, signals)
	assert.Equal(t, models.SignalTopicMomentum, signals[0].Type)
}

func TestConvergence(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    string
	}{
		{"credible outlets", []string{"Reuters", "BBC News - World", "Blog One", "Blog Two"}, "high-credibility"},
		{"many sources", []string{"One", "Two", "Three", "Four", "Five"}, "reported by 5 sources"},
		{"too few sources", []string{"One", "Two", "Three", "Four"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newEngine(nil)
			var articles []models.Article
			for _, s := range tt.sources {
				articles = append(articles, article("New tariff announced", s, day))
			}
			conv := byType(e.GenerateSignals(context.Background(), articles), models.SignalCrossSourceConvergence)
			if tt.want == "" {
				assert.Empty(t, conv)
				return
			}
			require.Len(t, conv, 1)
			assert.Contains(t, conv[0].Message, tt.want)
		})
	}
}

func TestSignalsAreCappedAndOrdered(t *testing.T) {
	e, _ := newEngine(nil)
	var articles []models.Article
	titles := []string{"Inflation", "Recession", "Bitcoin", "Tariff", "Ukraine", "Iran", "Election"}
	for _, title := range titles {
		for _, s := range []string{"Reuters", "BBC", "NPR", "Blog"} {
			articles = append(articles, article(title+" update", s, day))
		}
	}

	signals := e.GenerateSignals(context.Background(), articles)
	assert.Len(t, signals, MaxSignals)
	for _, s := range signals {
		assert.Equal(t, models.SignalTopicMomentum, s.Type)
	}
	assert.Len(t, e.TodaysSignals(context.Background()), MaxSignals)
}

func TestOnlyTodaysArticlesCount(t *testing.T) {
	e, _ := newEngine(nil)
	yesterday := day.AddDate(0, 0, -1)
	articles := []models.Article{
		article("Bitcoin rallies", "A", day),
		article("Bitcoin slips", "B", yesterday),
		article("Bitcoin steady", "C", yesterday),
		{ID: "undated", Title: "Bitcoin undated", SourceName: "D"},
	}
	assert.Empty(t, e.GenerateSignals(context.Background(), articles))
}

func TestHeldSignalsResetDaily(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	e, c := newEngine(kv)

	articles := []models.Article{
		article("Layoffs hit tech", "A", day),
		article("More layoffs", "B", day),
		article("Layoff tracker", "C", day),
	}
	require.Len(t, e.GenerateSignals(ctx, articles), 1)

	reloaded, rc := newEngine(kv)
	assert.Len(t, reloaded.TodaysSignals(ctx), 1)

	c.t = day.AddDate(0, 0, 1)
	assert.Empty(t, e.TodaysSignals(ctx))
	rc.t = day.AddDate(0, 0, 1)
	assert.Empty(t, reloaded.TodaysSignals(ctx))
}

func TestHistoryUpsertAndPrune(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	old := day.AddDate(0, 0, -9).Format(dayLayout)
	recent := day.AddDate(0, 0, -3).Format(dayLayout)
	require.NoError(t, store.SaveJSON(ctx, kv, store.KeyTopicHistory, History{
		"Climate": {{Day: old, Count: 9}, {Day: recent, Count: 1}},
		"Retired": {{Day: recent, Count: 4}},
	}))

	e, _ := newEngine(kv)
	articles := []models.Article{article("Climate summit", "A", day)}
	e.GenerateSignals(ctx, articles)
	e.GenerateSignals(ctx, articles)

	history := store.LoadJSON(ctx, kv, store.KeyTopicHistory, History{})
	assert.Equal(t, []DayCount{
		{Day: recent, Count: 1},
		{Day: day.Format(dayLayout), Count: 1},
	}, history["Climate"])
	assert.Equal(t, []DayCount{{Day: day.Format(dayLayout), Count: 0}}, history["Inflation"])
	assert.NotContains(t, history, "Retired")
	assert.Len(t, history, len(topics))
}
