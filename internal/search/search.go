// Package search turns free-text queries such as "tech news from today" into
// structured criteria and filters articles against them.
package search

import (
	"strings"
	"time"
	"unicode"

	"github.com/thinkscotty/newsdesk/internal/models"
)

// DateRange is an inclusive time window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Criteria is the structured form of a query.
type Criteria struct {
	Keywords  []string   `json:"keywords,omitempty"`
	DateRange *DateRange `json:"date_range,omitempty"`
	Source    string     `json:"source,omitempty"`
	// Category is extracted for callers to display; Matches does not filter on it.
	Category *models.Category `json:"category,omitempty"`
}

// IsEmpty reports whether no predicate was extracted.
func (c Criteria) IsEmpty() bool {
	return len(c.Keywords) == 0 && c.DateRange == nil && c.Source == "" && c.Category == nil
}

type datePhrase struct {
	phrases []string
	window  func(now time.Time) DateRange
}

// datePhrases are checked in order; the first hit wins.
var datePhrases = []datePhrase{
	{[]string{"today"}, func(now time.Time) DateRange {
		return DateRange{models.StartOfDay(now), now}
	}},
	{[]string{"yesterday"}, func(now time.Time) DateRange {
		today := models.StartOfDay(now)
		return DateRange{today.AddDate(0, 0, -1), today.Add(-time.Nanosecond)}
	}},
	{[]string{"last week", "past week"}, func(now time.Time) DateRange {
		return DateRange{now.AddDate(0, 0, -7), now}
	}},
	{[]string{"this week"}, func(now time.Time) DateRange {
		return DateRange{startOfWeek(now), now}
	}},
	{[]string{"last month", "past month"}, func(now time.Time) DateRange {
		return DateRange{now.AddDate(0, -1, 0), now}
	}},
	{[]string{"24 hours", "last day"}, func(now time.Time) DateRange {
		return DateRange{now.Add(-24 * time.Hour), now}
	}},
}

// startOfWeek returns Monday 00:00 of t's week.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return models.StartOfDay(t).AddDate(0, 0, -offset)
}

// knownSources are matched as substrings of the query before "from <word>".
// match is the token compared against article source names.
var knownSources = []struct {
	keyword string
	match   string
}{
	{"new york times", "new york times"},
	{"nytimes", "new york times"},
	{"wall street journal", "wall street journal"},
	{"wsj", "wall street journal"},
	{"washington post", "washington post"},
	{"associated press", "associated press"},
	{"ap news", "associated press"},
	{"al jazeera", "al jazeera"},
	{"yahoo finance", "yahoo finance"},
	{"ars technica", "ars technica"},
	{"techcrunch", "techcrunch"},
	{"bbc", "bbc"},
	{"cnbc", "cnbc"},
	{"cnn", "cnn"},
	{"reuters", "reuters"},
	{"bloomberg", "bloomberg"},
	{"guardian", "guardian"},
	{"verge", "verge"},
	{"wired", "wired"},
	{"npr", "npr"},
	{"politico", "politico"},
	{"espn", "espn"},
	{"fortune", "fortune"},
	{"forbes", "forbes"},
	{"marketwatch", "marketwatch"},
	{"variety", "variety"},
}

var categorySynonyms = []struct {
	words    []string
	category models.Category
}{
	{[]string{"technology", "tech"}, models.CategoryTechnology},
	{[]string{"finance", "financial", "markets", "stocks"}, models.CategoryFinance},
	{[]string{"business", "economy"}, models.CategoryBusiness},
	{[]string{"world", "international", "global"}, models.CategoryWorld},
	{[]string{"politics", "political"}, models.CategoryPolitics},
	{[]string{"science", "scientific"}, models.CategoryScience},
	{[]string{"health", "medical"}, models.CategoryHealth},
	{[]string{"sports", "sport"}, models.CategorySports},
	{[]string{"entertainment", "movies", "music"}, models.CategoryEntertainment},
}

var stopWords = setOf(
	"a", "an", "the", "and", "or", "of", "in", "on", "at", "to", "for", "from", "by", "with",
	"about", "into", "over", "under", "after", "before", "since", "during", "is", "are", "was",
	"were", "be", "what", "whats", "show", "me", "find", "get", "give", "any", "all", "some",
	"latest", "recent", "new", "news", "articles", "article", "stories", "story", "headlines",
	"updates", "happening", "there",
)

var dateWords = setOf(
	"today", "yesterday", "last", "past", "this", "week", "month", "day", "hours", "24",
)

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Engine parses queries and filters articles. The zero value is not usable; call New.
type Engine struct {
	now func() time.Time
}

func New() *Engine {
	return &Engine{now: time.Now}
}

// NewWithClock creates an Engine that resolves relative dates against now().
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Parse extracts criteria from query.
func (e *Engine) Parse(query string) Criteria {
	return parseAt(query, e.now())
}

func parseAt(query string, now time.Time) Criteria {
	lower := strings.ToLower(strings.TrimSpace(query))
	var c Criteria
	if lower == "" {
		return c
	}

	for _, dp := range datePhrases {
		if containsAny(lower, dp.phrases) {
			r := dp.window(now)
			c.DateRange = &r
			break
		}
	}

	consumed := map[string]bool{}

	for _, ks := range knownSources {
		if strings.Contains(lower, ks.keyword) {
			c.Source = ks.match
			for _, w := range tokenize(ks.keyword) {
				consumed[w] = true
			}
			break
		}
	}
	if c.Source == "" {
		if w := wordAfterFrom(lower); w != "" {
			c.Source = w
			consumed[w] = true
		}
	}

	// Only the matched category's words are consumed; other category
	// words stay keywords ("tech music" searches Technology for "music").
	for _, syn := range categorySynonyms {
		if containsAny(lower, syn.words) {
			cat := syn.category
			c.Category = &cat
			for _, w := range syn.words {
				consumed[w] = true
			}
			break
		}
	}

	seen := map[string]bool{}
	for _, tok := range tokenize(lower) {
		if len([]rune(tok)) < 3 || stopWords[tok] || dateWords[tok] || consumed[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		c.Keywords = append(c.Keywords, tok)
	}
	return c
}

// wordAfterFrom returns the token following "from ", unless that token is a
// date or stop word ("from today" is a date phrase, not a source).
func wordAfterFrom(lower string) string {
	idx := strings.Index(lower, "from ")
	if idx < 0 || (idx > 0 && !isBoundary(rune(lower[idx-1]))) {
		return ""
	}
	rest := tokenize(lower[idx+len("from "):])
	if len(rest) == 0 {
		return ""
	}
	w := rest[0]
	if dateWords[w] || stopWords[w] {
		return ""
	}
	return w
}

func isBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, isBoundary)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Matches reports whether article satisfies every extracted predicate.
// Keywords match if any one of them appears in the title or display content.
func (c Criteria) Matches(a models.Article) bool {
	if c.DateRange != nil {
		if a.PostDate == nil || !c.DateRange.Contains(*a.PostDate) {
			return false
		}
	}
	if c.Source != "" {
		if a.SourceName == "" || !strings.Contains(strings.ToLower(a.SourceName), c.Source) {
			return false
		}
	}
	if len(c.Keywords) > 0 {
		title := strings.ToLower(a.Title)
		body := a.DisplayContent()
		if body == models.NoContentPlaceholder {
			body = ""
		}
		body = strings.ToLower(body)
		hit := false
		for _, kw := range c.Keywords {
			if strings.Contains(title, kw) || strings.Contains(body, kw) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Search returns the articles matching query in their original order.
// An empty query returns articles unchanged.
func (e *Engine) Search(query string, articles []models.Article) []models.Article {
	if strings.TrimSpace(query) == "" {
		return articles
	}
	c := e.Parse(query)
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if c.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}
