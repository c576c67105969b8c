package models

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// NoContentPlaceholder is shown when an article carries neither content nor description.
const NoContentPlaceholder = "No content available"

type Category string

const (
	CategoryTechnology    Category = "Technology"
	CategoryFinance       Category = "Finance"
	CategoryBusiness      Category = "Business"
	CategoryWorld         Category = "World"
	CategoryPolitics      Category = "Politics"
	CategoryScience       Category = "Science"
	CategoryHealth        Category = "Health"
	CategorySports        Category = "Sports"
	CategoryEntertainment Category = "Entertainment"
)

// AllCategories returns every category in canonical order.
func AllCategories() []Category {
	return []Category{
		CategoryTechnology, CategoryFinance, CategoryBusiness, CategoryWorld, CategoryPolitics,
		CategoryScience, CategoryHealth, CategorySports, CategoryEntertainment,
	}
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range AllCategories() {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// SportsSubcategory is the sub-taxonomy of CategorySports.
type SportsSubcategory string

const (
	SportNFL    SportsSubcategory = "NFL"
	SportNBA    SportsSubcategory = "NBA"
	SportMLB    SportsSubcategory = "MLB"
	SportNHL    SportsSubcategory = "NHL"
	SportSoccer SportsSubcategory = "Soccer"
	SportF1     SportsSubcategory = "F1"
	SportTennis SportsSubcategory = "Tennis"
	SportGolf   SportsSubcategory = "Golf"
)

func AllSportsSubcategories() []SportsSubcategory {
	return []SportsSubcategory{SportNFL, SportNBA, SportMLB, SportNHL, SportSoccer, SportF1, SportTennis, SportGolf}
}

func ParseSportsSubcategory(s string) (SportsSubcategory, bool) {
	s = strings.TrimSpace(s)
	for _, sub := range AllSportsSubcategories() {
		if strings.EqualFold(string(sub), s) {
			return sub, true
		}
	}
	return "", false
}

type Article struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Link         string            `json:"link"`
	Thumbnail    string            `json:"thumbnail,omitempty"`
	PostDate     *time.Time        `json:"post_date,omitempty"`
	Content      string            `json:"content,omitempty"`
	Description  string            `json:"description,omitempty"`
	SourceName   string            `json:"source_name,omitempty"`
	Category     Category          `json:"category,omitempty"`
	Context      *RelevanceContext `json:"context,omitempty"`
	Implications *Implications     `json:"implications,omitempty"`
	Location     *GeoTag           `json:"location,omitempty"`
}

// DisplayContent returns content, falling back to description, with HTML tags removed.
func (a Article) DisplayContent() string {
	raw := a.Content
	if raw == "" {
		raw = a.Description
	}
	if raw == "" {
		return NoContentPlaceholder
	}
	return StripHTML(raw)
}

// HasThumbnail reports whether the article carries an image URL.
func (a Article) HasThumbnail() bool {
	return a.Thumbnail != ""
}

// StripHTML removes markup and collapses whitespace.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Source is a feed descriptor from the catalog.
type Source struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	URL         string            `json:"url" yaml:"url"`
	Category    Category          `json:"category" yaml:"category"`
	Subcategory SportsSubcategory `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	IsSelected  bool              `json:"is_selected" yaml:"is_selected"`
}

type ContextType string

const (
	ContextCategoryRelevance ContextType = "category_relevance"
	ContextPersonalInterest  ContextType = "personal_interest"
	ContextMarketImpact      ContextType = "market_impact"
	ContextTimeSensitive     ContextType = "time_sensitive"
)

// RelevanceContext explains why an article matters.
type RelevanceContext struct {
	Reason     string      `json:"reason"`
	Confidence float64     `json:"confidence"`
	Type       ContextType `json:"type"`
}

// Implications holds at most three downstream-effect bullets.
type Implications struct {
	Bullets []string `json:"bullets"`
}

type GeoTag struct {
	DetectedLocation string  `json:"detected_location"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

type SignalType string

const (
	SignalTopicMomentum          SignalType = "topic_momentum"
	SignalCrossSourceConvergence SignalType = "cross_source_convergence"
)

type Signal struct {
	ID      string     `json:"id"`
	Message string     `json:"message"`
	Date    time.Time  `json:"date"`
	Type    SignalType `json:"type"`
	Topic   string     `json:"topic"`
}

// ApplyGeoTags sets Location on every article whose ID appears in patch.
func ApplyGeoTags(articles []Article, patch map[string]GeoTag) int {
	applied := 0
	for i := range articles {
		if tag, ok := patch[articles[i].ID]; ok {
			articles[i].Location = &tag
			applied++
		}
	}
	return applied
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
