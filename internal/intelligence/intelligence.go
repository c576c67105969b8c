// Package intelligence explains why an article matters and what it may lead to,
// using keyword rulebooks per category and sports subcategory.
package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/thinkscotty/newsdesk/internal/models"
)

// MinConfidence is the exclusive lower bound for an accepted context.
const MinConfidence = 0.6

const (
	maxBullets       = 3
	freshWindow      = 2 * time.Hour
	bookmarkedReason = "You bookmarked this"
)

type Engine struct {
	now func() time.Time
}

func New() *Engine {
	return &Engine{now: time.Now}
}

func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// GenerateContext returns the highest-confidence explanation above
// MinConfidence, or nil. Candidates are produced by the category, personal,
// market, and time-sensitive generators in that order; on equal confidence the
// later one wins. readHistory is accepted for callers that track it but does
// not influence scoring yet.
func (e *Engine) GenerateContext(article models.Article, category models.Category, subcategory string,
	sports *models.SportsSubcategory, readHistory, bookmarks map[string]bool) *models.RelevanceContext {
	text := matchText(article)

	candidates := []*models.RelevanceContext{
		categoryContext(text, category, subcategory, sports),
		personalContext(article.ID, bookmarks),
		marketContext(text, category),
		e.timeSensitiveContext(article, strings.ToLower(article.Title)),
	}

	var best *models.RelevanceContext
	for _, c := range candidates {
		if c == nil || c.Confidence <= MinConfidence {
			continue
		}
		if best == nil || c.Confidence >= best.Confidence {
			best = c
		}
	}
	return best
}

// GenerateImplications returns up to three bullets, category-specific first,
// or nil when no rule fires.
func (e *Engine) GenerateImplications(article models.Article, category models.Category, subcategory string,
	sports *models.SportsSubcategory) *models.Implications {
	text := matchText(article)

	var bullets []string
	seen := map[string]bool{}
	add := func(rules []bulletRule) {
		for _, r := range rules {
			if !seen[r.bullet] && containsAny(text, r.keywords) {
				seen[r.bullet] = true
				bullets = append(bullets, r.bullet)
			}
		}
	}
	add(categoryBullets[category])
	if category == models.CategorySports {
		if label := sportsLabel(subcategory, sports); label != "" {
			add([]bulletRule{{[]string{"playoff", "final", "championship", "cup"},
				fmt.Sprintf("Standings in your %s focus could shift", label)}})
		}
	}
	add(crossCuttingBullets)

	if len(bullets) == 0 {
		return nil
	}
	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}
	return &models.Implications{Bullets: bullets}
}

func categoryContext(text string, category models.Category, subcategory string, sports *models.SportsSubcategory) *models.RelevanceContext {
	if category == models.CategorySports {
		return sportsContext(text, subcategory, sports)
	}
	return firstMatch(text, categoryRules[category])
}

// sportsContext prefers the subcategory rulebook and falls back to a generic
// focus reason when a subcategory is known but no rule fires.
func sportsContext(text, subcategory string, sports *models.SportsSubcategory) *models.RelevanceContext {
	sub := sports
	if sub == nil {
		if parsed, ok := models.ParseSportsSubcategory(subcategory); ok {
			sub = &parsed
		}
	}
	if sub != nil {
		if c := firstMatch(text, sportsRules[*sub]); c != nil {
			return c
		}
	}
	if label := sportsLabel(subcategory, sports); label != "" {
		return &models.RelevanceContext{
			Reason:     fmt.Sprintf("Relevant to your %s focus", label),
			Confidence: 0.7,
			Type:       models.ContextCategoryRelevance,
		}
	}
	return firstMatch(text, categoryRules[models.CategorySports])
}

func sportsLabel(subcategory string, sports *models.SportsSubcategory) string {
	if sports != nil {
		return string(*sports)
	}
	return strings.TrimSpace(subcategory)
}

func personalContext(id string, bookmarks map[string]bool) *models.RelevanceContext {
	switch {
	case bookmarks[id]:
		return &models.RelevanceContext{Reason: bookmarkedReason, Confidence: 1.0, Type: models.ContextPersonalInterest}
	case len(bookmarks) > 0:
		return &models.RelevanceContext{Reason: "Related to topics you've saved", Confidence: 0.65, Type: models.ContextPersonalInterest}
	}
	return nil
}

func marketContext(text string, category models.Category) *models.RelevanceContext {
	if category != models.CategoryFinance && category != models.CategoryBusiness {
		return nil
	}
	switch {
	case containsAny(text, breakingWords) && containsAny(text, marketWords):
		return &models.RelevanceContext{Reason: "Breaking market news can move prices today", Confidence: 0.95, Type: models.ContextMarketImpact}
	case containsAny(text, dealWords):
		return &models.RelevanceContext{Reason: "Deal activity can reshape the competitive landscape", Confidence: 0.9, Type: models.ContextMarketImpact}
	case containsAny(text, analystWords):
		return &models.RelevanceContext{Reason: "Analyst calls often move the stock", Confidence: 0.8, Type: models.ContextMarketImpact}
	}
	return nil
}

func (e *Engine) timeSensitiveContext(article models.Article, title string) *models.RelevanceContext {
	if article.PostDate == nil || e.now().Sub(*article.PostDate) >= freshWindow {
		return nil
	}
	if !containsAny(title, urgentWords) {
		return nil
	}
	return &models.RelevanceContext{Reason: "Developing story, details may change quickly", Confidence: 0.9, Type: models.ContextTimeSensitive}
}

func firstMatch(text string, rules []rule) *models.RelevanceContext {
	for _, r := range rules {
		if containsAny(text, r.keywords) {
			return r.context()
		}
	}
	return nil
}

// matchText is the lowercased title plus body text. The "no content"
// placeholder is left out so it cannot trigger rules.
func matchText(a models.Article) string {
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
