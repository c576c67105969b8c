package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/thinkscotty/newsdesk/internal/feed"
)

// ValidationResult holds the result of a source validation attempt.
type ValidationResult struct {
	URL          string `json:"url"`
	Name         string `json:"name"`
	OK           bool   `json:"ok"`
	Reason       string `json:"reason,omitempty"`   // why it failed, if !OK
	FeedURL      string `json:"feed_url,omitempty"` // feed discovered on the page, if any
	ArticleCount int    `json:"article_count"`
}

// ValidateSource fetches a candidate source and confirms it parses as a feed
// with at least one item. When sourceURL is a web page, the page's advertised
// RSS/Atom feed is discovered and validated instead.
func (s *Scraper) ValidateSource(ctx context.Context, sourceURL, name string) ValidationResult {
	result := ValidationResult{URL: sourceURL, Name: name}

	if err := ValidateURL(sourceURL); err != nil {
		result.Reason = err.Error()
		return result
	}

	valCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	testURL := sourceURL
	if feedURL := s.DiscoverRSSFeed(valCtx, sourceURL); feedURL != "" {
		result.FeedURL = feedURL
		testURL = feedURL
	}

	raw, err := s.Fetch(valCtx, testURL)
	if err != nil {
		result.Reason = err.Error()
		return result
	}

	articles, err := feed.NewParser().Parse(raw)
	if err != nil {
		result.Reason = err.Error()
		return result
	}
	if len(articles) == 0 {
		result.Reason = fmt.Sprintf("feed at %s has no items", testURL)
		return result
	}

	result.OK = true
	result.ArticleCount = len(articles)
	return result
}
