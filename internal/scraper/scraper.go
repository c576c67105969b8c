package scraper

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	deskerr "github.com/thinkscotty/newsdesk/internal/errors"
)

const DefaultUserAgent = "newsdesk/1.0 (Feed Reader; +https://github.com/thinkscotty/newsdesk)"

// Fetcher retrieves the raw bytes behind a feed URL.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
}

// Scraper is the colly-backed Fetcher.
type Scraper struct {
	userAgent      string
	requestTimeout time.Duration
}

// New creates a Scraper. Empty userAgent and zero timeout fall back to defaults.
func New(userAgent string, requestTimeout time.Duration) *Scraper {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if requestTimeout <= 0 {
		requestTimeout = 20 * time.Second
	}
	return &Scraper{userAgent: userAgent, requestTimeout: requestTimeout}
}

func (s *Scraper) collector(ctx context.Context) *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.MaxDepth(1),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.requestTimeout)
	return c
}

// Fetch performs a GET and returns the response body. Any failure is a
// TRANSPORT error so callers can degrade the source to zero articles.
func (s *Scraper) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if err := ValidateURL(feedURL); err != nil {
		return nil, deskerr.NewTransport(feedURL, err)
	}

	c := s.collector(ctx)

	var (
		mu       sync.Mutex
		body     []byte
		fetchErr error
	)

	c.OnResponse(func(r *colly.Response) {
		mu.Lock()
		defer mu.Unlock()
		body = append([]byte(nil), r.Body...)
	})

	c.OnError(func(r *colly.Response, err error) {
		mu.Lock()
		defer mu.Unlock()
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = fmt.Errorf("%w (status: %d)", err, status)
	})

	visitErr := c.Visit(feedURL)
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	if fetchErr != nil {
		return nil, deskerr.NewTransport(feedURL, fetchErr)
	}
	if visitErr != nil {
		return nil, deskerr.NewTransport(feedURL, visitErr)
	}
	if len(body) == 0 {
		return nil, deskerr.NewTransport(feedURL, fmt.Errorf("empty response body"))
	}
	return body, nil
}

// ValidateURL checks if a URL is valid and uses http/https.
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
