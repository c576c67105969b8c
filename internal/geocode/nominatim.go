// Package geocode resolves place names to coordinates through a
// Nominatim-compatible search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	deskerr "github.com/thinkscotty/newsdesk/internal/errors"
)

const (
	DefaultBaseURL     = "https://nominatim.openstreetmap.org"
	DefaultUserAgent   = "newsdesk/1.0 (+https://github.com/thinkscotty/newsdesk)"
	DefaultMinInterval = 1100 * time.Millisecond
)

// Geocoder resolves a free-text place query. Implementations return an error
// carrying deskerr.ErrGeocodeNotFound when nothing matches.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lon float64, err error)
}

// Client queries Nominatim, spacing requests at least minInterval apart.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// New creates a Client with a 15-second timeout. Empty arguments take defaults.
func New(baseURL, userAgent string, minInterval time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if minInterval < 0 {
		minInterval = 0
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		minInterval: minInterval,
	}
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode returns the coordinates of the best match for query.
func (c *Client) Geocode(ctx context.Context, query string) (float64, float64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, 0, deskerr.NewGeocodeNotFound(query)
	}
	if err := c.waitForRateLimit(ctx); err != nil {
		return 0, 0, err
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}
	reqURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return 0, 0, deskerr.NewGeocodeNotFound(query)
	case http.StatusTooManyRequests:
		return 0, 0, fmt.Errorf("geocoder rate limit exceeded")
	default:
		return 0, 0, fmt.Errorf("geocoder returned %d for %q", resp.StatusCode, query)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return 0, 0, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(places) == 0 {
		return 0, 0, deskerr.NewGeocodeNotFound(query)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude %q: %w", places[0].Lon, err)
	}
	return lat, lon, nil
}

func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.minInterval {
		wait := c.minInterval - elapsed
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	c.lastRequest = time.Now()
	return nil
}
