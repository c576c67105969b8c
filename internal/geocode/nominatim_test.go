package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deskerr "github.com/thinkscotty/newsdesk/internal/errors"
)

func newServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("q") {
		case "Springfield, USA":
			w.Write([]byte(`[{"lat":"39.7817","lon":"-89.6501","display_name":"Springfield, Illinois"}]`))
		case "Broken":
			w.Write([]byte(`[{"lat":"north","lon":"0"}]`))
		case "Down":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeocodeFound(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL, "test-agent", 0)

	lat, lon, err := c.Geocode(context.Background(), "Springfield, USA")
	require.NoError(t, err)
	assert.InDelta(t, 39.7817, lat, 1e-6)
	assert.InDelta(t, -89.6501, lon, 1e-6)
	assert.Equal(t, int32(1), hits)
}

func TestGeocodeNotFound(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL, "test-agent", 0)

	_, _, err := c.Geocode(context.Background(), "Atlantis")
	assert.True(t, deskerr.Is(err, deskerr.ErrGeocodeNotFound))

	_, _, err = c.Geocode(context.Background(), "  ")
	assert.True(t, deskerr.Is(err, deskerr.ErrGeocodeNotFound))
	assert.Equal(t, int32(1), hits)
}

func TestGeocodeErrors(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL, "test-agent", 0)

	_, _, err := c.Geocode(context.Background(), "Down")
	require.Error(t, err)
	assert.False(t, deskerr.Is(err, deskerr.ErrGeocodeNotFound))

	_, _, err = c.Geocode(context.Background(), "Broken")
	assert.ErrorContains(t, err, "parse latitude")
}

func TestRateLimitSpacesRequests(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL, "test-agent", 50*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, _, _ = c.Geocode(context.Background(), "Atlantis")
	}
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestRateLimitHonorsContext(t *testing.T) {
	c := New("http://127.0.0.1:1", "test-agent", time.Hour)
	c.lastRequest = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := c.Geocode(ctx, "Paris")
	assert.ErrorIs(t, err, context.Canceled)
}
