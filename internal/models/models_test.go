package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayContent(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		want    string
	}{
		{"content wins", Article{Content: "<p>Hello <b>world</b></p>", Description: "ignored"}, "Hello world"},
		{"description fallback", Article{Description: "Plain   text\nhere"}, "Plain text here"},
		{"placeholder", Article{}, NoContentPlaceholder},
		{"entities", Article{Content: "Fish &amp; chips"}, "Fish & chips"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.DisplayContent())
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" finance ")
	assert.True(t, ok)
	assert.Equal(t, CategoryFinance, c)

	_, ok = ParseCategory("gardening")
	assert.False(t, ok)

	s, ok := ParseSportsSubcategory("nba")
	assert.True(t, ok)
	assert.Equal(t, SportNBA, s)
}

func TestApplyGeoTags(t *testing.T) {
	articles := []Article{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	n := ApplyGeoTags(articles, map[string]GeoTag{
		"b": {DetectedLocation: "Paris", Latitude: 48.8566, Longitude: 2.3522, ConfidenceScore: 0.9},
	})

	assert.Equal(t, 1, n)
	assert.Nil(t, articles[0].Location)
	if assert.NotNil(t, articles[1].Location) {
		assert.Equal(t, "Paris", articles[1].Location.DetectedLocation)
	}
}

func TestSameDay(t *testing.T) {
	loc := time.FixedZone("test", 2*3600)
	a := time.Date(2026, 3, 10, 23, 30, 0, 0, loc)
	assert.True(t, SameDay(a, time.Date(2026, 3, 10, 0, 5, 0, 0, loc)))
	assert.False(t, SameDay(a, time.Date(2026, 3, 11, 0, 5, 0, 0, loc)))
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), StartOfDay(a))
}
