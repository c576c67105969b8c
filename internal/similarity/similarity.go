package similarity

import (
	"strings"
	"unicode"

	"github.com/thinkscotty/newsdesk/internal/models"
)

// Checker flags near-duplicate articles by character n-gram overlap of titles.
type Checker struct {
	threshold float64
	ngramSize int
}

// New creates a Checker. A threshold <= 0 disables title comparison.
func New(threshold float64, ngramSize int) *Checker {
	if ngramSize <= 0 {
		ngramSize = 3
	}
	return &Checker{threshold: threshold, ngramSize: ngramSize}
}

// normalize lowercases, removes punctuation, and collapses whitespace.
func (c *Checker) normalize(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevSpace = false
		} else if !prevSpace {
			sb.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(sb.String())
}

// Trigrams extracts all character n-grams from the text.
func (c *Checker) Trigrams(text string) map[string]struct{} {
	normalized := c.normalize(text)
	set := make(map[string]struct{})
	runes := []rune(normalized)
	for i := 0; i <= len(runes)-c.ngramSize; i++ {
		set[string(runes[i:i+c.ngramSize])] = struct{}{}
	}
	return set
}

// JaccardSimilarity computes |A intersection B| / |A union B|.
func (c *Checker) JaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Dedupe drops articles that repeat an earlier article's ID or link, or whose title
// is at least threshold-similar to an earlier kept title. The first
// occurrence wins and order is preserved.
func (c *Checker) Dedupe(articles []models.Article) ([]models.Article, int) {
	kept := make([]models.Article, 0, len(articles))
	links := make(map[string]bool, len(articles))
	ids := make(map[string]bool, len(articles))
	var keptGrams []map[string]struct{}
	dropped := 0

	for _, a := range articles {
		link := strings.TrimRight(strings.ToLower(a.Link), "/")
		if (link != "" && links[link]) || (a.ID != "" && ids[a.ID]) {
			dropped++
			continue
		}

		var grams map[string]struct{}
		if c.threshold > 0 {
			grams = c.Trigrams(a.Title)
			if len(grams) > 0 && c.tooSimilar(grams, keptGrams) {
				dropped++
				continue
			}
		}

		if link != "" {
			links[link] = true
		}
		if a.ID != "" {
			ids[a.ID] = true
		}
		if len(grams) > 0 {
			keptGrams = append(keptGrams, grams)
		}
		kept = append(kept, a)
	}
	return kept, dropped
}

func (c *Checker) tooSimilar(grams map[string]struct{}, existing []map[string]struct{}) bool {
	for _, other := range existing {
		if c.JaccardSimilarity(grams, other) >= c.threshold {
			return true
		}
	}
	return false
}
