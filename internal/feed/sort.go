package feed

import (
	"sort"

	"github.com/thinkscotty/newsdesk/internal/models"
)

// SortNewestFirst orders articles by PostDate descending. Undated articles go
// after every dated one and keep their relative order.
func SortNewestFirst(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i].PostDate, articles[j].PostDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
