package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thinkscotty/newsdesk/internal/models"
)

func TestJaccardSimilarity(t *testing.T) {
	c := New(0.8, 3)

	same := c.JaccardSimilarity(c.Trigrams("Fed holds rates"), c.Trigrams("fed HOLDS rates!"))
	assert.Equal(t, 1.0, same)

	diff := c.JaccardSimilarity(c.Trigrams("Fed holds rates"), c.Trigrams("Lakers win in overtime"))
	assert.Less(t, diff, 0.2)

	assert.Equal(t, 1.0, c.JaccardSimilarity(map[string]struct{}{}, map[string]struct{}{}))
}

func TestDedupe(t *testing.T) {
	c := New(0.8, 3)
	articles := []models.Article{
		{ID: "1", Title: "Fed holds interest rates steady", Link: "https://a.com/fed"},
		{ID: "2", Title: "Totally different story", Link: "https://a.com/fed/"},
		{ID: "3", Title: "Fed holds interest rates steady.", Link: "https://b.com/fed"},
		{ID: "4", Title: "Lakers beat Celtics", Link: "https://c.com/nba"},
		{ID: "5", Title: "", Link: ""},
		{ID: "6", Title: "", Link: ""},
	}

	kept, dropped := c.Dedupe(articles)

	var ids []string
	for _, a := range kept {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"1", "4", "5", "6"}, ids)
	assert.Equal(t, 2, dropped)
}

func TestDedupeTitleCheckDisabled(t *testing.T) {
	c := New(0, 3)
	articles := []models.Article{
		{ID: "1", Title: "Same title", Link: "https://a.com/1"},
		{ID: "2", Title: "Same title", Link: "https://b.com/2"},
	}
	kept, dropped := c.Dedupe(articles)
	assert.Len(t, kept, 2)
	assert.Equal(t, 0, dropped)
}

func TestDedupeRepeatedID(t *testing.T) {
	c := New(0, 3)
	articles := []models.Article{
		{ID: "guid-1", Title: "Wire copy", Link: "https://a.com/1"},
		{ID: "guid-1", Title: "Wire copy, syndicated", Link: "https://b.com/1"},
	}
	kept, dropped := c.Dedupe(articles)
	assert.Len(t, kept, 1)
	assert.Equal(t, "https://a.com/1", kept[0].Link)
	assert.Equal(t, 1, dropped)
}
