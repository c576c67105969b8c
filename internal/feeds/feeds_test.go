package feeds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkscotty/newsdesk/internal/models"
	"github.com/thinkscotty/newsdesk/internal/store"
)

func ids(sources []models.Source) []string {
	var out []string
	for _, s := range sources {
		out = append(out, s.ID)
	}
	return out
}

func testCatalog(kv store.KV) *Catalog {
	return NewCatalog([]models.Source{
		{ID: "t1", Name: "Tech One", Category: models.CategoryTechnology, IsSelected: true},
		{ID: "t2", Name: "Tech Two", Category: models.CategoryTechnology, IsSelected: false},
		{ID: "t3", Name: "Tech Three", Category: models.CategoryTechnology, IsSelected: true},
		{ID: "t4", Name: "Tech Four", Category: models.CategoryTechnology, IsSelected: true},
		{ID: "f1", Name: "Fin One", Category: models.CategoryFinance, IsSelected: true},
		{ID: "nba", Name: "Hoops", Category: models.CategorySports, Subcategory: models.SportNBA, IsSelected: true},
		{ID: "nfl", Name: "Gridiron", Category: models.CategorySports, Subcategory: models.SportNFL, IsSelected: true},
	}, kv)
}

func TestSelected(t *testing.T) {
	c := testCatalog(nil)

	assert.Equal(t, []string{"t1", "t3", "t4"}, ids(c.Selected(models.CategoryTechnology, nil)))
	assert.Equal(t, []string{"nba", "nfl"}, ids(c.Selected(models.CategorySports, nil)))

	nba := models.SportNBA
	assert.Equal(t, []string{"nba"}, ids(c.Selected(models.CategorySports, &nba)))
	assert.Empty(t, c.Selected(models.CategoryHealth, nil))
}

func TestHeadlinesCapsPerCategory(t *testing.T) {
	c := testCatalog(nil)
	assert.Equal(t, []string{"t1", "t3", "f1", "nba", "nfl"}, ids(c.Headlines(2)))
}

func TestByIDs(t *testing.T) {
	c := testCatalog(nil)
	assert.Equal(t, []string{"t2", "f1"}, ids(c.ByIDs([]string{"f1", "t2", "unknown", "f1"})))
	assert.Empty(t, c.ByIDs(nil))
}

func TestSelectionPersists(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	c := testCatalog(kv)
	require.NoError(t, c.SetSelected(ctx, "t2", true))
	require.NoError(t, c.SetSelected(ctx, "t1", false))
	assert.Error(t, c.SetSelected(ctx, "nope", true))

	fresh := testCatalog(kv)
	fresh.LoadSelection(ctx)
	assert.Equal(t, []string{"t2", "t3", "t4"}, ids(fresh.Selected(models.CategoryTechnology, nil)))
}

func TestDefaultSourcesAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range DefaultSources() {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.Contains(t, s.URL, "https://")
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		if s.Category == models.CategorySports {
			assert.NotEmpty(t, s.Subcategory, s.ID)
		}
	}

	c := NewCatalog(DefaultSources(), nil)
	for _, cat := range models.AllCategories() {
		assert.NotEmpty(t, c.Selected(cat, nil), "category %s has no selected sources", cat)
	}
}

func TestPriorities(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	c := testCatalog(kv)
	require.NoError(t, c.SetCategoryOrder(ctx, []models.Category{models.CategorySports, models.CategoryFinance, "Weather"}))
	require.NoError(t, c.SetSportsOrder(ctx, []models.SportsSubcategory{models.SportNFL}))

	fresh := testCatalog(kv)
	fresh.LoadPriorities(ctx)
	order := fresh.CategoryOrder()
	assert.Len(t, order, len(models.AllCategories()))
	assert.Equal(t, []models.Category{models.CategorySports, models.CategoryFinance, models.CategoryTechnology}, order[:3])
	assert.Equal(t, []string{"nfl", "nba"}, ids(fresh.Selected(models.CategorySports, nil)))
	assert.Equal(t, []string{"nfl", "f1", "t1"}, ids(fresh.Headlines(1))[:3])
}
