package feeds

import (
	"context"
	"sort"

	"github.com/thinkscotty/newsdesk/internal/models"
	"github.com/thinkscotty/newsdesk/internal/store"
)

// LoadPriorities applies the persisted category and sports orderings.
func (c *Catalog) LoadPriorities(ctx context.Context) {
	if c.kv == nil {
		return
	}
	cats := store.LoadJSON(ctx, c.kv, store.KeyCategoryOrder, []models.Category{})
	sports := store.LoadJSON(ctx, c.kv, store.KeySportsOrder, []models.SportsSubcategory{})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.categoryOrder = completeCategories(cats)
	if len(sports) > 0 {
		c.sportsOrder = completeSports(sports)
	}
}

// CategoryOrder returns every category, highest priority first.
func (c *Catalog) CategoryOrder() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Category(nil), c.categoryOrder...)
}

// SportsOrder returns the sports ordering, or nil when none was set.
func (c *Catalog) SportsOrder() []models.SportsSubcategory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.sportsOrder) == 0 {
		return nil
	}
	return append([]models.SportsSubcategory(nil), c.sportsOrder...)
}

// SetCategoryOrder moves the listed categories to the front, in the given
// order, and persists the result. Unlisted categories keep their canonical order.
func (c *Catalog) SetCategoryOrder(ctx context.Context, order []models.Category) error {
	c.mu.Lock()
	c.categoryOrder = completeCategories(order)
	full := append([]models.Category(nil), c.categoryOrder...)
	c.mu.Unlock()
	if c.kv == nil {
		return nil
	}
	return store.SaveJSON(ctx, c.kv, store.KeyCategoryOrder, full)
}

// SetSportsOrder sets the order in which sports sources are returned.
func (c *Catalog) SetSportsOrder(ctx context.Context, order []models.SportsSubcategory) error {
	c.mu.Lock()
	c.sportsOrder = completeSports(order)
	full := append([]models.SportsSubcategory(nil), c.sportsOrder...)
	c.mu.Unlock()
	if c.kv == nil {
		return nil
	}
	return store.SaveJSON(ctx, c.kv, store.KeySportsOrder, full)
}

func completeCategories(preferred []models.Category) []models.Category {
	seen := map[models.Category]bool{}
	var out []models.Category
	for _, cat := range append(append([]models.Category(nil), preferred...), models.AllCategories()...) {
		if _, ok := models.ParseCategory(string(cat)); !ok || seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
	}
	return out
}

func completeSports(preferred []models.SportsSubcategory) []models.SportsSubcategory {
	seen := map[models.SportsSubcategory]bool{}
	var out []models.SportsSubcategory
	for _, sub := range append(append([]models.SportsSubcategory(nil), preferred...), models.AllSportsSubcategories()...) {
		if _, ok := models.ParseSportsSubcategory(string(sub)); !ok || seen[sub] {
			continue
		}
		seen[sub] = true
		out = append(out, sub)
	}
	return out
}

func sortBySports(sources []models.Source, order []models.SportsSubcategory) {
	rank := make(map[models.SportsSubcategory]int, len(order))
	for i, sub := range order {
		rank[sub] = i
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return rank[sources[i].Subcategory] < rank[sources[j].Subcategory]
	})
}
