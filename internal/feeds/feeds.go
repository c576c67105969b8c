package feeds

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/thinkscotty/newsdesk/internal/models"
	"github.com/thinkscotty/newsdesk/internal/store"
)

// Catalog is the set of known feed sources plus the user's selection overlay.
// Reads are safe for concurrent use; selection changes are serialized.
type Catalog struct {
	mu      sync.RWMutex
	sources []models.Source
	kv      store.KV

	categoryOrder []models.Category
	sportsOrder   []models.SportsSubcategory // empty keeps catalog order
}

// NewCatalog builds a catalog over sources. A nil kv keeps selection in memory only.
func NewCatalog(sources []models.Source, kv store.KV) *Catalog {
	cp := make([]models.Source, len(sources))
	copy(cp, sources)
	return &Catalog{sources: cp, kv: kv, categoryOrder: models.AllCategories()}
}

// LoadSelection applies persisted isSelected overrides on top of the defaults.
func (c *Catalog) LoadSelection(ctx context.Context) {
	if c.kv == nil {
		return
	}
	overrides := store.LoadJSON(ctx, c.kv, store.KeySourceSelection, map[string]bool{})

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.sources {
		if on, ok := overrides[c.sources[i].ID]; ok {
			c.sources[i].IsSelected = on
		}
	}
}

// SetSelected changes a source's selection and persists the full overlay.
func (c *Catalog) SetSelected(ctx context.Context, id string, selected bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	overrides := make(map[string]bool, len(c.sources))
	for i := range c.sources {
		if c.sources[i].ID == id {
			c.sources[i].IsSelected = selected
			found = true
		}
		overrides[c.sources[i].ID] = c.sources[i].IsSelected
	}
	if !found {
		return fmt.Errorf("unknown source %q", id)
	}
	if c.kv == nil {
		return nil
	}
	return store.SaveJSON(ctx, c.kv, store.KeySourceSelection, overrides)
}

// All returns every source in catalog order.
func (c *Catalog) All() []models.Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// InCategory returns every source for category, selected or not.
func (c *Catalog) InCategory(category models.Category) []models.Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Source
	for _, s := range c.sources {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Selected returns the enabled sources for category. For sports, a non-nil
// sub restricts the selection to that subcategory.
func (c *Catalog) Selected(category models.Category, sub *models.SportsSubcategory) []models.Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Source
	for _, s := range c.sources {
		if !s.IsSelected || s.Category != category {
			continue
		}
		if category == models.CategorySports && sub != nil && s.Subcategory != *sub {
			continue
		}
		out = append(out, s)
	}
	if category == models.CategorySports && len(c.sportsOrder) > 0 {
		sortBySports(out, c.sportsOrder)
	}
	return out
}

// Headlines returns up to perCategory selected sources from every category,
// walking categories in priority order.
func (c *Catalog) Headlines(perCategory int) []models.Source {
	var out []models.Source
	for _, cat := range c.CategoryOrder() {
		selected := c.Selected(cat, nil)
		if len(selected) > perCategory {
			selected = selected[:perCategory]
		}
		out = append(out, selected...)
	}
	return out
}

// ByIDs returns the sources whose IDs are listed, in catalog order, ignoring
// selection flags and unknown IDs.
func (c *Catalog) ByIDs(ids []string) []models.Source {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[strings.TrimSpace(id)] = true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Source
	for _, s := range c.sources {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the source with the given ID.
func (c *Catalog) Find(id string) (models.Source, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.sources {
		if s.ID == id {
			return s, true
		}
	}
	return models.Source{}, false
}
