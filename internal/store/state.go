package store

import (
	"context"
	"sort"
	"sync"
)

// UserState exposes the bookmark and read-article ID sets.
type UserState struct {
	kv KV
	mu sync.Mutex
}

func NewUserState(kv KV) *UserState {
	return &UserState{kv: kv}
}

func (u *UserState) Bookmarks(ctx context.Context) map[string]bool {
	return u.loadSet(ctx, KeyBookmarks)
}

func (u *UserState) ReadSet(ctx context.Context) map[string]bool {
	return u.loadSet(ctx, KeyReadArticles)
}

// ToggleBookmark flips the bookmark for id and reports whether it is now bookmarked.
func (u *UserState) ToggleBookmark(ctx context.Context, id string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	set := u.loadSet(ctx, KeyBookmarks)
	on := !set[id]
	if on {
		set[id] = true
	} else {
		delete(set, id)
	}
	return on, u.saveSet(ctx, KeyBookmarks, set)
}

// MarkRead adds ids to the read set.
func (u *UserState) MarkRead(ctx context.Context, ids ...string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	set := u.loadSet(ctx, KeyReadArticles)
	for _, id := range ids {
		set[id] = true
	}
	return u.saveSet(ctx, KeyReadArticles, set)
}

func (u *UserState) loadSet(ctx context.Context, key string) map[string]bool {
	ids := LoadJSON(ctx, u.kv, key, []string{})
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (u *UserState) saveSet(ctx context.Context, key string, set map[string]bool) error {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return SaveJSON(ctx, u.kv, key, ids)
}
