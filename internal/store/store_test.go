package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "a", []byte(`{"lat":1.5,"lon":2.5}`)))
	got, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":1.5,"lon":2.5}`, string(got))

	require.NoError(t, kv.Set(ctx, "a", []byte(`{"lat":3,"lon":4}`)))
	assert.Equal(t, point{3, 4}, LoadJSON(ctx, kv, "a", point{}))

	require.NoError(t, kv.Delete(ctx, "a"))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "newsdesk.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseKV(t, db)

	require.NoError(t, db.Set(context.Background(), "persisted", []byte(`["x"]`)))
	_, err = db.SizeBytes()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, []string{"x"}, LoadJSON(context.Background(), reopened, "persisted", []string{}))
}

func TestSQLiteSetError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT key, value FROM kv").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow("bookmarks", []byte(`["a"]`)))
	mock.ExpectExec("INSERT OR REPLACE INTO kv").WillReturnError(errors.New("disk full"))

	db, err := NewSQLite(conn)
	require.NoError(t, err)

	got, err := db.Get(context.Background(), "bookmarks")
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, string(got))

	err = db.Set(context.Background(), "bookmarks", []byte(`["b"]`))
	assert.EqualError(t, err, "disk full")

	// Failed writes must not reach the cache.
	got, err = db.Get(context.Background(), "bookmarks")
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, string(got))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := &Redis{client: client, prefix: "newsdesk:"}
	ctx := context.Background()

	mock.ExpectGet("newsdesk:bookmarks").SetVal(`["a","b"]`)
	assert.Equal(t, []string{"a", "b"}, LoadJSON(ctx, r, KeyBookmarks, []string{}))

	mock.ExpectGet("newsdesk:read_articles").RedisNil()
	_, err := r.Get(ctx, KeyReadArticles)
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`["c"]`)
	mock.ExpectSet("newsdesk:read_articles", value, 0).SetVal("OK")
	assert.NoError(t, r.Set(ctx, KeyReadArticles, value))

	mock.ExpectDel("newsdesk:read_articles").SetErr(errors.New("redis down"))
	err = r.Delete(ctx, KeyReadArticles)
	assert.ErrorContains(t, err, "redis del read_articles")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadJSONFallbacks(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	assert.Equal(t, map[string]int{"x": 1}, LoadJSON(ctx, kv, "absent", map[string]int{"x": 1}))

	require.NoError(t, kv.Set(ctx, KeyTopicHistory, []byte(`{not json`)))
	assert.Equal(t, map[string]int{}, LoadJSON(ctx, kv, KeyTopicHistory, map[string]int{}))

	require.NoError(t, SaveJSON(ctx, kv, KeyTopicHistory, map[string]int{"oil": 3}))
	assert.Equal(t, map[string]int{"oil": 3}, LoadJSON(ctx, kv, KeyTopicHistory, map[string]int{}))
}

func TestUserState(t *testing.T) {
	ctx := context.Background()
	u := NewUserState(NewMemory())

	assert.Empty(t, u.Bookmarks(ctx))

	on, err := u.ToggleBookmark(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, map[string]bool{"a1": true}, u.Bookmarks(ctx))

	on, err = u.ToggleBookmark(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, u.Bookmarks(ctx))

	require.NoError(t, u.MarkRead(ctx, "r1", "r2"))
	require.NoError(t, u.MarkRead(ctx, "r2"))
	assert.Equal(t, map[string]bool{"r1": true, "r2": true}, u.ReadSet(ctx))
}
