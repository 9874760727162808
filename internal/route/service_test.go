package route

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/pathfind"
	"github.com/udisondev/gridpath/internal/testutil"
)

// countingStore wraps MemoryStore and counts calls.
type countingStore struct {
	*MemoryStore
	gets, puts int
}

func (c *countingStore) Get(ctx context.Context, key Key) (Entry, bool, error) {
	c.gets++
	return c.MemoryStore.Get(ctx, key)
}

func (c *countingStore) Put(ctx context.Context, key Key, e Entry) error {
	c.puts++
	return c.MemoryStore.Put(ctx, key, e)
}

type failingStore struct{}

func (failingStore) Get(context.Context, Key) (Entry, bool, error) {
	return Entry{}, false, errors.New("connection refused")
}

func (failingStore) Put(context.Context, Key, Entry) error {
	return errors.New("connection refused")
}

func TestRouteCachesResult(t *testing.T) {
	ctx := context.Background()
	g := testutil.MustGrid(t, testutil.SampleRows)
	store := &countingStore{MemoryStore: NewMemoryStore()}
	svc := NewService(store, 0)

	first, err := svc.Route(ctx, g, grid.C(0, 0), grid.C(4, 4))
	require.NoError(t, err)
	require.True(t, first.Found)
	assert.Equal(t, 1, store.puts)
	assert.Greater(t, first.Expanded, 0)

	second, err := svc.Route(ctx, g, grid.C(0, 0), grid.C(4, 4))
	require.NoError(t, err)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, 8, second.Cost)
	assert.Equal(t, 0, second.Expanded, "cache hit does not search")
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, 2, store.gets)
}

func TestRouteCachesNoPath(t *testing.T) {
	ctx := context.Background()
	g := testutil.MustGrid(t, [][]int{{0, 1, 0}})
	store := NewMemoryStore()
	svc := NewService(store, 0)

	res, err := svc.Route(ctx, g, grid.C(0, 0), grid.C(0, 2))
	require.NoError(t, err)
	assert.False(t, res.Found)

	e, ok, err := store.Get(ctx, Key{Fingerprint: g.Fingerprint(), Start: grid.C(0, 0), End: grid.C(0, 2)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, e.Found)
	assert.Nil(t, e.Path)
}

func TestRouteDistinguishesGrids(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store, 0)

	open := grid.NewEmpty(3, 3)
	walled := grid.NewEmpty(3, 3)
	walled.SetBlocked(grid.C(1, 0), true)
	walled.SetBlocked(grid.C(1, 1), true)

	a, err := svc.Route(ctx, open, grid.C(0, 0), grid.C(2, 0))
	require.NoError(t, err)
	b, err := svc.Route(ctx, walled, grid.C(0, 0), grid.C(2, 0))
	require.NoError(t, err)

	assert.Equal(t, 2, a.Cost)
	assert.Equal(t, 6, b.Cost)
	assert.Equal(t, 2, store.Len())
}

func TestRouteWithoutStore(t *testing.T) {
	svc := NewService(nil, 0)

	res, err := svc.Route(context.Background(), grid.NewEmpty(2, 2), grid.C(0, 0), grid.C(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cost)
}

func TestRouteStoreFailureIsNotFatal(t *testing.T) {
	svc := NewService(failingStore{}, 0)

	res, err := svc.Route(context.Background(), grid.NewEmpty(2, 2), grid.C(0, 0), grid.C(1, 1))
	require.NoError(t, err)
	assert.True(t, res.Found)
}

func TestRouteSearchErrorNotCached(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, 0, pathfind.WithBoundsCheck())

	_, err := svc.Route(context.Background(), grid.NewEmpty(2, 2), grid.C(0, 0), grid.C(7, 7))
	require.ErrorIs(t, err, pathfind.ErrOutOfBounds)
	assert.Equal(t, 0, store.Len())
}

func TestStrictServiceIgnoresLenientCacheEntry(t *testing.T) {
	ctx := context.Background()
	g := grid.NewEmpty(2, 2)
	store := NewMemoryStore()

	lenient := NewService(store, 0)
	res, err := lenient.Route(ctx, g, grid.C(0, 0), grid.C(7, 7))
	require.NoError(t, err)
	require.False(t, res.Found)
	require.Equal(t, 1, store.Len())

	strict := NewService(store, 0, pathfind.WithBoundsCheck())
	_, err = strict.Route(ctx, g, grid.C(0, 0), grid.C(7, 7))
	require.ErrorIs(t, err, pathfind.ErrOutOfBounds)

	_, err = strict.RouteAll(ctx, g, []pathfind.Query{
		{Start: grid.C(0, 0), End: grid.C(1, 1)},
		{Start: grid.C(0, 0), End: grid.C(7, 7)},
	})
	require.ErrorIs(t, err, pathfind.ErrOutOfBounds)
	assert.Contains(t, err.Error(), "query 1")
}

func TestRouteAllMixesCacheAndSearch(t *testing.T) {
	ctx := context.Background()
	g := testutil.MustGrid(t, testutil.SampleRows)
	store := NewMemoryStore()
	svc := NewService(store, 2)

	_, err := svc.Route(ctx, g, grid.C(0, 0), grid.C(4, 4))
	require.NoError(t, err)

	queries := []pathfind.Query{
		{Start: grid.C(4, 0), End: grid.C(0, 3)},
		{Start: grid.C(0, 0), End: grid.C(4, 4)}, // cached
		{Start: grid.C(0, 0), End: grid.C(1, 0)}, // blocked target
	}
	results, err := svc.RouteAll(ctx, g, queries)
	require.NoError(t, err)
	require.Len(t, results, 3)

	testutil.AssertValidPath(t, g, results[0].Path, grid.C(4, 0), grid.C(0, 3))
	assert.Equal(t, 8, results[1].Cost)
	assert.Equal(t, 0, results[1].Expanded)
	assert.False(t, results[2].Found)
	assert.Equal(t, 3, store.Len())
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := Key{Start: grid.C(0, 0), End: grid.C(0, 1)}
	path := []grid.Coord{grid.C(0, 0), grid.C(0, 1)}

	require.NoError(t, store.Put(ctx, key, Entry{Path: path, Found: true}))
	path[0] = grid.C(9, 9)

	e, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, grid.C(0, 0), e.Path[0])

	e.Path[1] = grid.C(9, 9)
	again, _, _ := store.Get(ctx, key)
	assert.Equal(t, grid.C(0, 1), again.Path[1])
}
