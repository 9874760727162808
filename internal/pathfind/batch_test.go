package pathfind

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/testutil"
)

func TestSolveAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := testutil.MustGrid(t, testutil.SampleRows)
	queries := []Query{
		{Start: grid.C(0, 0), End: grid.C(4, 4)},
		{Start: grid.C(2, 2), End: grid.C(2, 2)},
		{Start: grid.C(0, 0), End: grid.C(0, 4)}, // blocked target
		{Start: grid.C(4, 0), End: grid.C(0, 3)},
	}

	results, err := SolveAll(context.Background(), g, queries, 2)
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	assert.Equal(t, 8, results[0].Cost)
	assert.Equal(t, []grid.Coord{grid.C(2, 2)}, results[1].Path)
	assert.False(t, results[2].Found)

	for i, q := range queries {
		if !results[i].Found {
			continue
		}
		testutil.AssertValidPath(t, g, results[i].Path, q.Start, q.End)
		assert.Equal(t, testutil.BFSDistance(g, q.Start, q.End), results[i].Cost, "query %d", i)
	}
}

func TestSolveAllMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := grid.NewEmpty(12, 12)
	for x := 2; x < 10; x++ {
		g.SetBlocked(grid.C(x, 6), true)
	}

	var queries []Query
	for x := range 12 {
		queries = append(queries, Query{Start: grid.C(x, 0), End: grid.C(11-x, 11)})
	}

	results, err := SolveAll(context.Background(), g, queries, 0)
	require.NoError(t, err)

	for i, q := range queries {
		assert.Equal(t, FindPath(g, q.Start, q.End), results[i].Path, "query %d", i)
	}
}

func TestSolveAllEmpty(t *testing.T) {
	results, err := SolveAll(context.Background(), grid.NewEmpty(1, 1), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSolveAllPropagatesSearchError(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := grid.NewEmpty(3, 3)
	queries := []Query{
		{Start: grid.C(0, 0), End: grid.C(2, 2)},
		{Start: grid.C(0, 0), End: grid.C(5, 5)},
	}

	_, err := SolveAll(context.Background(), g, queries, 1, WithBoundsCheck())
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Contains(t, err.Error(), "query 1")
}

func TestSolveAllCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := grid.NewEmpty(3, 3)
	_, err := SolveAll(ctx, g, []Query{{Start: grid.C(0, 0), End: grid.C(2, 2)}}, 1)
	require.ErrorIs(t, err, context.Canceled)
}
