package pathfind

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gridpath/internal/grid"
)

// Query is one start/end pair of a batch.
type Query struct {
	Start grid.Coord
	End   grid.Coord
}

// SolveAll runs one independent search per query on up to workers goroutines
// (workers <= 0 means one goroutine per query). results[i] answers queries[i].
// The first failing search or a cancelled ctx aborts the batch.
func SolveAll(ctx context.Context, g *grid.Grid, queries []Query, workers int, options ...Option) ([]Result, error) {
	finder := New(g, options...)
	results := make([]Result, len(queries))

	eg, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := finder.Search(q.Start, q.End)
			if err != nil {
				return fmt.Errorf("query %d %s -> %s: %w", i, q.Start, q.End, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
