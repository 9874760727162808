// Package route answers path queries on top of pathfind with an optional
// cache of previous results.
package route

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/pathfind"
)

// Service resolves routes, consulting a Store before searching.
type Service struct {
	store   Store // nil disables caching
	workers int
	options []pathfind.Option
}

// NewService creates a Service. store may be nil. workers bounds the
// parallelism of RouteAll (<= 0 means unbounded).
func NewService(store Store, workers int, options ...pathfind.Option) *Service {
	return &Service{store: store, workers: workers, options: options}
}

// Route returns the shortest path from start to end on g.
// Endpoints are validated before the cache is consulted; cached entries
// do not record the options they were computed with.
// Cache failures are logged and do not fail the query.
func (s *Service) Route(ctx context.Context, g *grid.Grid, start, end grid.Coord) (pathfind.Result, error) {
	finder := pathfind.New(g, s.options...)
	if err := finder.Check(start, end); err != nil {
		return pathfind.Result{}, fmt.Errorf("searching %s -> %s: %w", start, end, err)
	}

	key := Key{Fingerprint: g.Fingerprint(), Start: start, End: end}
	if res, ok := s.lookup(ctx, key); ok {
		return res, nil
	}

	res, err := finder.Search(start, end)
	if err != nil {
		return res, fmt.Errorf("searching %s -> %s: %w", start, end, err)
	}
	slog.Debug("route computed",
		"start", start.String(),
		"end", end.String(),
		"found", res.Found,
		"cost", res.Cost,
		"expanded", res.Expanded)

	s.save(ctx, key, res)
	return res, nil
}

// RouteAll resolves many queries on one grid. Every query is validated first;
// cached answers are then used as is and the rest are searched in parallel
// and stored. results[i] answers queries[i].
func (s *Service) RouteAll(ctx context.Context, g *grid.Grid, queries []pathfind.Query) ([]pathfind.Result, error) {
	finder := pathfind.New(g, s.options...)
	for i, q := range queries {
		if err := finder.Check(q.Start, q.End); err != nil {
			return nil, fmt.Errorf("query %d %s -> %s: %w", i, q.Start, q.End, err)
		}
	}

	fp := g.Fingerprint()
	results := make([]pathfind.Result, len(queries))

	var (
		missIdx []int
		misses  []pathfind.Query
	)
	for i, q := range queries {
		if res, ok := s.lookup(ctx, Key{Fingerprint: fp, Start: q.Start, End: q.End}); ok {
			results[i] = res
			continue
		}
		missIdx = append(missIdx, i)
		misses = append(misses, q)
	}

	if len(misses) > 0 {
		solved, err := pathfind.SolveAll(ctx, g, misses, s.workers, s.options...)
		if err != nil {
			return nil, fmt.Errorf("solving %d queries: %w", len(misses), err)
		}
		for j, res := range solved {
			q := misses[j]
			s.save(ctx, Key{Fingerprint: fp, Start: q.Start, End: q.End}, res)
			results[missIdx[j]] = res
		}
	}

	slog.Debug("routes resolved",
		"queries", len(queries),
		"cached", len(queries)-len(misses),
		"searched", len(misses))

	return results, nil
}

func (s *Service) lookup(ctx context.Context, key Key) (pathfind.Result, bool) {
	if s.store == nil {
		return pathfind.Result{}, false
	}

	e, ok, err := s.store.Get(ctx, key)
	if err != nil {
		slog.Warn("route cache lookup failed", "key", key.String(), "err", err)
		return pathfind.Result{}, false
	}
	if !ok {
		return pathfind.Result{}, false
	}

	res := pathfind.Result{Path: e.Path, Found: e.Found}
	if e.Found {
		res.Cost = len(e.Path) - 1
	}
	slog.Debug("route cache hit", "key", key.String(), "found", e.Found)
	return res, true
}

func (s *Service) save(ctx context.Context, key Key, res pathfind.Result) {
	if s.store == nil {
		return
	}
	if err := s.store.Put(ctx, key, Entry{Path: res.Path, Found: res.Found}); err != nil {
		slog.Warn("route cache store failed", "key", key.String(), "err", err)
	}
}
