package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/route"
)

// ErrCoordRange is returned for coordinates that do not fit the INTEGER
// columns of the routes table.
var ErrCoordRange = errors.New("coordinate out of int32 range")

// RouteRepository stores route.Entry rows in the routes table.
// It implements route.Store.
type RouteRepository struct {
	db *pgxpool.Pool
}

var _ route.Store = (*RouteRepository)(nil)

// NewRouteRepository creates a new RouteRepository.
func NewRouteRepository(db *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{db: db}
}

// Get loads the cached route for key.
func (r *RouteRepository) Get(ctx context.Context, key route.Key) (route.Entry, bool, error) {
	query := `
		SELECT found, path
		FROM routes
		WHERE fingerprint = $1 AND start_x = $2 AND start_y = $3 AND end_x = $4 AND end_y = $5
	`

	ends, err := keyEnds(key)
	if err != nil {
		return route.Entry{}, false, fmt.Errorf("querying route %s: %w", key, err)
	}

	var (
		found bool
		flat  []int32
	)
	err = r.db.QueryRow(ctx, query,
		key.Fingerprint[:], ends[0], ends[1], ends[2], ends[3],
	).Scan(&found, &flat)
	if errors.Is(err, pgx.ErrNoRows) {
		return route.Entry{}, false, nil
	}
	if err != nil {
		return route.Entry{}, false, fmt.Errorf("querying route %s: %w", key, err)
	}

	path, err := unflattenPath(flat)
	if err != nil {
		return route.Entry{}, false, fmt.Errorf("decoding route %s: %w", key, err)
	}
	return route.Entry{Path: path, Found: found}, true, nil
}

// Put upserts the route for key.
func (r *RouteRepository) Put(ctx context.Context, key route.Key, e route.Entry) error {
	query := `
		INSERT INTO routes (fingerprint, start_x, start_y, end_x, end_y, found, cost, path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (fingerprint, start_x, start_y, end_x, end_y) DO UPDATE SET
			found = EXCLUDED.found,
			cost = EXCLUDED.cost,
			path = EXCLUDED.path,
			created_at = now()
	`

	ends, err := keyEnds(key)
	if err != nil {
		return fmt.Errorf("saving route %s: %w", key, err)
	}
	flat, err := flattenPath(e.Path)
	if err != nil {
		return fmt.Errorf("saving route %s: %w", key, err)
	}

	cost := 0
	if e.Found {
		cost = len(e.Path) - 1
	}
	_, err = r.db.Exec(ctx, query,
		key.Fingerprint[:], ends[0], ends[1], ends[2], ends[3],
		e.Found, int32(cost), flat,
	)
	if err != nil {
		return fmt.Errorf("saving route %s: %w", key, err)
	}

	slog.Debug("saved route", "key", key.String(), "found", e.Found, "cost", cost)
	return nil
}

// DeleteByFingerprint removes every cached route of one grid layout.
func (r *RouteRepository) DeleteByFingerprint(ctx context.Context, fp [32]byte) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM routes WHERE fingerprint = $1`, fp[:])
	if err != nil {
		return 0, fmt.Errorf("deleting routes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// keyEnds returns start_x, start_y, end_x, end_y of key as column values.
func keyEnds(key route.Key) ([4]int32, error) {
	var ends [4]int32
	for i, v := range [4]int{key.Start.X, key.Start.Y, key.End.X, key.End.Y} {
		n, err := toInt32(v)
		if err != nil {
			return ends, err
		}
		ends[i] = n
	}
	return ends, nil
}

func toInt32(v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%d: %w", v, ErrCoordRange)
	}
	return int32(v), nil
}

// flattenPath encodes a path as x0,y0,x1,y1,... ; nil stays nil (SQL NULL).
func flattenPath(path []grid.Coord) ([]int32, error) {
	if path == nil {
		return nil, nil
	}
	flat := make([]int32, 0, 2*len(path))
	for _, c := range path {
		x, err := toInt32(c.X)
		if err != nil {
			return nil, fmt.Errorf("path cell %s: %w", c, err)
		}
		y, err := toInt32(c.Y)
		if err != nil {
			return nil, fmt.Errorf("path cell %s: %w", c, err)
		}
		flat = append(flat, x, y)
	}
	return flat, nil
}

func unflattenPath(flat []int32) ([]grid.Coord, error) {
	if flat == nil {
		return nil, nil
	}
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("odd path length %d", len(flat))
	}
	path := make([]grid.Coord, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		path = append(path, grid.Coord{X: int(flat[i]), Y: int(flat[i+1])})
	}
	return path, nil
}
