package pathfind

import (
	"slices"

	"github.com/udisondev/gridpath/internal/grid"
)

// Waypoints reduces a 4-connected path to its endpoints and the cells where
// it turns. Walking straight between consecutive waypoints reproduces path.
func Waypoints(path []grid.Coord) []grid.Coord {
	if len(path) <= 2 {
		return slices.Clone(path)
	}

	out := make([]grid.Coord, 0, 8)
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		prev, next := path[i-1], path[i+1]
		// Neighbors on one row or column: path[i] is mid-segment.
		if prev.X == next.X || prev.Y == next.Y {
			continue
		}
		out = append(out, path[i])
	}
	return append(out, path[len(path)-1])
}
