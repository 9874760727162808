package testutil

import (
	"testing"

	"github.com/udisondev/gridpath/internal/grid"
)

// SampleRows: 5x5 сетка из демо, путь (0,0) -> (4,4) занимает 8 шагов.
var SampleRows = [][]int{
	{0, 0, 0, 0, 1},
	{1, 1, 0, 1, 0},
	{0, 0, 0, 0, 0},
	{0, 1, 1, 1, 0},
	{0, 0, 0, 0, 0},
}

// MustGrid строит сетку из строк, падает на невалидных данных.
func MustGrid(tb testing.TB, rows [][]int) *grid.Grid {
	tb.Helper()

	g, err := grid.New(rows)
	if err != nil {
		tb.Fatalf("building grid: %v", err)
	}
	return g
}

// AssertValidPath проверяет концы пути, шаги по одной клетке и проходимость.
// Первая клетка не проверяется на проходимость: поиск стартует с неё как есть.
func AssertValidPath(tb testing.TB, g *grid.Grid, path []grid.Coord, start, end grid.Coord) {
	tb.Helper()

	if len(path) == 0 {
		tb.Fatalf("path is empty, expected %s -> %s", start, end)
	}
	if path[0] != start {
		tb.Fatalf("path starts at %s, expected %s", path[0], start)
	}
	if last := path[len(path)-1]; last != end {
		tb.Fatalf("path ends at %s, expected %s", last, end)
	}

	for i := 1; i < len(path); i++ {
		if !grid.Adjacent(path[i-1], path[i]) {
			tb.Fatalf("step %d: %s -> %s is not one orthogonal move", i, path[i-1], path[i])
		}
		if !g.Passable(path[i]) {
			tb.Fatalf("step %d: %s is blocked or out of bounds", i, path[i])
		}
	}

	seen := make(map[grid.Coord]struct{}, len(path))
	for _, c := range path {
		if _, dup := seen[c]; dup {
			tb.Fatalf("path visits %s twice", c)
		}
		seen[c] = struct{}{}
	}
}

// BFSDistance возвращает эталонную длину кратчайшего пути в шагах, -1 если пути нет.
func BFSDistance(g *grid.Grid, start, end grid.Coord) int {
	if start == end {
		return 0
	}
	if !g.Passable(start) || !g.Passable(end) {
		return -1
	}

	dist := make([]int, g.Len())
	for i := range dist {
		dist[i] = -1
	}
	dist[g.Index(start)] = 0
	queue := []grid.Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range []grid.Coord{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}} {
			next := cur.Add(d)
			if !g.Passable(next) || dist[g.Index(next)] >= 0 {
				continue
			}
			dist[g.Index(next)] = dist[g.Index(cur)] + 1
			if next == end {
				return dist[g.Index(next)]
			}
			queue = append(queue, next)
		}
	}
	return -1
}
