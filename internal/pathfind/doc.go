// Package pathfind implements A* search on a grid.Grid.
//
// Movement is 4-directional with unit step cost and the heuristic is the
// Manhattan distance, so returned paths are shortest in step count.
//
// Nodes live in a per-search arena and point at their parent by index. The
// open set is a binary heap ordered by f = g+h; ties go to the entry inserted
// first. A cheaper route to a cell that is already open updates that entry in
// place, so the open set never holds two entries for one cell.
//
// Entry points:
//
//   - FindPath: plain search, nil when there is no path.
//   - Finder.Search: search with options and expansion statistics.
//   - SolveAll: many independent searches over one grid in parallel.
package pathfind
