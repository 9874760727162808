// Command astar-demo runs the path finder on a fixed 5x5 grid from (0,0)
// to (4,4) and prints the path, one coordinate per line.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/pathfind"
)

var sampleRows = [][]int{
	{0, 0, 0, 0, 1},
	{1, 1, 0, 1, 0},
	{0, 0, 0, 0, 0},
	{0, 1, 1, 1, 0},
	{0, 0, 0, 0, 0},
}

func main() {
	if err := run(os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(w io.Writer) error {
	g, err := grid.New(sampleRows)
	if err != nil {
		return fmt.Errorf("building sample grid: %w", err)
	}

	path := pathfind.FindPath(g, grid.C(0, 0), grid.C(4, 4))
	return printPath(w, path)
}

// printPath writes each coordinate on its own line, or a notice when path is nil.
func printPath(w io.Writer, path []grid.Coord) error {
	if path == nil {
		_, err := fmt.Fprintln(w, "no path found")
		return err
	}
	for _, c := range path {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}
