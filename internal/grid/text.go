package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Text cell symbols used by Parse and Render.
const (
	SymbolOpen    = '.'
	SymbolBlocked = '#'
	SymbolPath    = '*'
	SymbolStart   = 'S'
	SymbolEnd     = 'E'
)

// Parse reads a grid in text form, one row per line.
//
// Two row encodings are accepted and may not be mixed within a row:
//
//	0 0 1 0     whitespace separated 0/1 tokens (non-zero digits are blocked)
//	..#.        compact form, '.' open and '#' blocked
//
// Blank lines and lines starting with "//" are skipped.
func Parse(r io.Reader) (*Grid, error) {
	var rows [][]int
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("line %d: %d cells, want %d: %w", lineNo, len(row), len(rows[0]), ErrNotRectangular)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading grid: %w", err)
	}
	return New(rows)
}

func parseRow(line string) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) == 1 && isCompact(fields[0]) {
		row := make([]int, 0, len(line))
		for _, ch := range fields[0] {
			if ch == SymbolBlocked {
				row = append(row, 1)
			} else {
				row = append(row, 0)
			}
		}
		return row, nil
	}

	row := make([]int, 0, len(fields))
	for _, f := range fields {
		if len(f) != 1 || f[0] < '0' || f[0] > '9' {
			return nil, fmt.Errorf("%q: %w", f, ErrInvalidCell)
		}
		row = append(row, int(f[0]-'0'))
	}
	return row, nil
}

// isCompact reports whether s uses the '.'/'#' encoding. A lone digit is
// a one-column numeric row.
func isCompact(s string) bool {
	for _, ch := range s {
		if ch != SymbolOpen && ch != SymbolBlocked {
			return false
		}
	}
	return true
}

// String renders the grid in compact form without a path overlay.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws the grid in compact form with path cells marked. The first
// and last path coordinates are drawn as start and end. Path coordinates
// outside the grid are ignored.
func (g *Grid) Render(path []Coord) string {
	canvas := make([][]byte, g.sizeX)
	for x := range canvas {
		row := make([]byte, g.sizeY)
		for y := range row {
			if g.blocked[x*g.sizeY+y] {
				row[y] = SymbolBlocked
			} else {
				row[y] = SymbolOpen
			}
		}
		canvas[x] = row
	}

	for i, c := range path {
		if !g.InBounds(c) {
			continue
		}
		switch i {
		case 0:
			canvas[c.X][c.Y] = SymbolStart
		case len(path) - 1:
			canvas[c.X][c.Y] = SymbolEnd
		default:
			canvas[c.X][c.Y] = SymbolPath
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
