// Package grid holds the dense obstacle grid searched by pathfind.
//
// A Grid is a fixed SizeX × SizeY array of cells, each either passable or
// blocked. Cells are addressed by Coord where X selects the row and Y the
// column, the same way a [][]int literal is indexed.
package grid

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrNotRectangular = errors.New("grid rows have different lengths")
	ErrInvalidCell    = errors.New("invalid grid cell")
)

// Grid is a dense obstacle map. It is not safe to mutate a Grid while a
// search is reading it; concurrent readers are fine.
type Grid struct {
	blocked []bool // row-major: index = x*sizeY + y
	sizeX   int
	sizeY   int
}

// New builds a grid from rows where 0 is passable and anything else blocked.
// rows[x][y] is the cell at Coord{x, y}.
func New(rows [][]int) (*Grid, error) {
	sizeX := len(rows)
	sizeY := 0
	if sizeX > 0 {
		sizeY = len(rows[0])
	}

	g := NewEmpty(sizeX, sizeY)
	for x, row := range rows {
		if len(row) != sizeY {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", x, len(row), sizeY, ErrNotRectangular)
		}
		for y, v := range row {
			g.blocked[x*sizeY+y] = v != 0
		}
	}
	return g, nil
}

// NewEmpty returns an obstacle-free grid. Negative sizes are treated as zero.
func NewEmpty(sizeX, sizeY int) *Grid {
	sizeX = max(sizeX, 0)
	sizeY = max(sizeY, 0)
	if sizeX == 0 || sizeY == 0 {
		sizeX, sizeY = 0, 0
	}
	return &Grid{
		blocked: make([]bool, sizeX*sizeY),
		sizeX:   sizeX,
		sizeY:   sizeY,
	}
}

// SizeX returns the number of rows.
func (g *Grid) SizeX() int { return g.sizeX }

// SizeY returns the number of columns.
func (g *Grid) SizeY() int { return g.sizeY }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.blocked) }

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.sizeX && c.Y < g.sizeY
}

// Index returns the dense index of c, or -1 when c is out of bounds.
func (g *Grid) Index(c Coord) int {
	if !g.InBounds(c) {
		return -1
	}
	return c.X*g.sizeY + c.Y
}

// Blocked reports whether c is an obstacle. Out-of-bounds cells count as blocked.
func (g *Grid) Blocked(c Coord) bool {
	i := g.Index(c)
	return i < 0 || g.blocked[i]
}

// Passable reports whether c is inside the grid and not blocked.
func (g *Grid) Passable(c Coord) bool {
	return !g.Blocked(c)
}

// SetBlocked marks c as blocked or passable. Out-of-bounds coordinates are ignored.
func (g *Grid) SetBlocked(c Coord, blocked bool) {
	if i := g.Index(c); i >= 0 {
		g.blocked[i] = blocked
	}
}

// PassableCount returns the number of passable cells.
func (g *Grid) PassableCount() int {
	n := 0
	for _, b := range g.blocked {
		if !b {
			n++
		}
	}
	return n
}

// Rows returns a copy of the grid as 0/1 rows, the inverse of New.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.sizeX)
	for x := range rows {
		row := make([]int, g.sizeY)
		for y := range row {
			if g.blocked[x*g.sizeY+y] {
				row[y] = 1
			}
		}
		rows[x] = row
	}
	return rows
}

// Fingerprint returns a BLAKE2b-256 digest of the grid dimensions and cells.
// Two grids with the same layout share a fingerprint.
func (g *Grid) Fingerprint() [32]byte {
	buf := make([]byte, 16, 16+(len(g.blocked)+7)/8)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(g.sizeX))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(g.sizeY))

	var b byte
	for i, blocked := range g.blocked {
		if blocked {
			b |= 1 << (i % 8)
		}
		if i%8 == 7 {
			buf = append(buf, b)
			b = 0
		}
	}
	if len(g.blocked)%8 != 0 {
		buf = append(buf, b)
	}
	return blake2b.Sum256(buf)
}
