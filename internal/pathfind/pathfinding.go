package pathfind

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/udisondev/gridpath/internal/grid"
)

var (
	ErrOutOfBounds = errors.New("coordinate out of grid bounds")
	ErrSearchLimit = errors.New("search expansion limit reached")
)

// directions lists neighbor offsets in expansion order. The order decides
// which of several equally short paths is returned.
var directions = [4]grid.Coord{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

// Result is the outcome of one search.
type Result struct {
	Path     []grid.Coord // start..end inclusive, nil when not found
	Cost     int          // steps, len(Path)-1
	Expanded int          // nodes moved to the closed set
	Found    bool
}

// Finder runs A* searches over one grid. A Finder holds no search state and
// may be shared by concurrent callers as long as the grid is not mutated.
type Finder struct {
	grid *grid.Grid
	opts Options
}

// New creates a Finder for g.
func New(g *grid.Grid, options ...Option) *Finder {
	var opts Options
	for _, o := range options {
		o(&opts)
	}
	return &Finder{grid: g, opts: opts}
}

// FindPath returns a shortest 4-connected path from start to end, or nil if
// end is unreachable. Endpoints are not validated: an out-of-bounds or
// blocked end simply yields nil unless it equals start.
func FindPath(g *grid.Grid, start, end grid.Coord) []grid.Coord {
	res, _ := New(g).Search(start, end)
	return res.Path
}

// Search runs A* from start to end. "No path" is reported through
// Result.Found, not as an error; errors only come from WithBoundsCheck and
// WithMaxExpansions.
func (f *Finder) Search(start, end grid.Coord) (Result, error) {
	if err := f.Check(start, end); err != nil {
		return Result{}, err
	}

	s := newSearch(f.grid, end)
	s.push(start, 0, noParent)

	var res Result
	for s.open.Len() > 0 {
		id := heap.Pop(&s.open).(int32)
		if s.nodes[id].pos == end {
			res.Path = s.reconstruct(id)
			res.Cost = s.nodes[id].g
			res.Found = true
			return res, nil
		}

		if f.opts.MaxExpansions > 0 && res.Expanded >= f.opts.MaxExpansions {
			return res, fmt.Errorf("after %d expansions: %w", res.Expanded, ErrSearchLimit)
		}
		res.Expanded++
		s.expand(id)
	}
	return res, nil
}

// Check validates the endpoints the way Search does before it starts.
// Without WithBoundsCheck every pair is accepted.
func (f *Finder) Check(start, end grid.Coord) error {
	if !f.opts.BoundsCheck {
		return nil
	}
	for _, c := range [2]grid.Coord{start, end} {
		if !f.grid.InBounds(c) {
			return fmt.Errorf("%s in %dx%d grid: %w", c, f.grid.SizeX(), f.grid.SizeY(), ErrOutOfBounds)
		}
	}
	return nil
}

// search is the state of a single Search call.
type search struct {
	grid  *grid.Grid
	end   grid.Coord
	nodes []node
	open  openHeap
	// byCell maps a cell index to its arena node, -1 if undiscovered.
	// A discovered node with heap index -1 has been expanded (closed).
	byCell []int32
	seq    uint64
}

func newSearch(g *grid.Grid, end grid.Coord) *search {
	s := &search{
		grid:   g,
		end:    end,
		nodes:  make([]node, 0, 64),
		byCell: make([]int32, g.Len()),
	}
	for i := range s.byCell {
		s.byCell[i] = -1
	}
	s.open.nodes = &s.nodes
	heap.Init(&s.open)
	return s
}

func (s *search) push(pos grid.Coord, g int, parent int32) {
	id := int32(len(s.nodes))
	s.seq++
	s.nodes = append(s.nodes, node{
		pos:    pos,
		parent: parent,
		g:      g,
		h:      grid.Manhattan(pos, s.end),
		seq:    s.seq,
		index:  -1,
	})
	if cell := s.grid.Index(pos); cell >= 0 {
		s.byCell[cell] = id
	}
	heap.Push(&s.open, id)
}

// expand relaxes the four neighbors of node id.
func (s *search) expand(id int32) {
	from := s.nodes[id].pos
	g := s.nodes[id].g + 1

	for _, d := range directions {
		next := from.Add(d)
		cell := s.grid.Index(next)
		if cell < 0 || s.grid.Blocked(next) {
			continue
		}

		prev := s.byCell[cell]
		if prev < 0 {
			s.push(next, g, id)
			continue
		}

		// Closed, or already open with an equal or cheaper cost.
		n := &s.nodes[prev]
		if n.index < 0 || n.g <= g {
			continue
		}
		// Cheaper route to an open cell: update in place. The fresh seq
		// orders it as if it had just been inserted.
		s.seq++
		n.g = g
		n.parent = id
		n.seq = s.seq
		heap.Fix(&s.open, n.index)
	}
}

// reconstruct walks parent links from id back to the root.
func (s *search) reconstruct(id int32) []grid.Coord {
	path := make([]grid.Coord, 0, s.nodes[id].g+1)
	for ; id != noParent; id = s.nodes[id].parent {
		path = append(path, s.nodes[id].pos)
	}

	// Reverse (parent links run backward)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
