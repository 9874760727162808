package pathfind

import "github.com/udisondev/gridpath/internal/grid"

// noParent marks the root node of a search.
const noParent = -1

// node is one arena record of a search. Nodes are addressed by their index in
// search.nodes; parent links are indices too.
type node struct {
	pos    grid.Coord
	parent int32
	g      int // Actual cost from start
	h      int // Manhattan distance to target
	seq    uint64
	index  int // heap index, -1 once popped
}

func (n *node) f() int { return n.g + n.h }

// openHeap implements container/heap over arena indices, min-heap by f.
// Equal f is ordered by seq so the earliest inserted entry wins.
type openHeap struct {
	nodes *[]node
	items []int32
}

func (h *openHeap) Len() int { return len(h.items) }

func (h *openHeap) Less(i, j int) bool {
	a := &(*h.nodes)[h.items[i]]
	b := &(*h.nodes)[h.items[j]]
	if af, bf := a.f(), b.f(); af != bf {
		return af < bf
	}
	return a.seq < b.seq
}

func (h *openHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	(*h.nodes)[h.items[i]].index = i
	(*h.nodes)[h.items[j]].index = j
}

func (h *openHeap) Push(x any) {
	id := x.(int32)
	(*h.nodes)[id].index = len(h.items)
	h.items = append(h.items, id)
}

func (h *openHeap) Pop() any {
	n := len(h.items)
	id := h.items[n-1]
	h.items = h.items[:n-1]
	(*h.nodes)[id].index = -1
	return id
}
