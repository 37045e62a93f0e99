package models

import (
	"maps"
	"slices"

	"github.com/aukilabs/graphsearch/spatial"
	"gonum.org/v1/gonum/spatial/r2"
)

// Selection is a set of nodes that are picked and moved together.
type Selection struct {
	graph *Graph
	rng   float64
	nodes map[NodeID]struct{}
}

// NewSelection creates an empty selection whose picks reach nodes within
// rng of the picked point on each axis.
func NewSelection(g *Graph, rng float64) *Selection {
	return &Selection{
		graph: g,
		rng:   rng,
		nodes: make(map[NodeID]struct{}),
	}
}

func (s *Selection) Range() float64 {
	return s.rng
}

// Pick returns the nodes in the square of half side range centered on (x, y).
func (s *Selection) Pick(x, y float64) []NodeID {
	return s.graph.QueryNodes(x-s.rng, y-s.rng, x+s.rng, y+s.rng)
}

// Insert selects a node. It returns false when the node is absent.
func (s *Selection) Insert(id NodeID) bool {
	if !s.graph.SetSelected(id, true) {
		return false
	}

	s.nodes[id] = struct{}{}
	return true
}

func (s *Selection) InsertAll(ids []NodeID) {
	for _, id := range ids {
		s.Insert(id)
	}
}

// Erase deselects a node.
func (s *Selection) Erase(id NodeID) bool {
	if _, ok := s.nodes[id]; !ok {
		return false
	}

	delete(s.nodes, id)
	s.graph.SetSelected(id, false)
	return true
}

func (s *Selection) Clear() {
	for id := range s.nodes {
		s.graph.SetSelected(id, false)
	}
	clear(s.nodes)
}

func (s *Selection) Contains(id NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Len returns the number of selected nodes that are still alive.
func (s *Selection) Len() int {
	return len(s.Nodes())
}

// Nodes returns the selected nodes in creation order. Nodes deleted from the
// graph since their selection are dropped.
func (s *Selection) Nodes() []NodeID {
	for id := range s.nodes {
		if _, ok := s.graph.Node(id); !ok {
			delete(s.nodes, id)
		}
	}

	ids := slices.Collect(maps.Keys(s.nodes))
	s.graph.sortNodes(ids)
	return ids
}

// Bounds returns the smallest rectangle holding every selected node. It
// returns false when the selection is empty.
func (s *Selection) Bounds() (spatial.Rect, bool) {
	ids := s.Nodes()
	if len(ids) == 0 {
		return spatial.Rect{}, false
	}

	first, _ := s.graph.Position(ids[0])
	b := spatial.Rect{Min: first, Max: first}
	for _, id := range ids[1:] {
		p, _ := s.graph.Position(id)
		b.Min = r2.Vec{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y)}
		b.Max = r2.Vec{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y)}
	}
	return b, true
}

// Move translates every selected node by (dx, dy). Nothing moves, and false
// is returned, when the selection is empty or when the moved selection would
// touch or cross the universe border.
func (s *Selection) Move(dx, dy float64) bool {
	b, ok := s.Bounds()
	if !ok {
		return false
	}

	u := s.graph.Universe()
	if b.Min.X+dx <= u.Min.X || b.Min.Y+dy <= u.Min.Y ||
		b.Max.X+dx >= u.Max.X || b.Max.Y+dy >= u.Max.Y {
		return false
	}

	for _, id := range s.Nodes() {
		s.graph.MoveNode(id, dx, dy)
	}
	return true
}
