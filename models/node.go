package models

import (
	"maps"
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/graphsearch/spatial"
	"gonum.org/v1/gonum/spatial/r2"
)

// Node is a snapshot of a graph node.
type Node struct {
	ID NodeID

	// Creation sequence number. Edge and face endpoints are ordered by it.
	Seq uint64

	Pos      r2.Vec
	Selected bool
}

type node struct {
	Node

	neighbors map[NodeID]struct{}
	edges     map[EdgeID]struct{}
	faces     map[FaceID]struct{}
}

// CreateNode adds a node at (x, y). It panics when the position is outside
// the universe, so callers check Contains first.
func (g *Graph) CreateNode(x, y float64) NodeID {
	p := r2.Vec{X: x, Y: y}
	if !g.universe.Contains(p) {
		panic(errors.New("node position is outside the universe").
			WithType(spatial.ErrTypeOutOfBounds).
			WithTag("graph", g.Name).
			WithTag("x", x).
			WithTag("y", y))
	}

	n := &node{
		Node: Node{
			Seq: g.nextSeq,
			Pos: p,
		},
		neighbors: make(map[NodeID]struct{}),
		edges:     make(map[EdgeID]struct{}),
		faces:     make(map[FaceID]struct{}),
	}
	g.nextSeq++

	n.ID = NodeID{g.nodes.alloc(n)}
	g.nodeIndex.Insert(n.ID, x, y)
	g.metrics.instrumentNodes(1)
	return n.ID
}

// DeleteNode removes a node and every edge incident on it, which in turn
// destroys every face using one of those edges.
func (g *Graph) DeleteNode(id NodeID) bool {
	n := g.nodes.get(id.handle)
	if n == nil {
		return false
	}

	if !g.nodeIndex.Remove(id, n.Pos.X, n.Pos.Y) {
		panic(g.corrupted("node is missing from the node index").
			WithTag("node", id))
	}

	for _, e := range slices.Collect(maps.Keys(n.edges)) {
		g.destroyEdge(e)
	}

	g.nodes.release(id.handle)
	g.metrics.instrumentNodes(-1)
	return true
}

// MoveNode translates a node by (dx, dy).
func (g *Graph) MoveNode(id NodeID, dx, dy float64) bool {
	n := g.nodes.get(id.handle)
	if n == nil {
		return false
	}
	return g.SetNodePosition(id, n.Pos.X+dx, n.Pos.Y+dy)
}

// SetNodePosition moves a node to (x, y) and updates the midpoint of every
// incident edge. It panics when the position is outside the universe.
func (g *Graph) SetNodePosition(id NodeID, x, y float64) bool {
	n := g.nodes.get(id.handle)
	if n == nil {
		return false
	}

	to := r2.Vec{X: x, Y: y}
	if !g.universe.Contains(to) {
		panic(errors.New("node position is outside the universe").
			WithType(spatial.ErrTypeOutOfBounds).
			WithTag("graph", g.Name).
			WithTag("node", id).
			WithTag("x", x).
			WithTag("y", y))
	}

	if !g.nodeIndex.Move(id, n.Pos.X, n.Pos.Y, x, y) {
		panic(g.corrupted("node is missing from the node index").
			WithTag("node", id))
	}
	n.Pos = to

	for eid := range n.edges {
		e := g.edges.get(eid.handle)
		from := e.Mid
		e.Mid = g.midpoint(e.N1, e.N2)

		if !g.edgeIndex.Move(eid, from.X, from.Y, e.Mid.X, e.Mid.Y) {
			panic(g.corrupted("edge is missing from the edge index").
				WithTag("edge", eid))
		}
	}
	return true
}

// SetSelected sets the selected flag of a node.
func (g *Graph) SetSelected(id NodeID, selected bool) bool {
	n := g.nodes.get(id.handle)
	if n == nil {
		return false
	}

	n.Selected = selected
	return true
}

// Node returns a snapshot of the node.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n := g.nodes.get(id.handle)
	if n == nil {
		return Node{}, false
	}
	return n.Node, true
}

func (g *Graph) Position(id NodeID) (r2.Vec, bool) {
	n := g.nodes.get(id.handle)
	if n == nil {
		return r2.Vec{}, false
	}
	return n.Pos, true
}

// Neighbors returns the nodes connected to id, in creation order.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	n := g.nodes.get(id.handle)
	if n == nil {
		return nil
	}

	ids := slices.Collect(maps.Keys(n.neighbors))
	g.sortNodes(ids)
	return ids
}

func (g *Graph) NodeEdges(id NodeID) []EdgeID {
	n := g.nodes.get(id.handle)
	if n == nil {
		return nil
	}
	return slices.SortedFunc(maps.Keys(n.edges), compareEdgeIDs)
}

func (g *Graph) NodeFaces(id NodeID) []FaceID {
	n := g.nodes.get(id.handle)
	if n == nil {
		return nil
	}
	return slices.SortedFunc(maps.Keys(n.faces), compareFaceIDs)
}

// IsNeighbor reports whether a and b are connected by an edge.
func (g *Graph) IsNeighbor(a, b NodeID) bool {
	n := g.nodes.get(a.handle)
	if n == nil {
		return false
	}

	_, ok := n.neighbors[b]
	return ok
}

func (g *Graph) sortNodes(ids []NodeID) {
	slices.SortFunc(ids, func(a, b NodeID) int {
		return compareSeq(g.nodes.get(a.handle).Seq, g.nodes.get(b.handle).Seq)
	})
}

func (g *Graph) midpoint(a, b NodeID) r2.Vec {
	pa := g.nodes.get(a.handle).Pos
	pb := g.nodes.get(b.handle).Pos
	return r2.Scale(0.5, r2.Add(pa, pb))
}
