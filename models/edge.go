package models

import (
	"maps"
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// Edge connects two distinct nodes. N1 is always the node created first.
type Edge struct {
	ID     EdgeID
	N1, N2 NodeID

	HalfThickness float64

	// Number of faces using the edge.
	FaceCount int

	// Visibility marks edges added by visibility graph construction. They
	// are not part of the structural graph.
	Visibility bool

	// Midpoint of the endpoints, used as the edge index key.
	Mid r2.Vec
}

// CreateEdge connects n1 and n2. It returns false when a node is absent, when
// both are the same node or when they are already connected.
func (g *Graph) CreateEdge(n1, n2 NodeID) (EdgeID, bool) {
	a, b := g.nodes.get(n1.handle), g.nodes.get(n2.handle)
	if a == nil || b == nil || n1 == n2 {
		return EdgeID{}, false
	}
	if _, ok := a.neighbors[n2]; ok {
		return EdgeID{}, false
	}

	if b.Seq < a.Seq {
		a, b = b, a
	}

	e := &Edge{
		N1:            a.ID,
		N2:            b.ID,
		HalfThickness: g.halfThickness,
		Mid:           r2.Scale(0.5, r2.Add(a.Pos, b.Pos)),
	}
	e.ID = EdgeID{g.edges.alloc(e)}

	a.neighbors[b.ID] = struct{}{}
	b.neighbors[a.ID] = struct{}{}
	a.edges[e.ID] = struct{}{}
	b.edges[e.ID] = struct{}{}

	g.edgeIndex.Insert(e.ID, e.Mid.X, e.Mid.Y)
	g.metrics.instrumentEdges(1)
	return e.ID, true
}

// DestroyEdge disconnects n1 and n2, destroying the faces using their edge.
// It returns false when a node is absent, when both are the same node or when
// they are not connected.
func (g *Graph) DestroyEdge(n1, n2 NodeID) bool {
	a, b := g.nodes.get(n1.handle), g.nodes.get(n2.handle)
	if a == nil || b == nil || n1 == n2 {
		return false
	}
	if _, ok := a.neighbors[n2]; !ok {
		return false
	}

	g.destroyEdge(g.mustEdgeBetween(a, n2))
	return true
}

func (g *Graph) DestroyEdgeByID(id EdgeID) bool {
	if g.edges.get(id.handle) == nil {
		return false
	}

	g.destroyEdge(id)
	return true
}

// FindEdge returns the edge connecting n1 and n2.
func (g *Graph) FindEdge(n1, n2 NodeID) (EdgeID, bool) {
	a := g.nodes.get(n1.handle)
	if a == nil || n1 == n2 {
		return EdgeID{}, false
	}
	if _, ok := a.neighbors[n2]; !ok {
		return EdgeID{}, false
	}
	return g.mustEdgeBetween(a, n2), true
}

// Edge returns a snapshot of the edge.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	e := g.edges.get(id.handle)
	if e == nil {
		return Edge{}, false
	}
	return *e, true
}

// IsBorder reports whether the edge is used by exactly one face.
func (g *Graph) IsBorder(id EdgeID) bool {
	e := g.edges.get(id.handle)
	return e != nil && e.FaceCount == 1
}

func (g *Graph) destroyEdge(id EdgeID) {
	e := g.edges.get(id.handle)
	a, b := g.nodes.get(e.N1.handle), g.nodes.get(e.N2.handle)

	for _, f := range slices.Collect(maps.Keys(a.faces)) {
		if _, ok := b.faces[f]; ok {
			g.destroyFace(f)
		}
	}

	delete(a.neighbors, b.ID)
	delete(b.neighbors, a.ID)
	delete(a.edges, id)
	delete(b.edges, id)

	if !g.edgeIndex.Remove(id, e.Mid.X, e.Mid.Y) {
		panic(g.corrupted("edge is missing from the edge index").
			WithTag("edge", id))
	}

	delete(g.visibility, id)
	g.edges.release(id.handle)
	g.metrics.instrumentEdges(-1)
}

// mustEdgeBetween returns the edge between a and the neighbor other. Having
// neighbors without an edge means the graph is corrupted.
func (g *Graph) mustEdgeBetween(a *node, other NodeID) EdgeID {
	for id := range a.edges {
		e := g.edges.get(id.handle)
		if e.N1 == other || e.N2 == other {
			return id
		}
	}

	panic(errors.New("neighbor nodes are not connected by an edge").
		WithType(ErrTypeMissingEdge).
		WithTag("graph", g.Name).
		WithTag("graph_uuid", g.UUID).
		WithTag("node", a.ID).
		WithTag("neighbor", other))
}
