package models

import (
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/graphsearch/spatial"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultEdgeThickness is the thickness given to new edges.
	DefaultEdgeThickness = 2

	ErrTypeMissingEdge        = "graph_missing_edge"
	ErrTypeFaceCountUnderflow = "graph_face_count_underflow"
	ErrTypeIndexCorrupted     = "graph_index_corrupted"
	ErrTypeInvariant          = "graph_invariant_violation"
)

// Graph owns the nodes, edges and faces of a planar geometric graph and keeps
// their cross references and spatial indexes consistent.
//
// A Graph is not safe for concurrent use. Concurrent callers must go through
// a Workspace.
type Graph struct {
	Name string
	UUID string

	universe      spatial.Rect
	halfThickness float64

	nodes   arena[node]
	edges   arena[Edge]
	faces   arena[Face]
	nextSeq uint64

	nodeIndex spatial.Index[NodeID]
	edgeIndex spatial.Index[EdgeID]

	faceKeys   map[[3]NodeID]FaceID
	visibility map[EdgeID]struct{}

	metrics graphMetrics
}

// Option configures a Graph.
type Option func(*graphSettings)

type graphSettings struct {
	name        string
	indexConfig spatial.Config
	thickness   float64
}

// WithName sets the graph name used in logs and metrics.
func WithName(name string) Option {
	return func(s *graphSettings) {
		s.name = name
	}
}

// WithIndexConfig sets the configuration of the node and edge indexes.
func WithIndexConfig(c spatial.Config) Option {
	return func(s *graphSettings) {
		s.indexConfig = c
	}
}

// WithEdgeThickness sets the thickness given to new edges.
func WithEdgeThickness(thickness float64) Option {
	return func(s *graphSettings) {
		s.thickness = thickness
	}
}

// NewGraph creates an empty graph whose nodes must stay within universe.
func NewGraph(universe spatial.Rect, opts ...Option) *Graph {
	s := graphSettings{
		name:        "default",
		indexConfig: spatial.DefaultConfig(),
		thickness:   DefaultEdgeThickness,
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &Graph{
		Name:          s.name,
		UUID:          uuid.New().String(),
		universe:      universe,
		halfThickness: s.thickness / 2,
		nodeIndex: spatial.NewQuadTree[NodeID](universe,
			spatial.WithConfig(s.indexConfig),
			spatial.WithName(s.name+"_nodes"),
		),
		edgeIndex: spatial.NewQuadTree[EdgeID](universe,
			spatial.WithConfig(s.indexConfig),
			spatial.WithName(s.name+"_edges"),
		),
		faceKeys:   make(map[[3]NodeID]FaceID),
		visibility: make(map[EdgeID]struct{}),
		metrics:    newGraphMetrics(s.name),
	}
}

// Universe returns the bounds every node position must stay within.
func (g *Graph) Universe() spatial.Rect {
	return g.universe
}

// Contains reports whether (x, y) lies in the universe.
func (g *Graph) Contains(x, y float64) bool {
	return g.universe.Contains(r2.Vec{X: x, Y: y})
}

// QueryNodes returns the nodes positioned in the closed rectangle spanned by
// the two corners.
func (g *Graph) QueryNodes(x1, y1, x2, y2 float64) []NodeID {
	return g.nodeIndex.Query(x1, y1, x2, y2)
}

// QueryEdges returns the edges whose midpoint lies in the closed rectangle
// spanned by the two corners.
func (g *Graph) QueryEdges(x1, y1, x2, y2 float64) []EdgeID {
	return g.edgeIndex.Query(x1, y1, x2, y2)
}

func (g *Graph) NodeIndexInfo() spatial.DebugInfo {
	return g.nodeIndex.DebugInfo()
}

func (g *Graph) EdgeIndexInfo() spatial.DebugInfo {
	return g.edgeIndex.DebugInfo()
}

func (g *Graph) NodeCount() int {
	return g.nodes.len()
}

func (g *Graph) EdgeCount() int {
	return g.edges.len()
}

func (g *Graph) FaceCount() int {
	return g.faces.len()
}

// Nodes returns every node in creation order.
func (g *Graph) Nodes() []NodeID {
	nodes := make([]*node, 0, g.nodes.len())
	g.nodes.each(func(_ handle, n *node) {
		nodes = append(nodes, n)
	})
	slices.SortFunc(nodes, func(a, b *node) int {
		return compareSeq(a.Seq, b.Seq)
	})

	ids := make([]NodeID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// Edges returns every edge, visibility edges included.
func (g *Graph) Edges() []EdgeID {
	ids := make([]EdgeID, 0, g.edges.len())
	g.edges.each(func(h handle, _ *Edge) {
		ids = append(ids, EdgeID{h})
	})
	return ids
}

// Faces returns every face.
func (g *Graph) Faces() []FaceID {
	ids := make([]FaceID, 0, g.faces.len())
	g.faces.each(func(h handle, _ *Face) {
		ids = append(ids, FaceID{h})
	})
	return ids
}

// Less reports whether a was created before b. It is the total order used to
// canonicalize edges and faces.
func (g *Graph) Less(a, b NodeID) bool {
	na, nb := g.nodes.get(a.handle), g.nodes.get(b.handle)
	if na == nil || nb == nil {
		return false
	}
	return na.Seq < nb.Seq
}

// MarkVisibility tags e as a non structural visibility edge and records it
// in the visibility set.
func (g *Graph) MarkVisibility(id EdgeID) bool {
	e := g.edges.get(id.handle)
	if e == nil {
		return false
	}

	e.Visibility = true
	g.visibility[id] = struct{}{}
	return true
}

// VisibilityEdges returns the edges tagged with MarkVisibility.
func (g *Graph) VisibilityEdges() []EdgeID {
	ids := make([]EdgeID, 0, len(g.visibility))
	for id := range g.visibility {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, compareEdgeIDs)
	return ids
}

// ClearVisibilityEdges destroys every visibility edge and returns how many
// were destroyed.
func (g *Graph) ClearVisibilityEdges() int {
	n := 0
	for _, id := range g.VisibilityEdges() {
		if g.DestroyEdgeByID(id) {
			n++
		}
	}

	logs.WithTag("graph", g.Name).
		WithTag("edges", n).
		Debug("visibility edges cleared")
	return n
}

func (g *Graph) corrupted(msg string) errors.Error {
	return errors.New(msg).
		WithType(ErrTypeIndexCorrupted).
		WithTag("graph", g.Name).
		WithTag("graph_uuid", g.UUID)
}

func compareSeq(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareEdgeIDs(a, b EdgeID) int {
	return compareSeq(uint64(a.index)<<32|uint64(a.gen), uint64(b.index)<<32|uint64(b.gen))
}

func compareFaceIDs(a, b FaceID) int {
	return compareSeq(uint64(a.index)<<32|uint64(a.gen), uint64(b.index)<<32|uint64(b.gen))
}
