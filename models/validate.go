package models

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Validate audits every cross reference of the graph and returns the first
// inconsistency found. It never mutates the graph.
func (g *Graph) Validate() error {
	checks := []func() error{
		g.validateNodes,
		g.validateEdges,
		g.validateFaces,
		g.validateIndexes,
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// validateNodes checks that neighbor relations are mutual and that each
// neighbor is backed by exactly one incident edge.
func (g *Graph) validateNodes() error {
	var err error

	g.nodes.each(func(h handle, n *node) {
		if err != nil {
			return
		}
		id := NodeID{h}

		for nb := range n.neighbors {
			other := g.nodes.get(nb.handle)
			if other == nil {
				err = g.invariant("neighbor is not a live node").
					WithTag("node", id).
					WithTag("neighbor", nb)
				return
			}
			if _, ok := other.neighbors[id]; !ok {
				err = g.invariant("neighbor relation is not mutual").
					WithTag("node", id).
					WithTag("neighbor", nb)
				return
			}
		}

		if len(n.edges) != len(n.neighbors) {
			err = g.invariant("edge count does not match neighbor count").
				WithTag("node", id).
				WithTag("edges", len(n.edges)).
				WithTag("neighbors", len(n.neighbors))
			return
		}

		for f := range n.faces {
			if g.faces.get(f.handle) == nil {
				err = g.invariant("incident face is not a live face").
					WithTag("node", id).
					WithTag("face", f)
				return
			}
		}
	})
	return err
}

func (g *Graph) validateEdges() error {
	var err error
	pairs := make(map[[2]NodeID]EdgeID, g.edges.len())
	faceCounts := make(map[EdgeID]int, g.edges.len())

	g.faces.each(func(_ handle, f *Face) {
		for _, pair := range [3][2]int{{0, 1}, {0, 2}, {1, 2}} {
			a := g.nodes.get(f.Nodes[pair[0]].handle)
			if a == nil {
				continue
			}
			for e := range a.edges {
				edge := g.edges.get(e.handle)
				if edge != nil && (edge.N2 == f.Nodes[pair[1]]) {
					faceCounts[e]++
				}
			}
		}
	})

	g.edges.each(func(h handle, e *Edge) {
		if err != nil {
			return
		}
		id := EdgeID{h}

		a, b := g.nodes.get(e.N1.handle), g.nodes.get(e.N2.handle)
		switch {
		case a == nil || b == nil:
			err = g.invariant("edge endpoint is not a live node").WithTag("edge", id)
			return
		case e.N1 == e.N2:
			err = g.invariant("edge connects a node to itself").WithTag("edge", id)
			return
		case b.Seq < a.Seq:
			err = g.invariant("edge endpoints are not in creation order").WithTag("edge", id)
			return
		}

		if _, ok := a.edges[id]; !ok {
			err = g.invariant("edge is missing from its first endpoint").WithTag("edge", id)
			return
		}
		if _, ok := b.edges[id]; !ok {
			err = g.invariant("edge is missing from its second endpoint").WithTag("edge", id)
			return
		}
		if _, ok := a.neighbors[e.N2]; !ok {
			err = g.invariant("edge endpoints are not neighbors").WithTag("edge", id)
			return
		}

		pair := [2]NodeID{e.N1, e.N2}
		if other, ok := pairs[pair]; ok {
			err = g.invariant("node pair has more than one edge").
				WithTag("edge", id).
				WithTag("other_edge", other)
			return
		}
		pairs[pair] = id

		if e.FaceCount != faceCounts[id] {
			err = g.invariant("edge face count does not match its faces").
				WithTag("edge", id).
				WithTag("face_count", e.FaceCount).
				WithTag("faces", faceCounts[id])
			return
		}

		if _, ok := g.visibility[id]; ok != e.Visibility {
			err = g.invariant("visibility tag does not match the visibility set").
				WithTag("edge", id)
			return
		}
	})
	return err
}

func (g *Graph) validateFaces() error {
	var err error

	if len(g.faceKeys) != g.faces.len() {
		return g.invariant("face keys do not match faces").
			WithTag("keys", len(g.faceKeys)).
			WithTag("faces", g.faces.len())
	}

	g.faces.each(func(h handle, f *Face) {
		if err != nil {
			return
		}
		id := FaceID{h}

		key, ok := g.faceKey(f.Nodes[0], f.Nodes[1], f.Nodes[2])
		if !ok || key != f.Nodes {
			err = g.invariant("face nodes are not a canonical triangle").WithTag("face", id)
			return
		}
		if g.faceKeys[key] != id {
			err = g.invariant("face is not registered under its key").WithTag("face", id)
			return
		}
		for _, n := range f.Nodes {
			if _, ok := g.nodes.get(n.handle).faces[id]; !ok {
				err = g.invariant("face is missing from one of its nodes").
					WithTag("face", id).
					WithTag("node", n)
				return
			}
		}
	})
	return err
}

// validateIndexes checks that each node and edge is indexed at its position.
func (g *Graph) validateIndexes() error {
	if n := g.nodeIndex.Len(); n != g.nodes.len() {
		return g.invariant("node index size does not match nodes").
			WithTag("indexed", n).
			WithTag("nodes", g.nodes.len())
	}
	if n := g.edgeIndex.Len(); n != g.edges.len() {
		return g.invariant("edge index size does not match edges").
			WithTag("indexed", n).
			WithTag("edges", g.edges.len())
	}

	var err error
	g.nodes.each(func(h handle, n *node) {
		if err == nil && !indexedAt(g.nodeIndex.Query(n.Pos.X, n.Pos.Y, n.Pos.X, n.Pos.Y), NodeID{h}) {
			err = g.invariant("node is not indexed at its position").WithTag("node", NodeID{h})
		}
	})
	if err != nil {
		return err
	}

	g.edges.each(func(h handle, e *Edge) {
		if err != nil {
			return
		}
		if e.Mid != g.midpoint(e.N1, e.N2) {
			err = g.invariant("edge midpoint is stale").WithTag("edge", EdgeID{h})
			return
		}
		if !indexedAt(g.edgeIndex.Query(e.Mid.X, e.Mid.Y, e.Mid.X, e.Mid.Y), EdgeID{h}) {
			err = g.invariant("edge is not indexed at its midpoint").WithTag("edge", EdgeID{h})
		}
	})
	return err
}

func (g *Graph) invariant(msg string) errors.Error {
	return errors.New(msg).
		WithType(ErrTypeInvariant).
		WithTag("graph", g.Name).
		WithTag("graph_uuid", g.UUID)
}

func indexedAt[T comparable](found []T, v T) bool {
	for _, f := range found {
		if f == v {
			return true
		}
	}
	return false
}
