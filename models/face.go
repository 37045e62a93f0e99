package models

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// Face is a triangle of mutually connected nodes, ordered by creation.
type Face struct {
	ID    FaceID
	Nodes [3]NodeID
}

// CreateFace adds the triangle n1 n2 n3 and increments the face count of its
// three edges. It returns false when a node is absent, when nodes repeat, when
// a pair is not connected or when the triangle already exists.
func (g *Graph) CreateFace(n1, n2, n3 NodeID) (FaceID, bool) {
	key, ok := g.faceKey(n1, n2, n3)
	if !ok {
		return FaceID{}, false
	}
	if _, exists := g.faceKeys[key]; exists {
		return FaceID{}, false
	}

	f := &Face{Nodes: key}
	f.ID = FaceID{g.faces.alloc(f)}

	for _, e := range g.faceEdges(key) {
		g.edges.get(e.handle).FaceCount++
	}
	for _, n := range key {
		g.nodes.get(n.handle).faces[f.ID] = struct{}{}
	}

	g.faceKeys[key] = f.ID
	g.metrics.instrumentFaces(1)
	return f.ID, true
}

// FindFace returns the face made of the three nodes, in any order.
func (g *Graph) FindFace(n1, n2, n3 NodeID) (FaceID, bool) {
	key, ok := g.faceKey(n1, n2, n3)
	if !ok {
		return FaceID{}, false
	}

	id, ok := g.faceKeys[key]
	return id, ok
}

// DestroyFace removes a face and decrements the face count of its edges.
func (g *Graph) DestroyFace(id FaceID) bool {
	if g.faces.get(id.handle) == nil {
		return false
	}

	g.destroyFace(id)
	return true
}

// DestroyAllFaces removes every face and returns how many were removed. Every
// edge face count is back to zero afterwards.
func (g *Graph) DestroyAllFaces() int {
	faces := g.Faces()
	for _, id := range faces {
		g.destroyFace(id)
	}

	g.edges.each(func(h handle, e *Edge) {
		if e.FaceCount != 0 {
			panic(errors.New("edge face count does not match its faces").
				WithType(ErrTypeFaceCountUnderflow).
				WithTag("graph", g.Name).
				WithTag("graph_uuid", g.UUID).
				WithTag("edge", EdgeID{h}).
				WithTag("face_count", e.FaceCount))
		}
	})

	logs.WithTag("graph", g.Name).
		WithTag("faces", len(faces)).
		Debug("faces cleared")
	return len(faces)
}

// Face returns a snapshot of the face.
func (g *Graph) Face(id FaceID) (Face, bool) {
	f := g.faces.get(id.handle)
	if f == nil {
		return Face{}, false
	}
	return *f, true
}

func (g *Graph) destroyFace(id FaceID) {
	f := g.faces.get(id.handle)

	for _, e := range g.faceEdges(f.Nodes) {
		edge := g.edges.get(e.handle)
		if edge.FaceCount <= 0 {
			panic(errors.New("edge face count underflow").
				WithType(ErrTypeFaceCountUnderflow).
				WithTag("graph", g.Name).
				WithTag("graph_uuid", g.UUID).
				WithTag("edge", e).
				WithTag("face", id))
		}
		edge.FaceCount--
	}
	for _, n := range f.Nodes {
		delete(g.nodes.get(n.handle).faces, id)
	}

	delete(g.faceKeys, f.Nodes)
	g.faces.release(id.handle)
	g.metrics.instrumentFaces(-1)
}

// faceKey returns the nodes in creation order when they form a triangle of
// live, distinct and mutually connected nodes.
func (g *Graph) faceKey(n1, n2, n3 NodeID) ([3]NodeID, bool) {
	key := [3]NodeID{n1, n2, n3}
	for _, n := range key {
		if g.nodes.get(n.handle) == nil {
			return key, false
		}
	}
	if n1 == n2 || n1 == n3 || n2 == n3 {
		return key, false
	}
	if !g.IsNeighbor(n1, n2) || !g.IsNeighbor(n1, n3) || !g.IsNeighbor(n2, n3) {
		return key, false
	}

	g.sortNodes(key[:])
	return key, true
}

func (g *Graph) faceEdges(key [3]NodeID) [3]EdgeID {
	var edges [3]EdgeID
	for i, pair := range [3][2]int{{0, 1}, {0, 2}, {1, 2}} {
		edges[i] = g.mustEdgeBetween(g.nodes.get(key[pair[0]].handle), key[pair[1]])
	}
	return edges
}
