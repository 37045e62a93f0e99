// Package geometry implements the segment intersection test and the
// algorithms built on it: triangular face discovery and visibility graph
// construction.
//
// Every function takes the graph it works on explicitly and runs to
// completion synchronously.
package geometry

import (
	"github.com/aukilabs/graphsearch/models"
	"gonum.org/v1/gonum/spatial/r2"
)

// Intersect reports whether the segments a1 a2 and b1 b2 properly intersect
// and returns the intersection point.
//
// Segments only intersect when they cross strictly inside both of them:
// touching at an endpoint is not an intersection. Parallel segments, collinear
// ones included, never intersect. Comparisons are exact, without tolerance.
func Intersect(a1, a2, b1, b2 r2.Vec) (r2.Vec, bool) {
	r := r2.Sub(a2, a1)
	s := r2.Sub(b2, b1)

	denom := r2.Cross(r, s)
	if denom == 0 {
		return r2.Vec{}, false
	}

	d := r2.Sub(b1, a1)
	t := r2.Cross(d, s) / denom
	u := r2.Cross(d, r) / denom
	if t <= 0 || t >= 1 || u <= 0 || u >= 1 {
		return r2.Vec{}, false
	}

	return r2.Add(a1, r2.Scale(t, r)), true
}

// IntersectNodes runs Intersect on the positions of four graph nodes. It
// returns false when a node is absent.
func IntersectNodes(g *models.Graph, a1, a2, b1, b2 models.NodeID) (r2.Vec, bool) {
	var pos [4]r2.Vec
	for i, id := range [4]models.NodeID{a1, a2, b1, b2} {
		p, ok := g.Position(id)
		if !ok {
			return r2.Vec{}, false
		}
		pos[i] = p
	}
	return Intersect(pos[0], pos[1], pos[2], pos[3])
}
