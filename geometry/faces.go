package geometry

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/graphsearch/models"
)

// DiscoverFaces creates a face for every triangle of structural edges that
// is not a face yet, and returns the created faces.
func DiscoverFaces(g *models.Graph) []models.FaceID {
	start := time.Now()
	var faces []models.FaceID

	for _, id := range g.Edges() {
		e, _ := g.Edge(id)
		if e.Visibility {
			continue
		}

		for _, n3 := range g.Neighbors(e.N1) {
			if n3 == e.N2 || !structural(g, e.N1, n3) || !structural(g, e.N2, n3) {
				continue
			}

			if f, ok := g.CreateFace(e.N1, e.N2, n3); ok {
				faces = append(faces, f)
			}
		}
	}

	instrumentFaceDiscovery(g.Name, len(faces), start)
	logs.WithTag("graph", g.Name).
		WithTag("faces", len(faces)).
		WithTag("total_faces", g.FaceCount()).
		WithTag("duration", time.Since(start)).
		Debug("faces discovered")
	return faces
}

// BorderEdges returns the edges used by exactly one face.
func BorderEdges(g *models.Graph) []models.EdgeID {
	var edges []models.EdgeID
	for _, id := range g.Edges() {
		if g.IsBorder(id) {
			edges = append(edges, id)
		}
	}
	return edges
}

// structural reports whether a and b are connected by an edge that is not a
// visibility edge.
func structural(g *models.Graph, a, b models.NodeID) bool {
	id, ok := g.FindEdge(a, b)
	if !ok {
		return false
	}

	e, _ := g.Edge(id)
	return !e.Visibility
}
