package geometry

import (
	"math"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/graphsearch/models"
	"gonum.org/v1/gonum/spatial/r2"
)

// Option configures visibility graph construction.
type Option func(*settings)

type settings struct {
	fullScan bool
}

// WithFullScan makes every node pair be tested against every structural edge
// instead of the edges found around the pair through the edge index.
func WithFullScan() Option {
	return func(s *settings) {
		s.fullScan = true
	}
}

// Slack, relative to the universe size, added to the edge index search
// window so that rounding in midpoint computations never drops a crossing
// edge.
const searchSlack = 1e-9

type wall struct {
	a, b   r2.Vec
	border bool
}

type obstacles struct {
	walls map[models.EdgeID]wall

	// Largest distance between a wall midpoint and one of its endpoints, per
	// axis.
	reach r2.Vec
}

// BuildVisibilityGraph connects every pair of non adjacent nodes whose segment
// crosses the inside of the discovered faces. A pair qualifies when its
// segment properly intersects at least one structural edge and every
// structural edge it intersects is an interior edge. Faces must have been
// discovered first.
//
// Created edges are marked as visibility edges and returned. They do not act
// as obstacles for other pairs.
func BuildVisibilityGraph(g *models.Graph, opts ...Option) []models.EdgeID {
	start := time.Now()

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	obs := newObstacles(g)
	stack := g.Nodes()
	var created []models.EdgeID
	tests := 0

	for len(stack) > 0 {
		n1 := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p1, _ := g.Position(n1)

		for _, n2 := range stack {
			if g.IsNeighbor(n1, n2) {
				continue
			}
			p2, _ := g.Position(n2)

			ok, n := obs.admissible(g, p1, p2, s.fullScan)
			tests += n
			if !ok {
				continue
			}

			if id, ok := g.CreateEdge(n1, n2); ok {
				g.MarkVisibility(id)
				created = append(created, id)
			}
		}
	}

	instrumentVisibility(g.Name, len(created), tests, start)
	logs.WithTag("graph", g.Name).
		WithTag("edges", len(created)).
		WithTag("intersection_tests", tests).
		WithTag("full_scan", s.fullScan).
		WithTag("duration", time.Since(start)).
		Debug("visibility graph built")
	return created
}

func newObstacles(g *models.Graph) obstacles {
	obs := obstacles{
		walls: make(map[models.EdgeID]wall),
	}

	for _, id := range g.Edges() {
		e, _ := g.Edge(id)
		if e.Visibility {
			continue
		}

		a, _ := g.Position(e.N1)
		b, _ := g.Position(e.N2)
		obs.walls[id] = wall{
			a:      a,
			b:      b,
			border: e.FaceCount == 1,
		}

		obs.reach.X = math.Max(obs.reach.X, math.Abs(b.X-a.X)/2)
		obs.reach.Y = math.Max(obs.reach.Y, math.Abs(b.Y-a.Y)/2)
	}

	u := g.Universe()
	obs.reach = r2.Add(obs.reach, r2.Vec{X: u.Width() * searchSlack, Y: u.Height() * searchSlack})
	return obs
}

// admissible reports whether the segment p1 p2 crosses at least one wall and
// only interior ones. It also returns the number of intersection tests run.
func (o obstacles) admissible(g *models.Graph, p1, p2 r2.Vec, fullScan bool) (bool, int) {
	good := false
	tests := 0

	check := func(w wall) bool {
		tests++
		if _, ok := Intersect(p1, p2, w.a, w.b); !ok {
			return true
		}
		if w.border {
			return false
		}

		good = true
		return true
	}

	if fullScan {
		for _, w := range o.walls {
			if !check(w) {
				return false, tests
			}
		}
		return good, tests
	}

	candidates := g.QueryEdges(
		math.Min(p1.X, p2.X)-o.reach.X,
		math.Min(p1.Y, p2.Y)-o.reach.Y,
		math.Max(p1.X, p2.X)+o.reach.X,
		math.Max(p1.Y, p2.Y)+o.reach.Y,
	)
	for _, id := range candidates {
		w, ok := o.walls[id]
		if !ok {
			continue
		}
		if !check(w) {
			return false, tests
		}
	}
	return good, tests
}
