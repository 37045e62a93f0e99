package http

import (
	"net/http"
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/graphsearch/geometry"
	"github.com/aukilabs/graphsearch/models"
	"github.com/aukilabs/graphsearch/spatial"
	"github.com/segmentio/encoding/json"
)

const (
	ErrTypeInvalidQuery = "http_invalid_query"
)

type NodeView struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Selected bool    `json:"selected,omitempty"`
}

type EdgeView struct {
	ID         string `json:"id"`
	N1         string `json:"n1"`
	N2         string `json:"n2"`
	Faces      int    `json:"faces"`
	Border     bool   `json:"border,omitempty"`
	Visibility bool   `json:"visibility,omitempty"`
}

// RegionResponse is the body returned by HandleRegionQuery.
type RegionResponse struct {
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// StatsResponse is the body returned by HandleStats.
type StatsResponse struct {
	Name            string            `json:"name"`
	UUID            string            `json:"uuid"`
	Nodes           int               `json:"nodes"`
	Edges           int               `json:"edges"`
	Faces           int               `json:"faces"`
	BorderEdges     int               `json:"border_edges"`
	VisibilityEdges int               `json:"visibility_edges"`
	NodeIndex       spatial.DebugInfo `json:"node_index"`
	EdgeIndex       spatial.DebugInfo `json:"edge_index"`
}

// HandleRegionQuery returns the nodes and the edges whose midpoint lie in the
// rectangle given by the x1, y1, x2 and y2 query parameters.
func HandleRegionQuery(ws *models.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var corners [4]float64
		for i, name := range []string{"x1", "y1", "x2", "y2"} {
			v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
			if err != nil {
				logs.WithTag("param", name).
					Debug(errors.New("invalid region query").
						WithType(ErrTypeInvalidQuery).
						Wrap(err))
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			corners[i] = v
		}

		var res RegionResponse
		ws.View(func(g *models.Graph) error {
			res = regionOf(g, corners)
			return nil
		})

		writeJSON(w, res)
	}
}

func regionOf(g *models.Graph, c [4]float64) RegionResponse {
	res := RegionResponse{
		Nodes: []NodeView{},
		Edges: []EdgeView{},
	}

	for _, id := range g.QueryNodes(c[0], c[1], c[2], c[3]) {
		n, _ := g.Node(id)
		res.Nodes = append(res.Nodes, NodeView{
			ID:       id.String(),
			X:        n.Pos.X,
			Y:        n.Pos.Y,
			Selected: n.Selected,
		})
	}

	for _, id := range g.QueryEdges(c[0], c[1], c[2], c[3]) {
		e, _ := g.Edge(id)
		res.Edges = append(res.Edges, EdgeView{
			ID:         id.String(),
			N1:         e.N1.String(),
			N2:         e.N2.String(),
			Faces:      e.FaceCount,
			Border:     e.FaceCount == 1,
			Visibility: e.Visibility,
		})
	}
	return res
}

// HandleStats returns the graph counters and the spatial index statistics.
func HandleStats(ws *models.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var res StatsResponse
		ws.View(func(g *models.Graph) error {
			res = StatsResponse{
				Name:            g.Name,
				UUID:            g.UUID,
				Nodes:           g.NodeCount(),
				Edges:           g.EdgeCount(),
				Faces:           g.FaceCount(),
				BorderEdges:     len(geometry.BorderEdges(g)),
				VisibilityEdges: len(g.VisibilityEdges()),
				NodeIndex:       g.NodeIndexInfo(),
				EdgeIndex:       g.EdgeIndexInfo(),
			}
			return nil
		})

		writeJSON(w, res)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logs.Warn(errors.New("encoding response failed").Wrap(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
