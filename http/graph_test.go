package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aukilabs/graphsearch/geometry"
	"github.com/aukilabs/graphsearch/models"
	"github.com/aukilabs/graphsearch/spatial"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace(t *testing.T) (*models.Workspace, [4]models.NodeID) {
	g := models.NewGraph(spatial.NewRect(0, 0, 100, 100), models.WithName(t.Name()))

	n := [4]models.NodeID{
		g.CreateNode(10, 10),
		g.CreateNode(90, 10),
		g.CreateNode(90, 90),
		g.CreateNode(10, 90),
	}
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}} {
		_, ok := g.CreateEdge(n[pair[0]], n[pair[1]])
		require.True(t, ok)
	}
	geometry.DiscoverFaces(g)
	geometry.BuildVisibilityGraph(g)

	return models.NewWorkspace(g, 5), n
}

func TestHandleRegionQuery(t *testing.T) {
	ws, n := newTestWorkspace(t)

	t.Run("query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/query?x1=0&y1=0&x2=50&y2=20", nil)
		w := httptest.NewRecorder()
		HandleRegionQuery(ws)(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var res RegionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Equal(t, []NodeView{{ID: n[0].String(), X: 10, Y: 10}}, res.Nodes)
		require.Len(t, res.Edges, 1)
		require.Equal(t, n[0].String(), res.Edges[0].N1)
		require.Equal(t, n[1].String(), res.Edges[0].N2)
		require.Equal(t, 1, res.Edges[0].Faces)
		require.True(t, res.Edges[0].Border)
	})

	t.Run("visibility edges", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/query?x1=50&y1=50&x2=50&y2=50", nil)
		w := httptest.NewRecorder()
		HandleRegionQuery(ws)(w, req)

		var res RegionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Empty(t, res.Nodes)
		require.Len(t, res.Edges, 2)

		visibility := 0
		for _, e := range res.Edges {
			if e.Visibility {
				visibility++
			}
		}
		require.Equal(t, 1, visibility)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/query?x1=0&y1=abc&x2=50&y2=20", nil)
		w := httptest.NewRecorder()
		HandleRegionQuery(ws)(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/query?x1=0", nil)
		w := httptest.NewRecorder()
		HandleRegionQuery(ws)(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleStats(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	HandleStats(ws)(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, t.Name(), res.Name)
	require.NotEmpty(t, res.UUID)
	require.Equal(t, 4, res.Nodes)
	require.Equal(t, 6, res.Edges)
	require.Equal(t, 2, res.Faces)
	require.Equal(t, 4, res.BorderEdges)
	require.Equal(t, 1, res.VisibilityEdges)
	require.Equal(t, 4, res.NodeIndex.ItemCount)
	require.Equal(t, 6, res.EdgeIndex.ItemCount)
	require.Equal(t, spatial.DefaultFanout, res.NodeIndex.Fanout)
}

func TestHandleHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthCheck(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandleReadyCheck(t *testing.T) {
	ready := false
	h := HandleReadyCheck(func() bool { return ready })

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	ready = true
	w = httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion("v1.2.3")(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "v1.2.3", w.Body.String())
}

func TestMetricsPathFormatter(t *testing.T) {
	require.Equal(t, "/query", MetricsPathFormatter(http.StatusOK, "/query"))
	require.Empty(t, MetricsPathFormatter(http.StatusNotFound, "/wp-admin"))
	require.Empty(t, MetricsPathFormatter(http.StatusBadRequest, "/query"))
}
