package graphfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/graphsearch/geometry"
	"github.com/aukilabs/graphsearch/models"
	"github.com/aukilabs/graphsearch/spatial"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

const square = `# a square with a diagonal
v 1 10 10
v 2 90 10
v 3 90 90
v 4 10 90

e 1 2
e 2 3
e 3 4
e 4 1
e 1 3
`

func newTestGraph(t *testing.T) *models.Graph {
	return models.NewGraph(spatial.NewRect(0, 0, 100, 100), models.WithName(t.Name()))
}

func TestLoad(t *testing.T) {
	t.Run("load", func(t *testing.T) {
		g := newTestGraph(t)

		res, err := Load(strings.NewReader(square), g)
		require.NoError(t, err)
		require.Len(t, res.Nodes, 4)
		require.Equal(t, 5, res.Edges)
		require.Zero(t, res.Skipped)

		require.Equal(t, 4, g.NodeCount())
		require.Equal(t, 5, g.EdgeCount())
		require.True(t, g.IsNeighbor(res.Nodes[1], res.Nodes[3]))
		require.False(t, g.IsNeighbor(res.Nodes[2], res.Nodes[4]))

		p, _ := g.Position(res.Nodes[3])
		require.Equal(t, r2.Vec{X: 90, Y: 90}, p)
		require.NoError(t, g.Validate())
	})

	t.Run("refused edges are skipped", func(t *testing.T) {
		g := newTestGraph(t)

		res, err := Load(strings.NewReader("v 1 1 1\nv 2 2 2\ne 1 2\ne 2 1\ne 1 1\n"), g)
		require.NoError(t, err)
		require.Equal(t, 1, res.Edges)
		require.Equal(t, 2, res.Skipped)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			input   string
			errType string
		}{
			{
				name:    "unknown record",
				input:   "v 1 1 1\nx 1 2\n",
				errType: ErrTypeSyntax,
			},
			{
				name:    "missing coordinate",
				input:   "v 1 1\n",
				errType: ErrTypeSyntax,
			},
			{
				name:    "invalid coordinate",
				input:   "v 1 1 abc\n",
				errType: ErrTypeSyntax,
			},
			{
				name:    "invalid id",
				input:   "v one 1 1\n",
				errType: ErrTypeSyntax,
			},
			{
				name:    "undeclared node",
				input:   "v 1 1 1\ne 1 2\n",
				errType: ErrTypeUnknownNode,
			},
			{
				name:    "duplicate node",
				input:   "v 1 1 1\nv 1 2 2\n",
				errType: ErrTypeDuplicateNode,
			},
			{
				name:    "outside universe",
				input:   "v 1 100 50\n",
				errType: ErrTypeOutOfBounds,
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := Load(strings.NewReader(test.input), newTestGraph(t))
				require.Error(t, err)
				require.Equal(t, test.errType, errors.Type(err))
			})
		}
	})

	t.Run("records before an error stay applied", func(t *testing.T) {
		g := newTestGraph(t)

		res, err := Load(strings.NewReader("v 1 1 1\nv 2 2 2\ne 1 3\n"), g)
		require.Error(t, err)
		require.Len(t, res.Nodes, 2)
		require.Equal(t, 2, g.NodeCount())
		require.Zero(t, g.EdgeCount())
	})
}

func TestSave(t *testing.T) {
	t.Run("save", func(t *testing.T) {
		g := newTestGraph(t)
		a := g.CreateNode(1.5, 2)
		b := g.CreateNode(3, 4.25)
		c := g.CreateNode(5, 6)
		g.CreateEdge(c, a)
		g.CreateEdge(b, a)

		var buf bytes.Buffer
		require.NoError(t, Save(&buf, g))
		require.Equal(t, "v 1 1.5 2\nv 2 3 4.25\nv 3 5 6\ne 1 2\ne 1 3\n", buf.String())
	})

	t.Run("visibility edges are not saved", func(t *testing.T) {
		g := newTestGraph(t)
		_, err := Load(strings.NewReader(square), g)
		require.NoError(t, err)

		geometry.DiscoverFaces(g)
		require.Len(t, geometry.BuildVisibilityGraph(g), 1)

		var buf bytes.Buffer
		require.NoError(t, Save(&buf, g))
		require.Equal(t, 5, strings.Count(buf.String(), "e "))
	})

	t.Run("round trip", func(t *testing.T) {
		g := newTestGraph(t)
		_, err := Load(strings.NewReader(square), g)
		require.NoError(t, err)
		require.True(t, g.DeleteNode(g.Nodes()[1]))

		var buf bytes.Buffer
		require.NoError(t, Save(&buf, g))

		loaded := newTestGraph(t)
		res, err := Load(&buf, loaded)
		require.NoError(t, err)
		require.Len(t, res.Nodes, 3)
		require.Equal(t, 3, res.Edges)

		for i, id := range g.Nodes() {
			want, _ := g.Position(id)
			got, _ := loaded.Position(res.Nodes[i+1])
			require.Equal(t, want, got)
		}
		require.NoError(t, loaded.Validate())
	})
}
