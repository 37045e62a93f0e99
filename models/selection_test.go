package models

import (
	"testing"

	"github.com/aukilabs/graphsearch/spatial"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestSelectionPick(t *testing.T) {
	g, n := newSquare(t)
	s := NewSelection(g, 5)
	require.Equal(t, float64(5), s.Range())

	require.Equal(t, []NodeID{n[0]}, s.Pick(14, 6))
	require.Equal(t, []NodeID{n[0]}, s.Pick(15, 15))
	require.Empty(t, s.Pick(50, 50))
}

func TestSelectionInsertErase(t *testing.T) {
	g, n := newSquare(t)
	s := NewSelection(g, 5)

	s.InsertAll([]NodeID{n[2], n[0]})
	require.False(t, s.Insert(NodeID{}))
	require.Equal(t, 2, s.Len())
	require.Equal(t, []NodeID{n[0], n[2]}, s.Nodes())
	require.True(t, s.Contains(n[0]))

	node, _ := g.Node(n[0])
	require.True(t, node.Selected)

	b, ok := s.Bounds()
	require.True(t, ok)
	require.Equal(t, spatial.Rect{Min: r2.Vec{X: 10, Y: 10}, Max: r2.Vec{X: 90, Y: 90}}, b)

	require.True(t, s.Erase(n[0]))
	require.False(t, s.Erase(n[0]))
	node, _ = g.Node(n[0])
	require.False(t, node.Selected)

	s.Clear()
	require.Zero(t, s.Len())
	node, _ = g.Node(n[2])
	require.False(t, node.Selected)

	_, ok = s.Bounds()
	require.False(t, ok)
}

func TestSelectionDropsDeletedNodes(t *testing.T) {
	g, n := newSquare(t)
	s := NewSelection(g, 5)

	s.InsertAll(n[:])
	require.True(t, g.DeleteNode(n[1]))
	require.Equal(t, 3, s.Len())
	require.False(t, s.Contains(n[1]))
}

func TestSelectionMove(t *testing.T) {
	t.Run("move", func(t *testing.T) {
		g, n := newSquare(t)
		s := NewSelection(g, 5)
		s.InsertAll([]NodeID{n[0], n[1]})

		require.True(t, s.Move(5, 5))

		p, _ := g.Position(n[0])
		require.Equal(t, r2.Vec{X: 15, Y: 15}, p)
		p, _ = g.Position(n[1])
		require.Equal(t, r2.Vec{X: 95, Y: 15}, p)
		p, _ = g.Position(n[2])
		require.Equal(t, r2.Vec{X: 90, Y: 90}, p)
		require.NoError(t, g.Validate())
	})

	t.Run("refuses to touch the universe border", func(t *testing.T) {
		g, n := newSquare(t)
		s := NewSelection(g, 5)
		s.InsertAll([]NodeID{n[0], n[1]})

		require.False(t, s.Move(-10, 0))
		require.False(t, s.Move(10, 0))
		require.False(t, s.Move(0, -20))

		p, _ := g.Position(n[0])
		require.Equal(t, r2.Vec{X: 10, Y: 10}, p)
	})

	t.Run("empty selection", func(t *testing.T) {
		g, _ := newSquare(t)
		require.False(t, NewSelection(g, 5).Move(1, 1))
	})
}
