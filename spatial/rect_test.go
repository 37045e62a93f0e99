package spatial

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewRectNormalizesCorners(t *testing.T) {
	r := NewRect(10, -2, -4, 8)
	require.Equal(t, r2.Vec{X: -4, Y: -2}, r.Min)
	require.Equal(t, r2.Vec{X: 10, Y: 8}, r.Max)
	require.Equal(t, 14.0, r.Width())
	require.Equal(t, 10.0, r.Height())
	require.Equal(t, r2.Vec{X: 3, Y: 3}, r.Center())
}

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	require.True(t, r.Contains(r2.Vec{X: 0, Y: 0}))
	require.True(t, r.Contains(r2.Vec{X: 9.999, Y: 5}))
	require.False(t, r.Contains(r2.Vec{X: 10, Y: 5}))
	require.False(t, r.Contains(r2.Vec{X: 5, Y: 10}))
	require.False(t, r.Contains(r2.Vec{X: -0.001, Y: 5}))
}

func TestRectHoldsIsClosed(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	require.True(t, r.holds(r2.Vec{X: 10, Y: 10}))
	require.True(t, r.holds(r2.Vec{X: 0, Y: 0}))
	require.False(t, r.holds(r2.Vec{X: 10.001, Y: 0}))
}

func TestRectQuadrants(t *testing.T) {
	r := NewRect(0, 0, 8, 4)

	for i := 0; i < 4; i++ {
		q := r.quadrant(i)
		require.Equal(t, 4.0, q.Width())
		require.Equal(t, 2.0, q.Height())
		require.Equal(t, i, r.quadrantOf(q.Center()))
		require.Equal(t, i, r.quadrantOf(q.Min))
	}

	// The split lines belong to the upper quadrants.
	require.Equal(t, 3, r.quadrantOf(r2.Vec{X: 4, Y: 2}))
	require.Equal(t, 1, r.quadrantOf(r2.Vec{X: 4, Y: 0}))
	require.Equal(t, 2, r.quadrantOf(r2.Vec{X: 0, Y: 2}))
}

func TestRectCoversAndOverlaps(t *testing.T) {
	cell := NewRect(0, 0, 4, 4)

	require.True(t, NewRect(0, 0, 4, 4).covers(cell))
	require.False(t, NewRect(0, 0, 3.9, 4).covers(cell))

	require.True(t, NewRect(4, 4, 6, 6).overlaps(NewRect(0, 0, 4.5, 4.5)))
	require.False(t, NewRect(4, 0, 6, 4).overlaps(cell))
	require.True(t, NewRect(-2, -2, 0, 0).overlaps(cell))
}

func TestRectGrow(t *testing.T) {
	r := NewRect(0, 0, 1, 1).Grow(2)
	require.Equal(t, NewRect(-2, -2, 3, 3), r)
}
