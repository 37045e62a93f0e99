package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis aligned rectangle.
//
// As a cell or universe bound it is half-open: a point belongs to it when
// Min <= p < Max on both axes. As a query region it is closed on both ends.
type Rect struct {
	Min r2.Vec `json:"min" yaml:"min"`
	Max r2.Vec `json:"max" yaml:"max"`
}

// NewRect returns the rectangle spanned by two corners given in any order.
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		Min: r2.Vec{X: math.Min(x1, x2), Y: math.Min(y1, y2)},
		Max: r2.Vec{X: math.Max(x1, x2), Y: math.Max(y1, y2)},
	}
}

// Contains reports whether p lies in the half-open rectangle.
func (r Rect) Contains(p r2.Vec) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Center returns the middle of the rectangle.
func (r Rect) Center() r2.Vec {
	return r2.Vec{
		X: r.Min.X + (r.Max.X-r.Min.X)/2,
		Y: r.Min.Y + (r.Max.Y-r.Min.Y)/2,
	}
}

// Width returns the extent of the rectangle on the x axis.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the extent of the rectangle on the y axis.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Grow returns the rectangle expanded by d on every side.
func (r Rect) Grow(d float64) Rect {
	return Rect{
		Min: r2.Vec{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: r2.Vec{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// holds is the closed containment test used for query regions.
func (r Rect) holds(p r2.Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// covers reports whether every point of the half-open cell c lies in the
// closed region r.
func (r Rect) covers(c Rect) bool {
	return r.Min.X <= c.Min.X && c.Max.X <= r.Max.X &&
		r.Min.Y <= c.Min.Y && c.Max.Y <= r.Max.Y
}

// overlaps reports whether the closed region r and the half-open cell c
// share at least one point.
func (r Rect) overlaps(c Rect) bool {
	return c.Min.X <= r.Max.X && r.Min.X < c.Max.X &&
		c.Min.Y <= r.Max.Y && r.Min.Y < c.Max.Y
}

// quadrant returns the i-th quarter of the rectangle. Bit 0 of i selects the
// upper x half, bit 1 the upper y half.
func (r Rect) quadrant(i int) Rect {
	c := r.Center()
	q := Rect{Min: r.Min, Max: c}
	if i&1 != 0 {
		q.Min.X, q.Max.X = c.X, r.Max.X
	}
	if i&2 != 0 {
		q.Min.Y, q.Max.Y = c.Y, r.Max.Y
	}
	return q
}

// quadrantOf returns the index of the quadrant containing p. It must stay
// consistent with quadrant.
func (r Rect) quadrantOf(p r2.Vec) int {
	c := r.Center()
	i := 0
	if p.X >= c.X {
		i |= 1
	}
	if p.Y >= c.Y {
		i |= 2
	}
	return i
}
