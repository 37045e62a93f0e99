package spatial

import (
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// Quadtree Spatial Index
//
// A point quadtree implementing the Index interface. The particularities are:
//   - a leaf holds up to fanout items. Inserting into a full leaf that is above
//     the maximum depth splits it in four equal quadrants and redistributes its
//     items.
//   - every cell keeps the item count of its subtree. When a removal brings a
//     subtree to fanout/2 items or less, the subtree collapses back into a leaf.
//   - cells are half-open, so a point on a split line belongs to the upper
//     quadrant.

var _ Index[int] = (*QuadTree[int])(nil)

type item[T comparable] struct {
	value T
	pos   r2.Vec
}

type cell[T comparable] struct {
	bounds   Rect
	depth    int
	count    int
	items    []item[T]
	children *[4]*cell[T]
}

// QuadTree is a generic point quadtree. It is not safe for concurrent use.
type QuadTree[T comparable] struct {
	name     string
	fanout   int
	maxDepth int
	root     *cell[T]

	subdivisions uint64
	merges       uint64
	metrics      indexMetrics
}

// NewQuadTree creates an empty quadtree covering bounds.
func NewQuadTree[T comparable](bounds Rect, opts ...Option) *QuadTree[T] {
	s := settings{
		name:   "default",
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.config.Fanout <= 0 {
		s.config.Fanout = DefaultFanout
	}
	if s.config.MaxDepth <= 0 {
		s.config.MaxDepth = DefaultMaxDepth
	}

	return &QuadTree[T]{
		name:     s.name,
		fanout:   s.config.Fanout,
		maxDepth: s.config.MaxDepth,
		root:     &cell[T]{bounds: bounds},
		metrics:  newIndexMetrics(s.name),
	}
}

// Name returns the index name.
func (q *QuadTree[T]) Name() string {
	return q.name
}

// Bounds returns the universe covered by the index.
func (q *QuadTree[T]) Bounds() Rect {
	return q.root.bounds
}

func (q *QuadTree[T]) Contains(x, y float64) bool {
	return q.root.bounds.Contains(r2.Vec{X: x, Y: y})
}

func (q *QuadTree[T]) Len() int {
	return q.root.count
}

func (q *QuadTree[T]) Insert(v T, x, y float64) {
	p := r2.Vec{X: x, Y: y}
	if !q.root.bounds.Contains(p) {
		panic(q.outOfBounds(p))
	}

	q.root.insert(q, item[T]{value: v, pos: p})
	q.metrics.instrumentItems(1)
}

func (q *QuadTree[T]) Remove(v T, x, y float64) bool {
	p := r2.Vec{X: x, Y: y}
	if !q.root.bounds.Contains(p) {
		return false
	}

	if !q.root.remove(q, v, p) {
		return false
	}
	q.metrics.instrumentItems(-1)
	return true
}

func (q *QuadTree[T]) Erase(v T) int {
	n := q.root.erase(q, v)
	q.metrics.instrumentItems(-n)
	return n
}

func (q *QuadTree[T]) Move(v T, oldX, oldY, newX, newY float64) bool {
	from := r2.Vec{X: oldX, Y: oldY}
	to := r2.Vec{X: newX, Y: newY}
	if !q.root.bounds.Contains(to) {
		panic(q.outOfBounds(to))
	}
	if !q.root.bounds.Contains(from) {
		return false
	}

	leaf := q.root.leafOf(from)
	i := leaf.indexOf(v, from)
	if i < 0 {
		return false
	}

	// Staying in the same leaf does not change any count.
	if leaf.bounds.Contains(to) {
		leaf.items[i].pos = to
		return true
	}

	q.root.remove(q, v, from)
	q.root.insert(q, item[T]{value: v, pos: to})
	return true
}

func (q *QuadTree[T]) Query(x1, y1, x2, y2 float64) []T {
	return q.root.query(NewRect(x1, y1, x2, y2), nil)
}

// Items returns every stored entity.
func (q *QuadTree[T]) Items() []T {
	return q.root.appendAll(make([]T, 0, q.root.count))
}

// Cells returns the number of cells, leaves included.
func (q *QuadTree[T]) Cells() int {
	n := 0
	q.root.walk(func(*cell[T]) { n++ })
	return n
}

// Depth returns the depth of the deepest cell.
func (q *QuadTree[T]) Depth() int {
	depth := 0
	q.root.walk(func(c *cell[T]) {
		depth = max(depth, c.depth)
	})
	return depth
}

// Clear removes every item and collapses the tree into a single leaf.
func (q *QuadTree[T]) Clear() {
	q.metrics.instrumentItems(-q.root.count)
	q.root = &cell[T]{bounds: q.root.bounds}
}

func (q *QuadTree[T]) DebugInfo() DebugInfo {
	info := DebugInfo{
		Name:         q.name,
		Bounds:       q.root.bounds,
		Fanout:       q.fanout,
		MaxDepth:     q.maxDepth,
		ItemCount:    q.root.count,
		Subdivisions: q.subdivisions,
		Merges:       q.merges,
	}

	q.root.walk(func(c *cell[T]) {
		info.CellCount++
		info.Depth = max(info.Depth, c.depth)
		if c.children != nil {
			return
		}

		info.LeafCount++
		for len(info.Occupancy) <= c.depth {
			info.Occupancy = append(info.Occupancy, 0)
		}
		info.Occupancy[c.depth] += len(c.items)
	})
	return info
}

func (q *QuadTree[T]) outOfBounds(p r2.Vec) error {
	return errors.New("point is outside the index bounds").
		WithType(ErrTypeOutOfBounds).
		WithTag("index", q.name).
		WithTag("x", p.X).
		WithTag("y", p.Y).
		WithTag("bounds", q.root.bounds)
}

func (c *cell[T]) insert(q *QuadTree[T], it item[T]) {
	c.count++

	if c.children == nil {
		if c.depth >= q.maxDepth || len(c.items) < q.fanout {
			c.items = append(c.items, it)
			return
		}
		c.subdivide(q)
	}

	c.children[c.bounds.quadrantOf(it.pos)].insert(q, it)
}

func (c *cell[T]) subdivide(q *QuadTree[T]) {
	var children [4]*cell[T]
	for i := range children {
		children[i] = &cell[T]{
			bounds: c.bounds.quadrant(i),
			depth:  c.depth + 1,
		}
	}

	for _, it := range c.items {
		children[c.bounds.quadrantOf(it.pos)].insert(q, it)
	}

	c.items = nil
	c.children = &children

	q.subdivisions++
	q.metrics.instrumentSubdivide()
}

// merge collapses the subtree into c.
func (c *cell[T]) merge(q *QuadTree[T]) {
	items := make([]item[T], 0, c.count)
	for _, child := range c.children {
		items = child.appendItems(items)
	}

	c.items = items
	c.children = nil

	q.merges++
	q.metrics.instrumentMerge()
}

func (c *cell[T]) remove(q *QuadTree[T], v T, p r2.Vec) bool {
	if c.children == nil {
		i := c.indexOf(v, p)
		if i < 0 {
			return false
		}
		c.items = slices.Delete(c.items, i, i+1)
		c.count--
		return true
	}

	if !c.children[c.bounds.quadrantOf(p)].remove(q, v, p) {
		return false
	}

	c.count--
	if c.count <= q.fanout/2 {
		c.merge(q)
	}
	return true
}

func (c *cell[T]) erase(q *QuadTree[T], v T) int {
	if c.children == nil {
		n := len(c.items)
		c.items = slices.DeleteFunc(c.items, func(it item[T]) bool {
			return it.value == v
		})
		n -= len(c.items)
		c.count -= n
		return n
	}

	n := 0
	for _, child := range c.children {
		n += child.erase(q, v)
	}

	if n > 0 {
		c.count -= n
		if c.count <= q.fanout/2 {
			c.merge(q)
		}
	}
	return n
}

func (c *cell[T]) leafOf(p r2.Vec) *cell[T] {
	for c.children != nil {
		c = c.children[c.bounds.quadrantOf(p)]
	}
	return c
}

func (c *cell[T]) indexOf(v T, p r2.Vec) int {
	for i, it := range c.items {
		if it.value == v && it.pos == p {
			return i
		}
	}
	return -1
}

func (c *cell[T]) query(r Rect, out []T) []T {
	if c.count == 0 || !r.overlaps(c.bounds) {
		return out
	}

	if r.covers(c.bounds) {
		return c.appendAll(out)
	}

	if c.children == nil {
		for _, it := range c.items {
			if r.holds(it.pos) {
				out = append(out, it.value)
			}
		}
		return out
	}

	for _, child := range c.children {
		out = child.query(r, out)
	}
	return out
}

func (c *cell[T]) appendAll(out []T) []T {
	if c.children == nil {
		for _, it := range c.items {
			out = append(out, it.value)
		}
		return out
	}

	for _, child := range c.children {
		out = child.appendAll(out)
	}
	return out
}

func (c *cell[T]) appendItems(out []item[T]) []item[T] {
	if c.children == nil {
		return append(out, c.items...)
	}

	for _, child := range c.children {
		out = child.appendItems(out)
	}
	return out
}

func (c *cell[T]) walk(fn func(*cell[T])) {
	fn(c)
	if c.children == nil {
		return
	}
	for _, child := range c.children {
		child.walk(fn)
	}
}
