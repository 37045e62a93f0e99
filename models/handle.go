package models

import "fmt"

type handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the handle is the zero value, which never refers to
// a live entity.
func (h handle) IsZero() bool {
	return h.gen == 0
}

func (h handle) String() string {
	return fmt.Sprintf("%d.%d", h.index, h.gen)
}

// NodeID is a generation checked handle to a node owned by a Graph.
type NodeID struct{ handle }

func (id NodeID) String() string {
	return "n" + id.handle.String()
}

// EdgeID is a generation checked handle to an edge owned by a Graph.
type EdgeID struct{ handle }

func (id EdgeID) String() string {
	return "e" + id.handle.String()
}

// FaceID is a generation checked handle to a face owned by a Graph.
type FaceID struct{ handle }

func (id FaceID) String() string {
	return "f" + id.handle.String()
}

// An arena of entities addressed by handles. Released slots are reused in
// priority, and reusing a slot bumps its generation so that handles to the
// previous occupant resolve to nothing.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

type slot[T any] struct {
	gen  uint32
	item *T
}

func (a *arena[T]) alloc(v *T) handle {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}

	s := &a.slots[index]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.item = v
	a.live++

	return handle{index: index, gen: s.gen}
}

func (a *arena[T]) get(h handle) *T {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return nil
	}

	s := a.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return s.item
}

func (a *arena[T]) release(h handle) bool {
	if a.get(h) == nil {
		return false
	}

	a.slots[h.index].item = nil
	a.free = append(a.free, h.index)
	a.live--
	return true
}

// each calls fn for every live entity in slot order.
func (a *arena[T]) each(fn func(h handle, v *T)) {
	for i, s := range a.slots {
		if s.item != nil {
			fn(handle{index: uint32(i), gen: s.gen}, s.item)
		}
	}
}

func (a *arena[T]) len() int {
	return a.live
}
