package spatial

// DebugInfo describes the current shape of an index.
type DebugInfo struct {
	Name         string `json:"name"`
	Bounds       Rect   `json:"bounds"`
	Fanout       int    `json:"fanout"`
	MaxDepth     int    `json:"max_depth"`
	ItemCount    int    `json:"item_count"`
	CellCount    int    `json:"cell_count"`
	LeafCount    int    `json:"leaf_count"`
	Depth        int    `json:"depth"`
	Subdivisions uint64 `json:"subdivisions"`
	Merges       uint64 `json:"merges"`

	// Occupancy holds the number of items stored at each depth.
	Occupancy []int `json:"occupancy"`
}

// Index maps 2D positions to entity handles. Entities are compared with ==,
// so a handle stored twice is kept twice.
type Index[T comparable] interface {
	// Inserts v at (x, y). Inserting outside the index bounds panics.
	Insert(v T, x, y float64)

	// Removes the entry v stored at exactly (x, y).
	Remove(v T, x, y float64) bool

	// Removes every entry equal to v regardless of its position and returns
	// the number of removed entries.
	Erase(v T) int

	// Moves the entry v stored at (oldX, oldY) to (newX, newY). Behaves like
	// Remove followed by Insert.
	Move(v T, oldX, oldY, newX, newY float64) bool

	// Returns every entry whose position lies in the closed rectangle spanned
	// by the two corners.
	Query(x1, y1, x2, y2 float64) []T

	// Reports whether (x, y) lies in the index bounds.
	Contains(x, y float64) bool

	// Returns the number of stored entries.
	Len() int

	// debug stuff:
	DebugInfo() DebugInfo
}
