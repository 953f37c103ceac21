// Package spatial provides a uniform-grid index over placed footprints for
// collision queries during placement.
package spatial

import (
	"math"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
)

// Item is one indexed footprint. Ref carries the caller's record identity
// (the placement planner stores the index into its result sequence).
type Item struct {
	Ref        int
	Position   geo.Point2D
	Radius     float64
	SpacingMul float64
	Category   string
	ProfileID  string
}

type cellKey struct {
	col, row int
}

// Index is a uniform grid over a run's bounds. It is single-writer: only the
// placement planner inserts, during the placement phase.
type Index struct {
	bounds   geo.Bounds
	cellSize float64
	cells    map[cellKey][]Item
	count    int
}

// NewIndex creates an empty index. Cell size is typically a small multiple of
// the largest active footprint radius; values <= 0 fall back to 1.
func NewIndex(bounds geo.Bounds, cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Index{
		bounds:   bounds,
		cellSize: cellSize,
		cells:    make(map[cellKey][]Item),
	}
}

// CellSize returns the grid cell edge length.
func (ix *Index) CellSize() float64 {
	return ix.cellSize
}

// Len returns the number of indexed items.
func (ix *Index) Len() int {
	return ix.count
}

func (ix *Index) keyFor(pt geo.Point2D) cellKey {
	return cellKey{
		col: int(math.Floor((pt.X - ix.bounds.Min.X) / ix.cellSize)),
		row: int(math.Floor((pt.Z - ix.bounds.Min.Z) / ix.cellSize)),
	}
}

// Insert adds an item to the index.
func (ix *Index) Insert(it Item) {
	k := ix.keyFor(it.Position)
	ix.cells[k] = append(ix.cells[k], it)
	ix.count++
}

// Remove deletes the item with the given Ref at the given position. Returns
// true if an item was removed. Used by undo and repair paths.
func (ix *Index) Remove(ref int, pos geo.Point2D) bool {
	k := ix.keyFor(pos)
	bucket := ix.cells[k]
	for i, it := range bucket {
		if it.Ref == ref {
			bucket[i] = bucket[len(bucket)-1]
			ix.cells[k] = bucket[:len(bucket)-1]
			ix.count--
			return true
		}
	}
	return false
}

// QueryRadius returns every item in cells overlapping the query disk. Results
// are candidates, not a guarantee: the caller still performs exact distance
// checks. Only the ring of cells within ceil(radius/cellSize) of the query
// point is visited.
func (ix *Index) QueryRadius(pt geo.Point2D, radius float64) []Item {
	if radius < 0 {
		return nil
	}
	center := ix.keyFor(pt)
	ring := int(math.Ceil(radius / ix.cellSize))

	var out []Item
	for row := center.row - ring; row <= center.row+ring; row++ {
		for col := center.col - ring; col <= center.col+ring; col++ {
			out = append(out, ix.cells[cellKey{col, row}]...)
		}
	}
	return out
}

// ForEach visits every indexed item. Iteration order is unspecified.
func (ix *Index) ForEach(fn func(Item)) {
	for _, bucket := range ix.cells {
		for _, it := range bucket {
			fn(it)
		}
	}
}
