package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection in a bounded,
// origin-centered world. Objects are inserted by position and index, then nearby
// objects can be queried via a 3x3 neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding objects so that all potential collisions are found within
// the 3x3 neighborhood. Positions outside the covered square are clamped
// into the border cells, which keeps that guarantee for out-of-bounds items.
type SpatialGrid struct {
	halfExtent  float64
	invCellSize float64 // 1 / cellSize
	cols        int
	cells       [][]int // cell -> item indices, reused between frames
}

// NewSpatialGrid creates a grid covering the square [-halfExtent, halfExtent]².
func NewSpatialGrid(halfExtent, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	if halfExtent < 0 {
		halfExtent = 0
	}
	cols := int(math.Ceil(2 * halfExtent / cellSize))
	if cols < 1 {
		cols = 1
	}
	return &SpatialGrid{
		halfExtent:  halfExtent,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		cells:       make([][]int, cols*cols),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item (identified by index) at the given world position.
func (g *SpatialGrid) Insert(p Vec2, index int) {
	col, row := g.posToCell(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood around p.
// Items are visited cell by cell, not in insertion order.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(p Vec2, fn func(index int) bool) {
	col, row := g.posToCell(p)

	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.cols {
			continue
		}
		rowOffset := r * g.cols
		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.cols {
				continue
			}
			for _, itemIdx := range g.cells[rowOffset+c] {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts world coordinates to grid cell coordinates, clamped to the grid.
func (g *SpatialGrid) posToCell(p Vec2) (col, row int) {
	col = clampCell(int(math.Floor((p.X+g.halfExtent)*g.invCellSize)), g.cols)
	row = clampCell(int(math.Floor((p.Y+g.halfExtent)*g.invCellSize)), g.cols)
	return col, row
}

func clampCell(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
