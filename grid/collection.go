package grid

import (
	"github.com/paulmach/orb"
	"iter"
)

// Collection holds the accepted cells of one grid computation. Centroids is either empty or has exactly one entry per
// cell in the same order.
type Collection struct {
	CellSize  float64
	Cells     []Cell
	Centroids []orb.Point
}

func (c *Collection) All() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, cell := range c.Cells {
			if !yield(cell) {
				return
			}
		}
	}
}

func (c *Collection) HasCentroids() bool {
	return len(c.Centroids) > 0
}

func (c *Collection) Bound() orb.Bound {
	if len(c.Cells) == 0 {
		return orb.Bound{}
	}

	bound := c.Cells[0].Bound()
	for _, cell := range c.Cells[1:] {
		bound = bound.Union(cell.Bound())
	}
	return bound
}
