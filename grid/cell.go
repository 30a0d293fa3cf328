package grid

import (
	"github.com/paulmach/orb"
)

// Cell is an axis-aligned square identified by its lower-left corner.
type Cell struct {
	LowerLeft orb.Point
	Size      float64
}

func NewCell(x float64, y float64, size float64) Cell {
	return Cell{LowerLeft: orb.Point{x, y}, Size: size}
}

func (c Cell) UpperRight() orb.Point {
	return orb.Point{c.LowerLeft.X() + c.Size, c.LowerLeft.Y() + c.Size}
}

func (c Cell) Bound() orb.Bound {
	return orb.Bound{Min: c.LowerLeft, Max: c.UpperRight()}
}

func (c Cell) Center() orb.Point {
	halfSize := c.Size / 2
	return orb.Point{c.LowerLeft.X() + halfSize, c.LowerLeft.Y() + halfSize}
}

func (c Cell) ToPolygon() orb.Polygon {
	lowerLeft := c.LowerLeft
	upperRight := c.UpperRight()
	return orb.Polygon{
		orb.Ring{
			lowerLeft,
			orb.Point{upperRight.X(), lowerLeft.Y()},
			upperRight,
			orb.Point{lowerLeft.X(), upperRight.Y()},
			lowerLeft,
		},
	}
}
