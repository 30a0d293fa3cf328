package grid

import (
	"github.com/paulmach/orb"
	"iter"
	"math"
)

// stepTolerance is the relative amount by which a span may exceed a whole number of cells before an additional
// column/row is added. Without it, spans like 1.1/0.1 = 11.000000000000002 would produce a twelfth candidate.
const stepTolerance = 1e-9

// Lattice describes all candidate lower-left corners covering an extended bounding box. Candidates are addressed by
// their column and row index and computed as origin + index*cellSize, so no error accumulates over long ranges.
type Lattice struct {
	Origin   orb.Point
	CellSize float64
	Columns  int
	Rows     int
}

// NewLattice extends the bound outwards to whole units (floor of the minimum, ceil of the maximum) and then by the
// offset on both sides. The resulting lattice covers [extMin-offset, extMax+offset) on both axes.
func NewLattice(bound orb.Bound, cellSize float64, offset float64) (Lattice, error) {
	err := ValidateParameters(cellSize, offset)
	if err != nil {
		return Lattice{}, err
	}

	minX := math.Floor(bound.Min.X()) - offset
	minY := math.Floor(bound.Min.Y()) - offset
	maxX := math.Ceil(bound.Max.X()) + offset
	maxY := math.Ceil(bound.Max.Y()) + offset

	return Lattice{
		Origin:   orb.Point{minX, minY},
		CellSize: cellSize,
		Columns:  stepCount(minX, maxX, cellSize),
		Rows:     stepCount(minY, maxY, cellSize),
	}, nil
}

// stepCount returns the number of values start + i*step lying in [start, end), treating values within the tolerance
// of end as equal to end.
func stepCount(start float64, end float64, step float64) int {
	steps := (end - start) / step
	if math.IsNaN(steps) || steps <= 0 {
		return 0
	}

	rounded := math.Round(steps)
	if math.Abs(steps-rounded) <= stepTolerance*math.Max(1, rounded) {
		return int(rounded)
	}
	return int(math.Ceil(steps))
}

func (l Lattice) Len() int {
	return l.Columns * l.Rows
}

func (l Lattice) X(column int) float64 {
	return l.Origin.X() + float64(column)*l.CellSize
}

func (l Lattice) Y(row int) float64 {
	return l.Origin.Y() + float64(row)*l.CellSize
}

func (l Lattice) Point(column int, row int) orb.Point {
	return orb.Point{l.X(column), l.Y(row)}
}

// Points yields all candidates with increasing x in the outer and increasing y in the inner loop.
func (l Lattice) Points() iter.Seq[orb.Point] {
	return l.columnRange(0, l.Columns)
}

// columnRange yields the candidates of the columns [fromColumn, toColumn) in the same order as Points.
func (l Lattice) columnRange(fromColumn int, toColumn int) iter.Seq[orb.Point] {
	return func(yield func(orb.Point) bool) {
		for column := fromColumn; column < toColumn; column++ {
			x := l.X(column)
			for row := 0; row < l.Rows; row++ {
				if !yield(orb.Point{x, l.Y(row)}) {
					return
				}
			}
		}
	}
}

// Enumerate returns the lower-left corners of all candidate cells covering the given bound.
func Enumerate(bound orb.Bound, cellSize float64, offset float64) (iter.Seq[orb.Point], error) {
	lattice, err := NewLattice(bound, cellSize, offset)
	if err != nil {
		return nil, err
	}
	return lattice.Points(), nil
}
