package grid

import (
	"cellgrid/util"
	"github.com/paulmach/orb"
	"testing"
)

type countingGeometry struct {
	Geometry
	calls int
}

func (g *countingGeometry) Intersects(bound orb.Bound) bool {
	g.calls++
	return g.Geometry.Intersects(bound)
}

func TestCells_squareSpanningFourCells(t *testing.T) {
	// Arrange
	geometry := mustGeometry(t, square(0, 0, 2, 2))

	// Act
	cells, err := Cells(geometry, 1, 0)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, []Cell{
		NewCell(0, 0, 1),
		NewCell(0, 1, 1),
		NewCell(1, 0, 1),
		NewCell(1, 1, 1),
	}, collect(cells))
}

func TestCells_geometryWithinOneCell(t *testing.T) {
	// Arrange
	geometry := mustGeometry(t, square(0.2, 0.3, 0.7, 0.9))

	// Act
	cells, err := Cells(geometry, 1, 0)

	// Assert
	util.AssertNil(t, err)
	cellList := collect(cells)
	util.AssertEqual(t, []Cell{NewCell(0, 0, 1)}, cellList)
	util.AssertEqual(t, []orb.Point{{0.5, 0.5}}, collect(Centroids(seqOf(cellList), NoRounding)))
}

func TestCells_lineString(t *testing.T) {
	// Arrange
	geometry := mustGeometry(t, orb.LineString{{0.5, 0.5}, {2.5, 0.5}, {2.5, 1.5}})

	// Act
	cells, err := Cells(geometry, 1, 0)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, []Cell{
		NewCell(0, 0, 1),
		NewCell(1, 0, 1),
		NewCell(2, 0, 1),
		NewCell(2, 1, 1),
	}, collect(cells))
}

func TestCells_touchingCellsAreIncluded(t *testing.T) {
	// Arrange
	geometry := mustGeometry(t, square(-121, 48.875, -120.875, 49))

	// Act
	cells, err := Cells(geometry, 0.125, 0)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, []Cell{
		NewCell(-121, 48.75, 0.125),
		NewCell(-121, 48.875, 0.125),
		NewCell(-120.875, 48.75, 0.125),
		NewCell(-120.875, 48.875, 0.125),
	}, collect(cells))
}

func TestCells_degenerateGeometry(t *testing.T) {
	for _, geometry := range []orb.Geometry{orb.LineString{}, orb.Point{0.5, 0.5}, orb.Polygon{}, orb.MultiPolygon{}} {
		// Act
		cells, err := Cells(mustGeometry(t, geometry), 1, 0)

		// Assert
		util.AssertNil(t, err)
		cellList := collect(cells)
		util.AssertEqual(t, 0, len(cellList))
		util.AssertEqual(t, 0, len(collect(Centroids(seqOf(cellList), 1))))
	}
}

func TestCells_invalidParametersBeforeDegenerateCheck(t *testing.T) {
	// Act
	cells, err := Cells(mustGeometry(t, orb.LineString{}), 1, 1)

	// Assert
	util.AssertNil(t, cells)
	util.AssertTrue(t, IsConfigurationError(err))
}

func TestCells_idempotent(t *testing.T) {
	// Arrange
	geometry := mustGeometry(t, orb.LineString{{40.01, -121.03}, {40.27, -120.71}, {40.55, -120.9}})

	// Act
	first, err := Cells(geometry, 0.1, 0.05)
	util.AssertNil(t, err)
	second, err := Cells(geometry, 0.1, 0.05)
	util.AssertNil(t, err)

	// Assert
	firstCells := collect(first)
	util.AssertTrue(t, len(firstCells) > 0)
	util.AssertEqual(t, firstCells, collect(second))
	util.AssertEqual(t, firstCells, collect(first))
}

func TestFilter_preservesCandidateOrder(t *testing.T) {
	// Arrange
	geometry := mustGeometry(t, square(0, 0, 10, 10))
	candidates := []orb.Point{{5, 5}, {-20, 0}, {1, 1}, {3, 2}}

	// Act
	cells := collect(Filter(geometry, seqOf(candidates), 1))

	// Assert
	util.AssertEqual(t, []Cell{NewCell(5, 5, 1), NewCell(1, 1, 1), NewCell(3, 2, 1)}, cells)
}

func TestFilter_stopsEarly(t *testing.T) {
	// Arrange
	geometry := &countingGeometry{Geometry: mustGeometry(t, square(0, 0, 10, 10))}
	lattice, err := NewLattice(geometry.Bound(), 1, 0)
	util.AssertNil(t, err)

	// Act
	var cells []Cell
	for cell := range Filter(geometry, lattice.Points(), 1) {
		cells = append(cells, cell)
		if len(cells) == 3 {
			break
		}
	}

	// Assert
	util.AssertEqual(t, 100, lattice.Len())
	util.AssertEqual(t, 3, len(cells))
	util.AssertEqual(t, 3, geometry.calls)
}

func TestFilterConcurrent_equalsSequentialResult(t *testing.T) {
	// Arrange
	geometry := mustGeometry(t, orb.LineString{{0.03, 0.07}, {2.91, 1.87}, {1.2, 3.4}})
	lattice, err := NewLattice(geometry.Bound(), 0.1, 0.05)
	util.AssertNil(t, err)
	expected := collect(Filter(geometry, lattice.Points(), lattice.CellSize))

	for _, workers := range []int{0, 1, 2, 3, 7, 1000} {
		// Act
		cells := FilterConcurrent(geometry, lattice, workers)

		// Assert
		util.AssertTrue(t, len(cells) > 0)
		util.AssertEqual(t, expected, cells)
	}
}

func seqOf[T any](items []T) func(func(T) bool) {
	return func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}
