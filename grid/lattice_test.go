package grid

import (
	"cellgrid/util"
	"github.com/paulmach/orb"
	"math"
	"testing"
)

func TestEnumerate_wholeUnitBound(t *testing.T) {
	// Arrange
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}

	// Act
	candidates, err := Enumerate(bound, 1, 0)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, []orb.Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, collect(candidates))
}

func TestEnumerate_extendsToWholeUnits(t *testing.T) {
	// Arrange
	bound := orb.Bound{Min: orb.Point{0.2, -0.7}, Max: orb.Point{1.5, 0.3}}

	// Act
	lattice, err := NewLattice(bound, 0.5, 0)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, orb.Point{0, -1}, lattice.Origin)
	util.AssertEqual(t, 4, lattice.Columns) // 0, 0.5, 1, 1.5
	util.AssertEqual(t, 4, lattice.Rows)    // -1, -0.5, 0, 0.5
}

func TestEnumerate_orderIsXOuterYInner(t *testing.T) {
	// Arrange
	bound := orb.Bound{Min: orb.Point{0.5, 0.5}, Max: orb.Point{2.5, 1.5}}

	// Act
	candidates, err := Enumerate(bound, 1, 0)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, []orb.Point{
		{0, 0}, {0, 1},
		{1, 0}, {1, 1},
		{2, 0}, {2, 1},
	}, collect(candidates))
}

func TestEnumerate_withOffset(t *testing.T) {
	// Arrange
	bound := orb.Bound{Min: orb.Point{40.0, -121.0}, Max: orb.Point{40.3, -120.7}}

	// Act
	lattice, err := NewLattice(bound, 0.1, 0.05)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 11, lattice.Columns)
	util.AssertEqual(t, 11, lattice.Rows)
	util.AssertApprox(t, 39.95, lattice.X(0), 1e-9)
	util.AssertApprox(t, 40.05, lattice.X(1), 1e-9)
	util.AssertApprox(t, 40.15, lattice.X(2), 1e-9)
	util.AssertApprox(t, 40.95, lattice.X(10), 1e-9)
	util.AssertApprox(t, -121.05, lattice.Y(0), 1e-9)
	util.AssertApprox(t, -120.05, lattice.Y(10), 1e-9)
}

func TestEnumerate_coversExtendedBound(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-3.7, 12.2}, Max: orb.Point{4.1, 13.9}}

	parameters := []struct {
		cellSize float64
		offset   float64
	}{
		{1, 0},
		{0.5, 0.25},
		{0.1, 0.05},
		{0.125, 0},
		{0.3, 0.2},
		{0.7, 0.69},
		{3, 1},
	}

	for _, p := range parameters {
		// Act
		lattice, err := NewLattice(bound, p.cellSize, p.offset)

		// Assert
		util.AssertNil(t, err)

		var xs []float64
		for point := range lattice.Points() {
			if len(xs) == 0 || xs[len(xs)-1] != point.X() {
				xs = append(xs, point.X())
			}
		}

		util.AssertEqual(t, lattice.Columns, len(xs))
		util.AssertTrue(t, xs[0] <= math.Floor(bound.Min.X())-p.offset)
		util.AssertTrue(t, xs[len(xs)-1]+p.cellSize >= math.Ceil(bound.Max.X())+p.offset-1e-9)
		for i := 1; i < len(xs); i++ {
			util.AssertApprox(t, p.cellSize, xs[i]-xs[i-1], 1e-9)
		}
	}
}

func TestEnumerate_noDriftOnLongRanges(t *testing.T) {
	// Arrange
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1000, 1}}

	// Act
	lattice, err := NewLattice(bound, 0.1, 0)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 10000, lattice.Columns)
	util.AssertEqual(t, 10, lattice.Rows)
	util.AssertApprox(t, 999.9, lattice.X(9999), 1e-9)
}

func TestEnumerate_invalidParameters(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}

	_, err := Enumerate(bound, 0, 0)
	util.AssertError(t, "Invalid grid configuration: cell size must be a finite number greater than 0 but was 0", err)
	util.AssertTrue(t, IsConfigurationError(err))

	_, err = Enumerate(bound, -1, 0)
	util.AssertTrue(t, IsConfigurationError(err))

	_, err = Enumerate(bound, math.NaN(), 0)
	util.AssertTrue(t, IsConfigurationError(err))

	_, err = Enumerate(bound, 0.1, 0.1)
	util.AssertError(t, "Invalid grid configuration: offset must be within [0, 0.1) but was 0.1", err)
	util.AssertTrue(t, IsConfigurationError(err))

	_, err = Enumerate(bound, 0.1, -0.05)
	util.AssertTrue(t, IsConfigurationError(err))
}

func TestEnumerate_isRestartable(t *testing.T) {
	// Arrange
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}
	candidates, err := Enumerate(bound, 0.25, 0)
	util.AssertNil(t, err)

	// Act
	first := collect(candidates)
	second := collect(candidates)

	// Assert
	util.AssertEqual(t, 16, len(first))
	util.AssertEqual(t, first, second)
}

func TestStepCount(t *testing.T) {
	util.AssertEqual(t, 11, stepCount(39.95, 41.05, 0.1))
	util.AssertEqual(t, 8, stepCount(-121, -120, 0.125))
	util.AssertEqual(t, 3, stepCount(0, 1, 0.4))
	util.AssertEqual(t, 0, stepCount(1, 1, 0.1))
	util.AssertEqual(t, 0, stepCount(2, 1, 0.1))
}
