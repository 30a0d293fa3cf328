package grid

import (
	"cellgrid/util"
	"github.com/paulmach/orb"
	"testing"
)

func TestCentroids_withoutRounding(t *testing.T) {
	// Arrange
	cells := []Cell{NewCell(0, 0, 1), NewCell(2, -3, 1), NewCell(0.5, 0.25, 0.5)}

	// Act
	centroids := collect(Centroids(seqOf(cells), NoRounding))

	// Assert
	util.AssertEqual(t, []orb.Point{{0.5, 0.5}, {2.5, -2.5}, {0.75, 0.5}}, centroids)
}

func TestCentroids_keepOrderAndRound(t *testing.T) {
	// Arrange
	cells := []Cell{NewCell(40.05, -121.05, 0.1), NewCell(39.95, -121.05, 0.1)}

	// Act
	centroids := collect(Centroids(seqOf(cells), 1))

	// Assert
	util.AssertEqual(t, []orb.Point{{40.1, -121.0}, {40, -121.0}}, centroids)
}

func TestRound(t *testing.T) {
	util.AssertEqual(t, 0.3, Round(0.333333, 1))
	util.AssertEqual(t, 0.7, Round(0.666667, 1))
	util.AssertEqual(t, 0.3, Round(0.25, 1))
	util.AssertEqual(t, -0.3, Round(-0.25, 1))
	util.AssertEqual(t, 3.0, Round(2.5, 0))
	util.AssertEqual(t, 40.1, Round(40.10000000000001, 1))
	util.AssertEqual(t, 1.23, Round(1.2345, 2))
	util.AssertEqual(t, 1.2345, Round(1.2345, NoRounding))
	util.AssertEqual(t, 1.2345, Round(1.2345, 400))
}
