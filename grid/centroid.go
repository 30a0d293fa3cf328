package grid

import (
	"github.com/paulmach/orb"
	"iter"
	"math"
)

// NoRounding disables the rounding of centerpoints. Every negative number of digits has the same effect.
const NoRounding = -1

// Centroids yields the center of every cell in the order of the cells. When digits is not negative, both coordinates
// are rounded to that many decimal digits (see Round).
func Centroids(cells iter.Seq[Cell], digits int) iter.Seq[orb.Point] {
	return func(yield func(orb.Point) bool) {
		for cell := range cells {
			center := cell.Center()
			if digits >= 0 {
				center = orb.Point{Round(center.X(), digits), Round(center.Y(), digits)}
			}
			if !yield(center) {
				return
			}
		}
	}
}

// Round rounds the value to the given number of decimal digits. Halves are rounded away from zero (like math.Round),
// based on the scaled value, so 0.25 becomes 0.3 and -0.25 becomes -0.3.
func Round(value float64, digits int) float64 {
	if digits < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}

	factor := math.Pow10(digits)
	scaled := value * factor
	if math.IsInf(scaled, 0) || math.IsInf(factor, 0) {
		// The value is already more precise than float64 can express with that many digits
		return value
	}
	return math.Round(scaled) / factor
}
