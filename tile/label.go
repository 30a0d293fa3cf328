package tile

import (
	"github.com/paulmach/orb"
	"strconv"
)

// CenterLabel formats the centerpoint as "lon,lat" with the given number of decimal digits. Negative digits use the
// shortest representation.
func CenterLabel(center orb.Point, digits int) string {
	return strconv.FormatFloat(center.X(), 'f', digits, 64) + "," + strconv.FormatFloat(center.Y(), 'f', digits, 64)
}
