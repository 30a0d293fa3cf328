package tile

import (
	"cellgrid/grid"
	"fmt"
	"math"
)

// ElevationTile returns the name of the one-degree elevation tile covering the cell. Elevation tiles are named by
// their upper (northern) latitude and their lower (western) longitude, e.g. "n49w122".
func ElevationTile(cell grid.Cell) string {
	lat := int(cell.UpperRight().Y())
	lon := int(math.Abs(cell.LowerLeft.X()))
	return fmt.Sprintf("n%dw%d", lat, lon)
}

// ElevationArchive returns the file name of the 1/3 arc-second archive of the elevation tile covering the cell.
func ElevationArchive(cell grid.Cell) string {
	return "USGS_NED_13_" + ElevationTile(cell) + "_IMG.zip"
}

// ElevationArchives returns the archive names of all cells without duplicates and in the order of the cells.
func ElevationArchives(cells []grid.Cell) []string {
	seen := map[string]bool{}
	var archives []string
	for _, cell := range cells {
		archive := ElevationArchive(cell)
		if seen[archive] {
			continue
		}
		seen[archive] = true
		archives = append(archives, archive)
	}
	return archives
}
