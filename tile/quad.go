package tile

import (
	"cellgrid/grid"
	"cellgrid/util"
	"fmt"
	"github.com/hauke96/sigolo/v2"
	"math"
	"strconv"
)

// QuadBlocks maps the ID of a whole-degree block to the IDs of the 7.5' topo quads within it.
//
// A block is named by the latitude of its southern edge followed by the absolute longitude of its eastern edge, so
// block 46121 contains all quads with 46 <= lat < 47 and -122 < lon <= -121. A quad ID additionally contains the
// arc-minutes of the quads southern and eastern edge: 485212052 is the quad at lat 48°52' and lon -120°52'.
type QuadBlocks map[string][]string

// NewQuadBlocks determines the block and quad IDs of the given cells. The cells are expected to be aligned to the
// 0.125 degree grid (see grid.CoarseAlignedGrid). Quad IDs of a block keep the order of the cells.
func NewQuadBlocks(cells []grid.Cell) QuadBlocks {
	blocks := QuadBlocks{}
	for _, cell := range cells {
		blockId, quadId := QuadId(cell)
		blocks[blockId] = append(blocks[blockId], quadId)
	}

	sigolo.Debugf("Found %d quads in %d blocks", len(cells), len(blocks))
	return blocks
}

// QuadId returns the block ID and the quad ID of the cell.
func QuadId(cell grid.Cell) (string, string) {
	minY := cell.LowerLeft.Y()
	maxX := cell.UpperRight().X()

	degreeY := strconv.Itoa(int(math.Floor(minY)))
	degreeX := strconv.Itoa(int(math.Abs(math.Ceil(maxX))))

	// The absolute value is needed since the modulo of negative numbers would count the minutes from the other side.
	minuteY := arcMinutes(math.Mod(math.Abs(minY), 1))
	minuteX := arcMinutes(math.Mod(math.Abs(maxX), 1))

	return degreeY + degreeX, degreeY + minuteY + degreeX + minuteX
}

func arcMinutes(degreeFraction float64) string {
	return fmt.Sprintf("%02d", int(math.Floor(degreeFraction*60)))
}

// BlockIds returns all block IDs in natural order.
func (q QuadBlocks) BlockIds() []string {
	var ids []string
	for id := range q {
		ids = append(ids, id)
	}
	return util.Sort(ids)
}

func (q QuadBlocks) NumberOfQuads() int {
	count := 0
	for _, quads := range q {
		count += len(quads)
	}
	return count
}
