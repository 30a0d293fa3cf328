package grid

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"iter"
	"sync"
)

// Filter yields a cell for every candidate lower-left corner whose cell intersects the geometry. The candidate order
// is preserved.
func Filter(geometry Geometry, candidates iter.Seq[orb.Point], cellSize float64) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for lowerLeft := range candidates {
			cell := Cell{LowerLeft: lowerLeft, Size: cellSize}
			if !geometry.Intersects(cell.Bound()) {
				continue
			}

			if sigolo.ShouldLogTrace() {
				sigolo.Tracef("Cell %v (size %v) intersects geometry", lowerLeft, cellSize)
			}

			if !yield(cell) {
				return
			}
		}
	}
}

// Cells enumerates all cells of the given size and offset that intersect the geometry. Degenerate geometries result
// in an empty sequence, invalid parameters in a ConfigurationError.
func Cells(geometry Geometry, cellSize float64, offset float64) (iter.Seq[Cell], error) {
	err := ValidateParameters(cellSize, offset)
	if err != nil {
		return nil, err
	}

	bound := geometry.Bound()
	if IsDegenerate(bound) {
		sigolo.Debugf("Geometry with bound %v is degenerate, no cells will be produced", bound)
		return emptyCells, nil
	}

	lattice, err := NewLattice(bound, cellSize, offset)
	if err != nil {
		return nil, err
	}

	sigolo.Tracef("Check %d candidates (%d columns, %d rows) for intersections", lattice.Len(), lattice.Columns, lattice.Rows)
	return Filter(geometry, lattice.Points(), cellSize), nil
}

func emptyCells(func(Cell) bool) {}

// FilterConcurrent does the same as Filter on all candidates of the lattice but splits the lattice columns into
// groups, each checked by its own goroutine. The result equals the sequential one, including its order.
func FilterConcurrent(geometry Geometry, lattice Lattice, workers int) []Cell {
	if workers < 1 {
		workers = 1
	}
	if workers > lattice.Columns {
		workers = lattice.Columns
	}
	if workers <= 1 {
		return collect(Filter(geometry, lattice.Points(), lattice.CellSize))
	}

	partitionResults := make([][]Cell, workers)
	columnsPerWorker := lattice.Columns / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		fromColumn := i * columnsPerWorker
		toColumn := fromColumn + columnsPerWorker
		if i == workers-1 {
			// Last partition: Make sure it goes til the end of the lattice
			toColumn = lattice.Columns
		}

		go func(partition int, fromColumn int, toColumn int) {
			defer wg.Done()
			sigolo.Tracef("Filter lattice columns from=%d, to=%d", fromColumn, toColumn)
			partitionResults[partition] = collect(Filter(geometry, lattice.columnRange(fromColumn, toColumn), lattice.CellSize))
		}(i, fromColumn, toColumn)
	}
	wg.Wait()

	var cells []Cell
	for _, partitionCells := range partitionResults {
		cells = append(cells, partitionCells...)
	}
	return cells
}

func collect[T any](seq iter.Seq[T]) []T {
	var result []T
	for item := range seq {
		result = append(result, item)
	}
	return result
}
