package grid

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"iter"
	"strings"
	"time"
)

// Profile is a named combination of grid parameters tailored to one kind of downstream data.
type Profile struct {
	Name          string  `json:"name"`
	CellSize      float64 `json:"cellSize"`
	Offset        float64 `json:"offset"`
	RoundDigits   int     `json:"roundDigits"`
	WithCentroids bool    `json:"withCentroids"`
}

var (
	// FineOffsetGrid has 0.1 cells whose centers lie on whole tenths (e.g. 40.1), as used by data labeled by the
	// centerpoint of its cell like lightning strike counts.
	FineOffsetGrid = Profile{
		Name:          "fine-offset",
		CellSize:      0.1,
		Offset:        0.05,
		RoundDigits:   1,
		WithCentroids: true,
	}

	// CoarseAlignedGrid has 0.125 (7.5') cells matching the topo quad tiling.
	CoarseAlignedGrid = Profile{
		Name:        "coarse-aligned",
		CellSize:    0.125,
		Offset:      0,
		RoundDigits: NoRounding,
	}

	// OneDegreeGrid has whole-degree cells matching the elevation tile tiling.
	OneDegreeGrid = Profile{
		Name:        "one-degree",
		CellSize:    1,
		Offset:      0,
		RoundDigits: NoRounding,
	}

	Profiles = []Profile{FineOffsetGrid, CoarseAlignedGrid, OneDegreeGrid}
)

func ProfileByName(name string) (Profile, error) {
	for _, profile := range Profiles {
		if strings.EqualFold(profile.Name, strings.TrimSpace(name)) {
			return profile, nil
		}
	}

	var names []string
	for _, profile := range Profiles {
		names = append(names, profile.Name)
	}
	return Profile{}, errors.Errorf("Unknown grid profile '%s', expected one of: %s", name, strings.Join(names, ", "))
}

func (p Profile) Validate() error {
	return ValidateParameters(p.CellSize, p.Offset)
}

// Cells lazily yields all cells of this profile intersecting the geometry.
func (p Profile) Cells(geometry Geometry) (iter.Seq[Cell], error) {
	return Cells(geometry, p.CellSize, p.Offset)
}

// Apply computes all cells of this profile intersecting the geometry and, if the profile wants them, their
// centerpoints.
func (p Profile) Apply(geometry Geometry) (*Collection, error) {
	cells, err := p.Cells(geometry)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to apply grid profile '%s'", p.Name)
	}

	sigolo.Debugf("Apply grid profile %s (cell size %v, offset %v)", p.Name, p.CellSize, p.Offset)
	startTime := time.Now()

	collection := &Collection{
		CellSize: p.CellSize,
		Cells:    collect(cells),
	}
	if p.WithCentroids {
		collection.Centroids = collect(Centroids(collection.All(), p.RoundDigits))
	}

	sigolo.Debugf("Found %d cells in %s", len(collection.Cells), time.Since(startTime))
	return collection, nil
}

// ApplyConcurrent does the same as Apply but checks the candidates with the given number of goroutines.
func (p Profile) ApplyConcurrent(geometry Geometry, workers int) (*Collection, error) {
	err := p.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to apply grid profile '%s'", p.Name)
	}

	collection := &Collection{CellSize: p.CellSize}

	bound := geometry.Bound()
	if IsDegenerate(bound) {
		sigolo.Debugf("Geometry with bound %v is degenerate, no cells will be produced", bound)
		return collection, nil
	}

	lattice, err := NewLattice(bound, p.CellSize, p.Offset)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to apply grid profile '%s'", p.Name)
	}

	sigolo.Debugf("Apply grid profile %s on %d candidates using %d workers", p.Name, lattice.Len(), workers)
	collection.Cells = FilterConcurrent(geometry, lattice, workers)
	if p.WithCentroids {
		collection.Centroids = collect(Centroids(collection.All(), p.RoundDigits))
	}

	return collection, nil
}
