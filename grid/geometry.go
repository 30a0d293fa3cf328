package grid

import (
	"cellgrid/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
	"math"
)

// Geometry is everything the grid engine needs to know about a target geometry. Implementations must not change while
// a grid computation is running, since the engine reads them from every stage (and possibly several goroutines).
type Geometry interface {
	Bound() orb.Bound
	// Intersects returns true if the geometry and the given closed box share at least one point. Touching edges or
	// corners count as intersecting.
	Intersects(bound orb.Bound) bool
}

type OrbGeometry struct {
	geometry orb.Geometry
}

// NewGeometry wraps the given orb geometry. Supported are points, line strings, rings, polygons, bounds, their
// multi-variants and collections of them.
func NewGeometry(geometry orb.Geometry) (*OrbGeometry, error) {
	if geometry == nil {
		return nil, errors.New("Geometry must not be nil")
	}

	err := checkSupported(geometry)
	if err != nil {
		return nil, err
	}

	return &OrbGeometry{geometry: geometry}, nil
}

func checkSupported(geometry orb.Geometry) error {
	switch g := geometry.(type) {
	case orb.Point, orb.MultiPoint, orb.LineString, orb.MultiLineString, orb.Ring, orb.Polygon, orb.MultiPolygon, orb.Bound:
		return nil
	case orb.Collection:
		for _, child := range g {
			if child == nil {
				return errors.New("Geometry collection must not contain nil geometries")
			}
			err := checkSupported(child)
			if err != nil {
				return err
			}
		}
		return nil
	}
	return errors.Errorf("Unknown or unsupported geometry type %T", geometry)
}

func (g *OrbGeometry) Bound() orb.Bound {
	return g.geometry.Bound()
}

func (g *OrbGeometry) Intersects(bound orb.Bound) bool {
	return intersects(g.geometry, bound)
}

func (g *OrbGeometry) Geometry() orb.Geometry {
	return g.geometry
}

// IsDegenerate returns true for bounds no cell can meaningfully intersect: empty bounds, bounds with zero area and
// bounds with non-finite coordinates.
func IsDegenerate(bound orb.Bound) bool {
	for _, v := range []float64{bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y()} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return bound.IsEmpty() || bound.Max.X() <= bound.Min.X() || bound.Max.Y() <= bound.Min.Y()
}

func intersects(geometry orb.Geometry, bound orb.Bound) bool {
	if !geometry.Bound().Intersects(bound) {
		return false
	}

	switch g := geometry.(type) {
	case orb.Point:
		return bound.Contains(g)
	case orb.MultiPoint:
		for _, p := range g {
			if bound.Contains(p) {
				return true
			}
		}
		return false
	case orb.LineString:
		return lineStringIntersects(g, bound)
	case orb.MultiLineString:
		for _, ls := range g {
			if lineStringIntersects(ls, bound) {
				return true
			}
		}
		return false
	case orb.Ring:
		return polygonIntersects(orb.Polygon{g}, bound)
	case orb.Polygon:
		return polygonIntersects(g, bound)
	case orb.MultiPolygon:
		for _, p := range g {
			if polygonIntersects(p, bound) {
				return true
			}
		}
		return false
	case orb.Bound:
		// Both bounds already passed the bound check above.
		return true
	case orb.Collection:
		for _, child := range g {
			if intersects(child, bound) {
				return true
			}
		}
		return false
	}

	util.LogFatalBug("Unsupported geometry type %T passed the geometry check", geometry)
	return false
}

func lineStringIntersects(lineString orb.LineString, bound orb.Bound) bool {
	if len(lineString) == 1 {
		return bound.Contains(lineString[0])
	}

	for i := 0; i < len(lineString)-1; i++ {
		if segmentIntersectsBound(lineString[i], lineString[i+1], bound) {
			return true
		}
	}
	return false
}

func polygonIntersects(polygon orb.Polygon, bound orb.Bound) bool {
	if len(polygon) == 0 {
		return false
	}

	// Any ring touching the box means an intersection. This also covers polygons lying completely within the box.
	for _, ring := range polygon {
		if lineStringIntersects(orb.LineString(ring), bound) {
			return true
		}
	}

	// No ring crosses the box, so the box is either completely inside the polygon (and not in a hole) or completely
	// outside of it. Checking one point of the box is therefore enough.
	return planar.PolygonContains(polygon, bound.Center())
}

// segmentIntersectsBound checks the closed segment a-b against the closed box.
func segmentIntersectsBound(a orb.Point, b orb.Point, bound orb.Bound) bool {
	if bound.Contains(a) || bound.Contains(b) {
		return true
	}

	segmentBound := orb.Bound{Min: a, Max: a}.Extend(b)
	if !segmentBound.Intersects(bound) {
		return false
	}

	lowerRight := orb.Point{bound.Max.X(), bound.Min.Y()}
	upperLeft := orb.Point{bound.Min.X(), bound.Max.Y()}

	return segmentsIntersect(a, b, bound.Min, lowerRight) ||
		segmentsIntersect(a, b, lowerRight, bound.Max) ||
		segmentsIntersect(a, b, bound.Max, upperLeft) ||
		segmentsIntersect(a, b, upperLeft, bound.Min)
}

func segmentsIntersect(p1 orb.Point, p2 orb.Point, q1 orb.Point, q2 orb.Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear cases
	return (o1 == 0 && onSegment(p1, q1, p2)) ||
		(o2 == 0 && onSegment(p1, q2, p2)) ||
		(o3 == 0 && onSegment(q1, p1, q2)) ||
		(o4 == 0 && onSegment(q1, p2, q2))
}

// orientation returns 0 for collinear points, 1 for clockwise and -1 for counter-clockwise order.
func orientation(a orb.Point, b orb.Point, c orb.Point) int {
	v := (b.Y()-a.Y())*(c.X()-b.X()) - (b.X()-a.X())*(c.Y()-b.Y())
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

// onSegment expects p, q and r to be collinear and checks whether q lies on the segment p-r.
func onSegment(p orb.Point, q orb.Point, r orb.Point) bool {
	return q.X() <= math.Max(p.X(), r.X()) && q.X() >= math.Min(p.X(), r.X()) &&
		q.Y() <= math.Max(p.Y(), r.Y()) && q.Y() >= math.Min(p.Y(), r.Y())
}
