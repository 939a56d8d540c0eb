package reconcile

import (
	"github.com/swdee/go-pageseg/geometry"
)

// Relation is the spatial relation of an existing region to a candidate
type Relation int

const (
	// Disjoint regions share no interior
	Disjoint Relation = iota
	// Overlapping regions share part of their interior
	Overlapping
	// Crossing regions pass through each other, so at least one of them is
	// cut into separate pieces by the other
	Crossing
	// Subsumed existing regions lie within, or mostly within, the candidate
	Subsumed
)

// DefaultOverlapThreshold is the covered fraction of an existing region's
// area above which it is subsumed by a candidate
const DefaultOverlapThreshold = 0.8

// almostEqualTolerance is the vertex distance in pixels within which two
// outlines are considered identical
const almostEqualTolerance = 0.5

func (r Relation) String() string {

	switch r {
	case Disjoint:
		return "disjoint"
	case Overlapping:
		return "overlapping"
	case Crossing:
		return "crossing"
	case Subsumed:
		return "subsumed"
	}

	return "unknown"
}

// Classify returns the relation of the existing region outline to the
// candidate outline, where scale is the distance in pixels the candidate is
// grown by when testing containment
func Classify(existing, candidate geometry.Polygon, scale float64) Relation {
	return classify(existing, candidate, scale, DefaultOverlapThreshold)
}

func classify(existing, candidate geometry.Polygon, scale, threshold float64) Relation {

	if existing.Empty() || candidate.Empty() {
		return Disjoint
	}

	if geometry.Within(existing, candidate, 0) {
		return Subsumed
	}

	if scale > 0 {
		if grown := geometry.Buffer(candidate, scale); len(grown) == 1 &&
			geometry.Within(existing, grown[0], 0) {
			return Subsumed
		}
	}

	shared := geometry.Intersection(existing, candidate)

	if len(shared) == 0 {
		return Disjoint
	}

	if geometry.AlmostEqual(existing, candidate, almostEqualTolerance) ||
		geometry.TotalArea(shared) > threshold*existing.Area() {
		return Subsumed
	}

	if len(geometry.Difference(existing, candidate)) > 1 ||
		len(geometry.Difference(candidate, existing)) > 1 {
		return Crossing
	}

	return Overlapping
}
