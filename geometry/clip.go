package geometry

import (
	"errors"
	"math"
	"sort"

	clipper "github.com/ctessum/go.clipper"
)

// precision is the number of integer grid units per pixel used when handing
// coordinates to Clipper
const precision = 1000.0

// minPieceArea is the area in square pixels below which clipping output is
// treated as rounding noise and discarded
const minPieceArea = 1e-6

var (
	// ErrInvalidPolygon is returned when a polygon cannot be repaired into a
	// valid simple ring
	ErrInvalidPolygon = errors.New("invalid polygon")
	// ErrEmptyClip is returned when a polygon has no area inside its parent
	ErrEmptyClip = errors.New("polygon lies outside of parent")
	// ErrDisconnected is returned when joining polygons does not produce a
	// single connected outline
	ErrDisconnected = errors.New("polygons could not be joined")
)

// toPath converts the polygon to a Clipper path on the integer grid,
// oriented positively so NonZero filling is consistent across operands
func toPath(p Polygon) clipper.Path {

	p = p.Positive()
	path := make(clipper.Path, 0, len(p))

	for _, pt := range p {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(math.Round(pt.X * precision)),
			Y: clipper.CInt(math.Round(pt.Y * precision)),
		})
	}

	return path
}

// fromPath converts a Clipper path back to pixel coordinates
func fromPath(path clipper.Path) Polygon {

	p := make(Polygon, 0, len(path))

	for _, pt := range path {
		p = append(p, Point{float64(pt.X) / precision, float64(pt.Y) / precision})
	}

	return p
}

// outers returns the outer rings of a Clipper solution ordered by descending
// area.  Holes, which Clipper orients negatively, and noise slivers are
// dropped since layout outlines have no interior rings.
func outers(solution clipper.Paths) []Polygon {

	var out []Polygon

	for _, path := range solution {
		p := fromPath(path)

		if p.SignedArea() <= minPieceArea {
			continue
		}

		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Area() > out[j].Area()
	})

	return out
}

// execute runs a boolean operation between the subject and clip polygons
func execute(op clipper.ClipType, subject, clip []Polygon) []Polygon {

	c := clipper.NewClipper(clipper.IoStrictlySimple)

	for _, p := range subject {
		if !p.Empty() {
			c.AddPath(toPath(p), clipper.PtSubject, true)
		}
	}

	for _, p := range clip {
		if !p.Empty() {
			c.AddPath(toPath(p), clipper.PtClip, true)
		}
	}

	solution, ok := c.Execute1(op, clipper.PftNonZero, clipper.PftNonZero)

	if !ok {
		return nil
	}

	return outers(solution)
}

// Intersection returns the pieces of the area shared by a and b
func Intersection(a, b Polygon) []Polygon {
	return execute(clipper.CtIntersection, []Polygon{a}, []Polygon{b})
}

// Difference returns the pieces of a not covered by b
func Difference(a, b Polygon) []Polygon {
	return execute(clipper.CtDifference, []Polygon{a}, []Polygon{b})
}

// Union returns the outer outlines of the combined area of all polygons,
// which is a single polygon when they form one connected region
func Union(polys ...Polygon) []Polygon {
	return execute(clipper.CtUnion, polys, nil)
}

// Buffer returns the polygon grown outwards by distance pixels with round
// joins, or shrunk for a negative distance
func Buffer(p Polygon, distance float64) []Polygon {
	return offset(p, distance, clipper.JtRound)
}

// offset grows the polygon by distance pixels using the given join type
func offset(p Polygon, distance float64, join clipper.JoinType) []Polygon {

	if p.Empty() {
		return nil
	}

	co := clipper.NewClipperOffset()
	co.AddPath(toPath(p), join, clipper.EtClosedPolygon)

	return outers(co.Execute(distance * precision))
}

// TotalArea returns the summed area of the pieces
func TotalArea(pieces []Polygon) float64 {

	var sum float64

	for _, p := range pieces {
		sum += p.Area()
	}

	return sum
}

// Within reports whether a lies inside b, allowing a to extend past the
// boundary of b by up to tolerance pixels
func Within(a, b Polygon, tolerance float64) bool {

	if a.Empty() || b.Empty() {
		return false
	}

	// grow the container with mitred corners so the tolerance holds at
	// vertices as well as along edges
	grown := []Polygon{b}

	if tolerance > 0 {
		grown = offset(b, tolerance, clipper.JtMiter)
	}

	return TotalArea(execute(clipper.CtDifference, []Polygon{a}, grown)) <= minPieceArea
}

// Intersects reports whether the interiors of a and b overlap.  Polygons
// touching only along their boundary do not intersect.
func Intersects(a, b Polygon) bool {
	return len(Intersection(a, b)) > 0
}

// AlmostEqual reports whether a and b have the same vertices to within
// tolerance pixels, regardless of start vertex and orientation
func AlmostEqual(a, b Polygon, tolerance float64) bool {

	a = Simplify(a.Positive(), 0)
	b = Simplify(b.Positive(), 0)

	if len(a) != len(b) || len(a) == 0 {
		return false
	}

	for shift := range b {
		match := true

		for i := range a {
			if a[i].Dist(b[(i+shift)%len(b)]) > tolerance {
				match = false
				break
			}
		}

		if match {
			return true
		}
	}

	return false
}

// ClipToParent returns the part of child that lies within parent.  Both are
// repaired with MakeValid first.  A child already inside the parent is
// returned as is.  When the intersection falls apart into several pieces
// that cannot be unioned into one, their convex hull is used instead.  Low
// clearance results are rounded to integer coordinates and repaired again,
// so the output is always a valid polygon.  The output lies inside parent
// except where the convex hull of split pieces bridges a concave notch.
func ClipToParent(child, parent Polygon) (Polygon, error) {

	child = MakeValid(child)

	if !child.IsValid() {
		return nil, ErrInvalidPolygon
	}

	parent = MakeValid(parent)

	if !parent.IsValid() {
		return nil, ErrInvalidPolygon
	}

	if Within(child, parent, 0) {
		return child, nil
	}

	pieces := Intersection(child, parent)

	if len(pieces) == 0 {
		return nil, ErrEmptyClip
	}

	if len(pieces) > 1 {
		pieces = Union(pieces...)
	}

	var result Polygon

	if len(pieces) > 1 {
		result = ConvexHull(pieces...)
	} else {
		result = pieces[0]
	}

	if result.MinimumClearance() < 1.0 {
		inside := Within(result, parent, 0)
		result = MakeValid(result.Round())

		// rounding may push vertices up to half a pixel past the parent
		if inside && result.IsValid() && !Within(result, parent, 0) {
			pieces = Union(Intersection(result, parent)...)

			if len(pieces) == 0 {
				return nil, ErrEmptyClip
			}

			result = pieces[0]
		}
	}

	if !result.IsValid() {
		return nil, ErrInvalidPolygon
	}

	if result.Area() == 0 {
		return nil, ErrEmptyClip
	}

	return result, nil
}
