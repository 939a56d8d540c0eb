package geometry

import (
	"math"
)

// orient returns twice the signed area of the triangle a, b, c.  It is
// positive when c lies to the left of the directed line a->b.
func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// dot returns the dot product of the vectors a->b and a->c
func dot(a, b, c Point) float64 {
	return (b.X-a.X)*(c.X-a.X) + (b.Y-a.Y)*(c.Y-a.Y)
}

// onSegment reports whether p, known to be collinear with a and b, lies
// within the segment a-b
func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// segmentsIntersect reports whether segments a-b and c-d share at least one
// point, touching included
func segmentsIntersect(a, b, c, d Point) bool {

	d1 := orient(c, d, a)
	d2 := orient(c, d, b)
	d3 := orient(a, b, c)
	d4 := orient(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(c, d, a):
		return true
	case d2 == 0 && onSegment(c, d, b):
		return true
	case d3 == 0 && onSegment(a, b, c):
		return true
	case d4 == 0 && onSegment(a, b, d):
		return true
	}

	return false
}

// segmentDist returns the distance from p to the segment a-b
func segmentDist(p, a, b Point) float64 {
	return p.Dist(closestOnSegment(p, a, b))
}

// closestOnSegment returns the point of segment a-b nearest to p
func closestOnSegment(p, a, b Point) Point {

	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy

	if l2 == 0 {
		return a
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))

	return Point{a.X + t*dx, a.Y + t*dy}
}

// IsValid reports whether the polygon is a valid simple ring: at least three
// distinct points, a non zero area and no edge touching or crossing another
// edge other than its neighbours at their shared vertex.  Repeated
// consecutive points are tolerated.
func (p Polygon) IsValid() bool {

	q := p.dedupe()
	n := len(q)

	if n < 3 || q.Area() == 0 {
		return false
	}

	for i := 0; i < n; i++ {
		a, b := q[i], q[(i+1)%n]

		for j := i + 1; j < n; j++ {
			c, d := q[j], q[(j+1)%n]

			switch {
			case j == i+1:
				// b == c, invalid when d folds back onto a-b
				if orient(a, b, d) == 0 && dot(b, a, d) > 0 {
					return false
				}

			case i == 0 && j == n-1:
				// d == a, invalid when b folds back onto c-d
				if orient(c, a, b) == 0 && dot(a, c, b) > 0 {
					return false
				}

			default:
				if segmentsIntersect(a, b, c, d) {
					return false
				}
			}
		}
	}

	return true
}

// MinimumClearance returns the smallest distance by which a vertex of the
// polygon could be moved to make it invalid, being the minimum distance
// between any vertex and a segment not incident to it.  Degenerate polygons
// return +Inf.
func (p Polygon) MinimumClearance() float64 {

	q := p.dedupe()
	n := len(q)
	clearance := math.Inf(1)

	if n < 3 {
		return clearance
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k := (j + 1) % n

			if i == j || i == k {
				continue
			}

			if d := segmentDist(q[i], q[j], q[k]); d < clearance {
				clearance = d
			}
		}
	}

	return clearance
}
