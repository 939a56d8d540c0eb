// Package geometry implements the polygon engine used to repair, clip,
// combine and compare layout region outlines.  Polygons are simple closed
// rings stored without the closing vertex repeated.  Boolean operations are
// delegated to the Clipper library on a fixed precision integer grid.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a 2D coordinate in pixel space, X to the right and Y downwards
type Point struct {
	X, Y float64
}

// Sub returns the vector p - q
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Dist returns the euclidean distance between p and q
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Polygon is a simple closed ring of points.  The first point is not repeated
// at the end.
type Polygon []Point

// Rect returns the axis aligned rectangle polygon spanning x0,y0 to x1,y1
func Rect(x0, y0, x1, y1 float64) Polygon {
	return Polygon{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// PageFrame returns the canvas polygon of a page image of the given size.
// It is used as the clipping parent for top level regions when the page
// has no Border.
func PageFrame(width, height int) Polygon {
	return Rect(0, 0, float64(width), float64(height))
}

// Clone returns a copy of the polygon
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Empty reports whether the polygon has too few points to enclose an area
func (p Polygon) Empty() bool {
	return len(p) < 3
}

// SignedArea returns the shoelace area of the ring, positive for counter
// clockwise orientation in a Y-up coordinate system
func (p Polygon) SignedArea() float64 {

	if len(p) < 3 {
		return 0
	}

	var sum float64
	j := len(p) - 1

	for i := range p {
		sum += p[j].X*p[i].Y - p[i].X*p[j].Y
		j = i
	}

	return sum / 2
}

// Area returns the absolute area enclosed by the ring.  For self intersecting
// rings this is the net shoelace area, which is what repair heuristics
// compare against.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Perimeter returns the length of the closed ring
func (p Polygon) Perimeter() float64 {

	if len(p) < 2 {
		return 0
	}

	var sum float64
	j := len(p) - 1

	for i := range p {
		sum += p[j].Dist(p[i])
		j = i
	}

	return sum
}

// Bounds returns the minimum and maximum corners of the bounding box
func (p Polygon) Bounds() (min, max Point) {

	if len(p) == 0 {
		return
	}

	min, max = p[0], p[0]

	for _, pt := range p[1:] {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}

	return min, max
}

// Positive returns the polygon oriented so its SignedArea is non negative
func (p Polygon) Positive() Polygon {

	if p.SignedArea() >= 0 {
		return p
	}

	out := make(Polygon, len(p))

	for i, pt := range p {
		out[len(p)-1-i] = pt
	}

	return out
}

// Rotate returns the ring with its start vertex moved n positions forward
func (p Polygon) Rotate(n int) Polygon {

	if len(p) == 0 {
		return nil
	}

	n = ((n % len(p)) + len(p)) % len(p)
	out := make(Polygon, 0, len(p))
	out = append(out, p[n:]...)
	out = append(out, p[:n]...)

	return out
}

// Round returns the polygon with all coordinates rounded to the nearest
// integer, ties to even
func (p Polygon) Round() Polygon {

	out := make(Polygon, len(p))

	for i, pt := range p {
		out[i] = Point{math.RoundToEven(pt.X), math.RoundToEven(pt.Y)}
	}

	return out
}

// dedupe returns the ring without consecutive repeated points, including
// a repeated closing point
func (p Polygon) dedupe() Polygon {

	out := make(Polygon, 0, len(p))

	for _, pt := range p {
		if len(out) > 0 && out[len(out)-1] == pt {
			continue
		}
		out = append(out, pt)
	}

	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}

	return out
}

// Contains reports whether pt lies strictly inside or on the boundary of the
// ring using the even-odd rule
func (p Polygon) Contains(pt Point) bool {

	if len(p) < 3 {
		return false
	}

	inside := false
	j := len(p) - 1

	for i := range p {
		a, b := p[j], p[i]

		if segmentDist(pt, a, b) == 0 {
			return true
		}

		if (b.Y > pt.Y) != (a.Y > pt.Y) &&
			pt.X < (a.X-b.X)*(pt.Y-b.Y)/(a.Y-b.Y)+b.X {
			inside = !inside
		}

		j = i
	}

	return inside
}

// String formats the polygon as PAGE-XML points, "x1,y1 x2,y2 ..." with
// coordinates rounded to integers
func (p Polygon) String() string {

	var sb strings.Builder

	for i, pt := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(int64(math.Round(pt.X)), 10))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatInt(int64(math.Round(pt.Y)), 10))
	}

	return sb.String()
}

// ParsePoints parses the PAGE-XML points format "x1,y1 x2,y2 ...".  A closing
// point equal to the first is dropped.
func ParsePoints(s string) (Polygon, error) {

	fields := strings.Fields(s)
	p := make(Polygon, 0, len(fields))

	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")

		if !ok {
			return nil, fmt.Errorf("invalid point %q", f)
		}

		x, err := strconv.ParseFloat(xs, 64)

		if err != nil {
			return nil, fmt.Errorf("invalid x coordinate in %q: %w", f, err)
		}

		y, err := strconv.ParseFloat(ys, 64)

		if err != nil {
			return nil, fmt.Errorf("invalid y coordinate in %q: %w", f, err)
		}

		p = append(p, Point{x, y})
	}

	if len(p) > 1 && p[0] == p[len(p)-1] {
		p = p[:len(p)-1]
	}

	return p, nil
}
