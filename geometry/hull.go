package geometry

import (
	"sort"
)

// ConvexHull returns the convex hull of all vertices of the given polygons,
// counter clockwise in a Y-up system with collinear points removed
func ConvexHull(polys ...Polygon) Polygon {

	var pts []Point

	for _, p := range polys {
		pts = append(pts, p...)
	}

	if len(pts) < 3 {
		return Polygon(pts).Clone()
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	// monotone chain, lower then upper hull
	hull := make(Polygon, 0, 2*len(pts))

	for _, pt := range pts {
		for len(hull) >= 2 && orient(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}

	lower := len(hull) + 1

	for i := len(pts) - 2; i >= 0; i-- {
		pt := pts[i]

		for len(hull) >= lower && orient(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}

	// last point repeats the first
	return hull[:len(hull)-1]
}
