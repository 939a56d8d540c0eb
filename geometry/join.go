package geometry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// NearestPoints returns the closest pair of boundary points of a and b and
// their distance.  The distance is zero when the interiors overlap.
func NearestPoints(a, b Polygon) (pa, pb Point, dist float64) {

	dist = math.Inf(1)

	for i := range a {
		a0, a1 := a[i], a[(i+1)%len(a)]

		for j := range b {
			b0, b1 := b[j], b[(j+1)%len(b)]

			if segmentsIntersect(a0, a1, b0, b1) {
				q := closestOnSegment(a0, b0, b1)
				return q, q, 0
			}

			if q := closestOnSegment(a0, b0, b1); a0.Dist(q) < dist {
				pa, pb, dist = a0, q, a0.Dist(q)
			}

			if q := closestOnSegment(b0, a0, a1); b0.Dist(q) < dist {
				pa, pb, dist = q, b0, b0.Dist(q)
			}
		}
	}

	// one contains the other without boundaries touching
	if len(a) > 0 && len(b) > 0 && (b.Contains(a[0]) || a.Contains(b[0])) {
		return pa, pb, 0
	}

	return pa, pb, dist
}

// bridge returns a rectangle of half width w around the segment p-q with
// square caps, a square when p and q coincide
func bridge(p, q Point, w float64) Polygon {

	dx, dy := q.X-p.X, q.Y-p.Y
	l := math.Hypot(dx, dy)

	if l == 0 {
		return Rect(p.X-w, p.Y-w, p.X+w, p.Y+w)
	}

	// unit direction and normal scaled to w
	ux, uy := dx/l*w, dy/l*w
	nx, ny := -uy, ux

	return Polygon{
		{p.X - ux + nx, p.Y - uy + ny},
		{q.X + ux + nx, q.Y + uy + ny},
		{q.X + ux - nx, q.Y + uy - ny},
		{p.X - ux - nx, p.Y - uy - ny},
	}
}

// Join combines polygons into one connected polygon.  Pieces are connected
// along the minimum spanning tree of their pairwise distances with bridges of
// width max(1, scale/5) before being unioned.  Results with low clearance
// are rounded and repaired.
func Join(polys []Polygon, scale float64) (Polygon, error) {

	var pieces []Polygon

	for _, p := range polys {
		if p.IsValid() {
			pieces = append(pieces, p)
		}
	}

	switch len(pieces) {
	case 0:
		return nil, ErrInvalidPolygon
	case 1:
		return pieces[0], nil
	}

	type link struct {
		i, j   int
		pi, pj Point
	}

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	links := make(map[[2]int]link)

	for i := range pieces {
		g.AddNode(simple.Node(i))
	}

	for i := range pieces {
		for j := i + 1; j < len(pieces); j++ {
			pi, pj, d := NearestPoints(pieces[i], pieces[j])

			// zero weights are indistinguishable from self edges
			if d == 0 {
				d = 1e-5
			}

			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(j), W: d})
			links[[2]int{i, j}] = link{i, j, pi, pj}
		}
	}

	mst := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	path.Kruskal(mst, g)

	var keys [][2]int
	edges := mst.Edges()

	for edges.Next() {
		e := edges.Edge()
		i, j := int(e.From().ID()), int(e.To().ID())

		if i > j {
			i, j = j, i
		}
		keys = append(keys, [2]int{i, j})
	}

	sort.Slice(keys, func(a, b int) bool {
		if keys[a][0] != keys[b][0] {
			return keys[a][0] < keys[b][0]
		}
		return keys[a][1] < keys[b][1]
	})

	width := math.Max(1, scale/5)
	parts := append([]Polygon{}, pieces...)

	for _, k := range keys {
		l := links[k]
		parts = append(parts, bridge(l.pi, l.pj, width))
	}

	joined := Union(parts...)

	if len(joined) != 1 {
		return nil, ErrDisconnected
	}

	result := joined[0]

	if result.MinimumClearance() < 1.0 {
		result = MakeValid(result.Round())
	}

	if !result.IsValid() {
		return nil, ErrInvalidPolygon
	}

	return result, nil
}
