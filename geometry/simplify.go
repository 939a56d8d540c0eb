package geometry

// Simplify returns the ring reduced with the Douglas-Peucker algorithm,
// keeping only vertices further than tolerance from the simplified outline.
// The ring is treated as a line closed on its first vertex, so a zero
// tolerance drops repeated and collinear vertices only.  The result may
// have fewer than three points when the ring collapses.
func Simplify(p Polygon, tolerance float64) Polygon {

	if len(p) < 3 {
		return p.Clone()
	}

	line := make([]Point, 0, len(p)+1)
	line = append(line, p...)
	line = append(line, p[0])

	keep := make([]bool, len(line))
	keep[0] = true
	keep[len(line)-1] = true

	// explicit stack of [first, last] index spans
	stack := [][2]int{{0, len(line) - 1}}

	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		first, last := span[0], span[1]

		if last <= first+1 {
			continue
		}

		maxDist := -1.0
		index := first

		for k := first + 1; k < last; k++ {
			if d := segmentDist(line[k], line[first], line[last]); d > maxDist {
				maxDist = d
				index = k
			}
		}

		if maxDist > tolerance {
			keep[index] = true
			stack = append(stack, [2]int{first, index}, [2]int{index, last})
		}
	}

	out := make(Polygon, 0, len(p))

	for i := 0; i < len(line)-1; i++ {
		if keep[i] {
			out = append(out, line[i])
		}
	}

	return out
}

// MakeValid attempts to repair an invalid polygon, such as the bow-tie
// outlines produced when tracing thin mask contours.  A valid polygon is
// returned unchanged.  Otherwise each cyclic rotation of the start vertex is
// tried with a zero tolerance simplification, and failing that the polygon
// is simplified with increasing integer tolerances up to its area.  The last
// attempt is returned when no valid outline is found, or the unrotated zero
// tolerance simplification should that attempt have grown, so the caller must
// check IsValid on the result.
func MakeValid(p Polygon) Polygon {

	if p.IsValid() {
		return p
	}

	attempt := p

	for i := range p {
		attempt = Simplify(p.Rotate(i), 0)

		if attempt.IsValid() {
			return attempt
		}
	}

	area := p.Area()
	simplified := p

	for tolerance := 1; tolerance <= int(area); tolerance++ {
		simplified = Simplify(simplified, float64(tolerance))
		attempt = simplified

		if attempt.IsValid() || attempt.Empty() {
			break
		}
	}

	// an invalid result must not grow the outline
	if !attempt.IsValid() && attempt.Area() > area {
		return Simplify(p, 0)
	}

	return attempt
}
