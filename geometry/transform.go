package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Transform is an affine coordinate transform from page coordinates into the
// coordinates of a derived image, for example a cropped or deskewed page
// image the layout detector was run on
type Transform struct {
	m *mat.Dense
}

// Identity returns the transform of an image that is the original page image
func Identity() Transform {
	return Transform{m: identity()}
}

func identity() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// matrix returns the transform matrix, treating the zero value as identity
func (t Transform) matrix() *mat.Dense {
	if t.m == nil {
		return identity()
	}
	return t.m
}

// then returns the transform that applies t followed by step
func (t Transform) then(step *mat.Dense) Transform {
	var out mat.Dense
	out.Mul(step, t.matrix())
	return Transform{m: &out}
}

// Shift returns the transform followed by a translation of dx, dy pixels, as
// applied when cropping a page image to its Border
func (t Transform) Shift(dx, dy float64) Transform {
	return t.then(mat.NewDense(3, 3, []float64{
		1, 0, dx,
		0, 1, dy,
		0, 0, 1,
	}))
}

// Scale returns the transform followed by scaling with factors sx, sy
func (t Transform) Scale(sx, sy float64) Transform {
	return t.then(mat.NewDense(3, 3, []float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}))
}

// Rotate returns the transform followed by a counter clockwise rotation of
// the image content by angle degrees about the centre point cx, cy, as
// applied when deskewing a page image
func (t Transform) Rotate(angle, cx, cy float64) Transform {

	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	// y points down so a visually counter clockwise rotation flips the sine
	return t.Shift(-cx, -cy).then(mat.NewDense(3, 3, []float64{
		cos, sin, 0,
		-sin, cos, 0,
		0, 0, 1,
	})).Shift(cx, cy)
}

// apply maps the polygon through the matrix m
func apply(m mat.Matrix, p Polygon) Polygon {

	out := make(Polygon, len(p))

	for i, pt := range p {
		out[i] = Point{
			X: m.At(0, 0)*pt.X + m.At(0, 1)*pt.Y + m.At(0, 2),
			Y: m.At(1, 0)*pt.X + m.At(1, 1)*pt.Y + m.At(1, 2),
		}
	}

	return out
}

// CoordsOf maps a polygon in page coordinates into image coordinates
func (t Transform) CoordsOf(p Polygon) Polygon {
	return apply(t.matrix(), p)
}

// CoordsFor maps a polygon in image coordinates back into page coordinates
func (t Transform) CoordsFor(p Polygon) Polygon {

	var inv mat.Dense

	if err := inv.Inverse(t.matrix()); err != nil {
		// singular only for a zero scale, which is never constructed
		return p.Clone()
	}

	return apply(&inv, p)
}
