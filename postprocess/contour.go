package postprocess

import (
	"fmt"
	"image"
	"math"

	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/geometry"
	"gocv.io/x/gocv"
)

const (
	// componentPadding is the number of pixels component bounding boxes are
	// grown by before being filled into the mask
	componentPadding = 4
	// maxDilations bounds the number of dilation rounds used to merge mask
	// fragments into a single contour
	maxDilations = 10
)

// KernelScale returns the dilation kernel size for a mask with the given
// foreground pixel count, being floor(sqrt(area)/10) bumped to the next odd
// number so the kernel has a centre pixel
func KernelScale(area int) int {

	scale := int(math.Sqrt(float64(area)) / 10)
	scale += (scale + 1) % 2

	return scale
}

// FillComponents returns a copy of mask with the padded bounding box of every
// connected component it touches filled in, so glyphs are never cut at the
// edge of a detection
func FillComponents(mask Mask, comps *Components) Mask {

	out := mask.Clone()

	if comps == nil {
		return out
	}

	for _, label := range comps.LabelsUnder(mask) {
		box := comps.Box(label)

		if box.Empty() {
			continue
		}

		out.FillRect(box.Inset(-componentPadding))
	}

	return out
}

// DilateStep dilates the mask once with a square kernel of the given size and
// returns the dilated mask together with its external contours.  The input
// mask is left unchanged.
func DilateStep(mask Mask, scale int) (Mask, [][]image.Point, error) {

	if scale < 1 {
		scale = 1
	}

	src, err := mask.Mat()

	if err != nil {
		return Mask{}, nil, fmt.Errorf("error creating mask Mat: %w", err)
	}

	defer src.Close()

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(scale, scale))
	defer kernel.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Dilate(src, &dst, kernel)

	out, err := MaskFromMat(dst)

	if err != nil {
		return Mask{}, nil, err
	}

	return out, ExternalContours(dst), nil
}

// ExternalContours returns the outer contours of the foreground of a single
// channel 8 bit Mat with redundant points along straight runs removed
func ExternalContours(mat gocv.Mat) [][]image.Point {

	pv := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer pv.Close()

	contours := make([][]image.Point, 0, pv.Size())

	for i := 0; i < pv.Size(); i++ {
		contours = append(contours, pv.At(i).ToPoints())
	}

	return contours
}

// MaskToPolygon traces the outline of a detection mask in image pixel
// coordinates.  The mask is first widened over the connected components it
// touches, then dilated with a kernel scaled to the mask area until its
// fragments merge into a single outer contour, giving up after a fixed
// number of rounds and taking the first contour found.
func MaskToPolygon(mask Mask, comps *Components, log pageseg.Logger) (geometry.Polygon, error) {

	log = pageseg.OrNop(log)
	area := mask.Count()

	if area == 0 {
		return nil, ErrEmptyMask
	}

	scale := KernelScale(area)
	current := FillComponents(mask, comps)

	log.Debugf("post-processing mask at %v area %d scale %d", mask.Bounds(), area, scale)

	var contours [][]image.Point
	var err error
	rounds := 0

	for rounds < maxDilations && len(contours) != 1 {
		current, contours, err = DilateStep(current, scale)

		if err != nil {
			return nil, err
		}

		rounds++
	}

	if len(contours) == 0 {
		return nil, ErrEmptyMask
	}

	if len(contours) > 1 {
		log.Debugf("mask still has %d contours after %d dilations, using first", len(contours), rounds)
	}

	poly := make(geometry.Polygon, len(contours[0]))

	for i, pt := range contours[0] {
		poly[i] = geometry.Point{X: float64(pt.X), Y: float64(pt.Y)}
	}

	return poly, nil
}
