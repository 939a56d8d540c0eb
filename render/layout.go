package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/page"
	"github.com/swdee/go-pageseg/postprocess"
	"gocv.io/x/gocv"
)

// minContourArea filters contours picked up from aliasing or noise when
// outlining instance masks
const minContourArea = 10

// label defines where a label should be rendered on the image
type label struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// newLabel places text above the outline with the given bounds
func newLabel(text string, bounds image.Rectangle, clr color.RGBA, font Font, lineThickness int) label {

	textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

	// calculate the alignment of text label
	var centerX int

	switch font.Alignment {
	case Center:
		centerX = (bounds.Min.X + bounds.Max.X) / 2

	case Right:
		centerX = bounds.Max.X - (textSize.X / 2) - font.Pad.X + (lineThickness / 2)

	case Left:
		fallthrough
	default:
		centerX = bounds.Min.X + (textSize.X / 2) + font.Pad.X - (lineThickness / 2)
	}

	return label{
		rect: image.Rect(centerX-textSize.X/2-font.Pad.X,
			bounds.Min.Y-textSize.Y-2*font.Pad.Y,
			centerX+textSize.X/2+font.Pad.X, bounds.Min.Y),
		clr:     clr,
		text:    text,
		textPos: image.Pt(centerX-textSize.X/2, bounds.Min.Y-font.Pad.Y),
	}
}

// drawLabels draws the labels last so they are the top most layer on the
// image and don't get overlapped with outlines
func drawLabels(img *gocv.Mat, labels []label, font Font) {

	for _, l := range labels {
		// draw box text gets written on
		gocv.Rectangle(img, l.rect, l.clr, -1)

		gocv.PutTextWithParams(img, l.text, l.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}

// points converts a polygon to image pixel points
func points(p geometry.Polygon) []image.Point {

	pts := make([]image.Point, len(p))

	for i, pt := range p.Round() {
		pts[i] = image.Pt(int(pt.X), int(pt.Y))
	}

	return pts
}

// polyline draws the closed outline of the polygon and returns its bounds
func polyline(img *gocv.Mat, p geometry.Polygon, clr color.RGBA, lineThickness int) image.Rectangle {

	pts := points(p)

	if len(pts) < 2 {
		return image.Rectangle{}
	}

	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()

	gocv.Polylines(img, pv, true, clr, lineThickness)

	bounds := image.Rectangle{Min: pts[0], Max: pts[0]}

	for _, pt := range pts[1:] {
		bounds = bounds.Union(image.Rectangle{Min: pt, Max: pt.Add(image.Pt(1, 1))})
	}

	return bounds
}

// Layout renders the page border, region and text line outlines of the page
// on its image, with each region labelled by its id and subtype.  Page
// coordinates are mapped to the image with transform.
func Layout(img *gocv.Mat, pg *page.Page, transform geometry.Transform, font Font, lineThickness int) {

	if len(pg.Border) > 0 {
		polyline(img, transform.CoordsOf(pg.Border), borderColor, lineThickness)
	}

	labels := make([]label, 0)

	for _, r := range pg.AllRegions(nil, 0) {

		for _, l := range r.Lines {
			polyline(img, transform.CoordsOf(l.Coords), lineColor, max(1, lineThickness/2))
		}

		clr := categoryColor(r.Category)
		bounds := polyline(img, transform.CoordsOf(r.Coords), clr, lineThickness)

		if bounds.Empty() {
			continue
		}

		text := r.ID

		switch {
		case r.Custom != "":
			text = fmt.Sprintf("%s %s", r.ID, r.Custom)
		case r.Type != "":
			text = fmt.Sprintf("%s %s", r.ID, r.Type)
		}

		if r.Conf != nil {
			text = fmt.Sprintf("%s %.2f", text, *r.Conf)
		}

		labels = append(labels, newLabel(text, bounds, clr, font, lineThickness))
	}

	drawLabels(img, labels, font)
}

// InstanceMasks renders the instance masks as a transparent overlay on top
// of the whole BGR image, colored by class
func InstanceMasks(img *gocv.Mat, instances []postprocess.Instance, alpha float32) error {

	width := img.Cols()
	height := img.Rows()

	if img.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("image must be 8 bit BGR")
	}

	// it is too slow to manipulate pixel by pixel using GoCV due to slowness
	// over CGO.  So we copy the bytes from the source image and manipulate
	// the bytes directly before copying back to a Mat
	imgData := img.ToBytes()

	for _, inst := range instances {

		if inst.Mask.Width != width || inst.Mask.Height != height {
			return fmt.Errorf("mask size %dx%d does not match image %dx%d",
				inst.Mask.Width, inst.Mask.Height, width, height)
		}

		clr := classColor(inst.Class)

		for idx, v := range inst.Mask.Pix {
			if v == 0 {
				continue
			}

			pixelPos := idx * 3

			b, g, r := imgData[pixelPos+0], imgData[pixelPos+1], imgData[pixelPos+2]

			// calculate blended colors based on alpha transparency
			imgData[pixelPos+0] = uint8(float32(b)*(1-alpha) + float32(clr.B)*alpha)
			imgData[pixelPos+1] = uint8(float32(g)*(1-alpha) + float32(clr.G)*alpha)
			imgData[pixelPos+2] = uint8(float32(r)*(1-alpha) + float32(clr.R)*alpha)
		}
	}

	// copy back to the original mat
	tmpImg, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, imgData)

	if err != nil {
		return fmt.Errorf("error creating overlay Mat: %w", err)
	}

	defer tmpImg.Close()
	tmpImg.CopyTo(img)

	return nil
}

// InstanceOutlines renders the outer contours of the instance masks with a
// label of the class name and probability
func InstanceOutlines(img *gocv.Mat, instances []postprocess.Instance,
	classNames []string, font Font, lineThickness int) error {

	labels := make([]label, 0)

	for _, inst := range instances {

		mat, err := inst.Mask.Mat()

		if err != nil {
			return fmt.Errorf("error creating mask Mat: %w", err)
		}

		contours := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
		clr := classColor(inst.Class)

		name := fmt.Sprintf("class %d", inst.Class)

		if inst.Class >= 0 && inst.Class < len(classNames) && classNames[inst.Class] != "" {
			name = classNames[inst.Class]
		}

		for i := 0; i < contours.Size(); i++ {
			contour := contours.At(i)

			if gocv.ContourArea(contour) < minContourArea {
				continue
			}

			approx := gocv.ApproxPolyDP(contour, 3, true)
			ptsVec := gocv.NewPointsVector()
			ptsVec.Append(approx)

			gocv.Polylines(img, ptsVec, true, clr, lineThickness)

			approx.Close()
			ptsVec.Close()
		}

		contours.Close()
		mat.Close()

		text := fmt.Sprintf("%s %.2f", name, inst.Probability)
		labels = append(labels, newLabel(text, inst.Box.Rect(), clr, font, lineThickness))
	}

	drawLabels(img, labels, font)

	return nil
}

// ToFile writes the rendered image to filename, the format is chosen by the
// file extension
func ToFile(filename string, img gocv.Mat) error {

	if gocv.IMWrite(filename, img) {
		return nil
	}

	return fmt.Errorf("failed to write image to %s", filename)
}
