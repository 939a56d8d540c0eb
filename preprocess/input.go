package preprocess

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/postprocess"
	"gocv.io/x/gocv"
	"golang.org/x/image/vector"
)

const (
	// textValue marks pixels of text lines without annotation
	textValue = 200
	// annotatedValue marks pixels of annotated text lines
	annotatedValue = 255
)

// LineMark is a text line outline, in image coordinates, to rasterize into
// the detector input
type LineMark struct {
	Polygon   geometry.Polygon
	Annotated bool
}

// Input is the raster handed to a layout detector: the page colour channels
// plus a channel marking where text lines are and one marking which of them
// carry an annotation
type Input struct {
	// PageID identifies the page the input was built from
	PageID string
	Width  int
	Height int
	// RGB holds the page colour, 3 bytes per pixel
	RGB []uint8
	// Lines holds 200 for plain and 255 for annotated text line pixels
	Lines []uint8
}

// NewInput builds the detector input for a page image, given as grey, BGR or
// BGRA Mat, and the outlines of its text lines.  Later lines are drawn over
// earlier ones.
func NewInput(pageID string, img gocv.Mat, lines []LineMark) (*Input, error) {

	if img.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrImageFormat)
	}

	rgb := gocv.NewMat()
	defer rgb.Close()

	switch img.Type() {
	case gocv.MatTypeCV8UC1:
		// grey replicated to all three channels is the same in any order
		gocv.CvtColor(img, &rgb, gocv.ColorGrayToBGR)
	case gocv.MatTypeCV8UC3:
		gocv.CvtColor(img, &rgb, gocv.ColorBGRToRGB)
	case gocv.MatTypeCV8UC4:
		bgr := gocv.NewMat()
		gocv.CvtColor(img, &bgr, gocv.ColorBGRAToBGR)
		gocv.CvtColor(bgr, &rgb, gocv.ColorBGRToRGB)
		bgr.Close()
	default:
		return nil, fmt.Errorf("%w: Mat type %v", ErrImageFormat, img.Type())
	}

	data, err := rgb.DataPtrUint8()

	if err != nil {
		return nil, fmt.Errorf("error reading image data: %w", err)
	}

	in := &Input{
		PageID: pageID,
		Width:  img.Cols(),
		Height: img.Rows(),
		RGB:    make([]uint8, len(data)),
		Lines:  make([]uint8, img.Cols()*img.Rows()),
	}

	copy(in.RGB, data)

	for _, l := range lines {
		value := uint8(textValue)

		if l.Annotated {
			value = annotatedValue
		}

		in.markPolygon(l.Polygon, value)
	}

	return in, nil
}

// markPolygon rasterizes the polygon into the line channel with the given
// value, counting pixels at least half covered as inside
func (in *Input) markPolygon(p geometry.Polygon, value uint8) {

	if p.Empty() {
		return
	}

	min, max := p.Bounds()
	bounds := image.Rect(int(math.Floor(min.X)), int(math.Floor(min.Y)),
		int(math.Ceil(max.X))+1, int(math.Ceil(max.Y))+1).
		Intersect(image.Rect(0, 0, in.Width, in.Height))

	if bounds.Empty() {
		return
	}

	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	z.DrawOp = draw.Src

	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	z.MoveTo(float32(p[0].X)-ox, float32(p[0].Y)-oy)

	for _, pt := range p[1:] {
		z.LineTo(float32(pt.X)-ox, float32(pt.Y)-oy)
	}

	z.ClosePath()

	cover := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	z.Draw(cover, cover.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if cover.AlphaAt(x, y).A >= 0x80 {
				in.Lines[(y+bounds.Min.Y)*in.Width+x+bounds.Min.X] = value
			}
		}
	}
}

// TextMask returns the pixels covered by any text line
func (in *Input) TextMask() postprocess.Mask {

	m := postprocess.NewMask(in.Width, in.Height)

	for i, v := range in.Lines {
		if v > 0 {
			m.Pix[i] = 255
		}
	}

	return m
}

// AnnotationMask returns the pixels covered by annotated text lines
func (in *Input) AnnotationMask() postprocess.Mask {

	m := postprocess.NewMask(in.Width, in.Height)

	for i, v := range in.Lines {
		if v == annotatedValue {
			m.Pix[i] = 255
		}
	}

	return m
}

// Channels returns the five channel detector array in row major order:
// red, green, blue, text and annotation, the latter two being 0 or 255
func (in *Input) Channels() []uint8 {

	out := make([]uint8, in.Width*in.Height*5)

	for i, v := range in.Lines {
		px := out[i*5 : i*5+5]
		copy(px, in.RGB[i*3:i*3+3])

		if v > 0 {
			px[3] = 255
		}

		if v == annotatedValue {
			px[4] = 255
		}
	}

	return out
}

// Mats returns the detector input as a BGRA Mat with the line channel as
// alpha, and the annotation mask as a single channel Mat, in the layout
// expected by image writers.  The caller must Close both Mats.
func (in *Input) Mats() (gocv.Mat, gocv.Mat, error) {

	bgra := make([]uint8, in.Width*in.Height*4)

	for i, v := range in.Lines {
		bgra[i*4+0] = in.RGB[i*3+2]
		bgra[i*4+1] = in.RGB[i*3+1]
		bgra[i*4+2] = in.RGB[i*3+0]
		bgra[i*4+3] = v
	}

	color, err := gocv.NewMatFromBytes(in.Height, in.Width, gocv.MatTypeCV8UC4, bgra)

	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("error creating input Mat: %w", err)
	}

	annot, err := in.AnnotationMask().Mat()

	if err != nil {
		color.Close()
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("error creating annotation Mat: %w", err)
	}

	return color, annot, nil
}
