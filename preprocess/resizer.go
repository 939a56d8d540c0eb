package preprocess

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-pageseg/postprocess"
	"gocv.io/x/gocv"
)

// Resizer defines the struct used for letterboxing a page image to the input
// size of a layout detector and mapping its outputs back onto the page
type Resizer struct {
	// srcWidth is the width of the source image
	srcWidth int
	// srcHeight is the height of the source image
	srcHeight int
	// destWidth is the width to scale to
	destWidth int
	// destHeight is the height to scale to
	destHeight int
	// tempMat is a Mat used during the resize process
	tempMat gocv.Mat
	// letterbox parameters used in scaling
	xPad  int
	yPad  int
	scale float32
	// resize dimensions
	resizeW int
	resizeH int
}

// NewResizer returns a resizer used for scaling a page image to the
// detector input dimensions
func NewResizer(srcWidth, srcHeight, destWidth, destHeight int) *Resizer {
	r := &Resizer{
		srcWidth:   srcWidth,
		srcHeight:  srcHeight,
		destWidth:  destWidth,
		destHeight: destHeight,
		tempMat:    gocv.NewMat(),
	}

	// precalculate scaling dimensions
	r.preCalc()

	return r
}

// Close frees memory allocated during resize process
func (r *Resizer) Close() error {
	return r.tempMat.Close()
}

// preCalc the scaling factors for source and destination Mats
func (r *Resizer) preCalc() {

	r.resizeW = r.destWidth
	r.resizeH = r.destHeight

	scaleW := float32(r.destWidth) / float32(r.srcWidth)
	scaleH := float32(r.destHeight) / float32(r.srcHeight)
	r.scale = scaleH

	if scaleW < scaleH {
		r.scale = scaleW
		r.resizeH = int(float32(r.srcHeight) * r.scale)
	} else {
		r.resizeW = int(float32(r.srcWidth) * r.scale)
	}

	r.yPad = (r.destHeight - r.resizeH) / 2 // padding height / 2
	r.xPad = (r.destWidth - r.resizeW) / 2  // padding width / 2
}

// LetterBoxResize resizes the page image to the detector input size whilst
// maintaining image aspect.  Color is that used for letter box padding.
func (r *Resizer) LetterBoxResize(src gocv.Mat, dest *gocv.Mat, color color.RGBA) {

	gocv.Resize(src, &r.tempMat, image.Pt(r.resizeW, r.resizeH),
		0, 0, gocv.InterpolationArea)

	gocv.CopyMakeBorder(r.tempMat, dest, r.yPad, r.destHeight-r.resizeH-r.yPad,
		r.xPad, r.destWidth-r.resizeW-r.xPad, gocv.BorderConstant, color)
}

// ReverseMask maps a mask in detector input coordinates back onto the source
// page by cropping the letterbox padding and scaling with nearest neighbour
// interpolation, so the result stays binary
func (r *Resizer) ReverseMask(m postprocess.Mask) (postprocess.Mask, error) {

	if m.Width != r.destWidth || m.Height != r.destHeight {
		return postprocess.Mask{}, fmt.Errorf("mask size %dx%d does not match detector input %dx%d",
			m.Width, m.Height, r.destWidth, r.destHeight)
	}

	mat, err := m.Mat()

	if err != nil {
		return postprocess.Mask{}, err
	}

	defer mat.Close()

	crop := mat.Region(image.Rect(r.xPad, r.yPad, r.xPad+r.resizeW, r.yPad+r.resizeH))
	defer crop.Close()

	restored := gocv.NewMat()
	defer restored.Close()

	gocv.Resize(crop, &restored, image.Pt(r.srcWidth, r.srcHeight), 0, 0,
		gocv.InterpolationNearestNeighbor)

	return postprocess.MaskFromMat(restored)
}

// ReverseBox maps a bounding box in detector input coordinates back onto
// the source page, clamped to the page bounds
func (r *Resizer) ReverseBox(b postprocess.BoxRect) postprocess.BoxRect {

	conv := func(v, pad, max int) int {
		out := int(float32(v-pad) / r.scale)

		if out < 0 {
			return 0
		}

		if out > max {
			return max
		}

		return out
	}

	return postprocess.BoxRect{
		Left:   conv(b.Left, r.xPad, r.srcWidth),
		Right:  conv(b.Right, r.xPad, r.srcWidth),
		Top:    conv(b.Top, r.yPad, r.srcHeight),
		Bottom: conv(b.Bottom, r.yPad, r.srcHeight),
	}
}

// ScaleFactor returns the scale factor used in letterbox resize
func (r *Resizer) ScaleFactor() float32 {
	return r.scale
}

// XPad returns the x padding used in letterbox resize
func (r *Resizer) XPad() int {
	return r.xPad
}

// YPad returns the y padding used in letterbox resize
func (r *Resizer) YPad() int {
	return r.yPad
}

// SrcWidth returns the width of the source image
func (r *Resizer) SrcWidth() int {
	return r.srcWidth
}

// SrcHeight returns the height of the source image
func (r *Resizer) SrcHeight() int {
	return r.srcHeight
}
