package preprocess

import (
	"errors"
	"fmt"

	"github.com/swdee/go-pageseg/postprocess"
	"gocv.io/x/gocv"
)

// ErrImageFormat is returned for page images that are not 8 bit grey, BGR or
// BGRA
var ErrImageFormat = errors.New("unsupported page image format")

// Grey flattens a page image to a single channel by averaging its colour
// channels.  Transparent pixels are composited over white first.  The caller
// must Close the returned Mat.
func Grey(img gocv.Mat) (gocv.Mat, error) {

	if img.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: empty image", ErrImageFormat)
	}

	channels := img.Channels()

	if img.Type() != gocv.MatTypeCV8UC1 && img.Type() != gocv.MatTypeCV8UC3 &&
		img.Type() != gocv.MatTypeCV8UC4 {
		return gocv.NewMat(), fmt.Errorf("%w: Mat type %v", ErrImageFormat, img.Type())
	}

	if channels == 1 {
		return img.Clone(), nil
	}

	data, err := img.DataPtrUint8()

	if err != nil {
		return gocv.NewMat(), fmt.Errorf("error reading image data: %w", err)
	}

	pixels := img.Rows() * img.Cols()
	grey := make([]byte, pixels)

	for i := 0; i < pixels; i++ {
		px := data[i*channels : (i+1)*channels]
		mean := (float64(px[0]) + float64(px[1]) + float64(px[2])) / 3

		if channels == 4 {
			alpha := float64(px[3]) / 255
			mean = mean*alpha + 255*(1-alpha)
		}

		grey[i] = uint8(mean)
	}

	return gocv.NewMatFromBytes(img.Rows(), img.Cols(), gocv.MatTypeCV8U, grey)
}

// Binarize thresholds a page image at the midpoint between its darkest and
// lightest grey value and returns the dark foreground as a mask
func Binarize(img gocv.Mat) (postprocess.Mask, error) {

	grey, err := Grey(img)

	if err != nil {
		return postprocess.Mask{}, err
	}

	defer grey.Close()

	minVal, maxVal, _, _ := gocv.MinMaxLoc(grey)
	threshold := 0.5 * (minVal + maxVal)

	bin := gocv.NewMat()
	defer bin.Close()

	// pixels at or below the threshold become foreground
	gocv.Threshold(grey, &bin, threshold, 255, gocv.ThresholdBinaryInv)

	return postprocess.MaskFromMat(bin)
}

// PageComponents binarizes the page image and labels its connected
// foreground components
func PageComponents(img gocv.Mat) (*postprocess.Components, error) {

	fg, err := Binarize(img)

	if err != nil {
		return nil, fmt.Errorf("error binarizing page: %w", err)
	}

	return postprocess.NewComponents(fg)
}
