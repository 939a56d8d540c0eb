package postprocess

import (
	"image"
)

// BoxRect are the dimensions of the bounding box of a detect object
type BoxRect struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Rect returns the box as an image.Rectangle
func (b BoxRect) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// BoxFromRect converts an image.Rectangle to a BoxRect
func BoxFromRect(r image.Rectangle) BoxRect {
	return BoxRect{Left: r.Min.X, Right: r.Max.X, Top: r.Min.Y, Bottom: r.Max.Y}
}

// Instance defines the attributes of a single layout region candidate
// returned by a detector
type Instance struct {
	// Class is the line number in the labels file the Model was trained on
	// defining the Class of the detected region, 0 being background
	Class int
	// Box are the bounding box dimensions of the region location
	Box BoxRect
	// Probability is the confidence score of the region detected
	Probability float32
	// Mask is the pixel mask of the region aligned to the page raster
	Mask Mask
}
