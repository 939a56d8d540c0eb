package render

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// Alignment of a label relative to the outline it belongs to
type Alignment int

const (
	Left   Alignment = 1
	Center Alignment = 2
	Right  Alignment = 3
)

const (
	// referenceEdge is the long edge in pixels of a page the default font
	// is sized for, roughly an A4 scan at 150 dpi
	referenceEdge = 1750
	// minFontScale keeps labels readable on small thumbnails
	minFontScale = 0.4
)

// Font holds the label text settings for rendering page layouts
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Pad is the horizontal and vertical space between text and the edge of
	// its label box
	Pad image.Point
	// Alignment of the label to the bounds of the outline
	Alignment Alignment
	// Outline is the thickness of region outlines drawn with the font
	Outline int
}

// DefaultFont returns the font for a page of referenceEdge pixels
func DefaultFont() Font {
	return PageFont(referenceEdge, referenceEdge)
}

// PageFont returns a font sized for a page image of the given dimensions, so
// labels keep the same size relative to the page at any scan resolution
func PageFont(width, height int) Font {

	edge := max(width, height)
	scale := math.Max(minFontScale, 0.8*float64(edge)/referenceEdge)
	thickness := max(1, int(math.Round(scale*2.5)))

	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     scale,
		Color:     White,
		Thickness: thickness,
		LineType:  gocv.LineAA,
		Pad:       image.Pt(2*thickness, 3*thickness),
		Alignment: Left,
		Outline:   thickness,
	}
}
