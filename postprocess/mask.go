package postprocess

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrEmptyMask is returned when a mask has no foreground pixels to trace
var ErrEmptyMask = errors.New("mask has no foreground pixels")

// Mask is a binary pixel mask aligned to the page raster, one byte per pixel
// in row major order where any non zero value is foreground
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask returns an empty mask of the given dimensions
func NewMask(width, height int) Mask {
	return Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// MaskFromMat converts a single channel 8 bit Mat into a Mask, treating any
// non zero value as foreground
func MaskFromMat(mat gocv.Mat) (Mask, error) {

	if mat.Empty() {
		return Mask{}, fmt.Errorf("mask Mat is empty")
	}

	if mat.Type() != gocv.MatTypeCV8UC1 {
		return Mask{}, fmt.Errorf("mask Mat must be single channel 8 bit, got type %v", mat.Type())
	}

	data, err := mat.DataPtrUint8()

	if err != nil {
		return Mask{}, fmt.Errorf("error reading mask data: %w", err)
	}

	m := NewMask(mat.Cols(), mat.Rows())

	for i, v := range data[:len(m.Pix)] {
		if v != 0 {
			m.Pix[i] = 255
		}
	}

	return m, nil
}

// Mat returns the mask as a single channel 8 bit Mat with foreground 255.
// The caller must Close the returned Mat.
func (m Mask) Mat() (gocv.Mat, error) {

	buf := make([]byte, len(m.Pix))

	for i, v := range m.Pix {
		if v != 0 {
			buf[i] = 255
		}
	}

	return gocv.NewMatFromBytes(m.Height, m.Width, gocv.MatTypeCV8U, buf)
}

// Clone returns a deep copy of the mask
func (m Mask) Clone() Mask {
	out := Mask{Width: m.Width, Height: m.Height, Pix: make([]uint8, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// At reports whether the pixel at x, y is foreground
func (m Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] != 0
}

// Set marks the pixel at x, y as foreground or background
func (m Mask) Set(x, y int, on bool) {

	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}

	if on {
		m.Pix[y*m.Width+x] = 255
	} else {
		m.Pix[y*m.Width+x] = 0
	}
}

// FillRect marks all pixels of r, clipped to the mask, as foreground
func (m Mask) FillRect(r image.Rectangle) {

	r = r.Intersect(image.Rect(0, 0, m.Width, m.Height))

	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]

		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = 255
		}
	}
}

// Count returns the number of foreground pixels
func (m Mask) Count() int {

	n := 0

	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}

	return n
}

// Bounds returns the tightest rectangle containing all foreground pixels,
// or the empty rectangle when there are none
func (m Mask) Bounds() image.Rectangle {

	r := image.Rectangle{}
	found := false

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Pix[y*m.Width+x] == 0 {
				continue
			}

			px := image.Rect(x, y, x+1, y+1)

			if !found {
				r = px
				found = true
			} else {
				r = r.Union(px)
			}
		}
	}

	return r
}

// IoU returns the intersection over union of the foreground of two masks of
// equal size.  Masks of different size or without any foreground have an IoU
// of zero.
func (m Mask) IoU(o Mask) float64 {

	if m.Width != o.Width || m.Height != o.Height {
		return 0
	}

	var inter, union int

	for i, v := range m.Pix {
		a, b := v != 0, o.Pix[i] != 0

		if a && b {
			inter++
		}

		if a || b {
			union++
		}
	}

	if union == 0 {
		return 0
	}

	return float64(inter) / float64(union)
}
