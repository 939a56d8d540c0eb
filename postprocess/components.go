package postprocess

import (
	"fmt"
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// Components is the connected component map of a binarized page.  Each
// foreground blob has a distinct positive label and 0 is background.  It is
// computed once per page and only read afterwards.
type Components struct {
	Width  int
	Height int
	// Labels holds the label of every pixel in row major order
	Labels []int32
	// boxes holds the bounding box of each label, indexed by label
	boxes []image.Rectangle
}

// NewComponents labels the 8-connected foreground blobs of the binarized page
func NewComponents(foreground Mask) (*Components, error) {

	src, err := foreground.Mat()

	if err != nil {
		return nil, fmt.Errorf("error creating foreground Mat: %w", err)
	}

	defer src.Close()

	labels := gocv.NewMat()
	defer labels.Close()

	stats := gocv.NewMat()
	defer stats.Close()

	centroids := gocv.NewMat()
	defer centroids.Close()

	n := gocv.ConnectedComponentsWithStats(src, &labels, &stats, &centroids)

	data, err := labels.DataPtrInt32()

	if err != nil {
		return nil, fmt.Errorf("error reading component labels: %w", err)
	}

	c := &Components{
		Width:  foreground.Width,
		Height: foreground.Height,
		Labels: make([]int32, len(data)),
		boxes:  make([]image.Rectangle, n),
	}

	copy(c.Labels, data)

	for i := 1; i < n; i++ {
		left := int(stats.GetIntAt(i, int(gocv.CC_STAT_LEFT)))
		top := int(stats.GetIntAt(i, int(gocv.CC_STAT_TOP)))
		width := int(stats.GetIntAt(i, int(gocv.CC_STAT_WIDTH)))
		height := int(stats.GetIntAt(i, int(gocv.CC_STAT_HEIGHT)))

		c.boxes[i] = image.Rect(left, top, left+width, top+height)
	}

	return c, nil
}

// Count returns the number of foreground components
func (c *Components) Count() int {
	if len(c.boxes) == 0 {
		return 0
	}
	return len(c.boxes) - 1
}

// Box returns the bounding box of the component with the given label
func (c *Components) Box(label int32) image.Rectangle {
	if label <= 0 || int(label) >= len(c.boxes) {
		return image.Rectangle{}
	}
	return c.boxes[label]
}

// LabelsUnder returns the sorted distinct labels of the components touched
// by the foreground of mask, excluding background
func (c *Components) LabelsUnder(mask Mask) []int32 {

	if c == nil || mask.Width != c.Width || mask.Height != c.Height {
		return nil
	}

	seen := make(map[int32]struct{})

	for i, v := range mask.Pix {
		if v == 0 || c.Labels[i] == 0 {
			continue
		}
		seen[c.Labels[i]] = struct{}{}
	}

	out := make([]int32, 0, len(seen))

	for l := range seen {
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
