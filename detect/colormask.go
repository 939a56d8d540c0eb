package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/page"
	"gocv.io/x/gocv"
)

const (
	// minContourArea and minContourPercent filter contours too small to be
	// regions, both have to be undercut for a contour to be dropped
	minContourArea    = 100
	minContourPercent = 0.1
	// approxEpsilon is the outline simplification distance in pixels
	approxEpsilon = 2
	// minSegmentPoints is the number of points a simplified outline needs
	minSegmentPoints = 4
)

// BorderClass is the dictionary class setting the page border
const BorderClass = "Border"

// ColorMask converts a pseudo colour segmentation image into region outlines
// by mapping each colour to a region class
type ColorMask struct {
	// Colors maps colour names to "<element>[:<subtype>]" classes, such as
	// "#FF0000" to "TextRegion:paragraph".  Colours with an empty class, or
	// missing from the map, are background.
	Colors map[string]string
	log    pageseg.Logger
}

// NewColorMask returns a ColorMask for the colour dictionary.  Colour names
// are "#RRGGBB", or "#RRGGBBAA" for images with an alpha channel.
func NewColorMask(colors map[string]string, log pageseg.Logger) (*ColorMask, error) {

	norm := make(map[string]string, len(colors))

	for name, class := range colors {
		if class != "" {
			element, _, _ := strings.Cut(class, ":")

			if element != BorderClass {
				if _, err := page.ParseCategory(element); err != nil {
					return nil, fmt.Errorf("%w: colour %s: %v", pageseg.ErrConfig, name, err)
				}
			}
		}

		norm[strings.ToUpper(name)] = class
	}

	return &ColorMask{
		Colors: norm,
		log:    pageseg.OrNop(log),
	}, nil
}

// colorKey packs a pixel into a number ordered like its colour name
func colorKey(px []uint8, channels int) uint32 {

	// gocv pixels are stored as BGR(A)
	key := uint32(px[2])<<16 | uint32(px[1])<<8 | uint32(px[0])

	if channels == 4 {
		key = key<<8 | uint32(px[3])
	}

	return key
}

func colorName(key uint32, channels int) string {

	if channels == 4 {
		return fmt.Sprintf("#%08X", key)
	}

	return fmt.Sprintf("#%06X", key)
}

// Segments returns the outlines of every mapped colour of a BGR or BGRA
// image in ascending colour order.  A Border class outline is made from all
// non background pixels.
func (c *ColorMask) Segments(img gocv.Mat) ([]Segment, error) {

	if img.Empty() || (img.Type() != gocv.MatTypeCV8UC3 && img.Type() != gocv.MatTypeCV8UC4) {
		return nil, fmt.Errorf("segmentation image must be 8 bit BGR or BGRA")
	}

	data, err := img.DataPtrUint8()

	if err != nil {
		return nil, fmt.Errorf("error reading segmentation image: %w", err)
	}

	channels := img.Channels()
	width, height := img.Cols(), img.Rows()
	keys := make([]uint32, width*height)
	seen := make(map[uint32]bool)

	for i := range keys {
		keys[i] = colorKey(data[i*channels:], channels)
		seen[keys[i]] = true
	}

	colors := make([]uint32, 0, len(seen))
	background := make(map[uint32]bool)

	for key := range seen {
		if c.Colors[colorName(key, channels)] == "" {
			c.log.Infof("Ignoring background colour %s", colorName(key, channels))
			background[key] = true
			continue
		}
		colors = append(colors, key)
	}

	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })

	var out []Segment

	for _, key := range colors {
		class, subtype, _ := strings.Cut(c.Colors[colorName(key, channels)], ":")

		mask := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC1)
		pix, err := mask.DataPtrUint8()

		if err != nil {
			mask.Close()
			return nil, fmt.Errorf("error creating class mask: %w", err)
		}

		for i, k := range keys {
			if (class == BorderClass && !background[k]) || k == key {
				pix[i] = 1
			} else {
				pix[i] = 0
			}
		}

		segs := c.outlines(mask, class, subtype, width*height)
		mask.Close()

		out = append(out, segs...)
	}

	return out, nil
}

// outlines traces the external contours of a class mask
func (c *ColorMask) outlines(mask gocv.Mat, class, subtype string, total int) []Segment {

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var out []Segment

	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		pct := area / float64(total) * 100

		if area < minContourArea && pct < minContourPercent {
			c.log.Warnf("Ignoring contour of only %.1f%% area for %s", pct, class)
			continue
		}

		approx := gocv.ApproxPolyDP(contour, approxEpsilon, false)
		points := approx.ToPoints()
		approx.Close()

		if len(points) < minSegmentPoints {
			c.log.Warnf("Ignoring contour of only %d points (area %.1f%%) for %s", len(points), pct, class)
			continue
		}

		c.log.Infof("Found region %s:%s with area %.1f%%", class, subtype, pct)

		poly := make(geometry.Polygon, len(points))

		for j, pt := range points {
			poly[j] = geometry.Point{X: float64(pt.X), Y: float64(pt.Y)}
		}

		out = append(out, Segment{Class: class, Subtype: subtype, Polygon: poly})

		// only one border per page
		if class == BorderClass {
			break
		}
	}

	return out
}
