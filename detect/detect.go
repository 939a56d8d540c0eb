package detect

import (
	"context"

	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/postprocess"
	"github.com/swdee/go-pageseg/preprocess"
)

// Detector finds layout region instances on a page.  Instance masks are
// aligned to the page image and class 0, the background, is never returned.
type Detector interface {
	Detect(ctx context.Context, input *preprocess.Input) ([]postprocess.Instance, error)
	Close() error
}

// Segment is a region outline imported from a segmentation image
type Segment struct {
	// Class is the PAGE region element, such as "TextRegion", or "Border"
	Class string
	// Subtype refines the class, empty for none
	Subtype string
	// Polygon is the outline in image coordinates
	Polygon geometry.Polygon
}
