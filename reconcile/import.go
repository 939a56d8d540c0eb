package reconcile

import (
	"fmt"

	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/detect"
	"github.com/swdee/go-pageseg/page"
	"github.com/swdee/go-pageseg/postprocess/result"
)

// ImportRegions adds a top level region for every segment, or sets the page
// border for segments of detect.BorderClass.  Region ids are "region_N"
// numbered in segment order, skipping ids already in use.  It returns the
// number of regions added.
func ImportRegions(pg *page.Page, segments []detect.Segment, log pageseg.Logger) (int, error) {

	log = pageseg.OrNop(log)
	ids := result.NewIDGenerator("region_%d")
	added := 0

	for _, seg := range segments {

		if seg.Class == detect.BorderClass {
			log.Infof("Setting page border from %d points", len(seg.Polygon))
			pg.Border = seg.Polygon.Clone()
			continue
		}

		cat, err := page.ParseCategory(seg.Class)

		if err != nil {
			return added, fmt.Errorf("%w: %v", ErrUnknownClass, err)
		}

		id := ids.GetNext()

		for {
			if _, ok := pg.Region(id); !ok {
				break
			}
			id = ids.GetNext()
		}

		region := page.NewRegion(id, cat, seg.Subtype, seg.Polygon.Clone())

		if err := pg.AddRegion(region, ""); err != nil {
			return added, err
		}

		log.Debugf("Added %s region %q type %q custom %q", cat, id, region.Type, region.Custom)
		added++
	}

	return added, nil
}
