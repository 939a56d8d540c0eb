package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swdee/go-pageseg/detect"
	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/page"
)

func TestImportRegions(t *testing.T) {

	pg := page.New("seg.png", pageWidth, pageHeight)
	require.NoError(t, pg.AddRegion(page.NewRegion("region_1", page.CategoryText, "", geometry.Rect(0, 0, 10, 10)), ""))

	segments := []detect.Segment{
		{Class: detect.BorderClass, Polygon: geometry.Rect(5, 5, 195, 195)},
		{Class: "TextRegion", Subtype: "paragraph", Polygon: geometry.Rect(20, 20, 100, 60)},
		{Class: "TextRegion", Subtype: "address", Polygon: geometry.Rect(20, 80, 100, 120)},
		{Class: "ImageRegion", Polygon: geometry.Rect(120, 20, 180, 100)},
	}

	log := &recorder{}
	n, err := ImportRegions(pg, segments, log)

	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, geometry.Rect(5, 5, 195, 195), pg.Border)
	require.True(t, log.has("info", "Setting page border"))

	// region_1 is taken so numbering continues after it
	para, ok := pg.Region("region_2")
	require.True(t, ok)
	require.Equal(t, page.CategoryText, para.Category)
	require.Equal(t, "paragraph", para.Type)
	require.Empty(t, para.Custom)

	addr, ok := pg.Region("region_3")
	require.True(t, ok)
	require.Equal(t, "other", addr.Type)
	require.Equal(t, "subtype:address", addr.Custom)

	img, ok := pg.Region("region_4")
	require.True(t, ok)
	require.Equal(t, page.CategoryImage, img.Category)
	require.Equal(t, 4, pg.Len())
}

func TestImportRegionsUnknownClass(t *testing.T) {

	pg := page.New("seg.png", pageWidth, pageHeight)

	segments := []detect.Segment{
		{Class: "TextRegion", Polygon: geometry.Rect(20, 20, 100, 60)},
		{Class: "PosterRegion", Polygon: geometry.Rect(20, 80, 100, 120)},
	}

	n, err := ImportRegions(pg, segments, nil)

	require.ErrorIs(t, err, ErrUnknownClass)
	require.Equal(t, 1, n)
}
