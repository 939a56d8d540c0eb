package project

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/page"
)

func projector(t *testing.T, level Level, padding float64) *Projector {
	t.Helper()

	params := DefaultParams()
	params.Level = level
	params.Padding = padding

	p, err := New(params, nil)
	require.NoError(t, err)

	return p
}

// requireHull checks hull is a valid outline covering parts, staying inside
// bound which allows for the bridges between the parts
func requireHull(t *testing.T, hull, bound geometry.Polygon, parts ...geometry.Polygon) {
	t.Helper()

	require.True(t, hull.IsValid())
	require.True(t, geometry.Within(hull, bound, 0.01), "hull %v exceeds %v", hull, bound)

	for _, part := range parts {
		require.True(t, geometry.Within(part, hull, 0.01), "%v not covered by %v", part, hull)
	}
}

func textPage(t *testing.T) *page.Page {
	t.Helper()

	pg := page.New("p.png", 200, 200)

	r := page.NewRegion("r1", page.CategoryText, "", geometry.Rect(0, 0, 100, 100))
	r.AddLine(&page.Line{ID: "l1", Coords: geometry.Rect(10, 10, 90, 20), Words: []*page.Word{
		{ID: "w1", Coords: geometry.Rect(12, 11, 40, 19)},
		{ID: "w2", Coords: geometry.Rect(50, 12, 85, 18)},
	}})
	r.AddLine(&page.Line{ID: "l2", Coords: geometry.Rect(10, 30, 90, 40)})
	require.NoError(t, pg.AddRegion(r, ""))

	far := page.NewRegion("r2", page.CategoryText, "", geometry.Rect(150, 150, 160, 160))
	far.AddLine(&page.Line{ID: "l3", Coords: geometry.Rect(10, 150, 20, 160)})
	require.NoError(t, pg.AddRegion(far, ""))

	return pg
}

func TestProjectRegion(t *testing.T) {

	pg := textPage(t)

	n, err := projector(t, LevelRegion, 0).Process(pg)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	r1, _ := pg.Region("r1")
	requireHull(t, r1.Coords, geometry.Rect(6, 10, 94, 40), r1.Lines[0].Coords, r1.Lines[1].Coords)
	require.Less(t, r1.Coords.Area(), 2000.0)

	// the line of r2 lies outside of it so r2 keeps its outline
	r2, _ := pg.Region("r2")
	require.Equal(t, geometry.Rect(150, 150, 160, 160), r2.Coords)
}

func TestProjectRegionPadding(t *testing.T) {

	pg := textPage(t)

	_, err := projector(t, LevelRegion, 2).Process(pg)
	require.NoError(t, err)

	r1, _ := pg.Region("r1")
	requireHull(t, r1.Coords, geometry.Rect(4, 8, 96, 42), r1.Lines[0].Coords, r1.Lines[1].Coords)

	min, max := r1.Coords.Bounds()
	require.InDelta(t, 8, min.Y, 0.01)
	require.InDelta(t, 42, max.Y, 0.01)
}

func TestProjectLine(t *testing.T) {

	pg := textPage(t)

	n, err := projector(t, LevelLine, 0).Process(pg)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	r1, _ := pg.Region("r1")
	words := r1.Lines[0].Words
	requireHull(t, r1.Lines[0].Coords, geometry.Rect(12, 10, 85, 19), words[0].Coords, words[1].Coords)
	require.Equal(t, geometry.Rect(10, 30, 90, 40), r1.Lines[1].Coords)
}

func TestProjectPage(t *testing.T) {

	pg := page.New("p.png", 100, 100)
	require.NoError(t, pg.AddRegion(page.NewRegion("a", page.CategoryText, "", geometry.Rect(10, 10, 50, 50)), ""))
	require.NoError(t, pg.AddRegion(page.NewRegion("b", page.CategoryImage, "", geometry.Rect(60, 10, 90, 50)), ""))
	pg.Border = geometry.Rect(0, 0, 20, 20)

	n, err := projector(t, LevelPage, 0).Process(pg)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	requireHull(t, pg.Border, geometry.Rect(10, 6, 90, 54),
		geometry.Rect(10, 10, 50, 50), geometry.Rect(60, 10, 90, 50))
}

func TestProjectTable(t *testing.T) {

	pg := page.New("p.png", 300, 300)
	require.NoError(t, pg.AddRegion(page.NewRegion("tab", page.CategoryTable, "", geometry.Rect(0, 0, 200, 200)), ""))
	require.NoError(t, pg.AddRegion(page.NewRegion("c1", page.CategoryText, "", geometry.Rect(20, 20, 80, 60)), "tab"))
	require.NoError(t, pg.AddRegion(page.NewRegion("c2", page.CategoryText, "", geometry.Rect(100, 20, 180, 60)), "tab"))

	n, err := projector(t, LevelTable, 0).Process(pg)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	tab, _ := pg.Region("tab")
	requireHull(t, tab.Coords, geometry.Rect(20, 16, 180, 64),
		geometry.Rect(20, 20, 80, 60), geometry.Rect(100, 20, 180, 60))
}

func TestNewInvalidLevel(t *testing.T) {

	_, err := New(Params{Level: "glyph"}, nil)
	require.ErrorIs(t, err, pageseg.ErrConfig)
}
