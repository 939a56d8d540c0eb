package render

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/page"
	"github.com/swdee/go-pageseg/postprocess"
	"gocv.io/x/gocv"
)

func whiteImage(width, height int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), height, width, gocv.MatTypeCV8UC3)
}

func requireColor(t *testing.T, img gocv.Mat, x, y int, r, g, b uint8) {
	t.Helper()

	px := img.GetVecbAt(y, x)
	require.Equal(t, []uint8{b, g, r}, []uint8{px[0], px[1], px[2]}, "pixel %d,%d", x, y)
}

func TestLayout(t *testing.T) {

	img := whiteImage(200, 200)
	defer img.Close()

	pg := page.New("p.png", 200, 200)
	r := page.NewRegion("r1", page.CategoryText, "address-rcpt", geometry.Rect(20, 100, 180, 180))
	r.AddLine(&page.Line{ID: "l1", Coords: geometry.Rect(40, 120, 160, 140)})
	r.SetConf(0.9)
	require.NoError(t, pg.AddRegion(r, ""))

	Layout(&img, pg, geometry.Identity(), DefaultFont(), 2)

	red := categoryColors[page.CategoryText]
	requireColor(t, img, 20, 150, red.R, red.G, red.B)
	requireColor(t, img, 40, 130, lineColor.R, lineColor.G, lineColor.B)
	requireColor(t, img, 100, 150, 255, 255, 255)
}

func TestInstanceMasks(t *testing.T) {

	img := whiteImage(50, 40)
	defer img.Close()

	m := postprocess.NewMask(50, 40)
	m.FillRect(image.Rect(10, 10, 20, 20))

	inst := postprocess.Instance{Class: 2, Probability: 0.8, Mask: m, Box: postprocess.BoxRect{Left: 10, Top: 10, Right: 20, Bottom: 20}}

	require.NoError(t, InstanceMasks(&img, []postprocess.Instance{inst}, 1))

	clr := classColor(2)
	requireColor(t, img, 15, 15, clr.R, clr.G, clr.B)
	requireColor(t, img, 30, 30, 255, 255, 255)

	bad := inst
	bad.Mask = postprocess.NewMask(10, 10)
	require.Error(t, InstanceMasks(&img, []postprocess.Instance{bad}, 1))

	require.NoError(t, InstanceOutlines(&img, []postprocess.Instance{inst}, []string{"", "a", "b"}, DefaultFont(), 1))

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, ToFile(path, img))
}

func TestColors(t *testing.T) {

	require.Equal(t, classColors[0], classColor(len(classColors)))
	require.Equal(t, Pink, categoryColor(page.Category(99)))

	for _, c := range page.Categories {
		_, ok := categoryColors[c]
		require.True(t, ok, c.String())
	}
}
