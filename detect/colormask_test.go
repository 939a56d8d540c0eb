package detect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swdee/go-pageseg"
	"gocv.io/x/gocv"
)

func segmentationImage(t *testing.T) gocv.Mat {
	t.Helper()

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 100, 200, gocv.MatTypeCV8UC3)

	// gocv drawing takes RGBA colours and stores them as BGR
	gocv.Rectangle(&img, image.Rect(10, 10, 60, 40), color.RGBA{R: 255, A: 255}, -1)
	gocv.Rectangle(&img, image.Rect(100, 20, 180, 80), color.RGBA{G: 255, A: 255}, -1)
	gocv.Rectangle(&img, image.Rect(10, 60, 40, 90), color.RGBA{B: 255, A: 255}, -1)
	// too small to be a region
	gocv.Rectangle(&img, image.Rect(70, 70, 74, 74), color.RGBA{R: 255, A: 255}, -1)

	return img
}

func TestColorMask(t *testing.T) {

	img := segmentationImage(t)
	defer img.Close()

	cm, err := NewColorMask(map[string]string{
		"#ff0000": "TextRegion:paragraph",
		"#00FF00": "ImageRegion",
		"#FFFFFF": "",
	}, nil)
	require.NoError(t, err)

	segs, err := cm.Segments(img)
	require.NoError(t, err)
	require.Len(t, segs, 2)

	// ascending colour order puts green before red
	require.Equal(t, "ImageRegion", segs[0].Class)
	require.Empty(t, segs[0].Subtype)
	require.Equal(t, "TextRegion", segs[1].Class)
	require.Equal(t, "paragraph", segs[1].Subtype)

	min, max := segs[1].Polygon.Bounds()
	require.Equal(t, 10.0, min.X)
	require.Equal(t, 10.0, min.Y)
	require.Equal(t, 60.0, max.X)
	require.Equal(t, 40.0, max.Y)
	require.GreaterOrEqual(t, len(segs[1].Polygon), 4)
}

func TestColorMaskBorder(t *testing.T) {

	img := segmentationImage(t)
	defer img.Close()

	cm, err := NewColorMask(map[string]string{
		"#0000FF": "Border",
		"#FF0000": "TextRegion",
	}, nil)
	require.NoError(t, err)

	segs, err := cm.Segments(img)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	require.Equal(t, BorderClass, segs[0].Class)
	require.Equal(t, "TextRegion", segs[1].Class)
}

func TestColorMaskErrors(t *testing.T) {

	_, err := NewColorMask(map[string]string{"#000000": "Paragraph"}, nil)
	require.ErrorIs(t, err, pageseg.ErrConfig)

	cm, err := NewColorMask(nil, nil)
	require.NoError(t, err)

	grey := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer grey.Close()

	_, err = cm.Segments(grey)
	require.Error(t, err)
}
