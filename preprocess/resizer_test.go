package preprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swdee/go-pageseg/postprocess"
	"gocv.io/x/gocv"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestLetterBoxResize(t *testing.T) {

	tests := []struct {
		srcWidth      int
		srcHeight     int
		resizeWidth   int
		resizeHeight  int
		expectedXPad  int
		expectedYPad  int
		expectedScale float32
	}{
		{1280, 720, 640, 640, 0, 140, 0.50},
		{800, 1000, 640, 640, 64, 0, 0.64},
		{800, 800, 640, 640, 0, 0, 0.8},
	}

	for _, tc := range tests {
		img := gocv.NewMatWithSize(tc.srcHeight, tc.srcWidth, gocv.MatTypeCV8UC3)
		resizedImg := gocv.NewMat()
		resizer := NewResizer(tc.srcWidth, tc.srcHeight, tc.resizeWidth, tc.resizeHeight)

		resizer.LetterBoxResize(img, &resizedImg, white)

		require.Equal(t, tc.expectedXPad, resizer.XPad(), "src %dx%d", tc.srcWidth, tc.srcHeight)
		require.Equal(t, tc.expectedYPad, resizer.YPad(), "src %dx%d", tc.srcWidth, tc.srcHeight)
		require.Equal(t, tc.expectedScale, resizer.ScaleFactor())
		require.Equal(t, tc.resizeWidth, resizedImg.Cols())
		require.Equal(t, tc.resizeHeight, resizedImg.Rows())

		img.Close()
		resizedImg.Close()
		resizer.Close()
	}
}

func TestReverseMask(t *testing.T) {

	// a 200x100 page letterboxed into 100x100 gives scale 0.5 and 25px of
	// padding above and below
	resizer := NewResizer(200, 100, 100, 100)
	defer resizer.Close()

	require.Equal(t, 25, resizer.YPad())

	m := postprocess.NewMask(100, 100)
	m.FillRect(image.Rect(10, 35, 30, 45))

	restored, err := resizer.ReverseMask(m)
	require.NoError(t, err)
	require.Equal(t, 200, restored.Width)
	require.Equal(t, 100, restored.Height)
	require.Equal(t, image.Rect(20, 20, 60, 40), restored.Bounds())

	_, err = resizer.ReverseMask(postprocess.NewMask(50, 50))
	require.Error(t, err)

	box := resizer.ReverseBox(postprocess.BoxRect{Left: 10, Top: 35, Right: 30, Bottom: 45})
	require.Equal(t, postprocess.BoxRect{Left: 20, Top: 20, Right: 60, Bottom: 40}, box)

	box = resizer.ReverseBox(postprocess.BoxRect{Left: 0, Top: 0, Right: 100, Bottom: 100})
	require.Equal(t, postprocess.BoxRect{Left: 0, Top: 0, Right: 200, Bottom: 100}, box)
}
