package postprocess

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKernelScale(t *testing.T) {

	tests := []struct {
		area  int
		scale int
	}{
		{0, 1},
		{99, 1},
		{100, 1},
		{400, 3},
		{900, 3},
		{1600, 5},
		{3200, 5},
		{10000, 11},
	}

	for _, tc := range tests {
		require.Equal(t, tc.scale, KernelScale(tc.area), "area %d", tc.area)
	}
}

func TestDilateStepIsPure(t *testing.T) {

	m := rectMask(40, 40, image.Rect(10, 10, 20, 20))
	orig := m.Clone()

	out, contours, err := DilateStep(m, 3)
	require.NoError(t, err)
	require.Equal(t, orig.Pix, m.Pix)
	require.Len(t, contours, 1)
	require.Equal(t, image.Rect(9, 9, 21, 21), out.Bounds())
}

func TestMaskToPolygon(t *testing.T) {

	t.Run("single blob", func(t *testing.T) {
		m := rectMask(100, 100, image.Rect(20, 20, 40, 30))

		poly, err := MaskToPolygon(m, nil, nil)
		require.NoError(t, err)
		require.True(t, poly.IsValid())

		min, max := poly.Bounds()
		require.Equal(t, 20.0, min.X)
		require.Equal(t, 20.0, min.Y)
		require.Equal(t, 39.0, max.X)
		require.Equal(t, 29.0, max.Y)
	})

	t.Run("fragments merged", func(t *testing.T) {
		m := rectMask(128, 100,
			image.Rect(20, 20, 60, 60),
			image.Rect(63, 20, 103, 60),
		)

		poly, err := MaskToPolygon(m, nil, nil)
		require.NoError(t, err)
		require.True(t, poly.IsValid())

		min, max := poly.Bounds()
		require.LessOrEqual(t, min.X, 20.0)
		require.GreaterOrEqual(t, max.X, 102.0)
	})

	t.Run("widened over components", func(t *testing.T) {
		fg := rectMask(64, 64, image.Rect(10, 10, 20, 20))
		comps, err := NewComponents(fg)
		require.NoError(t, err)

		m := rectMask(64, 64, image.Rect(15, 15, 18, 18))

		poly, err := MaskToPolygon(m, comps, nil)
		require.NoError(t, err)

		min, max := poly.Bounds()
		require.Equal(t, 6.0, min.X)
		require.Equal(t, 6.0, min.Y)
		require.Equal(t, 23.0, max.X)
		require.Equal(t, 23.0, max.Y)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := MaskToPolygon(NewMask(10, 10), nil, nil)
		require.ErrorIs(t, err, ErrEmptyMask)
	})
}
