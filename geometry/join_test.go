package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNearestPoints(t *testing.T) {

	pa, pb, d := NearestPoints(Rect(0, 0, 10, 10), Rect(20, 0, 30, 10))
	require.InDelta(t, 10, d, 1e-9)
	require.InDelta(t, 10, pa.X, 1e-9)
	require.InDelta(t, 20, pb.X, 1e-9)

	_, _, d = NearestPoints(Rect(0, 0, 10, 10), Rect(5, 5, 15, 15))
	require.Zero(t, d)

	_, _, d = NearestPoints(Rect(0, 0, 10, 10), Rect(2, 2, 8, 8))
	require.Zero(t, d)
}

func TestJoin(t *testing.T) {

	t.Run("single", func(t *testing.T) {
		p := Rect(0, 0, 10, 10)
		res, err := Join([]Polygon{p}, 10)
		require.NoError(t, err)
		require.Equal(t, p, res)
	})

	t.Run("bridged", func(t *testing.T) {
		res, err := Join([]Polygon{
			Rect(0, 0, 10, 10),
			Rect(20, 0, 30, 10),
			Rect(0, 30, 10, 40),
		}, 10)

		require.NoError(t, err)
		require.True(t, res.IsValid())
		require.Greater(t, res.Area(), 300.0)
	})

	t.Run("nothing valid", func(t *testing.T) {
		_, err := Join([]Polygon{{{0, 0}, {1, 1}}}, 10)
		require.ErrorIs(t, err, ErrInvalidPolygon)
	})
}
