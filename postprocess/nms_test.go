package postprocess

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuppress(t *testing.T) {

	big := rectMask(20, 20, image.Rect(0, 0, 10, 10))
	overlap := rectMask(20, 20, image.Rect(0, 0, 10, 7))
	apart := rectMask(20, 20, image.Rect(12, 12, 20, 20))

	t.Run("lower confidence suppressed", func(t *testing.T) {
		worse := Suppress([]Instance{
			{Class: 1, Probability: 0.9, Mask: big},
			{Class: 1, Probability: 0.6, Mask: overlap},
		}, 0.5)
		require.Equal(t, []bool{false, true}, worse)

		worse = Suppress([]Instance{
			{Class: 1, Probability: 0.6, Mask: overlap},
			{Class: 2, Probability: 0.9, Mask: big},
		}, 0.5)
		require.Equal(t, []bool{true, false}, worse)
	})

	t.Run("tie suppresses later", func(t *testing.T) {
		worse := Suppress([]Instance{
			{Probability: 0.7, Mask: big},
			{Probability: 0.7, Mask: overlap},
		}, 0.5)
		require.Equal(t, []bool{false, true}, worse)
	})

	t.Run("below threshold kept", func(t *testing.T) {
		worse := Suppress([]Instance{
			{Probability: 0.9, Mask: big},
			{Probability: 0.6, Mask: overlap},
			{Probability: 0.5, Mask: apart},
		}, 0.75)
		require.Equal(t, []bool{false, false, false}, worse)
	})
}
