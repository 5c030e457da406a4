package overview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/waveformview/pkg/waveform"
)

func TestCoordinateMapper(t *testing.T) {
	b := waveform.NewBuilder(44100, 512)
	b.AddSamples(make([]float64, 44100)...)
	data, err := b.Build()
	require.NoError(t, err)

	m := NewCoordinateMapper(data)

	t.Run("TimeToPixels", func(t *testing.T) {
		assert.Equal(t, 86, m.TimeToPixels(1.0))
		assert.Equal(t, 0, m.TimeToPixels(0))
		assert.Equal(t, 43, m.TimeToPixels(0.5))
	})

	t.Run("PixelsToTime", func(t *testing.T) {
		assert.Equal(t, 0.0, m.PixelsToTime(0))
		assert.InDelta(t, 512.0/44100, m.PixelsToTime(1), 1e-12)
	})

	t.Run("round_trip", func(t *testing.T) {
		for p := 0; p < 10000; p++ {
			diff := m.TimeToPixels(m.PixelsToTime(float64(p))) - p
			require.LessOrEqual(t, diff, 1, "pixel %d", p)
			require.GreaterOrEqual(t, diff, -1, "pixel %d", p)
		}
	})
}
