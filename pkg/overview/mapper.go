package overview

import (
	"math"

	"github.com/xaionaro-go/waveformview/pkg/waveform"
)

// CoordinateMapper converts between time (seconds) and horizontal pixel
// offsets for one specific dataset resolution. A new mapper has to be
// created whenever the active dataset changes.
type CoordinateMapper struct {
	sampleRate float64
	scale      float64
}

func NewCoordinateMapper(data waveform.Dataset) CoordinateMapper {
	return CoordinateMapper{
		sampleRate: float64(data.SampleRate()),
		scale:      float64(data.Scale()),
	}
}

// TimeToPixels rounds down: the conversion is not an exact inverse of
// PixelsToTime.
func (m CoordinateMapper) TimeToPixels(t float64) int {
	return int(math.Floor(t * m.sampleRate / m.scale))
}

// PixelsToTime does not clamp: callers are expected to pass offsets
// within [0, width].
func (m CoordinateMapper) PixelsToTime(pixels float64) float64 {
	return pixels * m.scale / m.sampleRate
}
