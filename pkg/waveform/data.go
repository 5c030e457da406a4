package waveform

import (
	"fmt"

	"github.com/xaionaro-go/waveformview/pkg/audio/types"
)

// Data is a min/max peak summary of a mono (down-mixed) track. Values are
// in the range [-1, 1].
type Data struct {
	sampleRate types.SampleRate
	scale      uint64
	min        []float32
	max        []float32
}

var _ Dataset = (*Data)(nil)

func NewData(
	sampleRate types.SampleRate,
	scale uint64,
	min []float32,
	max []float32,
) (*Data, error) {
	if sampleRate == 0 {
		return nil, fmt.Errorf("sample rate is mandatory")
	}
	if scale == 0 {
		return nil, fmt.Errorf("scale must be greater than 0")
	}
	if len(min) != len(max) {
		return nil, fmt.Errorf("the lengths of min and max are not equal: %d != %d", len(min), len(max))
	}
	return &Data{
		sampleRate: sampleRate,
		scale:      scale,
		min:        min,
		max:        max,
	}, nil
}

func (d *Data) SampleRate() types.SampleRate {
	return d.sampleRate
}

func (d *Data) Scale() uint64 {
	return d.scale
}

func (d *Data) Length() int {
	return len(d.min)
}

func (d *Data) Duration() float64 {
	return float64(uint64(d.Length())*d.scale) / float64(d.sampleRate)
}

func (d *Data) Min(idx int) float32 {
	return d.min[idx]
}

func (d *Data) Max(idx int) float32 {
	return d.max[idx]
}

// Resample returns a dataset of (approximately) width pixels covering the
// whole track. Only down-sampling is possible: a resulting scale below
// the current one is an error.
func (d *Data) Resample(width int) (Dataset, error) {
	if width <= 0 {
		return nil, fmt.Errorf("width must be greater than 0, got %d", width)
	}
	if d.Length() == 0 {
		return nil, fmt.Errorf("unable to resample an empty dataset")
	}

	totalSamples := uint64(d.Length()) * d.scale
	scale := totalSamples / uint64(width)
	if scale < d.scale {
		return nil, fmt.Errorf("zoom level %d is too low, minimum: %d", scale, d.scale)
	}
	if scale == d.scale {
		return d, nil
	}

	length := int((totalSamples + scale - 1) / scale)
	mins := make([]float32, length)
	maxs := make([]float32, length)
	for idx := 0; idx < length; idx++ {
		startSample := uint64(idx) * scale
		endSample := min(startSample+scale, totalSamples)

		from := int(startSample / d.scale)
		to := int((endSample + d.scale - 1) / d.scale)
		lo, hi := d.min[from], d.max[from]
		for srcIdx := from + 1; srcIdx < to; srcIdx++ {
			lo = min(lo, d.min[srcIdx])
			hi = max(hi, d.max[srcIdx])
		}
		mins[idx] = lo
		maxs[idx] = hi
	}

	return &Data{
		sampleRate: d.sampleRate,
		scale:      scale,
		min:        mins,
		max:        maxs,
	}, nil
}
