package waveform

import (
	"fmt"

	"github.com/xaionaro-go/waveformview/pkg/audio/types"
)

// Builder collects mono samples and summarizes each Scale consecutive
// samples into one min/max pixel.
type Builder struct {
	sampleRate types.SampleRate
	scale      uint64

	count  uint64
	curMin float64
	curMax float64
	min    []float32
	max    []float32
}

func NewBuilder(sampleRate types.SampleRate, scale uint64) *Builder {
	return &Builder{
		sampleRate: sampleRate,
		scale:      scale,
	}
}

func (b *Builder) AddSamples(samples ...float64) {
	for _, v := range samples {
		v = max(-1, min(1, v))
		if b.count == 0 {
			b.curMin, b.curMax = v, v
		} else {
			b.curMin = min(b.curMin, v)
			b.curMax = max(b.curMax, v)
		}
		b.count++
		if b.count == b.scale {
			b.closePixel()
		}
	}
}

func (b *Builder) closePixel() {
	b.min = append(b.min, float32(b.curMin))
	b.max = append(b.max, float32(b.curMax))
	b.count = 0
}

// Build flushes the trailing partial pixel (if any) and returns the
// dataset. The builder must not be used afterwards.
func (b *Builder) Build() (*Data, error) {
	if b.count > 0 {
		b.closePixel()
	}
	if len(b.min) == 0 {
		return nil, fmt.Errorf("no samples were added")
	}
	return NewData(b.sampleRate, b.scale, b.min, b.max)
}
