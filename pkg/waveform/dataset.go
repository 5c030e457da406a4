package waveform

import (
	"github.com/xaionaro-go/waveformview/pkg/audio/types"
)

// Dataset is an immutable amplitude summary of an audio track: every
// pixel summarizes Scale() consecutive audio samples.
type Dataset interface {
	SampleRate() types.SampleRate

	// Scale is the amount of audio samples represented by one pixel.
	Scale() uint64

	// Length is the amount of pixels in the dataset.
	Length() int

	// Duration is the length of the summarized audio in seconds.
	Duration() float64

	// Resample derives a new dataset that fits into the given amount of
	// pixels. The receiver is never modified.
	Resample(width int) (Dataset, error)
}

/* for easier copy&paste:

func () SampleRate() types.SampleRate {
}

func () Scale() uint64 {
}

func () Length() int {
}

func () Duration() float64 {
}

func () Resample(width int) (waveform.Dataset, error) {
}

*/
