package vorbis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/jfreymuth/oggvorbis"
	"github.com/xaionaro-go/waveformview/pkg/audio/types"
	"github.com/xaionaro-go/waveformview/pkg/waveform"
	"github.com/xaionaro-go/waveformview/pkg/waveform/registry"
)

const (
	Name     = "vorbis"
	Priority = 50

	samplesPerRead = 4096
)

func init() {
	registry.RegisterDecoderFactory(Name, Priority, DecoderFactory{})
}

type DecoderFactory struct{}

func (DecoderFactory) NewDecoder() (registry.Decoder, error) {
	return Decoder{}, nil
}

type Decoder struct{}

var _ registry.Decoder = Decoder{}

func (Decoder) Decode(
	ctx context.Context,
	r io.Reader,
	scale uint64,
) (_ret *waveform.Data, _err error) {
	logger.Tracef(ctx, "Decode")
	defer func() { logger.Tracef(ctx, "/Decode: %v", _err) }()

	oggReader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a vorbis reader: %w", err)
	}
	return decodeSamples(ctx, oggReader, scale)
}

// sampleSource is the part of *oggvorbis.Reader used for decoding:
// interleaved float samples, a read may end in the middle of a frame.
type sampleSource interface {
	SampleRate() int
	Channels() int
	Read(p []float32) (int, error)
}

var _ sampleSource = (*oggvorbis.Reader)(nil)

func decodeSamples(
	ctx context.Context,
	src sampleSource,
	scale uint64,
) (*waveform.Data, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("invalid amount of channels: %d", channels)
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", src.SampleRate())
	}
	logger.Debugf(ctx, "vorbis stream: sample rate %d, channels %d", src.SampleRate(), channels)

	builder := waveform.NewBuilder(types.SampleRate(src.SampleRate()), scale)
	buf := make([]float32, samplesPerRead*channels)
	var (
		pending int
		mono    []float64
	)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		n, err := src.Read(buf[pending:])
		n += pending
		complete := n - n%channels
		mono = mono[:0]
		for idx := 0; idx < complete; idx += channels {
			var sum float64
			for ch := 0; ch < channels; ch++ {
				sum += float64(buf[idx+ch])
			}
			mono = append(mono, sum/float64(channels))
		}
		builder.AddSamples(mono...)
		pending = copy(buf, buf[complete:n])

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read the vorbis stream: %w", err)
		}
	}
	if pending != 0 {
		logger.Debugf(ctx, "dropping a trailing incomplete frame of %d samples", pending)
	}

	return builder.Build()
}
