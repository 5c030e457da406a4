package rawpcm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/iamcalledrob/circular"
	"github.com/xaionaro-go/waveformview/pkg/audio/pcm"
	"github.com/xaionaro-go/waveformview/pkg/audio/types"
	"github.com/xaionaro-go/waveformview/pkg/waveform"
	"github.com/xaionaro-go/waveformview/pkg/waveform/registry"
)

const (
	Name = "rawpcm"

	DefaultBufferSize = 64 * 1024
)

// DefaultFormat is what the registered decoder assumes: there is no
// header in raw PCM to detect the format from.
var DefaultFormat = Format{
	SampleRate: 48000,
	Channels:   2,
	PCMFormat:  types.PCMFormatFloat32LE,
}

// Any byte stream is a valid raw PCM stream, so the decoder is never
// used for auto-detection.
func init() {
	registry.RegisterExplicitDecoderFactory(Name, DecoderFactory{})
}

// DecoderFactory creates decoders of the given format; zero values mean
// DefaultFormat and DefaultBufferSize.
type DecoderFactory struct {
	Format     Format
	BufferSize uint
}

func (f DecoderFactory) NewDecoder() (registry.Decoder, error) {
	format := f.Format
	if format == (Format{}) {
		format = DefaultFormat
	}
	bufferSize := f.BufferSize
	if bufferSize == 0 {
		bufferSize = DefaultBufferSize
	}
	return NewDecoder(format, bufferSize)
}

type Format struct {
	SampleRate types.SampleRate
	Channels   types.Channel
	PCMFormat  types.PCMFormat
}

type Decoder struct {
	Format     Format
	BufferSize uint
}

var _ registry.Decoder = (*Decoder)(nil)

func NewDecoder(format Format, bufferSize uint) (*Decoder, error) {
	if format.SampleRate == 0 {
		return nil, fmt.Errorf("sample rate is mandatory")
	}
	if format.Channels == 0 {
		return nil, fmt.Errorf("channels must be greater than 0")
	}
	frameSize := format.PCMFormat.Size() * uint(format.Channels)
	if frameSize == 0 {
		return nil, fmt.Errorf("unsupported PCM format: %v", format.PCMFormat)
	}
	if bufferSize < 2*frameSize {
		return nil, fmt.Errorf("buffer size %d is too small for frames of %d bytes", bufferSize, frameSize)
	}
	return &Decoder{
		Format:     format,
		BufferSize: bufferSize,
	}, nil
}

func (d *Decoder) Decode(
	ctx context.Context,
	r io.Reader,
	scale uint64,
) (_ret *waveform.Data, _err error) {
	logger.Tracef(ctx, "Decode(%#+v)", d.Format)
	defer func() { logger.Tracef(ctx, "/Decode(%#+v): %v", d.Format, _err) }()

	frame := pcm.Frame{
		PCMFormat: d.Format.PCMFormat,
		Channels:  d.Format.Channels,
	}
	frameSize := int(frame.Size())
	s := &decodeState{
		frame:    frame,
		builder:  waveform.NewBuilder(d.Format.SampleRate, scale),
		staging:  circular.NewBuffer(int(d.BufferSize)),
		frameBuf: make([]byte, int(d.BufferSize)/frameSize*frameSize),
	}

	// bytes that did not fit into the staging buffer yet
	var unwritten []byte
	readBuf := make([]byte, d.BufferSize)
	eof := false
	for !eof || len(unwritten) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if len(unwritten) == 0 {
			n, err := r.Read(readBuf)
			unwritten = readBuf[:n]
			switch {
			case errors.Is(err, io.EOF):
				eof = true
			case err != nil:
				return nil, fmt.Errorf("unable to read the input: %w", err)
			}
		}

		if len(unwritten) > 0 {
			w, err := s.staging.Write(unwritten)
			unwritten = unwritten[w:]
			if err != nil && !errors.Is(err, circular.ErrNoSpace) {
				return nil, fmt.Errorf("unable to write to the circular buffer: %w", err)
			}
		}

		if err := s.drainFrames(); err != nil {
			return nil, err
		}
	}
	if tail := s.staging.Len(); tail != 0 {
		logger.Debugf(ctx, "dropping a trailing incomplete frame of %d bytes", tail)
	}

	return s.builder.Build()
}

type decodeState struct {
	frame    pcm.Frame
	builder  *waveform.Builder
	staging  *circular.Buffer
	frameBuf []byte
	samples  []float64
	frames   uint64
}

// drainFrames moves all the complete frames out of the staging buffer
// into the builder; an incomplete frame stays in the staging buffer
// until the rest of it arrives.
func (s *decodeState) drainFrames() error {
	frameSize := int(s.frame.Size())
	for s.staging.Len() >= frameSize {
		toRead := min(s.staging.Len()/frameSize*frameSize, len(s.frameBuf))
		n, err := s.staging.Read(s.frameBuf[:toRead])
		if err != nil {
			return fmt.Errorf("unable to read from the circular buffer: %w", err)
		}
		if n != toRead {
			return fmt.Errorf("read less than available in the circular buffer: %d < %d", n, toRead)
		}

		var consumed int
		s.samples, consumed = s.frame.DecodeMono(s.samples[:0], s.frameBuf[:n])
		if consumed != n {
			return fmt.Errorf("internal error: decoded %d bytes out of %d", consumed, n)
		}
		for idx, v := range s.samples {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("frame #%d is not a finite number; the input is not %s PCM", s.frames+uint64(idx), s.frame.PCMFormat)
			}
		}
		s.frames += uint64(len(s.samples))
		s.builder.AddSamples(s.samples...)
	}
	return nil
}
