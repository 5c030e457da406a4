package pcm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/xaionaro-go/waveformview/pkg/audio/types"
)

// Float64 decodes a single sample in format f from the beginning of p
// into the range [-1, 1].
func Float64(f types.PCMFormat, p []byte) float64 {
	switch f {
	case types.PCMFormatU8:
		return (float64(p[0]) - 128) / 128
	case types.PCMFormatS16LE:
		return float64(int16(binary.LittleEndian.Uint16(p))) / 32768
	case types.PCMFormatS16BE:
		return float64(int16(binary.BigEndian.Uint16(p))) / 32768
	case types.PCMFormatS24LE:
		return s24(uint32(p[0])|uint32(p[1])<<8|uint32(p[2])<<16) / 8388608
	case types.PCMFormatS24BE:
		return s24(uint32(p[2])|uint32(p[1])<<8|uint32(p[0])<<16) / 8388608
	case types.PCMFormatS32LE:
		return float64(int32(binary.LittleEndian.Uint32(p))) / 2147483648
	case types.PCMFormatS32BE:
		return float64(int32(binary.BigEndian.Uint32(p))) / 2147483648
	case types.PCMFormatS64LE:
		return float64(int64(binary.LittleEndian.Uint64(p))) / 9223372036854775808
	case types.PCMFormatS64BE:
		return float64(int64(binary.BigEndian.Uint64(p))) / 9223372036854775808
	case types.PCMFormatFloat32LE:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(p)))
	case types.PCMFormatFloat32BE:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(p)))
	case types.PCMFormatFloat64LE:
		return math.Float64frombits(binary.LittleEndian.Uint64(p))
	case types.PCMFormatFloat64BE:
		return math.Float64frombits(binary.BigEndian.Uint64(p))
	default:
		panic(fmt.Sprintf("unknown format: %v", f))
	}
}

func s24(raw uint32) float64 {
	val := int32(raw)
	if val&0x800000 != 0 {
		val |= -16777216
	}
	return float64(val)
}

// Frame is a description of interleaved PCM frames: one sample per
// channel, each sample encoded in PCMFormat.
type Frame struct {
	PCMFormat types.PCMFormat
	Channels  types.Channel
}

func (f Frame) Size() uint {
	return f.PCMFormat.Size() * uint(f.Channels)
}

// Mono returns the average of all the channels of the frame at the
// beginning of p.
func (f Frame) Mono(p []byte) float64 {
	sampleSize := f.PCMFormat.Size()
	var sum float64
	for channelIdx := uint(0); channelIdx < uint(f.Channels); channelIdx++ {
		sum += Float64(f.PCMFormat, p[channelIdx*sampleSize:])
	}
	return sum / float64(f.Channels)
}

// DecodeMono decodes all the complete frames in p, down-mixed to mono,
// and appends them to dst. It returns the extended dst and the amount of
// bytes consumed from p.
func (f Frame) DecodeMono(dst []float64, p []byte) ([]float64, int) {
	frameSize := int(f.Size())
	if frameSize == 0 {
		return dst, 0
	}
	consumed := 0
	for consumed+frameSize <= len(p) {
		dst = append(dst, f.Mono(p[consumed:]))
		consumed += frameSize
	}
	return dst, consumed
}
