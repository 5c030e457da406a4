package pcm

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/waveformview/pkg/audio/types"
)

func TestFloat64(t *testing.T) {
	t.Run("U8", func(t *testing.T) {
		assert.InDelta(t, -1.0, Float64(types.PCMFormatU8, []byte{0}), 0.01)
		assert.InDelta(t, 0.0, Float64(types.PCMFormatU8, []byte{128}), 0.01)
		assert.InDelta(t, 1.0, Float64(types.PCMFormatU8, []byte{255}), 0.01)
	})

	t.Run("S16LE", func(t *testing.T) {
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(int16(-16384)))
		assert.InDelta(t, -0.5, Float64(types.PCMFormatS16LE, buf), 0.0001)
	})

	t.Run("S24BE_negative", func(t *testing.T) {
		// -4194304 == 0xC00000
		assert.InDelta(t, -0.5, Float64(types.PCMFormatS24BE, []byte{0xC0, 0x00, 0x00}), 0.0001)
	})

	t.Run("Float32LE", func(t *testing.T) {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(0.25))
		assert.Equal(t, 0.25, Float64(types.PCMFormatFloat32LE, buf))
	})
}

func TestFrameDecodeMono(t *testing.T) {
	f := Frame{PCMFormat: types.PCMFormatU8, Channels: 2}
	require.Equal(t, uint(2), f.Size())

	// the trailing byte is an incomplete frame
	samples, consumed := f.DecodeMono(nil, []byte{0, 255, 128, 128, 7})
	require.Equal(t, 4, consumed)
	require.Len(t, samples, 2)
	assert.InDelta(t, 0.0, samples[0], 0.01)
	assert.InDelta(t, 0.0, samples[1], 0.01)
}

func TestPCMFormatSet(t *testing.T) {
	var f types.PCMFormat
	require.NoError(t, f.Set("S16LE"))
	require.Equal(t, types.PCMFormatS16LE, f)
	require.Error(t, f.Set("s13le"))
}
