package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/waveformview/pkg/eventbus"
	"github.com/xaionaro-go/waveformview/pkg/eventloop"
	"github.com/xaionaro-go/waveformview/pkg/overview"
	"github.com/xaionaro-go/waveformview/pkg/waveform"
)

type clockMock struct {
	time    float64
	playing bool
	seeks   []float64
}

func (c *clockMock) CurrentTime(context.Context) float64 { return c.time }
func (c *clockMock) Play(context.Context)                { c.playing = true }
func (c *clockMock) Pause(context.Context)               { c.playing = false }
func (c *clockMock) IsPlaying() bool                     { return c.playing }
func (c *clockMock) Seek(_ context.Context, t float64) error {
	c.seeks = append(c.seeks, t)
	c.time = t
	return nil
}

func newTestApp(t *testing.T) (*app, *eventloop.Manual, *clockMock) {
	ctx := context.Background()

	b := waveform.NewBuilder(1000, 1)
	b.AddSamples(make([]float64, 10000)...)
	data, err := b.Build()
	require.NoError(t, err)

	bus := eventbus.New()
	scheduler := eventloop.NewManual(ctx)
	clk := &clockMock{}
	window := &container{width: 100, height: 50}
	o, err := overview.New(ctx, data, window, bus, scheduler, overview.LayerFactoryDummy{}, overview.Config{Player: clk})
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Close() })

	return &app{
		bus:       bus,
		clock:     clk,
		container: window,
		overview:  o,
	}, scheduler, clk
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	a, scheduler, clk := newTestApp(t)
	var out bytes.Buffer

	exec := func(line string) {
		t.Helper()
		quit, err := a.Execute(ctx, line, &out)
		require.NoError(t, err, line)
		require.False(t, quit, line)
	}

	exec("")
	exec("resize 200")
	assert.Equal(t, 200, a.overview.Width())
	assert.True(t, a.overview.IsResamplePending())
	scheduler.Advance(overview.ResizeDebounce)
	assert.Equal(t, uint64(50), a.overview.WaveformData().Scale())

	exec("resize 100 80")
	exec("fit")
	assert.Equal(t, uint64(100), a.overview.WaveformData().Scale())
	assert.False(t, a.overview.IsResamplePending())

	exec("zoom 1 2")
	rect, ok := a.overview.HighlightRect()
	require.True(t, ok)
	assert.Equal(t, 10, rect.X)
	assert.Equal(t, 10, rect.Width)

	exec("play")
	assert.True(t, clk.playing)
	exec("pause")
	assert.False(t, clk.playing)

	exec("seek 3.5")
	exec("press 50")
	exec("drag 500")
	assert.Equal(t, []float64{3.5, 5, 10}, clk.seeks)

	exec("color #ff0000")
	exec("status")
	assert.Contains(t, out.String(), "size: 100x50")
	assert.Contains(t, out.String(), "highlight: x=10 w=10")

	quit, err := a.Execute(ctx, "quit", &out)
	require.NoError(t, err)
	assert.True(t, quit)

	for _, line := range []string{
		"unknown",
		"resize",
		"resize -1",
		"resize abc",
		"zoom 1",
		"seek x",
		"press",
		"color",
		"color notacolor",
	} {
		_, err := a.Execute(ctx, line, &out)
		assert.Error(t, err, line)
	}
}
