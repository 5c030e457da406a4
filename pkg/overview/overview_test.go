package overview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/waveformview/pkg/eventbus"
	"github.com/xaionaro-go/waveformview/pkg/eventloop"
)

type testEnv struct {
	ctx       context.Context
	bus       *eventbus.Bus
	scheduler *eventloop.Manual
	factory   *layerFactoryMock
	container *containerMock
	player    *playerMock
	data      *datasetMock
}

func newTestEnv(width, height int) *testEnv {
	ctx := context.Background()
	factory := newLayerFactoryMock()
	return &testEnv{
		ctx:       ctx,
		bus:       eventbus.New(),
		scheduler: eventloop.NewManual(ctx),
		factory:   factory,
		container: &containerMock{width: width, height: height},
		player:    &playerMock{recorder: factory.recorder},
		// 10 seconds at 44100Hz: 441000 samples
		data: newDatasetMock(44100, 10),
	}
}

func (env *testEnv) newOverview(t *testing.T) *Overview {
	o, err := New(env.ctx, env.data, env.container, env.bus, env.scheduler, env.factory, Config{
		Player: env.player,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Close() })
	return o
}

func (env *testEnv) calls() []string {
	return env.factory.recorder.calls
}

func (env *testEnv) resetCalls() {
	env.factory.recorder.reset()
}

func (env *testEnv) resize(width int) {
	env.container.width = width
	eventbus.Publish(env.ctx, env.bus, eventbus.WindowResize{})
}

func TestNew(t *testing.T) {
	t.Run("resampled_to_container", func(t *testing.T) {
		env := newTestEnv(1000, 150)
		env.player.currentTime = 1.5
		o := env.newOverview(t)

		assert.Equal(t, 1, *env.data.resampleCount)
		assert.Equal(t, uint64(441), o.WaveformData().Scale())
		assert.Equal(t, 1000, o.Width())
		assert.Equal(t, 150, o.Height())
		assert.Equal(t, 0, o.FrameOffset())
		assert.Equal(t, 100, o.TimeToPixels(1))
		assert.Equal(t, 1.0, o.PixelsToTime(100))
		assert.Equal(t, 1.5, env.factory.playhead.time)
		assert.Equal(t, 1000, env.factory.surface.width)
		assert.Equal(t, 150, env.factory.surface.height)
		assert.Equal(t, DefaultWaveformColor, env.factory.waveform.color)
		assert.Equal(t, o.WaveformData(), env.factory.waveform.data)

		_, ok := o.HighlightRect()
		assert.False(t, ok)

		assert.Equal(t, []string{
			"waveform.SetWaveformData(441)",
			"waveform.Draw",
			"highlight.Draw",
			"points.Draw",
			"segments.Draw",
			"playhead.Draw",
		}, env.calls())
	})

	t.Run("zero_width", func(t *testing.T) {
		env := newTestEnv(0, 0)
		o := env.newOverview(t)

		assert.Equal(t, 0, *env.data.resampleCount)
		assert.Equal(t, uint64(1), o.WaveformData().Scale())
		assert.Equal(t, 0, o.Width())
		assert.Equal(t, DefaultHeight, o.Height())
	})

	t.Run("resample_error", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		*env.data.resampleErr = errors.New("unit-test")
		_, err := New(env.ctx, env.data, env.container, env.bus, env.scheduler, env.factory, Config{})
		require.Error(t, err)
		assert.Equal(t, 0, eventbus.Subscribers[eventbus.PlayerPlay](env.bus))
	})

	t.Run("layer_order", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		o := env.newOverview(t)

		assert.Equal(t, []Layer{
			env.factory.waveform,
			env.factory.highlight,
			env.factory.points,
			env.factory.segments,
			env.factory.playhead,
		}, o.Layers())
	})

	t.Run("no_markers", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		env.factory.noMarkers = true
		o := env.newOverview(t)

		assert.Equal(t, []Layer{
			env.factory.waveform,
			env.factory.highlight,
			env.factory.playhead,
		}, o.Layers())

		require.NoError(t, o.FitToContainer(env.ctx))
	})
}

func TestResize(t *testing.T) {
	t.Run("debounce", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		o := env.newOverview(t)

		env.resize(500)
		assert.Equal(t, 500, o.Width())
		assert.Equal(t, 500, env.factory.surface.width)
		assert.True(t, o.IsResamplePending())

		env.scheduler.Advance(ResizeDebounce - time.Millisecond)
		assert.Equal(t, 1, *env.data.resampleCount)
		assert.Equal(t, uint64(441), o.WaveformData().Scale())

		env.scheduler.Advance(time.Millisecond)
		assert.Equal(t, 2, *env.data.resampleCount)
		assert.Equal(t, uint64(882), o.WaveformData().Scale())
		assert.Equal(t, 50, o.TimeToPixels(1))
		assert.False(t, o.IsResamplePending())
	})

	t.Run("last_resize_wins", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		o := env.newOverview(t)

		env.resize(500)
		env.scheduler.Advance(300 * time.Millisecond)
		env.resize(800)
		env.scheduler.Advance(300 * time.Millisecond)
		assert.Equal(t, 1, *env.data.resampleCount)
		assert.Equal(t, 1, env.scheduler.Pending())

		env.scheduler.Advance(200 * time.Millisecond)
		assert.Equal(t, 2, *env.data.resampleCount)
		assert.Equal(t, uint64(441000/800), o.WaveformData().Scale())
		assert.Equal(t, 0, env.scheduler.Pending())
	})

	t.Run("zero_width_is_ignored", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		o := env.newOverview(t)
		env.resetCalls()

		env.resize(0)
		assert.False(t, o.IsResamplePending())
		assert.Equal(t, 1000, o.Width())
		assert.Empty(t, env.calls())

		env.scheduler.Advance(time.Second)
		assert.Equal(t, 1, *env.data.resampleCount)
	})

	t.Run("cascade", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		o := env.newOverview(t)
		eventbus.Publish(env.ctx, env.bus, eventbus.ZoomviewDisplaying{StartTime: 1, EndTime: 2})
		env.player.currentTime = 2.5

		env.resize(500)
		env.resetCalls()
		env.scheduler.Advance(ResizeDebounce)

		assert.Equal(t, []string{
			"waveform.SetWaveformData(882)",
			"waveform.Draw",
			"playhead.UpdatePlayheadTime(2.5)",
			"highlight.SetRect(50, 50)",
			"highlight.Draw",
			"points.UpdateMarkers(0, 10)",
			"segments.UpdateMarkers(0, 10)",
		}, env.calls())

		rect, ok := o.HighlightRect()
		require.True(t, ok)
		assert.Equal(t, 50, rect.X)
		assert.Equal(t, 50, rect.Width)
	})

	t.Run("cascade_without_highlight", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		env.newOverview(t)

		env.resize(500)
		env.resetCalls()
		env.scheduler.Advance(ResizeDebounce)

		assert.Equal(t, []string{
			"waveform.SetWaveformData(882)",
			"waveform.Draw",
			"playhead.UpdatePlayheadTime(0)",
			"points.UpdateMarkers(0, 10)",
			"segments.UpdateMarkers(0, 10)",
		}, env.calls())
	})

	t.Run("resample_error_keeps_data", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		o := env.newOverview(t)
		*env.data.resampleErr = errors.New("unit-test")

		env.resize(500)
		env.scheduler.Advance(ResizeDebounce)

		assert.Equal(t, 2, *env.data.resampleCount)
		assert.Equal(t, uint64(441), o.WaveformData().Scale())
		assert.Equal(t, 100, o.TimeToPixels(1))
		assert.False(t, o.IsResamplePending())

		env.scheduler.Advance(time.Minute)
		assert.Equal(t, 2, *env.data.resampleCount)
	})

	t.Run("fit_to_container", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		o := env.newOverview(t)

		env.resize(800)
		env.container.width = 500
		require.NoError(t, o.FitToContainer(env.ctx))

		assert.Equal(t, 2, *env.data.resampleCount)
		assert.Equal(t, uint64(882), o.WaveformData().Scale())
		assert.False(t, o.IsResamplePending())
		assert.Equal(t, 0, env.scheduler.Pending())
	})
}

func TestHighlight(t *testing.T) {
	t.Run("geometry_and_style", func(t *testing.T) {
		env := newTestEnv(1000, 200)
		o := env.newOverview(t)
		env.resetCalls()

		eventbus.Publish(env.ctx, env.bus, eventbus.ZoomviewDisplaying{StartTime: 1, EndTime: 2.5})

		assert.Equal(t, []string{
			"highlight.SetRect(100, 150)",
			"highlight.Draw",
		}, env.calls())

		rect, ok := o.HighlightRect()
		require.True(t, ok)
		assert.Equal(t, HighlightRect{
			X:            100,
			Y:            11,
			Width:        150,
			Height:       178,
			Opacity:      0.3,
			CornerRadius: 2,
			StrokeWidth:  1,
			StrokeColor:  DefaultHighlightColor,
			FillColor:    DefaultHighlightColor,
		}, rect)
		assert.Equal(t, rect, env.factory.highlight.rect)
	})

	t.Run("update_moves_horizontally_only", func(t *testing.T) {
		env := newTestEnv(1000, 200)
		o := env.newOverview(t)

		eventbus.Publish(env.ctx, env.bus, eventbus.ZoomviewDisplaying{StartTime: 1, EndTime: 2})
		eventbus.Publish(env.ctx, env.bus, eventbus.ZoomviewDisplaying{StartTime: 3, EndTime: 7})

		rect, ok := o.HighlightRect()
		require.True(t, ok)
		assert.Equal(t, 300, rect.X)
		assert.Equal(t, 400, rect.Width)
		assert.Equal(t, 11, rect.Y)
		assert.Equal(t, 178, rect.Height)
		assert.Equal(t, 2, env.factory.highlight.setCount)
	})

	t.Run("short_container", func(t *testing.T) {
		env := newTestEnv(1000, 10)
		o := env.newOverview(t)

		eventbus.Publish(env.ctx, env.bus, eventbus.ZoomviewDisplaying{StartTime: 0, EndTime: 1})

		rect, ok := o.HighlightRect()
		require.True(t, ok)
		assert.Equal(t, 0, rect.Height)
	})
}

func TestPlayhead(t *testing.T) {
	env := newTestEnv(1000, 100)
	env.newOverview(t)
	env.resetCalls()

	eventbus.Publish(env.ctx, env.bus, eventbus.PlayerPlay{Time: 1})
	eventbus.Publish(env.ctx, env.bus, eventbus.PlayerTimeUpdate{Time: 1.25})
	eventbus.Publish(env.ctx, env.bus, eventbus.PlayerPause{Time: 2})

	assert.Equal(t, []string{
		"playhead.Play(1)",
		"playhead.UpdatePlayheadTime(1.25)",
		"playhead.Pause(2)",
	}, env.calls())
	assert.False(t, env.factory.playhead.playing)
}

func TestPointer(t *testing.T) {
	t.Run("press_and_drag", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		o := env.newOverview(t)
		env.resetCalls()

		require.NoError(t, o.HandlePointerDown(env.ctx, 150))
		require.NoError(t, o.HandlePointerDrag(env.ctx, -5))
		require.NoError(t, o.HandlePointerDrag(env.ctx, 2000))

		assert.Equal(t, []string{
			"playhead.UpdatePlayheadTime(1.5)",
			"player.Seek(1.5)",
			"playhead.UpdatePlayheadTime(0)",
			"player.Seek(0)",
			"playhead.UpdatePlayheadTime(10)",
			"player.Seek(10)",
		}, env.calls())
		assert.Equal(t, []float64{1.5, 0, 10}, env.player.seeks)
	})

	t.Run("seek_disabled", func(t *testing.T) {
		env := newTestEnv(1000, 100)
		o := env.newOverview(t)
		env.resetCalls()

		o.EnableSeek(false)
		require.NoError(t, o.HandlePointerDown(env.ctx, 150))
		assert.Empty(t, env.player.seeks)
		assert.Empty(t, env.calls())

		o.EnableSeek(true)
		require.NoError(t, o.HandlePointerDown(env.ctx, 150))
		assert.Equal(t, []float64{1.5}, env.player.seeks)
	})
}

func TestSetWaveformColor(t *testing.T) {
	env := newTestEnv(1000, 100)
	o := env.newOverview(t)
	env.resetCalls()

	c := DefaultHighlightColor
	require.NoError(t, o.SetWaveformColor(env.ctx, c))
	assert.Equal(t, []string{"waveform.SetColor", "waveform.Draw"}, env.calls())
	assert.Equal(t, c, env.factory.waveform.color)
}

func TestClose(t *testing.T) {
	env := newTestEnv(1000, 100)
	o := env.newOverview(t)

	env.resize(500)
	require.Equal(t, 1, env.scheduler.Pending())

	require.NoError(t, o.Close())
	require.NoError(t, o.Close())

	assert.Equal(t, 0, env.scheduler.Pending())
	assert.Equal(t, 1, env.factory.surface.destroyCount)
	assert.Equal(t, 1, env.factory.playhead.closed)
	assert.Equal(t, 0, eventbus.Subscribers[eventbus.PlayerPlay](env.bus))
	assert.Equal(t, 0, eventbus.Subscribers[eventbus.PlayerPause](env.bus))
	assert.Equal(t, 0, eventbus.Subscribers[eventbus.PlayerTimeUpdate](env.bus))
	assert.Equal(t, 0, eventbus.Subscribers[eventbus.ZoomviewDisplaying](env.bus))
	assert.Equal(t, 0, eventbus.Subscribers[eventbus.WindowResize](env.bus))

	env.resetCalls()
	o.onPlayerPlay(env.ctx, eventbus.PlayerPlay{Time: 1})
	o.onZoomviewDisplaying(env.ctx, eventbus.ZoomviewDisplaying{StartTime: 1, EndTime: 2})
	o.onWindowResize(env.ctx, eventbus.WindowResize{})
	o.onResizeSettled(env.ctx)
	require.NoError(t, o.HandlePointerDown(env.ctx, 100))
	require.NoError(t, o.FitToContainer(env.ctx))
	require.NoError(t, o.Draw(env.ctx))

	assert.Empty(t, env.calls())
	assert.Empty(t, env.player.seeks)
	assert.Equal(t, 1, *env.data.resampleCount)
}
