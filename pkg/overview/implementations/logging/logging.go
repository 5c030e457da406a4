// Package logging provides the layers of a view that do not render
// anything but report what would be rendered to the logger.
package logging

import (
	"context"
	"image/color"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/waveformview/pkg/overview"
	"github.com/xaionaro-go/waveformview/pkg/waveform"
)

type LayerFactory struct {
	// Level is the level the drawing is reported at.
	Level logger.Level
}

var _ overview.LayerFactory = (*LayerFactory)(nil)

func NewLayerFactory() *LayerFactory {
	return &LayerFactory{
		Level: logger.LevelInfo,
	}
}

func (f *LayerFactory) logf(ctx context.Context, format string, args ...any) {
	logger.Logf(ctx, f.Level, format, args...)
}

func (f *LayerFactory) NewSurface(ctx context.Context, width, height int) (overview.Surface, error) {
	f.logf(ctx, "surface: created %dx%d", width, height)
	return &Surface{factory: f, ctx: ctx, Width: width, Height: height}, nil
}

func (f *LayerFactory) NewWaveformLayer(
	ctx context.Context,
	view overview.View,
	c color.Color,
) (overview.WaveformLayer, error) {
	return &WaveformLayer{factory: f, view: view, data: view.WaveformData(), color: c}, nil
}

func (f *LayerFactory) NewHighlightLayer(
	ctx context.Context,
	view overview.View,
) (overview.HighlightLayer, error) {
	return &HighlightLayer{factory: f, view: view}, nil
}

func (f *LayerFactory) NewPointsLayer(
	ctx context.Context,
	view overview.View,
) (overview.MarkersLayer, error) {
	return &MarkersLayer{factory: f, view: view, name: "points"}, nil
}

func (f *LayerFactory) NewSegmentsLayer(
	ctx context.Context,
	view overview.View,
) (overview.MarkersLayer, error) {
	return &MarkersLayer{factory: f, view: view, name: "segments"}, nil
}

func (f *LayerFactory) NewPlayheadLayer(
	ctx context.Context,
	view overview.View,
	t float64,
) (overview.PlayheadLayer, error) {
	return &PlayheadLayer{factory: f, view: view, time: t}, nil
}

type Surface struct {
	factory *LayerFactory
	ctx     context.Context
	Width   int
	Height  int
}

var _ overview.Surface = (*Surface)(nil)

func (s *Surface) SetSize(width, height int) {
	s.Width, s.Height = width, height
	s.factory.logf(s.ctx, "surface: resized to %dx%d", width, height)
}

func (s *Surface) Destroy() error {
	s.factory.logf(s.ctx, "surface: destroyed")
	return nil
}

// peaks is implemented by the datasets that expose per-pixel values
// (e.g. *waveform.Data).
type peaks interface {
	Min(idx int) float32
	Max(idx int) float32
}

type WaveformLayer struct {
	factory *LayerFactory
	view    overview.View
	data    waveform.Dataset
	color   color.Color
}

var _ overview.WaveformLayer = (*WaveformLayer)(nil)

func (l *WaveformLayer) SetWaveformData(data waveform.Dataset) {
	l.data = data
}

func (l *WaveformLayer) SetColor(c color.Color) {
	l.color = c
}

func (l *WaveformLayer) Draw(ctx context.Context) error {
	if l.data == nil {
		return nil
	}
	r, g, b, a := l.color.RGBA()
	pixels := min(l.data.Length(), l.view.Width())
	p, ok := l.data.(peaks)
	if !ok || pixels == 0 {
		l.factory.logf(ctx, "waveform: %d px, scale %d, color rgba64(%d,%d,%d,%d)", pixels, l.data.Scale(), r, g, b, a)
		return nil
	}

	lo, hi := float32(1), float32(-1)
	for idx := 0; idx < pixels; idx++ {
		lo = min(lo, p.Min(idx))
		hi = max(hi, p.Max(idx))
	}
	l.factory.logf(ctx, "waveform: %d px, scale %d, range [%.3f, %.3f], color rgba64(%d,%d,%d,%d)", pixels, l.data.Scale(), lo, hi, r, g, b, a)
	return nil
}

type HighlightLayer struct {
	factory *LayerFactory
	view    overview.View
	rect    *overview.HighlightRect
}

var _ overview.HighlightLayer = (*HighlightLayer)(nil)

func (l *HighlightLayer) SetRect(rect overview.HighlightRect) {
	l.rect = &rect
}

func (l *HighlightLayer) Draw(ctx context.Context) error {
	if l.rect == nil {
		return nil
	}
	l.factory.logf(ctx, "highlight: x=%d y=%d w=%d h=%d (%.3fs..%.3fs)",
		l.rect.X, l.rect.Y, l.rect.Width, l.rect.Height,
		l.view.PixelsToTime(float64(l.rect.X)),
		l.view.PixelsToTime(float64(l.rect.X+l.rect.Width)),
	)
	return nil
}

// MarkersLayer has no markers to show; it only reports the time range
// it was asked to cover.
type MarkersLayer struct {
	factory   *LayerFactory
	view      overview.View
	name      string
	startTime float64
	endTime   float64
}

var _ overview.MarkersLayer = (*MarkersLayer)(nil)

func (l *MarkersLayer) UpdateMarkers(ctx context.Context, startTime, endTime float64) error {
	l.startTime, l.endTime = startTime, endTime
	return l.Draw(ctx)
}

func (l *MarkersLayer) Draw(ctx context.Context) error {
	l.factory.logf(ctx, "%s: range %.3fs..%.3fs", l.name, l.startTime, l.endTime)
	return nil
}

type PlayheadLayer struct {
	factory *LayerFactory
	view    overview.View
	time    float64
	playing bool
}

var _ overview.PlayheadLayer = (*PlayheadLayer)(nil)

func (l *PlayheadLayer) Play(ctx context.Context, t float64) error {
	l.time, l.playing = t, true
	return l.Draw(ctx)
}

func (l *PlayheadLayer) Pause(ctx context.Context, t float64) error {
	l.time, l.playing = t, false
	return l.Draw(ctx)
}

func (l *PlayheadLayer) UpdatePlayheadTime(ctx context.Context, t float64) error {
	l.time = t
	return l.Draw(ctx)
}

func (l *PlayheadLayer) Draw(ctx context.Context) error {
	state := "paused"
	if l.playing {
		state = "playing"
	}
	l.factory.logf(ctx, "playhead: %.3fs at x=%d (%s)", l.time, l.view.TimeToPixels(l.time), state)
	return nil
}
