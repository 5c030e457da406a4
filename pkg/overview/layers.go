package overview

import (
	"context"
	"image/color"

	"github.com/xaionaro-go/waveformview/pkg/waveform"
)

// View is the read-only contract the layers use to position themselves.
type View interface {
	TimeToPixels(t float64) int
	PixelsToTime(pixels float64) float64
	Width() int
	Height() int

	// FrameOffset is the horizontal scroll offset in pixels.
	FrameOffset() int

	WaveformData() waveform.Dataset
}

// Container is the host element the view is placed into.
type Container interface {
	// Size returns the current size of the container in pixels. Any of
	// the values may be zero (e.g. while the container is hidden).
	Size() (width, height int)
}

// Surface is the rendering target shared by all the layers.
type Surface interface {
	SetSize(width, height int)
	Destroy() error
}

type Layer interface {
	Draw(ctx context.Context) error
}

type WaveformLayer interface {
	Layer
	SetWaveformData(data waveform.Dataset)
	SetColor(c color.Color)
}

type HighlightLayer interface {
	Layer
	SetRect(rect HighlightRect)
}

// MarkersLayer is implemented by the point and the segment markers
// layers. Both of them redraw themselves on UpdateMarkers.
type MarkersLayer interface {
	Layer
	UpdateMarkers(ctx context.Context, startTime, endTime float64) error
}

type PlayheadLayer interface {
	Layer
	Play(ctx context.Context, t float64) error
	Pause(ctx context.Context, t float64) error
	UpdatePlayheadTime(ctx context.Context, t float64) error
}

// LayerFactory creates the rendering surface and the layers of a view.
// NewPointsLayer and NewSegmentsLayer may return nil layers (without an
// error) if markers are not supported.
type LayerFactory interface {
	NewSurface(ctx context.Context, width, height int) (Surface, error)
	NewWaveformLayer(ctx context.Context, view View, c color.Color) (WaveformLayer, error)
	NewHighlightLayer(ctx context.Context, view View) (HighlightLayer, error)
	NewPointsLayer(ctx context.Context, view View) (MarkersLayer, error)
	NewSegmentsLayer(ctx context.Context, view View) (MarkersLayer, error)
	NewPlayheadLayer(ctx context.Context, view View, t float64) (PlayheadLayer, error)
}

// HighlightRect is the rectangle marking the time range displayed by a
// zoomed view.
type HighlightRect struct {
	X            int
	Y            int
	Width        int
	Height       int
	Opacity      float64
	CornerRadius int
	StrokeWidth  int
	StrokeColor  color.Color
	FillColor    color.Color
}
