package overview

import (
	"context"
	"fmt"
	"image/color"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
)

// ZIndex is a position in the layer stack; a higher value is drawn above
// a lower one.
type ZIndex int

const (
	ZIndexWaveform = ZIndex(iota)
	ZIndexHighlight
	ZIndexPoints
	ZIndexSegments
	ZIndexPlayhead
	endOfZIndex
)

func (z ZIndex) String() string {
	switch z {
	case ZIndexWaveform:
		return "waveform"
	case ZIndexHighlight:
		return "highlight"
	case ZIndexPoints:
		return "points"
	case ZIndexSegments:
		return "segments"
	case ZIndexPlayhead:
		return "playhead"
	default:
		return fmt.Sprintf("unknown_zindex_%d", int(z))
	}
}

// layerStack keeps the layers in their fixed order: the playhead must
// stay above the markers, the markers above the highlight, and the
// highlight above the waveform.
type layerStack struct {
	waveform  WaveformLayer
	highlight HighlightLayer
	points    MarkersLayer
	segments  MarkersLayer
	playhead  PlayheadLayer
}

func (s *layerStack) get(z ZIndex) Layer {
	switch z {
	case ZIndexWaveform:
		if s.waveform != nil {
			return s.waveform
		}
	case ZIndexHighlight:
		if s.highlight != nil {
			return s.highlight
		}
	case ZIndexPoints:
		if s.points != nil {
			return s.points
		}
	case ZIndexSegments:
		if s.segments != nil {
			return s.segments
		}
	case ZIndexPlayhead:
		if s.playhead != nil {
			return s.playhead
		}
	}
	return nil
}

// Layers returns the present layers bottom to top.
func (s *layerStack) Layers() []Layer {
	var result []Layer
	for z := ZIndex(0); z < endOfZIndex; z++ {
		if layer := s.get(z); layer != nil {
			result = append(result, layer)
		}
	}
	return result
}

func (s *layerStack) Draw(ctx context.Context) error {
	var mErr *multierror.Error
	for z := ZIndex(0); z < endOfZIndex; z++ {
		if err := s.DrawLayer(ctx, z); err != nil {
			mErr = multierror.Append(mErr, err)
		}
	}
	return mErr.ErrorOrNil()
}

func (s *layerStack) DrawLayer(ctx context.Context, z ZIndex) error {
	layer := s.get(z)
	if layer == nil {
		return nil
	}
	if err := layer.Draw(ctx); err != nil {
		return fmt.Errorf("unable to draw the %s layer: %w", z, err)
	}
	return nil
}

// redrawAll brings every layer in line with the active dataset, bottom
// to top.
func (o *Overview) redrawAll(ctx context.Context) (_err error) {
	logger.Tracef(ctx, "redrawAll")
	defer func() { logger.Tracef(ctx, "/redrawAll: %v", _err) }()

	var mErr *multierror.Error

	o.layers.waveform.SetWaveformData(o.data)
	if err := o.layers.DrawLayer(ctx, ZIndexWaveform); err != nil {
		mErr = multierror.Append(mErr, err)
	}

	playheadTime := o.player.CurrentTime(ctx)
	if err := o.layers.playhead.UpdatePlayheadTime(ctx, playheadTime); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("unable to move the playhead to %f: %w", playheadTime, err))
	}

	if err := o.redrawHighlight(ctx); err != nil {
		mErr = multierror.Append(mErr, err)
	}

	frameStartTime := 0.0
	frameEndTime := o.PixelsToTime(float64(o.width))
	if o.layers.points != nil {
		if err := o.layers.points.UpdateMarkers(ctx, frameStartTime, frameEndTime); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to update the points: %w", err))
		}
	}
	if o.layers.segments != nil {
		if err := o.layers.segments.UpdateMarkers(ctx, frameStartTime, frameEndTime); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to update the segments: %w", err))
		}
	}

	return mErr.ErrorOrNil()
}

// Layers returns the layers of the view bottom to top.
func (o *Overview) Layers() []Layer {
	return o.layers.Layers()
}

// Draw draws every layer bottom to top.
func (o *Overview) Draw(ctx context.Context) error {
	if o.closed {
		return nil
	}
	return o.layers.Draw(ctx)
}

// SetWaveformColor changes the color of the waveform shape; only the
// waveform layer is redrawn.
func (o *Overview) SetWaveformColor(ctx context.Context, c color.Color) error {
	if o.closed {
		return nil
	}
	o.config.WaveformColor = c
	o.layers.waveform.SetColor(c)
	return o.layers.DrawLayer(ctx, ZIndexWaveform)
}
