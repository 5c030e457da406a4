package overview

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/waveformview/pkg/eventbus"
)

const (
	highlightOffsetY      = 11
	highlightOpacity      = 0.3
	highlightCornerRadius = 2
	highlightStrokeWidth  = 1
)

type highlightRegion struct {
	startTime float64
	endTime   float64
	rect      HighlightRect
}

// HighlightRect returns the rectangle marking the range of the zoomed
// view; false if the zoomed view has not reported its range yet.
func (o *Overview) HighlightRect() (HighlightRect, bool) {
	if o.highlight == nil {
		return HighlightRect{}, false
	}
	return o.highlight.rect, true
}

func (o *Overview) onZoomviewDisplaying(ctx context.Context, ev eventbus.ZoomviewDisplaying) {
	logger.Tracef(ctx, "onZoomviewDisplaying(%f, %f)", ev.StartTime, ev.EndTime)
	defer logger.Tracef(ctx, "/onZoomviewDisplaying(%f, %f)", ev.StartTime, ev.EndTime)
	if o.closed {
		return
	}

	if err := o.updateHighlight(ctx, ev.StartTime, ev.EndTime); err != nil {
		logger.Errorf(ctx, "%v", err)
	}
}

func (o *Overview) updateHighlight(ctx context.Context, startTime, endTime float64) error {
	if o.highlight == nil {
		// the vertical bounds and the style are fixed at creation
		o.highlight = &highlightRegion{
			rect: HighlightRect{
				Y:            highlightOffsetY,
				Height:       max(0, o.height-2*highlightOffsetY),
				Opacity:      highlightOpacity,
				CornerRadius: highlightCornerRadius,
				StrokeWidth:  highlightStrokeWidth,
				StrokeColor:  o.config.HighlightColor,
				FillColor:    o.config.HighlightColor,
			},
		}
	}
	o.highlight.startTime = startTime
	o.highlight.endTime = endTime
	return o.redrawHighlight(ctx)
}

func (o *Overview) redrawHighlight(ctx context.Context) error {
	if o.highlight == nil {
		return nil
	}

	startOffset := o.TimeToPixels(o.highlight.startTime)
	endOffset := o.TimeToPixels(o.highlight.endTime)
	o.highlight.rect.X = startOffset
	o.highlight.rect.Width = endOffset - startOffset

	o.layers.highlight.SetRect(o.highlight.rect)
	if err := o.layers.DrawLayer(ctx, ZIndexHighlight); err != nil {
		return fmt.Errorf("unable to redraw the highlight [%f, %f]: %w", o.highlight.startTime, o.highlight.endTime, err)
	}
	return nil
}
