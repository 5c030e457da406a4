package overview

import (
	"context"
	"fmt"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/waveformview/pkg/eventbus"
)

// ResizeDebounce is how long the container size has to stay the same
// before the waveform data is resampled to the new width.
const ResizeDebounce = 500 * time.Millisecond

// IsResamplePending returns true if a resize happened and the waveform
// data was not resampled for it yet.
func (o *Overview) IsResamplePending() bool {
	return o.resizeTimer != nil
}

func (o *Overview) onWindowResize(ctx context.Context, _ eventbus.WindowResize) {
	logger.Tracef(ctx, "onWindowResize")
	defer logger.Tracef(ctx, "/onWindowResize")
	if o.closed {
		return
	}

	width, _ := o.container.Size()
	if width == 0 {
		// a zero-width dataset is useless, keep the current one
		logger.Debugf(ctx, "ignoring the resize to zero width")
		return
	}

	o.width = width
	o.surface.SetSize(o.width, o.height)

	o.cancelResize()
	o.resizeTimer = o.scheduler.AfterFunc(ResizeDebounce, o.onResizeSettled)
	logger.Debugf(ctx, "resampling to width %d is scheduled", width)
}

func (o *Overview) onResizeSettled(ctx context.Context) {
	logger.Tracef(ctx, "onResizeSettled")
	defer logger.Tracef(ctx, "/onResizeSettled")

	o.resizeTimer = nil
	if o.closed {
		return
	}

	if err := o.resample(ctx); err != nil {
		logger.Errorf(ctx, "%v", err)
	}
}

func (o *Overview) resample(ctx context.Context) error {
	data, err := o.originalData.Resample(o.width)
	if err != nil {
		return fmt.Errorf("unable to resample the waveform data to width %d: %w", o.width, err)
	}
	o.data = data
	o.mapper = NewCoordinateMapper(data)
	logger.Debugf(ctx, "resampled to width %d: scale %d, length %d", o.width, data.Scale(), data.Length())

	if err := o.redrawAll(ctx); err != nil {
		return fmt.Errorf("unable to redraw the view: %w", err)
	}
	return nil
}

func (o *Overview) cancelResize() {
	if o.resizeTimer == nil {
		return
	}
	o.resizeTimer.Stop()
	o.resizeTimer = nil
}

// FitToContainer re-reads the container size and resamples immediately,
// without waiting for the resize to settle.
func (o *Overview) FitToContainer(ctx context.Context) error {
	logger.Tracef(ctx, "FitToContainer")
	defer logger.Tracef(ctx, "/FitToContainer")
	if o.closed {
		return nil
	}

	width, _ := o.container.Size()
	if width == 0 {
		logger.Debugf(ctx, "ignoring the fit to zero width")
		return nil
	}

	o.cancelResize()
	o.width = width
	o.surface.SetSize(o.width, o.height)
	return o.resample(ctx)
}
