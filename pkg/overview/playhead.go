package overview

import (
	"context"
	"fmt"
	"math"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/waveformview/pkg/eventbus"
)

func (o *Overview) onPlayerPlay(ctx context.Context, ev eventbus.PlayerPlay) {
	logger.Tracef(ctx, "onPlayerPlay(%f)", ev.Time)
	defer logger.Tracef(ctx, "/onPlayerPlay(%f)", ev.Time)
	if o.closed {
		return
	}
	if err := o.layers.playhead.Play(ctx, ev.Time); err != nil {
		logger.Errorf(ctx, "unable to start the playhead at %f: %v", ev.Time, err)
	}
}

func (o *Overview) onPlayerPause(ctx context.Context, ev eventbus.PlayerPause) {
	logger.Tracef(ctx, "onPlayerPause(%f)", ev.Time)
	defer logger.Tracef(ctx, "/onPlayerPause(%f)", ev.Time)
	if o.closed {
		return
	}
	if err := o.layers.playhead.Pause(ctx, ev.Time); err != nil {
		logger.Errorf(ctx, "unable to stop the playhead at %f: %v", ev.Time, err)
	}
}

func (o *Overview) onPlayerTimeUpdate(ctx context.Context, ev eventbus.PlayerTimeUpdate) {
	if o.closed {
		return
	}
	if err := o.layers.playhead.UpdatePlayheadTime(ctx, ev.Time); err != nil {
		logger.Errorf(ctx, "unable to move the playhead to %f: %v", ev.Time, err)
	}
}

// EnableSeek enables or disables seeking by pointer input. It is enabled
// by default.
func (o *Overview) EnableSeek(enable bool) {
	o.seekEnabled = enable
}

// HandlePointerDown is to be called when the pointer is pressed over the
// rendering surface at horizontal offset x.
func (o *Overview) HandlePointerDown(ctx context.Context, x float64) error {
	logger.Tracef(ctx, "HandlePointerDown(%f)", x)
	defer logger.Tracef(ctx, "/HandlePointerDown(%f)", x)
	return o.seekToPointer(ctx, x)
}

// HandlePointerDrag is to be called when the pressed pointer moves to
// horizontal offset x. The offset may be outside of the surface.
func (o *Overview) HandlePointerDrag(ctx context.Context, x float64) error {
	logger.Tracef(ctx, "HandlePointerDrag(%f)", x)
	defer logger.Tracef(ctx, "/HandlePointerDrag(%f)", x)
	return o.seekToPointer(ctx, x)
}

func (o *Overview) seekToPointer(ctx context.Context, x float64) error {
	if o.closed || !o.seekEnabled {
		return nil
	}
	if math.IsNaN(x) {
		return fmt.Errorf("invalid pointer position: %f", x)
	}

	x = max(0, min(float64(o.width), x))
	t := o.PixelsToTime(x)

	// the playhead is moved right away, without waiting for the player
	// to report the new position
	if err := o.layers.playhead.UpdatePlayheadTime(ctx, t); err != nil {
		return fmt.Errorf("unable to move the playhead to %f: %w", t, err)
	}
	if err := o.player.Seek(ctx, t); err != nil {
		return fmt.Errorf("unable to seek to %f: %w", t, err)
	}
	return nil
}
