// Package overview implements the whole-track miniature view of a
// waveform: it keeps the coordinate mapping in line with the container
// size, mirrors the range shown by a zoomed view, follows the playback
// position and turns pointer input into seek requests.
//
// Drawing is delegated to the layers created by a LayerFactory. All the
// methods and all the event handlers must be called from the same event
// loop; there is no locking inside.
package overview

import (
	"context"
	"fmt"
	"io"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/waveformview/pkg/eventbus"
	"github.com/xaionaro-go/waveformview/pkg/eventloop"
	"github.com/xaionaro-go/waveformview/pkg/player"
	"github.com/xaionaro-go/waveformview/pkg/waveform"
)

type Overview struct {
	ctx       context.Context
	config    Config
	container Container
	scheduler eventloop.Scheduler
	player    player.Player

	originalData waveform.Dataset
	data         waveform.Dataset
	mapper       CoordinateMapper
	width        int
	height       int

	surface     Surface
	layers      layerStack
	resizeTimer eventloop.Timer
	highlight   *highlightRegion
	seekEnabled bool

	subscriptions []*eventbus.Subscription
	closed        bool
}

var _ View = (*Overview)(nil)

func New(
	ctx context.Context,
	data waveform.Dataset,
	container Container,
	bus *eventbus.Bus,
	scheduler eventloop.Scheduler,
	layerFactory LayerFactory,
	cfg Config,
) (_ret *Overview, _err error) {
	logger.Tracef(ctx, "New")
	defer func() { logger.Tracef(ctx, "/New: %v", _err) }()

	cfg = cfg.withDefaults()
	width, height := container.Size()
	if height == 0 {
		height = cfg.Height
	}

	o := &Overview{
		ctx:          ctx,
		config:       cfg,
		container:    container,
		scheduler:    scheduler,
		player:       cfg.Player,
		originalData: data,
		data:         data,
		width:        width,
		height:       height,
		seekEnabled:  true,
	}
	if width > 0 {
		resampled, err := data.Resample(width)
		if err != nil {
			return nil, fmt.Errorf("unable to resample the waveform data to width %d: %w", width, err)
		}
		o.data = resampled
	} else {
		logger.Debugf(ctx, "the container has zero width, using the original waveform data until it is resized")
	}
	o.mapper = NewCoordinateMapper(o.data)

	if err := o.init(ctx, bus, layerFactory); err != nil {
		if closeErr := o.Close(); closeErr != nil {
			logger.Errorf(ctx, "unable to release the partially initialized view: %v", closeErr)
		}
		return nil, err
	}
	return o, nil
}

func (o *Overview) init(
	ctx context.Context,
	bus *eventbus.Bus,
	layerFactory LayerFactory,
) error {
	var err error
	o.surface, err = layerFactory.NewSurface(ctx, o.width, o.height)
	if err != nil {
		return fmt.Errorf("unable to create the rendering surface: %w", err)
	}

	o.layers.waveform, err = layerFactory.NewWaveformLayer(ctx, o, o.config.WaveformColor)
	if err != nil {
		return fmt.Errorf("unable to create the waveform layer: %w", err)
	}
	o.layers.waveform.SetWaveformData(o.data)

	o.layers.highlight, err = layerFactory.NewHighlightLayer(ctx, o)
	if err != nil {
		return fmt.Errorf("unable to create the highlight layer: %w", err)
	}

	o.layers.points, err = layerFactory.NewPointsLayer(ctx, o)
	if err != nil {
		return fmt.Errorf("unable to create the points layer: %w", err)
	}

	o.layers.segments, err = layerFactory.NewSegmentsLayer(ctx, o)
	if err != nil {
		return fmt.Errorf("unable to create the segments layer: %w", err)
	}

	o.layers.playhead, err = layerFactory.NewPlayheadLayer(ctx, o, o.player.CurrentTime(ctx))
	if err != nil {
		return fmt.Errorf("unable to create the playhead layer: %w", err)
	}

	o.subscriptions = append(o.subscriptions,
		eventbus.Subscribe(bus, o.onPlayerPlay),
		eventbus.Subscribe(bus, o.onPlayerPause),
		eventbus.Subscribe(bus, o.onPlayerTimeUpdate),
		eventbus.Subscribe(bus, o.onZoomviewDisplaying),
		eventbus.Subscribe(bus, o.onWindowResize),
	)

	if err := o.layers.Draw(ctx); err != nil {
		return fmt.Errorf("unable to draw the view: %w", err)
	}
	return nil
}

func (o *Overview) TimeToPixels(t float64) int {
	return o.mapper.TimeToPixels(t)
}

func (o *Overview) PixelsToTime(pixels float64) float64 {
	return o.mapper.PixelsToTime(pixels)
}

func (o *Overview) Width() int {
	return o.width
}

func (o *Overview) Height() int {
	return o.height
}

// FrameOffset is always zero: the overview always shows the whole track.
func (o *Overview) FrameOffset() int {
	return 0
}

func (o *Overview) WaveformData() waveform.Dataset {
	return o.data
}

// Close releases the subscriptions, the pending resample and the
// rendering surface. After Close the view does not react to any events.
func (o *Overview) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	ctx := o.ctx
	logger.Debugf(ctx, "closing the overview")

	o.cancelResize()
	for _, sub := range o.subscriptions {
		sub.Cancel()
	}
	o.subscriptions = nil

	var mErr *multierror.Error
	for _, layer := range o.layers.Layers() {
		closer, ok := layer.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to close layer %T: %w", layer, err))
		}
	}
	if o.surface != nil {
		if err := o.surface.Destroy(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to destroy the rendering surface: %w", err))
		}
	}
	return mErr.ErrorOrNil()
}
