package player

import (
	"context"
	"sync"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/waveformview/pkg/eventbus"
	"github.com/xaionaro-go/waveformview/pkg/eventloop"
)

const DefaultTimeUpdateInterval = 250 * time.Millisecond

type Poster interface {
	Post(task eventloop.Task) bool
}

// Clock is a player without audio output: the position just follows the
// wall clock while playing. Notifications are published on the bus from
// tasks posted to the poster (normally the event loop).
type Clock struct {
	TimeUpdateInterval time.Duration

	bus      *eventbus.Bus
	poster   Poster
	duration float64
	now      func() time.Time

	locker       sync.Mutex
	playing      bool
	position     float64
	startedAt    time.Time
	cancelTicker context.CancelFunc
}

var _ Player = (*Clock)(nil)

func NewClock(
	bus *eventbus.Bus,
	poster Poster,
	duration float64,
) *Clock {
	return &Clock{
		TimeUpdateInterval: DefaultTimeUpdateInterval,
		bus:                bus,
		poster:             poster,
		duration:           duration,
		now:                time.Now,
	}
}

func (c *Clock) CurrentTime(context.Context) float64 {
	c.locker.Lock()
	defer c.locker.Unlock()
	return c.currentTimeNoLock()
}

func (c *Clock) currentTimeNoLock() float64 {
	if !c.playing {
		return c.position
	}
	return min(c.duration, c.position+c.now().Sub(c.startedAt).Seconds())
}

func (c *Clock) IsPlaying() bool {
	c.locker.Lock()
	defer c.locker.Unlock()
	return c.playing
}

func (c *Clock) Seek(ctx context.Context, t float64) error {
	logger.Debugf(ctx, "Seek(%f)", t)
	c.locker.Lock()
	c.position = max(0, min(c.duration, t))
	c.startedAt = c.now()
	position := c.position
	c.locker.Unlock()

	publish(ctx, c, eventbus.PlayerTimeUpdate{Time: position})
	return nil
}

func (c *Clock) Play(ctx context.Context) {
	c.locker.Lock()
	if c.playing {
		c.locker.Unlock()
		return
	}
	if c.position >= c.duration {
		c.position = 0
	}
	c.playing = true
	c.startedAt = c.now()
	position := c.position
	logger.Debugf(ctx, "Play at %f", position)

	tickerCtx, cancelFn := context.WithCancel(ctx)
	c.cancelTicker = cancelFn
	interval := c.TimeUpdateInterval
	observability.Go(tickerCtx, func(ctx context.Context) {
		c.tickerLoop(ctx, interval)
	})
	c.locker.Unlock()

	publish(ctx, c, eventbus.PlayerPlay{Time: position})
}

func (c *Clock) Pause(ctx context.Context) {
	c.locker.Lock()
	paused, position := c.pauseNoLock(ctx)
	c.locker.Unlock()

	if paused {
		publish(ctx, c, eventbus.PlayerPause{Time: position})
	}
}

func (c *Clock) pauseNoLock(ctx context.Context) (bool, float64) {
	if !c.playing {
		return false, c.position
	}
	c.position = c.currentTimeNoLock()
	c.playing = false
	c.cancelTicker()
	c.cancelTicker = nil
	logger.Debugf(ctx, "Pause at %f", c.position)
	return true, c.position
}

func (c *Clock) tickerLoop(ctx context.Context, interval time.Duration) {
	logger.Tracef(ctx, "tickerLoop")
	defer logger.Tracef(ctx, "/tickerLoop")

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		c.Tick(ctx)
	}
}

// Tick publishes the current position, pausing at the end of the track.
func (c *Clock) Tick(ctx context.Context) {
	c.locker.Lock()
	if !c.playing {
		c.locker.Unlock()
		return
	}
	t := c.currentTimeNoLock()
	var paused bool
	if t >= c.duration {
		paused, _ = c.pauseNoLock(ctx)
	}
	c.locker.Unlock()

	publish(ctx, c, eventbus.PlayerTimeUpdate{Time: t})
	if paused {
		publish(ctx, c, eventbus.PlayerPause{Time: t})
	}
}

func (c *Clock) Close() error {
	c.locker.Lock()
	defer c.locker.Unlock()
	if c.cancelTicker != nil {
		c.cancelTicker()
		c.cancelTicker = nil
	}
	c.playing = false
	return nil
}

func publish[E any](ctx context.Context, c *Clock, ev E) {
	if !c.poster.Post(func(ctx context.Context) {
		eventbus.Publish(ctx, c.bus, ev)
	}) {
		logger.Debugf(ctx, "unable to post %T: the loop is finished", ev)
	}
}
