package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xaionaro-go/waveformview/pkg/config"
	"github.com/xaionaro-go/waveformview/pkg/eventbus"
	"github.com/xaionaro-go/waveformview/pkg/overview"
	"github.com/xaionaro-go/waveformview/pkg/player"
)

const commandsHelp = "resize W [H], zoom START END, play, pause, seek T, press X, drag X, color C, fit, status, quit"

// container is the size of the imaginary window the view is placed into.
type container struct {
	width  int
	height int
}

var _ overview.Container = (*container)(nil)

func (c *container) Size() (int, int) {
	return c.width, c.height
}

type clockPlayer interface {
	player.Player
	Play(ctx context.Context)
	Pause(ctx context.Context)
	IsPlaying() bool
}

type app struct {
	bus       *eventbus.Bus
	clock     clockPlayer
	container *container
	overview  *overview.Overview
}

// Execute runs one command line. It must be called from the event loop.
func (a *app) Execute(ctx context.Context, line string, out io.Writer) (bool, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(words[0]), words[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "resize":
		if len(args) < 1 || len(args) > 2 {
			return false, fmt.Errorf("usage: resize W [H]")
		}
		size, err := parseInts(args)
		if err != nil {
			return false, err
		}
		if size[0] < 0 || (len(size) > 1 && size[1] < 0) {
			return false, fmt.Errorf("the size cannot be negative")
		}
		a.container.width = size[0]
		if len(size) > 1 {
			a.container.height = size[1]
		}
		eventbus.Publish(ctx, a.bus, eventbus.WindowResize{})
	case "zoom":
		values, err := parseFloats(args, 2)
		if err != nil {
			return false, fmt.Errorf("usage: zoom START END: %w", err)
		}
		eventbus.Publish(ctx, a.bus, eventbus.ZoomviewDisplaying{StartTime: values[0], EndTime: values[1]})
	case "play":
		a.clock.Play(ctx)
	case "pause":
		a.clock.Pause(ctx)
	case "seek":
		values, err := parseFloats(args, 1)
		if err != nil {
			return false, fmt.Errorf("usage: seek T: %w", err)
		}
		return false, a.clock.Seek(ctx, values[0])
	case "press", "drag":
		values, err := parseFloats(args, 1)
		if err != nil {
			return false, fmt.Errorf("usage: %s X: %w", cmd, err)
		}
		if cmd == "press" {
			return false, a.overview.HandlePointerDown(ctx, values[0])
		}
		return false, a.overview.HandlePointerDrag(ctx, values[0])
	case "color":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: color C")
		}
		c, err := config.ParseColor(strings.Join(args, " "))
		if err != nil {
			return false, err
		}
		return false, a.overview.SetWaveformColor(ctx, c)
	case "fit":
		return false, a.overview.FitToContainer(ctx)
	case "status":
		a.printStatus(ctx, out)
	case "help":
		fmt.Fprintln(out, commandsHelp)
	default:
		return false, fmt.Errorf("unknown command '%s'; known commands: %s", cmd, commandsHelp)
	}
	return false, nil
}

func (a *app) printStatus(ctx context.Context, out io.Writer) {
	o := a.overview
	data := o.WaveformData()
	t := a.clock.CurrentTime(ctx)
	fmt.Fprintf(out, "size: %dx%d\n", o.Width(), o.Height())
	fmt.Fprintf(out, "dataset: %d px, scale %d, %dHz, %.3fs\n", data.Length(), data.Scale(), data.SampleRate(), data.Duration())
	fmt.Fprintf(out, "playhead: %.3fs at x=%d, playing: %t\n", t, o.TimeToPixels(t), a.clock.IsPlaying())
	if rect, ok := o.HighlightRect(); ok {
		fmt.Fprintf(out, "highlight: x=%d w=%d\n", rect.X, rect.Width)
	} else {
		fmt.Fprintln(out, "highlight: none")
	}
	fmt.Fprintf(out, "resample pending: %t\n", o.IsResamplePending())
}

func parseInts(args []string) ([]int, error) {
	result := make([]int, 0, len(args))
	for _, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("unable to parse '%s' as an integer: %w", arg, err)
		}
		result = append(result, v)
	}
	return result, nil
}

func parseFloats(args []string, count int) ([]float64, error) {
	if len(args) != count {
		return nil, fmt.Errorf("expected %d arguments, got %d", count, len(args))
	}
	result := make([]float64, 0, count)
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse '%s' as a number: %w", arg, err)
		}
		result = append(result, v)
	}
	return result, nil
}
