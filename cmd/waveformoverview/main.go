package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/datacounter"
	"github.com/xaionaro-go/waveformview/pkg/audio/types"
	"github.com/xaionaro-go/waveformview/pkg/config"
	"github.com/xaionaro-go/waveformview/pkg/eventbus"
	"github.com/xaionaro-go/waveformview/pkg/eventloop"
	"github.com/xaionaro-go/waveformview/pkg/overview"
	"github.com/xaionaro-go/waveformview/pkg/overview/implementations/logging"
	"github.com/xaionaro-go/waveformview/pkg/player"
	"github.com/xaionaro-go/waveformview/pkg/waveform"
	"github.com/xaionaro-go/waveformview/pkg/waveform/decoder"
	"github.com/xaionaro-go/waveformview/pkg/waveform/decoder/backends/rawpcm"
	_ "github.com/xaionaro-go/waveformview/pkg/waveform/decoder/backends/vorbis"
	"github.com/xaionaro-go/waveformview/pkg/waveform/registry"
)

func main() {
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	configPath := pflag.String("config", "", "path to a YAML options file")
	width := pflag.Int("width", 1000, "initial width of the view in pixels")
	height := pflag.Int("height", 0, "height of the view in pixels (0 means the configured height)")
	scale := pflag.Uint64("scale", 256, "amount of audio samples per pixel of the decoded waveform")
	decoderName := pflag.String("decoder", "", fmt.Sprintf("decode the input with this decoder instead of detecting the format (one of: %s)", strings.Join(registry.DecoderNames(), ", ")))
	pcmFormat := rawpcm.DefaultFormat.PCMFormat
	pflag.Var(&pcmFormat, "pcm-format", "treat the input as raw PCM of this format (e.g. s16le, f32le)")
	pcmSampleRate := pflag.Uint32("pcm-sample-rate", uint32(rawpcm.DefaultFormat.SampleRate), "sample rate of the raw PCM input")
	pcmChannels := pflag.Uint32("pcm-channels", uint32(rawpcm.DefaultFormat.Channels), "amount of channels of the raw PCM input")
	waveformColor := pflag.String("waveform-color", "", "color of the waveform (overrides the options file)")
	highlightColor := pflag.String("highlight-color", "", "color of the highlight rectangle (overrides the options file)")
	seekEnabled := pflag.Bool("seek", true, "seek on pointer press/drag")
	pflag.Parse()

	if pflag.NArg() != 1 {
		panic("expected exactly one positional argument: path to the audio file")
	}
	filePath := pflag.Arg(0)

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	opts, err := config.LoadOptional(*configPath)
	assertNoError(err)
	if *waveformColor != "" {
		opts.OverviewWaveformColor = *waveformColor
	}
	if *highlightColor != "" {
		opts.OverviewHighlightRectangleColor = *highlightColor
	}
	logger.Tracef(ctx, "options: %s", spew.Sdump(opts))

	var pcm *rawpcm.Format
	if pflag.CommandLine.Changed("pcm-format") {
		pcm = &rawpcm.Format{
			SampleRate: types.SampleRate(*pcmSampleRate),
			Channels:   types.Channel(*pcmChannels),
			PCMFormat:  pcmFormat,
		}
	}

	data, err := loadWaveform(ctx, filePath, *scale, *decoderName, pcm)
	assertNoError(err)
	logger.Infof(ctx, "decoded %s: %.3fs, %d px at scale %d", filePath, data.Duration(), data.Length(), data.Scale())

	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	loop := eventloop.New()
	loop.Start(ctx)

	bus := eventbus.New()
	clock := player.NewClock(bus, loop, data.Duration())
	defer clock.Close()

	cfg, err := opts.OverviewConfig(clock)
	assertNoError(err)

	window := &container{width: *width, height: *height}
	cli := &app{
		bus:       bus,
		clock:     clock,
		container: window,
	}
	assertNoError(loop.Call(ctx, func(ctx context.Context) {
		cli.overview, err = overview.New(ctx, data, window, bus, loop, logging.NewLayerFactory(), cfg)
		if err == nil {
			cli.overview.EnableSeek(*seekEnabled)
		}
	}))
	assertNoError(err)
	defer func() {
		assertNoError(loop.Call(context.Background(), func(context.Context) {
			assertNoError(cli.overview.Close())
		}))
	}()

	logger.Infof(ctx, "ready; commands: %s", commandsHelp)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var (
			quit   bool
			cmdErr error
		)
		err := loop.Call(ctx, func(ctx context.Context) {
			quit, cmdErr = cli.Execute(ctx, scanner.Text(), os.Stdout)
		})
		assertNoError(err)
		if cmdErr != nil {
			logger.Errorf(ctx, "%v", cmdErr)
		}
		if quit {
			break
		}
	}
	assertNoError(scanner.Err())
}

func loadWaveform(
	ctx context.Context,
	filePath string,
	scale uint64,
	decoderName string,
	pcm *rawpcm.Format,
) (*waveform.Data, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("unable to open '%s': %w", filePath, err)
	}
	defer f.Close()

	rc := datacounter.NewReaderCounter(f)
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("unable to read '%s': %w", filePath, err)
	}
	logger.Debugf(ctx, "read %d bytes from '%s'", rc.Count(), filePath)

	switch {
	case pcm != nil:
		if decoderName != "" && decoderName != rawpcm.Name {
			return nil, fmt.Errorf("the raw PCM format is set, but the decoder is '%s'", decoderName)
		}
		return decoder.Decode(ctx, rawpcm.DecoderFactory{Format: *pcm}, bytes.NewReader(raw), scale)
	case decoderName != "":
		return decoder.DecodeByName(ctx, decoderName, bytes.NewReader(raw), scale)
	default:
		return decoder.DecodeAuto(ctx, bytes.NewReader(raw), scale)
	}
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
