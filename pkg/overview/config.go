package overview

import (
	"image/color"

	"github.com/xaionaro-go/waveformview/pkg/player"
	"golang.org/x/image/colornames"
)

const (
	DefaultHeight = 200
)

var (
	DefaultWaveformColor  color.Color = color.NRGBA{R: 0, G: 0, B: 0, A: 51}
	DefaultHighlightColor color.Color = colornames.Grey
)

type Config struct {
	// WaveformColor is the color of the waveform shape.
	WaveformColor color.Color

	// HighlightColor is used both for the stroke and the fill of the
	// rectangle showing the range displayed by the zoomed view.
	HighlightColor color.Color

	// Height is used if the container does not report a height.
	Height int

	// Player is where the playhead position is read from and where the
	// seek requests go to.
	Player player.Player
}

func DefaultConfig() Config {
	return Config{
		WaveformColor:  DefaultWaveformColor,
		HighlightColor: DefaultHighlightColor,
		Height:         DefaultHeight,
		Player:         player.PlayerDummy{},
	}
}

func (cfg Config) withDefaults() Config {
	defaults := DefaultConfig()
	if cfg.WaveformColor == nil {
		cfg.WaveformColor = defaults.WaveformColor
	}
	if cfg.HighlightColor == nil {
		cfg.HighlightColor = defaults.HighlightColor
	}
	if cfg.Height <= 0 {
		cfg.Height = defaults.Height
	}
	if cfg.Player == nil {
		cfg.Player = defaults.Player
	}
	return cfg
}
