// Package config loads the optional view options file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xaionaro-go/waveformview/pkg/overview"
	"github.com/xaionaro-go/waveformview/pkg/player"
	"gopkg.in/yaml.v3"
)

// Options is the content of the options file. Empty values mean the
// defaults of the view.
type Options struct {
	OverviewWaveformColor           string `yaml:"overviewWaveformColor,omitempty"`
	OverviewHighlightRectangleColor string `yaml:"overviewHighlightRectangleColor,omitempty"`
	Height                          int    `yaml:"height,omitempty"`
}

// LoadOptional reads the options file if it exists. An empty path is the
// same as a missing file.
func LoadOptional(path string) (*Options, error) {
	if path == "" {
		return &Options{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Options{}, nil
		}
		return nil, fmt.Errorf("unable to read '%s': %w", path, err)
	}
	opts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse '%s': %w", path, err)
	}
	return opts, nil
}

func Parse(data []byte) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, err
	}
	if opts.Height < 0 {
		return nil, fmt.Errorf("height cannot be negative: %d", opts.Height)
	}
	return &opts, nil
}

// OverviewConfig converts the options into the configuration of an
// overview attached to the given player.
func (opts *Options) OverviewConfig(p player.Player) (overview.Config, error) {
	cfg := overview.DefaultConfig()
	if p != nil {
		cfg.Player = p
	}
	if opts.Height > 0 {
		cfg.Height = opts.Height
	}

	if s := strings.TrimSpace(opts.OverviewWaveformColor); s != "" {
		c, err := ParseColor(s)
		if err != nil {
			return overview.Config{}, fmt.Errorf("invalid overviewWaveformColor: %w", err)
		}
		cfg.WaveformColor = c
	}

	if s := strings.TrimSpace(opts.OverviewHighlightRectangleColor); s != "" {
		c, err := ParseColor(s)
		if err != nil {
			return overview.Config{}, fmt.Errorf("invalid overviewHighlightRectangleColor: %w", err)
		}
		cfg.HighlightColor = c
	}

	return cfg, nil
}
