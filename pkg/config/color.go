package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// ParseColor parses a CSS color: a color name ("grey"), a hex notation
// ("#rgb", "#rrggbbaa"), or a functional notation ("rgb(1, 2, 3)",
// "rgba(0, 0, 0, 0.2)", "hsl(0, 100%, 50%)").
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("empty color")
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("unable to parse color '%s': %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
