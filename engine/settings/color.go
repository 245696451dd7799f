package settings

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color name ("gold") or hex string ("#ff0000", "#fff") into
// linear RGB components in [0, 1].
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - [3]float32: linear red, green and blue
//   - error: error if s is neither a known name nor valid hex
func ParseColor(s string) ([3]float32, error) {
	c, err := parseColorful(s)
	if err != nil {
		return [3]float32{}, err
	}
	r, g, b := c.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}, nil
}

// MustParseColor is ParseColor for values that already passed validation; unparseable input yields black.
func MustParseColor(s string) [3]float32 {
	c, _ := ParseColor(s)
	return c
}

func parseColorful(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return c, nil
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		c, _ := colorful.MakeColor(named)
		return c, nil
	}
	return colorful.Color{}, fmt.Errorf("parse color %q: not a color name or hex value", s)
}
