package render

import (
	"fmt"
	"image/color"
	"strings"
)

// ParseHexColor parses "#RRGGBB", "RRGGBB" or "#RRGGBBAA".
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")

	c := color.NRGBA{A: 255}
	var err error
	switch len(s) {
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// HexColorOr parses s and falls back to def when s is empty or invalid.
func HexColorOr(s string, def color.NRGBA) color.NRGBA {
	if c, err := ParseHexColor(s); err == nil {
		return c
	}
	return def
}
