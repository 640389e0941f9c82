package common

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is the color of a single LED, represented as 24-bit RGB.
// On the wire it occupies four bytes: R, G, B and one zero padding byte.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Predefined colors for convenience.
var (
	Black   = Color{0x00, 0x00, 0x00}
	White   = Color{0xFF, 0xFF, 0xFF}
	Red     = Color{0xFF, 0x00, 0x00}
	Green   = Color{0x00, 0xFF, 0x00}
	Blue    = Color{0x00, 0x00, 0xFF}
	Yellow  = Color{0xFF, 0xFF, 0x00}
	Magenta = Color{0xFF, 0x00, 0xFF}
	Cyan    = Color{0x00, 0xFF, 0xFF}
)

// ColorFromHex parses a color from a hex string such as "#1a2b3c".
func ColorFromHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// ColorFromHSV builds a color from hue in degrees [0..360), and saturation and
// value in [0..1].
func ColorFromHSV(h, s, v float64) Color {
	r, g, b := colorful.Hsv(h, s, v).RGB255()
	return Color{R: r, G: g, B: b}
}

// Hex returns the color formatted as a "#rrggbb" hex string.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}
