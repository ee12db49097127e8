// Package raster provides the LED panel drawing surface and an in-memory
// canvas implementing it.
package raster

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/analogdigital/config"
)

// Color is a packed RGB565 pixel, the native format of the LED panel.
type Color uint16

// Common colours.
const (
	Black Color = 0x0000
	White Color = 0xFFFF
)

// RGB packs 8-bit channels into RGB565, dropping the low bits.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3)
}

// FromConfig converts a configured colour.
func FromConfig(c config.RGB) Color {
	return RGB(c.R, c.G, c.B)
}

// FromColorful converts a go-colorful colour, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// RGB8 expands the colour back to 8-bit channels, replicating the high bits
// into the low ones so white stays 255.
func (c Color) RGB8() (r, g, b uint8) {
	r5 := uint8(c>>11) & 0x1F
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB8()
	return color.RGBA{R: r8, G: g8, B: b8, A: 0xFF}.RGBA()
}

// ToRGBA returns the expanded colour as an opaque color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	r, g, b := c.RGB8()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Colorful returns the colour in go-colorful's float representation.
func (c Color) Colorful() colorful.Color {
	r, g, b := c.RGB8()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
