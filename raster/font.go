package raster

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var glyphFace = basicfont.Face7x13

// GlyphSize returns the cell size of one character drawn at scale.
func GlyphSize(scale int) (w, h int) {
	return glyphFace.Advance * scale, glyphFace.Height * scale
}

// forEachGlyphPixel visits every pixel of the Advance x Height cell for ch.
// Pixels outside the glyph mask are reported off. Unknown runes fall back to
// the font's replacement glyph; if even that is missing every pixel is off.
func forEachGlyphPixel(ch rune, fn func(gx, gy int, on bool)) {
	dr, mask, maskp, _, ok := glyphFace.Glyph(fixed.P(0, glyphFace.Ascent), ch)
	hasMask := ok || mask != nil
	for gy := 0; gy < glyphFace.Height; gy++ {
		for gx := 0; gx < glyphFace.Advance; gx++ {
			on := false
			if hasMask && gx >= dr.Min.X && gx < dr.Max.X && gy >= dr.Min.Y && gy < dr.Max.Y {
				_, _, _, a := mask.At(maskp.X+gx-dr.Min.X, maskp.Y+gy-dr.Min.Y).RGBA()
				on = a != 0
			}
			fn(gx, gy, on)
		}
	}
}
