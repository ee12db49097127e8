package raster

// Surface is the drawing capability the scenes render through. Coordinates
// outside the panel are clipped, never an error.
type Surface interface {
	Width() int
	Height() int

	FillScreen(c Color)
	DrawPixel(x, y int, c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)
	DrawFastHLine(x, y, w int, c Color)
	DrawFastVLine(x, y, h int, c Color)
	DrawCircle(cx, cy, r int, c Color)
	FillCircle(cx, cy, r int, c Color)

	// DrawChar blits a glyph scaled by an integer factor. When bg equals fg
	// the background is left untouched.
	DrawChar(x, y int, ch rune, fg, bg Color, scale int)

	// Show presents the finished frame.
	Show() error
}
