package raster

// Canvas is an in-memory RGB565 framebuffer. It is the drawing target for
// every display backend and the surface tests assert against.
type Canvas struct {
	width, height int
	pixels        []Color
	frames        int
}

// NewCanvas allocates a black canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
}

// Width returns the panel width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the panel height in pixels.
func (c *Canvas) Height() int { return c.height }

// Pixels returns the backing buffer in row-major order. Callers must not retain
// it across frames if they need a stable copy.
func (c *Canvas) Pixels() []Color { return c.pixels }

// Pixel returns the colour at (x, y), or Black outside the panel.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Black
	}
	return c.pixels[y*c.width+x]
}

// Frames returns how many times Show has been called.
func (c *Canvas) Frames() int { return c.frames }

// Show counts the frame. Backends wrap the canvas to actually present it.
func (c *Canvas) Show() error {
	c.frames++
	return nil
}

// FillScreen sets every pixel.
func (c *Canvas) FillScreen(col Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// DrawPixel sets one pixel, ignoring coordinates off the panel.
func (c *Canvas) DrawPixel(x, y int, col Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.pixels[y*c.width+x] = col
}

// DrawFastHLine draws w pixels to the right of (x, y). A negative width
// extends to the left.
func (c *Canvas) DrawFastHLine(x, y, w int, col Color) {
	if w < 0 {
		x += w + 1
		w = -w
	}
	if w == 0 || y < 0 || y >= c.height {
		return
	}
	x0, x1 := max(x, 0), min(x+w, c.width)
	row := c.pixels[y*c.width:]
	for i := x0; i < x1; i++ {
		row[i] = col
	}
}

// DrawFastVLine draws h pixels downward from (x, y). A negative height
// extends upward.
func (c *Canvas) DrawFastVLine(x, y, h int, col Color) {
	if h < 0 {
		y += h + 1
		h = -h
	}
	if h == 0 || x < 0 || x >= c.width {
		return
	}
	y0, y1 := max(y, 0), min(y+h, c.height)
	for i := y0; i < y1; i++ {
		c.pixels[i*c.width+x] = col
	}
}

// DrawLine draws a Bresenham line including both end points.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col Color) {
	if x0 == x1 {
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		c.DrawFastVLine(x0, y0, y1-y0+1, col)
		return
	}
	if y0 == y1 {
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		c.DrawFastHLine(x0, y0, x1-x0+1, col)
		return
	}

	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	err := dx / 2
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	for ; x0 <= x1; x0++ {
		if steep {
			c.DrawPixel(y0, x0, col)
		} else {
			c.DrawPixel(x0, y0, col)
		}
		err -= dy
		if err < 0 {
			y0 += ystep
			err += dx
		}
	}
}

// DrawCircle draws a midpoint circle outline. Negative radii draw nothing.
func (c *Canvas) DrawCircle(cx, cy, r int, col Color) {
	if r < 0 {
		return
	}
	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x, y := 0, r

	c.DrawPixel(cx, cy+r, col)
	c.DrawPixel(cx, cy-r, col)
	c.DrawPixel(cx+r, cy, col)
	c.DrawPixel(cx-r, cy, col)

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		c.DrawPixel(cx+x, cy+y, col)
		c.DrawPixel(cx-x, cy+y, col)
		c.DrawPixel(cx+x, cy-y, col)
		c.DrawPixel(cx-x, cy-y, col)
		c.DrawPixel(cx+y, cy+x, col)
		c.DrawPixel(cx-y, cy+x, col)
		c.DrawPixel(cx+y, cy-x, col)
		c.DrawPixel(cx-y, cy-x, col)
	}
}

// FillCircle draws a solid disc as vertical spans. Negative radii draw nothing.
func (c *Canvas) FillCircle(cx, cy, r int, col Color) {
	if r < 0 {
		return
	}
	c.DrawFastVLine(cx, cy-r, 2*r+1, col)

	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x, y := 0, r
	px, py := x, y

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		// Avoid drawing the same column twice
		if x < y+1 {
			c.DrawFastVLine(cx+x, cy-y, 2*y+1, col)
			c.DrawFastVLine(cx-x, cy-y, 2*y+1, col)
		}
		if y != py {
			c.DrawFastVLine(cx+py, cy-px, 2*px+1, col)
			c.DrawFastVLine(cx-py, cy-px, 2*px+1, col)
			py = y
		}
		px = x
	}
}

// DrawChar draws a glyph from the built-in font. See Surface.
func (c *Canvas) DrawChar(x, y int, ch rune, fg, bg Color, scale int) {
	if scale < 1 {
		scale = 1
	}
	forEachGlyphPixel(ch, func(gx, gy int, on bool) {
		col := fg
		if !on {
			if bg == fg {
				return
			}
			col = bg
		}
		px, py := x+gx*scale, y+gy*scale
		if scale == 1 {
			c.DrawPixel(px, py, col)
			return
		}
		for i := 0; i < scale; i++ {
			c.DrawFastHLine(px, py+i, scale, col)
		}
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
