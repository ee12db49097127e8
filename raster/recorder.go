package raster

// Circle is one recorded DrawCircle or FillCircle call.
type Circle struct {
	X, Y, R int
	Color   Color
}

// Span is one recorded fast horizontal or vertical line.
type Span struct {
	X, Y, Len int
	Color     Color
}

// Segment is one recorded DrawLine call.
type Segment struct {
	X0, Y0, X1, Y1 int
	Color          Color
}

// Recorder is a Surface that draws into a Canvas and also logs every
// primitive call, for asserting what a system asked to draw.
type Recorder struct {
	*Canvas

	Circles []Circle
	Fills   []Circle
	HLines  []Span
	VLines  []Span
	Lines   []Segment
	Chars   []rune
	Points  int
	Clears  int
}

// NewRecorder creates a recorder over a fresh canvas.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Canvas: NewCanvas(width, height)}
}

// Reset forgets recorded calls, keeping the canvas contents.
func (r *Recorder) Reset() {
	r.Circles = r.Circles[:0]
	r.Fills = r.Fills[:0]
	r.HLines = r.HLines[:0]
	r.VLines = r.VLines[:0]
	r.Lines = r.Lines[:0]
	r.Chars = r.Chars[:0]
	r.Points = 0
	r.Clears = 0
}

func (r *Recorder) FillScreen(c Color) {
	r.Clears++
	r.Canvas.FillScreen(c)
}

func (r *Recorder) DrawPixel(x, y int, c Color) {
	r.Points++
	r.Canvas.DrawPixel(x, y, c)
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 int, c Color) {
	r.Lines = append(r.Lines, Segment{X0: x0, Y0: y0, X1: x1, Y1: y1, Color: c})
	r.Canvas.DrawLine(x0, y0, x1, y1, c)
}

func (r *Recorder) DrawFastHLine(x, y, w int, c Color) {
	r.HLines = append(r.HLines, Span{X: x, Y: y, Len: w, Color: c})
	r.Canvas.DrawFastHLine(x, y, w, c)
}

func (r *Recorder) DrawFastVLine(x, y, h int, c Color) {
	r.VLines = append(r.VLines, Span{X: x, Y: y, Len: h, Color: c})
	r.Canvas.DrawFastVLine(x, y, h, c)
}

func (r *Recorder) DrawCircle(cx, cy, rad int, c Color) {
	r.Circles = append(r.Circles, Circle{X: cx, Y: cy, R: rad, Color: c})
	r.Canvas.DrawCircle(cx, cy, rad, c)
}

func (r *Recorder) FillCircle(cx, cy, rad int, c Color) {
	r.Fills = append(r.Fills, Circle{X: cx, Y: cy, R: rad, Color: c})
	r.Canvas.FillCircle(cx, cy, rad, c)
}

func (r *Recorder) DrawChar(x, y int, ch rune, fg, bg Color, scale int) {
	r.Chars = append(r.Chars, ch)
	r.Canvas.DrawChar(x, y, ch, fg, bg, scale)
}
