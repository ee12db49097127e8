package display

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/analogdigital/raster"
)

// LED board rendering.
const (
	ledPitch = 6   // Pixels per LED in the exported image
	ledFill  = 0.8 // Share of an unlit LED's colour that the lit colour replaces
)

var (
	boardColor = colorful.Color{R: 0.04, G: 0.04, B: 0.05}
	unlitColor = colorful.Color{R: 0.12, G: 0.12, B: 0.13}
)

// Exporter writes every Nth presented frame to a PNG that renders each
// LED as a round dot on a dark board. It wraps another backend.
type Exporter struct {
	Backend
	dir     string
	every   int
	frames  int
	written int
}

// NewExporter wraps inner and writes frames into dir, creating it if needed.
func NewExporter(inner Backend, dir string, every int) (*Exporter, error) {
	if every < 1 {
		return nil, fmt.Errorf("export interval must be at least 1, got %d", every)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &Exporter{
		Backend: inner,
		dir:     dir,
		every:   every,
	}, nil
}

// Show presents the frame on the inner backend, then exports it if due.
func (e *Exporter) Show() error {
	if err := e.Backend.Show(); err != nil {
		return err
	}
	e.frames++
	if e.frames%e.every != 0 {
		return nil
	}

	path := filepath.Join(e.dir, fmt.Sprintf("frame_%06d.png", e.frames))
	if err := RenderLEDs(e.Raster()).SavePNG(path); err != nil {
		return fmt.Errorf("exporting frame %d: %w", e.frames, err)
	}
	e.written++
	slog.Debug("frame exported", "path", path)
	return nil
}

// Written returns how many PNGs have been written.
func (e *Exporter) Written() int {
	return e.written
}

// RenderLEDs draws the canvas as an LED board.
func RenderLEDs(c *raster.Canvas) *gg.Context {
	w, h := c.Width(), c.Height()
	dc := gg.NewContext(w*ledPitch, h*ledPitch)

	dc.SetColor(boardColor)
	dc.Clear()

	radius := float64(ledPitch) * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := c.Pixel(x, y)
			dot := unlitColor
			if px != raster.Black {
				dot = unlitColor.BlendRgb(px.Colorful(), ledFill)
			}
			dc.DrawCircle(float64(x*ledPitch)+float64(ledPitch)/2, float64(y*ledPitch)+float64(ledPitch)/2, radius)
			dc.SetColor(dot.Clamped())
			dc.Fill()
		}
	}
	return dc
}
