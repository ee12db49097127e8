// Package display presents the LED canvas. Every backend draws into an
// in-memory raster.Canvas and decides what Show does with it.
package display

import "github.com/pthm-cable/analogdigital/raster"

// Backend is a drawable LED panel.
type Backend interface {
	raster.Surface

	// Raster returns the canvas the backend draws into.
	Raster() *raster.Canvas
	Close() error
}

// Headless keeps frames in memory only.
type Headless struct {
	*raster.Canvas
}

// NewHeadless creates a headless panel.
func NewHeadless(width, height int) *Headless {
	return &Headless{Canvas: raster.NewCanvas(width, height)}
}

// Raster returns the backing canvas.
func (h *Headless) Raster() *raster.Canvas {
	return h.Canvas
}

// Close is a no-op.
func (h *Headless) Close() error {
	return nil
}
