package systems

import (
	"math/rand"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
)

// BackgroundDrift is a dark red fill whose intensity random-walks between
// two bounds.
type BackgroundDrift struct {
	red      int
	min, max int
	rng      *rand.Rand
}

// NewBackgroundDrift starts the walk at the lower bound.
func NewBackgroundDrift(cfg config.BackgroundConfig, rng *rand.Rand) *BackgroundDrift {
	return &BackgroundDrift{
		red: cfg.RedMin,
		min: cfg.RedMin,
		max: cfg.RedMax,
		rng: rng,
	}
}

// Update nudges the red channel by 0 or 1. The direction is random inside
// the bounds and forced back toward them outside.
func (b *BackgroundDrift) Update() {
	up := b.rng.Intn(2) == 1
	if b.red > b.max {
		up = false
	}
	if b.red < b.min {
		up = true
	}
	if up {
		b.red += b.rng.Intn(2)
	} else {
		b.red -= b.rng.Intn(2)
	}
	b.red = max(0, min(255, b.red))
}

// Red returns the current red intensity.
func (b *BackgroundDrift) Red() int {
	return b.red
}

// Color returns the current fill colour.
func (b *BackgroundDrift) Color() raster.Color {
	return raster.RGB(uint8(b.red), 0, 0)
}

// Draw fills the panel.
func (b *BackgroundDrift) Draw(s raster.Surface) {
	s.FillScreen(b.Color())
}
