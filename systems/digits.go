package systems

import (
	"math/rand"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
)

// digitChar is one character of the scrolling column.
type digitChar struct {
	Y  int
	Ch rune
}

// DigitColumn is a column of binary digits scrolling down the panel. The
// characters are spaced so the column wraps without a gap.
type DigitColumn struct {
	x, scale int
	speed    int
	height   int
	offset   int // Negative start row for recycled characters
	color    raster.Color
	rng      *rand.Rand
	chars    []digitChar
}

// NewDigitColumn lays out cfg.Count characters above and across the panel.
func NewDigitColumn(cfg config.DigitConfig, height int, rng *rand.Rand) *DigitColumn {
	_, cellH := raster.GlyphSize(cfg.Scale)
	gaps := cfg.Count - 1
	offset := -(((height - cellH*gaps) / gaps) + cellH)

	d := &DigitColumn{
		x:      cfg.X,
		scale:  cfg.Scale,
		speed:  cfg.Speed,
		height: height,
		offset: offset,
		color:  raster.FromConfig(cfg.Color),
		rng:    rng,
		chars:  make([]digitChar, cfg.Count),
	}
	for i := range d.chars {
		d.chars[i] = digitChar{Y: offset * i, Ch: d.randomDigit()}
	}
	return d
}

func (d *DigitColumn) randomDigit() rune {
	return rune('0' + d.rng.Intn(2))
}

// Offset returns the row recycled characters restart from.
func (d *DigitColumn) Offset() int {
	return d.offset
}

// Update scrolls every character and recycles those past the bottom edge.
func (d *DigitColumn) Update() {
	for i := range d.chars {
		c := &d.chars[i]
		c.Y += d.speed
		if c.Y > d.height {
			*c = digitChar{Y: d.offset, Ch: d.randomDigit()}
		}
	}
}

// Draw paints visible characters with bg behind them.
func (d *DigitColumn) Draw(s raster.Surface, bg raster.Color) {
	for _, c := range d.chars {
		if c.Y > d.offset {
			s.DrawChar(d.x, c.Y, c.Ch, d.color, bg, d.scale)
		}
	}
}
