package systems

import (
	"github.com/pthm-cable/analogdigital/raster"
)

// drawEye renders one eye back to front: interior fill, lids, lashes, then
// iris and pupil. A closed eye is a single vertical slit.
func (m *EyeManager) drawEye(s raster.Surface, e *Eye) {
	cx, cy := e.X, e.Y
	hh := e.HalfHeight
	open := e.Open

	if open <= 0 {
		s.DrawFastVLine(cx, cy-hh, 2*hh+1, m.lidColor)
		return
	}

	// Diamond interior, one span per row
	for dy := -hh; dy <= hh; dy++ {
		hw := diamondHalfWidth(open, hh, dy)
		if hw > 0 {
			s.DrawFastHLine(cx-hw, cy+dy, 2*hw+1, m.fillColor)
		}
	}

	// Lids: top tip, widest points, bottom tip
	s.DrawLine(cx, cy-hh, cx-open, cy, m.lidColor)
	s.DrawLine(cx-open, cy, cx, cy+hh, m.lidColor)
	s.DrawLine(cx, cy-hh, cx+open, cy, m.lidColor)
	s.DrawLine(cx+open, cy, cx, cy+hh, m.lidColor)

	if open <= m.cfg.IrisThreshold {
		return
	}

	m.drawLashes(s, e)

	ix, iy := cx+e.Iris.X, cy+e.Iris.Y
	s.FillCircle(ix, iy, open/3, m.irisColor)
	s.FillCircle(ix, iy, open/6, m.pupilColor)
}

// drawLashes fans lashes outward from both lids. Their vertical tilt is
// proportional to the row, so lashes near the tips point away from centre.
func (m *EyeManager) drawLashes(s raster.Surface, e *Eye) {
	n := m.cfg.LashCount
	length := m.cfg.LashLength
	hh := e.HalfHeight
	span := hh - m.cfg.LashInset

	for i := 0; i < n; i++ {
		dy := 0
		if n > 1 {
			dy = -span + i*(2*span)/(n-1)
		}
		hw := diamondHalfWidth(e.Open, hh, dy)
		fan := dy * length / hh

		s.DrawLine(e.X-hw, e.Y+dy, e.X-hw-length, e.Y+dy+fan, m.lidColor)
		s.DrawLine(e.X+hw, e.Y+dy, e.X+hw+length, e.Y+dy+fan, m.lidColor)
	}
}

// diamondHalfWidth is the interior half-width at row dy, shrinking linearly
// from open at the centre to 0 at the tips.
func diamondHalfWidth(open, halfHeight, dy int) int {
	if dy < 0 {
		dy = -dy
	}
	if dy >= halfHeight {
		return 0
	}
	return open * (halfHeight - dy) / halfHeight
}
