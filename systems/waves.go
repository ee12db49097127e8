package systems

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
)

// Wave is a waveform trace scrolling down the panel. Rows from CurY-Length
// to CurY are lit.
type Wave struct {
	CurY         int
	Length       int
	Speed        int
	RadianOffset float64
	Color        raster.Color
	Form         Waveform
	Active       bool
}

// WaveObserver receives wave pool events.
type WaveObserver interface {
	WaveSpawned(slot int, form Waveform)
	WaveRetired(slot int)
}

type nopWaveObserver struct{}

func (nopWaveObserver) WaveSpawned(int, Waveform) {}
func (nopWaveObserver) WaveRetired(int)           {}

// WaveSystem manages the fixed pool of waves shown by the analog scene.
type WaveSystem struct {
	cfg      config.WaveConfig
	width    int
	height   int
	chance   int
	rng      *rand.Rand
	observer WaveObserver
	waves    []Wave
}

// NewWaveSystem creates an empty pool sized by cfg.Capacity.
func NewWaveSystem(cfg config.WaveConfig, width, height int, rng *rand.Rand) *WaveSystem {
	return &WaveSystem{
		cfg:      cfg,
		width:    width,
		height:   height,
		chance:   cfg.ExtraSpawnChance,
		rng:      rng,
		observer: nopWaveObserver{},
		waves:    make([]Wave, cfg.Capacity),
	}
}

// SetObserver installs an observer for pool events.
func (s *WaveSystem) SetObserver(o WaveObserver) {
	if o == nil {
		o = nopWaveObserver{}
	}
	s.observer = o
}

// SetExtraSpawnChance changes the 1-in-N per-frame chance of an extra wave.
func (s *WaveSystem) SetExtraSpawnChance(n int) {
	s.chance = max(1, n)
}

// ExtraSpawnChance returns the current 1-in-N extra spawn chance.
func (s *WaveSystem) ExtraSpawnChance() int {
	return s.chance
}

// Draw renders every live wave.
func (s *WaveSystem) Draw(surf raster.Surface) {
	for i := range s.waves {
		if s.waves[i].Active {
			s.drawWave(surf, &s.waves[i])
		}
	}
}

func (s *WaveSystem) drawWave(surf raster.Surface, wv *Wave) {
	w, h := s.width, s.height
	start := max(0, wv.CurY-wv.Length)
	end := min(wv.CurY, h)

	for y := start; y <= end; y++ {
		x := wv.Form.X(y, wv.RadianOffset, w, h)
		surf.DrawPixel(x, y, wv.Color)
		if y == end {
			continue
		}

		// Join discontinuities the way a scope trace would
		switch wv.Form {
		case WaveSawtooth:
			if next := SawtoothX(y+1, wv.RadianOffset, w, h); next < x-w/2 {
				surf.DrawFastHLine(0, y, w, wv.Color)
			}
		case WaveSquare:
			if next := SquareX(y+1, wv.RadianOffset, w, h); next != x {
				surf.DrawFastHLine(0, y, w, wv.Color)
			}
		}
	}
}

// Update scrolls every live wave and retires those whose tail has left the
// panel.
func (s *WaveSystem) Update() {
	for i := range s.waves {
		wv := &s.waves[i]
		if !wv.Active {
			continue
		}
		wv.CurY += wv.Speed
		if wv.CurY-wv.Length > s.height {
			wv.Active = false
			s.observer.WaveRetired(i)
		}
	}
}

// EnsurePopulation keeps at least the configured floor of waves and adds
// one more with a 1-in-N chance while below the ceiling.
func (s *WaveSystem) EnsurePopulation() {
	active := s.ActiveCount()
	for active < s.cfg.MinActive {
		if !s.Spawn() {
			return
		}
		active++
	}
	if active < s.cfg.MaxActive && oneIn(s.rng, s.chance) {
		s.Spawn()
	}
}

// Spawn starts a random wave at the top of the panel in the first free slot.
func (s *WaveSystem) Spawn() bool {
	for i := range s.waves {
		if s.waves[i].Active {
			continue
		}
		form := Waveform(s.rng.Intn(int(numWaveforms)))
		s.waves[i] = Wave{
			RadianOffset: float64(randIn(s.rng, s.cfg.RadianOffset)) * math.Pi,
			Length:       randRange(s.rng, s.cfg.LengthMin, s.height-1),
			Speed:        randIn(s.rng, s.cfg.Speed),
			Color:        s.randomColor(),
			Form:         form,
			Active:       true,
		}
		s.observer.WaveSpawned(i, form)
		return true
	}
	return false
}

// randomColor picks a saturated, bright hue so traces stay visible on black.
func (s *WaveSystem) randomColor() raster.Color {
	c := colorful.Hsv(
		s.rng.Float64()*360,
		0.55+0.45*s.rng.Float64(),
		0.75+0.25*s.rng.Float64(),
	)
	return raster.FromColorful(c)
}

// ActiveCount returns the number of live waves.
func (s *WaveSystem) ActiveCount() int {
	n := 0
	for i := range s.waves {
		if s.waves[i].Active {
			n++
		}
	}
	return n
}

// Wave returns a copy of the given slot.
func (s *WaveSystem) Wave(slot int) Wave {
	return s.waves[slot]
}
