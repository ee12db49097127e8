package systems

import (
	"math/rand"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
)

// Ripple is an expanding ring left behind by a blink.
type Ripple struct {
	X, Y   int
	Radius int
	Speed  int
	Active bool
}

// RippleObserver receives ripple pool events.
type RippleObserver interface {
	RippleSpawned(slot int)
	RippleDropped()
}

type nopRippleObserver struct{}

func (nopRippleObserver) RippleSpawned(int) {}
func (nopRippleObserver) RippleDropped()    {}

// RippleSystem manages a fixed pool of ripples.
type RippleSystem struct {
	cfg      config.RippleConfig
	maxDim   int
	color    raster.Color
	rng      *rand.Rand
	observer RippleObserver
	ripples  []Ripple
}

// NewRippleSystem creates an empty pool sized by cfg.Capacity.
func NewRippleSystem(cfg config.RippleConfig, width, height int, rng *rand.Rand) *RippleSystem {
	return &RippleSystem{
		cfg:      cfg,
		maxDim:   max(width, height),
		color:    raster.FromConfig(cfg.Color),
		rng:      rng,
		observer: nopRippleObserver{},
		ripples:  make([]Ripple, cfg.Capacity),
	}
}

// SetObserver installs an observer for pool events. nil restores the silent
// default.
func (s *RippleSystem) SetObserver(o RippleObserver) {
	if o == nil {
		o = nopRippleObserver{}
	}
	s.observer = o
}

// Spawn starts a random number of rings at (x, y), each with its own speed.
// Rings that find the pool full are dropped.
func (s *RippleSystem) Spawn(x, y, radius int) {
	count := randIn(s.rng, s.cfg.Count)
	for c := 0; c < count; c++ {
		slot := s.freeSlot()
		if slot < 0 {
			s.observer.RippleDropped()
			continue
		}
		s.ripples[slot] = Ripple{
			X:      x,
			Y:      y,
			Radius: radius,
			Speed:  randIn(s.rng, s.cfg.Speed),
			Active: true,
		}
		s.observer.RippleSpawned(slot)
	}
}

func (s *RippleSystem) freeSlot() int {
	for i := range s.ripples {
		if !s.ripples[i].Active {
			return i
		}
	}
	return -1
}

// Update grows every ring and retires those larger than the panel.
func (s *RippleSystem) Update() {
	for i := range s.ripples {
		r := &s.ripples[i]
		if !r.Active {
			continue
		}
		r.Radius += r.Speed
		if r.Radius > s.maxDim {
			r.Active = false
		}
	}
}

// Draw renders each ring as two concentric circles one pixel apart.
func (s *RippleSystem) Draw(surf raster.Surface) {
	for i := range s.ripples {
		r := &s.ripples[i]
		if !r.Active {
			continue
		}
		surf.DrawCircle(r.X, r.Y, r.Radius, s.color)
		if r.Radius > 0 {
			surf.DrawCircle(r.X, r.Y, r.Radius-1, s.color)
		}
	}
}

// ActiveCount returns the number of live rings.
func (s *RippleSystem) ActiveCount() int {
	n := 0
	for i := range s.ripples {
		if s.ripples[i].Active {
			n++
		}
	}
	return n
}

// Capacity returns the pool size.
func (s *RippleSystem) Capacity() int {
	return len(s.ripples)
}

// Ripple returns a copy of the given slot.
func (s *RippleSystem) Ripple(slot int) Ripple {
	return s.ripples[slot]
}
