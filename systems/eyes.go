package systems

import (
	"math/rand"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
)

// EyeState is the lifecycle phase of an eye slot.
type EyeState uint8

const (
	EyeInactive EyeState = iota
	EyeOpening
	EyeOpen
	EyeBlinkClosing
	EyeBlinkOpening
	EyeClosing
)

var eyeStateNames = [...]string{
	EyeInactive:     "inactive",
	EyeOpening:      "opening",
	EyeOpen:         "open",
	EyeBlinkClosing: "blink_closing",
	EyeBlinkOpening: "blink_opening",
	EyeClosing:      "closing",
}

func (s EyeState) String() string {
	if int(s) < len(eyeStateNames) {
		return eyeStateNames[s]
	}
	return "unknown"
}

// Iris is the iris offset from the eye centre and the target it drifts toward.
type Iris struct {
	X, Y             int
	TargetX, TargetY int
	LookTimer        int // Frames until a new target is picked
}

// Eye is one slot of the eye pool. Position is fixed from spawn to retirement.
type Eye struct {
	X, Y       int
	State      EyeState
	Open       int // Current horizontal half-width, 0..MaxOpen
	MaxOpen    int
	HalfHeight int
	Timer      int // Frames left in Open
	BlinksLeft int
	Iris       Iris
}

// Active reports whether the slot holds a live eye.
func (e *Eye) Active() bool {
	return e.State != EyeInactive
}

// RippleSpawner receives blink events. Spawn must finish before the blink
// is considered committed.
type RippleSpawner interface {
	Spawn(x, y, radius int)
}

// EyeObserver receives eye lifecycle events.
type EyeObserver interface {
	EyeSpawned(slot, x, y int)
	EyeSpawnRejected()
	EyeBlinked(slot int)
	EyeRetired(slot int)
}

type nopEyeObserver struct{}

func (nopEyeObserver) EyeSpawned(int, int, int) {}
func (nopEyeObserver) EyeSpawnRejected()        {}
func (nopEyeObserver) EyeBlinked(int)           {}
func (nopEyeObserver) EyeRetired(int)           {}

// EyeManager owns the fixed pool of eyes, advancing their state machines,
// drawing them and keeping the population between its floor and ceiling.
type EyeManager struct {
	cfg      config.EyeConfig
	width    int
	height   int
	maxOpen  int
	minY     int
	maxY     int
	chance   int
	rng      *rand.Rand
	ripples  RippleSpawner
	observer EyeObserver

	eyes []Eye

	lidColor   raster.Color
	fillColor  raster.Color
	irisColor  raster.Color
	pupilColor raster.Color
}

// NewEyeManager creates an empty pool sized by cfg.Capacity for a panel of
// the given dimensions. ripples may be nil, in which case blinks spawn nothing.
func NewEyeManager(cfg config.EyeConfig, width, height int, rng *rand.Rand, ripples RippleSpawner) *EyeManager {
	maxOpen := width/2 - cfg.Margin
	if maxOpen < 1 {
		maxOpen = 1
	}
	if ripples == nil {
		ripples = noRipples{}
	}
	return &EyeManager{
		cfg:        cfg,
		width:      width,
		height:     height,
		maxOpen:    maxOpen,
		minY:       cfg.HalfHeight + cfg.EdgeMargin,
		maxY:       height - cfg.HalfHeight - cfg.EdgeMargin - 1,
		chance:     cfg.ExtraSpawnChance,
		rng:        rng,
		ripples:    ripples,
		observer:   nopEyeObserver{},
		eyes:       make([]Eye, cfg.Capacity),
		lidColor:   raster.FromConfig(cfg.LidColor),
		fillColor:  raster.FromConfig(cfg.FillColor),
		irisColor:  raster.FromConfig(cfg.IrisColor),
		pupilColor: raster.FromConfig(cfg.PupilColor),
	}
}

type noRipples struct{}

func (noRipples) Spawn(int, int, int) {}

// SetObserver installs an observer for lifecycle events. nil restores the
// silent default.
func (m *EyeManager) SetObserver(o EyeObserver) {
	if o == nil {
		o = nopEyeObserver{}
	}
	m.observer = o
}

// SetExtraSpawnChance changes the 1-in-N per-frame chance of growing the
// population above its floor.
func (m *EyeManager) SetExtraSpawnChance(n int) {
	if n < 1 {
		n = 1
	}
	m.chance = n
}

// ExtraSpawnChance returns the current 1-in-N extra spawn chance.
func (m *EyeManager) ExtraSpawnChance() int {
	return m.chance
}

// Capacity returns the pool size.
func (m *EyeManager) Capacity() int {
	return len(m.eyes)
}

// Eye returns a copy of the given slot.
func (m *EyeManager) Eye(slot int) Eye {
	return m.eyes[slot]
}

// ActiveCount returns the number of live eyes.
func (m *EyeManager) ActiveCount() int {
	n := 0
	for i := range m.eyes {
		if m.eyes[i].Active() {
			n++
		}
	}
	return n
}

// Update advances every live eye by one frame. Blinks call the ripple
// spawner synchronously.
func (m *EyeManager) Update() {
	speed := m.cfg.OpenSpeed
	for i := range m.eyes {
		e := &m.eyes[i]
		switch e.State {
		case EyeOpening:
			e.Open += speed
			if e.Open >= e.MaxOpen {
				e.Open = e.MaxOpen
				e.State = EyeOpen
				e.Timer = randIn(m.rng, m.cfg.HoldFrames)
			}
			m.updateIris(e)

		case EyeOpen:
			e.Timer--
			if e.Timer <= 0 {
				if e.BlinksLeft > 0 {
					e.State = EyeBlinkClosing
					e.BlinksLeft--
					m.observer.EyeBlinked(i)
					m.ripples.Spawn(e.X, e.Y, e.HalfHeight)
				} else {
					e.State = EyeClosing
				}
			}
			m.updateIris(e)

		case EyeBlinkClosing:
			e.Open -= speed
			if e.Open <= 0 {
				e.Open = 0
				e.State = EyeBlinkOpening
			}

		case EyeBlinkOpening:
			e.Open += speed
			if e.Open >= e.MaxOpen {
				e.Open = e.MaxOpen
				e.State = EyeOpen
				e.Timer = randIn(m.rng, m.cfg.HoldFrames)
			}
			m.updateIris(e)

		case EyeClosing:
			e.Open -= speed
			if e.Open <= 0 {
				e.Open = 0
				e.State = EyeInactive
				m.observer.EyeRetired(i)
			}
		}
	}
}

// updateIris drifts the iris one pixel per axis toward its target, picking a
// new target when the look timer runs out. Nearly closed eyes are skipped.
func (m *EyeManager) updateIris(e *Eye) {
	if e.Open <= m.cfg.IrisThreshold {
		return
	}
	ir := &e.Iris
	ir.LookTimer--
	if ir.LookTimer <= 0 {
		maxH := e.Open / 3
		maxV := e.HalfHeight / 5
		ir.TargetX = randRange(m.rng, -maxH, maxH)
		ir.TargetY = randRange(m.rng, -maxV, maxV)
		ir.LookTimer = randIn(m.rng, m.cfg.LookInterval)
	}
	ir.X += step(ir.X, ir.TargetX)
	ir.Y += step(ir.Y, ir.TargetY)
}

func step(from, to int) int {
	switch {
	case from < to:
		return 1
	case from > to:
		return -1
	}
	return 0
}

// EnsurePopulation tops the pool up to the configured floor and, with a
// 1-in-N chance, adds one more eye while below the ceiling. A failed
// placement ends the attempt until the next frame.
func (m *EyeManager) EnsurePopulation() {
	active := m.ActiveCount()
	for active < m.cfg.MinActive {
		if _, ok := m.Spawn(); !ok {
			return
		}
		active++
	}
	if active < m.cfg.MaxActive && oneIn(m.rng, m.chance) {
		m.Spawn()
	}
}

// Spawn places a new eye in the first free slot. It fails when the pool is
// full or when no sampled row keeps the minimum spacing to every live eye.
func (m *EyeManager) Spawn() (slot int, ok bool) {
	slot = -1
	for i := range m.eyes {
		if !m.eyes[i].Active() {
			slot = i
			break
		}
	}
	if slot < 0 {
		return -1, false
	}

	y, ok := m.placeEye(slot)
	if !ok {
		m.observer.EyeSpawnRejected()
		return -1, false
	}

	m.eyes[slot] = Eye{
		X:          m.width / 2,
		Y:          y,
		State:      EyeOpening,
		MaxOpen:    m.maxOpen,
		HalfHeight: m.cfg.HalfHeight,
		BlinksLeft: randIn(m.rng, m.cfg.Blinks),
		Iris:       Iris{LookTimer: randIn(m.rng, m.cfg.FirstLook)},
	}
	m.observer.EyeSpawned(slot, m.eyes[slot].X, y)
	return slot, true
}

// placeEye rejection-samples a centre row for slot.
func (m *EyeManager) placeEye(slot int) (int, bool) {
	for attempt := 0; attempt < m.cfg.SpawnAttempts; attempt++ {
		y := randRange(m.rng, m.minY, m.maxY)
		if m.spacedFrom(slot, y) {
			return y, true
		}
	}
	return 0, false
}

func (m *EyeManager) spacedFrom(slot, y int) bool {
	for j := range m.eyes {
		if j == slot || !m.eyes[j].Active() {
			continue
		}
		d := y - m.eyes[j].Y
		if d < 0 {
			d = -d
		}
		if d < m.cfg.MinSpacing {
			return false
		}
	}
	return true
}

// Draw renders every live eye.
func (m *EyeManager) Draw(s raster.Surface) {
	for i := range m.eyes {
		if m.eyes[i].Active() {
			m.drawEye(s, &m.eyes[i])
		}
	}
}
