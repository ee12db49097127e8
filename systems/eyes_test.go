package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
)

const (
	testWidth  = 64
	testHeight = 320
)

type spawnCall struct{ x, y, radius int }

// countingSpawner records ripple requests instead of creating ripples.
type countingSpawner struct {
	calls []spawnCall
}

func (c *countingSpawner) Spawn(x, y, radius int) {
	c.calls = append(c.calls, spawnCall{x, y, radius})
}

// eventLog records observer callbacks.
type eventLog struct {
	spawned  []int
	rejected int
	blinked  []int
	retired  []int
}

func (l *eventLog) EyeSpawned(slot, x, y int) { l.spawned = append(l.spawned, slot) }
func (l *eventLog) EyeSpawnRejected()         { l.rejected++ }
func (l *eventLog) EyeBlinked(slot int)       { l.blinked = append(l.blinked, slot) }
func (l *eventLog) EyeRetired(slot int)       { l.retired = append(l.retired, slot) }

func newTestEyes(t *testing.T, height int, seed int64, ripples RippleSpawner) (*EyeManager, config.EyeConfig) {
	t.Helper()
	cfg := config.Default().Eyes
	return NewEyeManager(cfg, testWidth, height, rand.New(rand.NewSource(seed)), ripples), cfg
}

func TestEyeReachesOpenAfterFifteenTicks(t *testing.T) {
	m, _ := newTestEyes(t, testHeight, 1, nil)

	slot, ok := m.Spawn()
	if !ok {
		t.Fatal("spawn into empty pool failed")
	}
	e := m.Eye(slot)
	if e.MaxOpen != 30 || e.HalfHeight != 25 {
		t.Fatalf("maxOpen=%d halfHeight=%d, want 30/25", e.MaxOpen, e.HalfHeight)
	}
	if e.X != testWidth/2 {
		t.Errorf("x = %d, want centred %d", e.X, testWidth/2)
	}

	for i := 0; i < 14; i++ {
		m.Update()
	}
	if e := m.Eye(slot); e.State != EyeOpening || e.Open != 28 {
		t.Fatalf("after 14 ticks: state=%v open=%d, want opening/28", e.State, e.Open)
	}

	m.Update()
	e = m.Eye(slot)
	if e.State != EyeOpen {
		t.Errorf("after 15 ticks: state=%v, want open", e.State)
	}
	if e.Open != 30 {
		t.Errorf("after 15 ticks: open=%d, want 30", e.Open)
	}
	if e.Timer < 60 || e.Timer > 179 {
		t.Errorf("hold timer %d outside [60, 179]", e.Timer)
	}
}

func TestExhaustedEyeClosesWithoutRipples(t *testing.T) {
	spawner := &countingSpawner{}
	m, _ := newTestEyes(t, testHeight, 2, spawner)

	slot, _ := m.Spawn()
	m.eyes[slot].State = EyeOpen
	m.eyes[slot].Open = m.eyes[slot].MaxOpen
	m.eyes[slot].Timer = 1
	m.eyes[slot].BlinksLeft = 0

	m.Update()

	if got := m.Eye(slot).State; got != EyeClosing {
		t.Errorf("state = %v, want closing", got)
	}
	if len(spawner.calls) != 0 {
		t.Errorf("closing spawned %d ripple requests, want 0", len(spawner.calls))
	}
}

func TestBlinkSpawnsRipplesAtEye(t *testing.T) {
	spawner := &countingSpawner{}
	log := &eventLog{}
	m, cfg := newTestEyes(t, testHeight, 3, spawner)
	m.SetObserver(log)

	slot, _ := m.Spawn()
	e := &m.eyes[slot]
	e.State = EyeOpen
	e.Open = e.MaxOpen
	e.Timer = 1
	e.BlinksLeft = 2

	m.Update()

	if e.State != EyeBlinkClosing {
		t.Fatalf("state = %v, want blink_closing", e.State)
	}
	if e.BlinksLeft != 1 {
		t.Errorf("blinksLeft = %d, want 1", e.BlinksLeft)
	}
	want := spawnCall{e.X, e.Y, cfg.HalfHeight}
	if len(spawner.calls) != 1 || spawner.calls[0] != want {
		t.Errorf("ripple requests = %+v, want [%+v]", spawner.calls, want)
	}
	if len(log.blinked) != 1 || log.blinked[0] != slot {
		t.Errorf("blink events = %v", log.blinked)
	}
}

func TestBlinkCycle(t *testing.T) {
	m, _ := newTestEyes(t, testHeight, 4, nil)
	slot, _ := m.Spawn()
	e := &m.eyes[slot]
	e.State = EyeBlinkClosing
	e.Open = 1

	m.Update()
	if e.State != EyeBlinkOpening || e.Open != 0 {
		t.Fatalf("state=%v open=%d, want blink_opening/0 (clamped)", e.State, e.Open)
	}

	for e.State == EyeBlinkOpening {
		m.Update()
	}
	if e.State != EyeOpen || e.Open != e.MaxOpen {
		t.Errorf("state=%v open=%d, want open/%d", e.State, e.Open, e.MaxOpen)
	}
}

func TestClosingRetiresSlot(t *testing.T) {
	log := &eventLog{}
	m, _ := newTestEyes(t, testHeight, 5, nil)
	m.SetObserver(log)

	slot, _ := m.Spawn()
	e := &m.eyes[slot]
	e.State = EyeClosing
	e.Open = 1

	m.Update()
	if e.State != EyeInactive || e.Open != 0 {
		t.Errorf("state=%v open=%d, want inactive/0", e.State, e.Open)
	}
	if m.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", m.ActiveCount())
	}
	if len(log.retired) != 1 || log.retired[0] != slot {
		t.Errorf("retire events = %v", log.retired)
	}
}

func TestSpawnGeometryFollowsConfig(t *testing.T) {
	cfg := config.Default().Eyes
	cfg.Margin = 10
	cfg.EdgeMargin = 5
	minY := cfg.HalfHeight + cfg.EdgeMargin
	maxY := testHeight - cfg.HalfHeight - cfg.EdgeMargin - 1

	for seed := int64(0); seed < 50; seed++ {
		m := NewEyeManager(cfg, testWidth, testHeight, rand.New(rand.NewSource(seed)), nil)
		slot, ok := m.Spawn()
		if !ok {
			t.Fatalf("seed %d: spawn into empty pool failed", seed)
		}
		e := m.Eye(slot)
		if e.MaxOpen != testWidth/2-cfg.Margin {
			t.Errorf("seed %d: maxOpen = %d, want %d", seed, e.MaxOpen, testWidth/2-cfg.Margin)
		}
		if e.Y < minY || e.Y > maxY {
			t.Errorf("seed %d: y = %d outside safe rows [%d, %d]", seed, e.Y, minY, maxY)
		}
	}
}

func TestSecondSpawnRejectedOnShortPanel(t *testing.T) {
	// Safe rows 27..72 are narrower than the 55px spacing
	log := &eventLog{}
	m, _ := newTestEyes(t, 100, 6, nil)
	m.SetObserver(log)

	if _, ok := m.Spawn(); !ok {
		t.Fatal("first spawn failed")
	}
	if _, ok := m.Spawn(); ok {
		t.Fatal("second spawn succeeded despite spacing")
	}
	if m.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1", m.ActiveCount())
	}
	if log.rejected != 1 {
		t.Errorf("rejections = %d, want 1", log.rejected)
	}

	// The floor cannot be met; EnsurePopulation gives up quietly
	m.EnsurePopulation()
	if m.ActiveCount() != 1 {
		t.Errorf("after EnsurePopulation ActiveCount = %d, want 1", m.ActiveCount())
	}
}

func TestSpawnFailsWhenPoolFull(t *testing.T) {
	log := &eventLog{}
	m, cfg := newTestEyes(t, testHeight, 7, nil)
	m.SetObserver(log)

	for i := range m.eyes {
		m.eyes[i] = Eye{State: EyeOpen, Y: -1000 * (i + 1), MaxOpen: 30, HalfHeight: cfg.HalfHeight}
	}
	if _, ok := m.Spawn(); ok {
		t.Fatal("spawn succeeded with a full pool")
	}
	if log.rejected != 0 {
		t.Errorf("full pool counted as %d placement rejections", log.rejected)
	}
}

func TestEnsurePopulationFloor(t *testing.T) {
	cfg := config.Default().Eyes
	cfg.MaxActive = cfg.MinActive
	m := NewEyeManager(cfg, testWidth, testHeight, rand.New(rand.NewSource(8)), nil)

	m.EnsurePopulation()
	if got := m.ActiveCount(); got != cfg.MinActive {
		t.Errorf("ActiveCount = %d, want %d", got, cfg.MinActive)
	}

	m.EnsurePopulation()
	if got := m.ActiveCount(); got != cfg.MinActive {
		t.Errorf("second call changed count to %d", got)
	}
}

func TestEnsurePopulationCeiling(t *testing.T) {
	m, cfg := newTestEyes(t, testHeight, 9, nil)
	m.SetExtraSpawnChance(1)

	for i := 0; i < 200; i++ {
		m.EnsurePopulation()
		if got := m.ActiveCount(); got < cfg.MinActive || got > cfg.MaxActive {
			t.Fatalf("call %d: ActiveCount = %d outside [%d, %d]", i, got, cfg.MinActive, cfg.MaxActive)
		}
	}
}

func TestIrisUnitStepPursuit(t *testing.T) {
	m, _ := newTestEyes(t, testHeight, 10, nil)
	e := &Eye{Open: 30, HalfHeight: 25, Iris: Iris{TargetX: 3, TargetY: -2, LookTimer: 100}}

	for i := 0; i < 2; i++ {
		m.updateIris(e)
	}
	if e.Iris.X != 2 || e.Iris.Y != -2 {
		t.Fatalf("after 2 steps iris = (%d,%d), want (2,-2)", e.Iris.X, e.Iris.Y)
	}
	for i := 0; i < 5; i++ {
		m.updateIris(e)
	}
	if e.Iris.X != 3 || e.Iris.Y != -2 {
		t.Errorf("iris settled at (%d,%d), want (3,-2)", e.Iris.X, e.Iris.Y)
	}
	if e.Iris.LookTimer != 93 {
		t.Errorf("look timer = %d, want 93", e.Iris.LookTimer)
	}
}

func TestIrisFrozenBelowThreshold(t *testing.T) {
	m, cfg := newTestEyes(t, testHeight, 11, nil)
	e := &Eye{Open: cfg.IrisThreshold, HalfHeight: 25, Iris: Iris{TargetX: 5, LookTimer: 1}}

	m.updateIris(e)
	if e.Iris.X != 0 || e.Iris.LookTimer != 1 {
		t.Errorf("iris moved while nearly closed: %+v", e.Iris)
	}
}

func TestIrisRetargetWithinBounds(t *testing.T) {
	m, cfg := newTestEyes(t, testHeight, 12, nil)
	for i := 0; i < 500; i++ {
		e := &Eye{Open: 30, HalfHeight: 25, Iris: Iris{LookTimer: 1}}
		m.updateIris(e)
		if e.Iris.TargetX < -10 || e.Iris.TargetX > 10 || e.Iris.TargetY < -5 || e.Iris.TargetY > 5 {
			t.Fatalf("target (%d,%d) outside ±10/±5", e.Iris.TargetX, e.Iris.TargetY)
		}
		if e.Iris.LookTimer < cfg.LookInterval.Min || e.Iris.LookTimer > cfg.LookInterval.Max {
			t.Fatalf("look timer %d outside %+v", e.Iris.LookTimer, cfg.LookInterval)
		}
	}
}

var allowedTransitions = map[EyeState][]EyeState{
	EyeOpening:      {EyeOpening, EyeOpen},
	EyeOpen:         {EyeOpen, EyeBlinkClosing, EyeClosing},
	EyeBlinkClosing: {EyeBlinkClosing, EyeBlinkOpening},
	EyeBlinkOpening: {EyeBlinkOpening, EyeOpen},
	EyeClosing:      {EyeClosing, EyeInactive},
	EyeInactive:     {EyeInactive},
}

func allowed(from, to EyeState) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TestLifecycleInvariants runs the digital frame loop for a long stretch and
// checks every per-frame property of the pool.
func TestLifecycleInvariants(t *testing.T) {
	ripples := NewRippleSystem(config.Default().Ripples, testWidth, testHeight, rand.New(rand.NewSource(13)))
	m, cfg := newTestEyes(t, testHeight, 14, ripples)
	surf := raster.NewCanvas(testWidth, testHeight)

	prev := make([]Eye, m.Capacity())
	blinksSeen := 0
	retiredSeen := 0

	for frame := 0; frame < 20000; frame++ {
		m.Update()
		m.Draw(surf)

		for i := range m.eyes {
			cur := m.eyes[i]
			if !allowed(prev[i].State, cur.State) {
				t.Fatalf("frame %d slot %d: illegal transition %v -> %v", frame, i, prev[i].State, cur.State)
			}
			if cur.Open < 0 || cur.Open > cur.MaxOpen {
				t.Fatalf("frame %d slot %d: open %d outside [0, %d]", frame, i, cur.Open, cur.MaxOpen)
			}
			if cur.Active() && cur.BlinksLeft > prev[i].BlinksLeft {
				t.Fatalf("frame %d slot %d: blinksLeft rose %d -> %d", frame, i, prev[i].BlinksLeft, cur.BlinksLeft)
			}
			if prev[i].State == EyeOpen && cur.State == EyeClosing && prev[i].BlinksLeft != 0 {
				t.Fatalf("frame %d slot %d: closed with %d blinks left", frame, i, prev[i].BlinksLeft)
			}
			if prev[i].State == EyeOpen && cur.State == EyeBlinkClosing {
				blinksSeen++
			}
			if prev[i].State == EyeClosing && cur.State == EyeInactive {
				retiredSeen++
			}
			if cur.Active() && (cur.X != prev[i].X || cur.Y != prev[i].Y) && prev[i].Active() {
				t.Fatalf("frame %d slot %d: eye moved", frame, i)
			}
			prev[i] = cur
		}

		m.EnsurePopulation()
		ripples.Update()
		ripples.Draw(surf)

		active := m.ActiveCount()
		if active < cfg.MinActive || active > cfg.MaxActive {
			t.Fatalf("frame %d: %d active eyes outside [%d, %d]", frame, active, cfg.MinActive, cfg.MaxActive)
		}

		for i := range m.eyes {
			cur := m.eyes[i]
			if prev[i].State == EyeInactive && cur.Active() {
				if cur.State != EyeOpening || cur.Open != 0 {
					t.Fatalf("frame %d slot %d: spawned as %v/%d", frame, i, cur.State, cur.Open)
				}
				if cur.BlinksLeft < cfg.Blinks.Min || cur.BlinksLeft > cfg.Blinks.Max {
					t.Fatalf("frame %d slot %d: blinksLeft %d outside %+v", frame, i, cur.BlinksLeft, cfg.Blinks)
				}
			} else if prev[i].State != cur.State {
				t.Fatalf("frame %d slot %d: state changed outside Update", frame, i)
			}
			prev[i] = cur

			if !cur.Active() {
				continue
			}
			for j := i + 1; j < len(m.eyes); j++ {
				other := m.eyes[j]
				if !other.Active() {
					continue
				}
				d := cur.Y - other.Y
				if d < 0 {
					d = -d
				}
				if d < cfg.MinSpacing {
					t.Fatalf("frame %d: slots %d and %d only %d apart", frame, i, j, d)
				}
			}
		}
	}

	if blinksSeen == 0 || retiredSeen == 0 {
		t.Errorf("loop never exercised the full lifecycle: %d blinks, %d retirements", blinksSeen, retiredSeen)
	}
}

func TestDrawClosedEyeIsSlit(t *testing.T) {
	m, cfg := newTestEyes(t, testHeight, 15, nil)
	rec := raster.NewRecorder(testWidth, testHeight)

	slot, _ := m.Spawn()
	e := m.Eye(slot)
	m.Draw(rec)

	if len(rec.VLines) != 1 {
		t.Fatalf("closed eye drew %d vlines, want 1", len(rec.VLines))
	}
	want := raster.Span{X: e.X, Y: e.Y - cfg.HalfHeight, Len: 2*cfg.HalfHeight + 1, Color: raster.FromConfig(cfg.LidColor)}
	if rec.VLines[0] != want {
		t.Errorf("slit = %+v, want %+v", rec.VLines[0], want)
	}
	if len(rec.HLines)+len(rec.Lines)+len(rec.Fills) != 0 {
		t.Error("closed eye drew more than the slit")
	}
}

func TestDrawOpenEye(t *testing.T) {
	m, cfg := newTestEyes(t, testHeight, 16, nil)
	rec := raster.NewRecorder(testWidth, testHeight)

	slot, _ := m.Spawn()
	e := &m.eyes[slot]
	e.State = EyeOpen
	e.Open = 30
	e.Iris.X, e.Iris.Y = 2, -1

	m.Draw(rec)

	// Rows with a non-zero half-width: |dy| <= 24
	if len(rec.HLines) != 49 {
		t.Errorf("fill spans = %d, want 49", len(rec.HLines))
	}
	centre := rec.HLines[24]
	if centre.X != e.X-30 || centre.Y != e.Y || centre.Len != 61 {
		t.Errorf("centre span = %+v", centre)
	}

	if want := 4 + 2*cfg.LashCount; len(rec.Lines) != want {
		t.Fatalf("lines = %d, want %d lids + lashes", len(rec.Lines), want)
	}
	// Top-left lash: dy=-21, half-width 4, fan -4
	wantLash := raster.Segment{X0: e.X - 4, Y0: e.Y - 21, X1: e.X - 9, Y1: e.Y - 25, Color: raster.FromConfig(cfg.LidColor)}
	if rec.Lines[4] != wantLash {
		t.Errorf("first lash = %+v, want %+v", rec.Lines[4], wantLash)
	}
	// Middle lash is horizontal
	mid := rec.Lines[4+2*(cfg.LashCount/2)]
	if mid.Y0 != e.Y || mid.Y1 != e.Y {
		t.Errorf("middle lash not horizontal: %+v", mid)
	}

	if len(rec.Fills) != 2 {
		t.Fatalf("fills = %d, want iris + pupil", len(rec.Fills))
	}
	iris, pupil := rec.Fills[0], rec.Fills[1]
	if iris.X != e.X+2 || iris.Y != e.Y-1 || iris.R != 10 {
		t.Errorf("iris = %+v", iris)
	}
	if pupil.R != 5 || pupil.Color != raster.FromConfig(cfg.PupilColor) {
		t.Errorf("pupil = %+v", pupil)
	}
}

func TestDrawBarelyOpenEyeSkipsIris(t *testing.T) {
	m, cfg := newTestEyes(t, testHeight, 17, nil)
	rec := raster.NewRecorder(testWidth, testHeight)

	slot, _ := m.Spawn()
	m.eyes[slot].Open = cfg.IrisThreshold
	m.Draw(rec)

	if len(rec.Lines) != 4 {
		t.Errorf("lines = %d, want lids only", len(rec.Lines))
	}
	if len(rec.Fills) != 0 {
		t.Errorf("iris drawn at open=%d", cfg.IrisThreshold)
	}
}

func TestDiamondHalfWidth(t *testing.T) {
	tests := []struct {
		open, hh, dy, want int
	}{
		{30, 25, 0, 30},
		{30, 25, 25, 0},
		{30, 25, -25, 0},
		{30, 25, 24, 1},
		{30, 25, -12, 15},
		{10, 25, 20, 2},
		{0, 25, 0, 0},
	}
	for _, tt := range tests {
		if got := diamondHalfWidth(tt.open, tt.hh, tt.dy); got != tt.want {
			t.Errorf("diamondHalfWidth(%d,%d,%d) = %d, want %d", tt.open, tt.hh, tt.dy, got, tt.want)
		}
	}
}

func TestEyeStateString(t *testing.T) {
	if EyeBlinkOpening.String() != "blink_opening" {
		t.Errorf("String() = %q", EyeBlinkOpening.String())
	}
	if EyeState(99).String() != "unknown" {
		t.Errorf("out of range String() = %q", EyeState(99).String())
	}
}
