package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
)

func TestDigitColumnLayout(t *testing.T) {
	cfg := config.Default().Digits
	d := NewDigitColumn(cfg, testHeight, rand.New(rand.NewSource(1)))

	// 26px cells: -(((320 - 26*11) / 11) + 26)
	if d.Offset() != -29 {
		t.Fatalf("offset = %d, want -29", d.Offset())
	}
	for i, c := range d.chars {
		if c.Y != -29*i {
			t.Errorf("char %d starts at %d, want %d", i, c.Y, -29*i)
		}
		if c.Ch != '0' && c.Ch != '1' {
			t.Errorf("char %d = %q, want binary digit", i, c.Ch)
		}
	}

	rec := raster.NewRecorder(testWidth, testHeight)
	d.Draw(rec, raster.Black)
	if len(rec.Chars) != 1 {
		t.Errorf("drew %d chars before scrolling, want only the one on screen", len(rec.Chars))
	}
}

func TestDigitColumnScrollsAndWraps(t *testing.T) {
	cfg := config.Default().Digits
	d := NewDigitColumn(cfg, testHeight, rand.New(rand.NewSource(2)))

	d.Update()
	if d.chars[0].Y != cfg.Speed {
		t.Errorf("first char at %d after one frame, want %d", d.chars[0].Y, cfg.Speed)
	}

	for i := 0; i < 2000; i++ {
		d.Update()
		for j, c := range d.chars {
			if c.Y > testHeight {
				t.Fatalf("frame %d: char %d at %d past the bottom", i, j, c.Y)
			}
		}
	}
	for j, c := range d.chars {
		if c.Y < d.Offset() {
			t.Errorf("char %d at %d never entered the cycle", j, c.Y)
		}
	}
}

func TestBackgroundDriftStaysNearBounds(t *testing.T) {
	cfg := config.Default().Background
	b := NewBackgroundDrift(cfg, rand.New(rand.NewSource(3)))

	if b.Red() != cfg.RedMin {
		t.Fatalf("starts at %d, want %d", b.Red(), cfg.RedMin)
	}
	prev := b.Red()
	for i := 0; i < 20000; i++ {
		b.Update()
		r := b.Red()
		if r-prev > 1 || prev-r > 1 {
			t.Fatalf("step %d jumped %d -> %d", i, prev, r)
		}
		if r < cfg.RedMin-1 || r > cfg.RedMax+1 {
			t.Fatalf("step %d: red %d outside [%d, %d]", i, r, cfg.RedMin-1, cfg.RedMax+1)
		}
		prev = r
	}

	c := raster.NewCanvas(4, 4)
	b.Draw(c)
	if c.Pixel(3, 3) != b.Color() {
		t.Error("Draw did not fill with the current colour")
	}
}

func TestWaveformsStayOnPanel(t *testing.T) {
	for form := WaveSine; form < numWaveforms; form++ {
		t.Run(form.String(), func(t *testing.T) {
			for k := 2; k < 40; k += 7 {
				off := float64(k) * math.Pi
				for y := 0; y <= testHeight; y++ {
					x := form.X(y, off, testWidth, testHeight)
					if x < 0 || x >= testWidth {
						t.Fatalf("k=%d y=%d: x=%d off panel", k, y, x)
					}
				}
			}
		})
	}
}

func TestWaveformValuesAtOrigin(t *testing.T) {
	tests := []struct {
		form Waveform
		want int
	}{
		{WaveSine, 32},
		{WaveTriangle, 32},
		{WaveSawtooth, 32},
		{WaveSharkFin, 0},
		{WaveSquare, 63},
	}
	for _, tt := range tests {
		if got := tt.form.X(0, 10*math.Pi, testWidth, testHeight); got != tt.want {
			t.Errorf("%v at y=0 = %d, want %d", tt.form, got, tt.want)
		}
	}
}

func TestNoiseIsDeterministic(t *testing.T) {
	off := 7 * math.Pi
	for y := 0; y < testHeight; y += 13 {
		a := NoiseX(y, off, testWidth, testHeight)
		b := NoiseX(y, off, testWidth, testHeight)
		if a != b {
			t.Fatalf("y=%d: %d != %d", y, a, b)
		}
	}
	if noiseHash(1, off) == noiseHash(2, off) {
		t.Error("adjacent segments hashed identically")
	}
}

func newTestWaves(seed int64) *WaveSystem {
	return NewWaveSystem(config.Default().Waves, testWidth, testHeight, rand.New(rand.NewSource(seed)))
}

func TestWaveDrawRowsClipped(t *testing.T) {
	s := newTestWaves(4)
	s.waves[0] = Wave{CurY: 10, Length: 40, Speed: 1, RadianOffset: 4 * math.Pi, Form: WaveSine, Active: true}
	rec := raster.NewRecorder(testWidth, testHeight)

	s.Draw(rec)
	if rec.Points != 11 {
		t.Errorf("drew %d pixels, want rows 0..10", rec.Points)
	}
}

func TestWaveJoinsDiscontinuities(t *testing.T) {
	tests := []struct {
		form  Waveform
		wantY int
	}{
		{WaveSquare, 160},
		{WaveSawtooth, 159},
	}
	for _, tt := range tests {
		t.Run(tt.form.String(), func(t *testing.T) {
			s := newTestWaves(5)
			s.waves[0] = Wave{CurY: 200, Length: 100, Speed: 1, RadianOffset: 2 * math.Pi, Form: tt.form, Active: true}
			rec := raster.NewRecorder(testWidth, testHeight)

			s.Draw(rec)
			if rec.Points != 101 {
				t.Errorf("drew %d pixels, want 101", rec.Points)
			}
			if len(rec.HLines) != 1 {
				t.Fatalf("drew %d joins, want 1", len(rec.HLines))
			}
			if h := rec.HLines[0]; h.Y != tt.wantY || h.X != 0 || h.Len != testWidth {
				t.Errorf("join = %+v, want full-width at y=%d", h, tt.wantY)
			}
		})
	}
}

type waveLog struct {
	spawned, retired int
}

func (l *waveLog) WaveSpawned(int, Waveform) { l.spawned++ }
func (l *waveLog) WaveRetired(int)           { l.retired++ }

func TestWaveRetiresWhenTailLeaves(t *testing.T) {
	s := newTestWaves(6)
	log := &waveLog{}
	s.SetObserver(log)
	s.waves[0] = Wave{CurY: testHeight + 47, Length: 50, Speed: 3, Form: WaveSine, RadianOffset: math.Pi, Active: true}

	// Tail lands exactly on the last row
	s.Update()
	if !s.Wave(0).Active {
		t.Fatal("retired one frame early")
	}
	s.Update()
	if s.Wave(0).Active {
		t.Error("wave still active with tail below the panel")
	}
	if log.retired != 1 {
		t.Errorf("retire events = %d, want 1", log.retired)
	}
}

func TestWavePopulation(t *testing.T) {
	cfg := config.Default().Waves
	s := newTestWaves(7)
	log := &waveLog{}
	s.SetObserver(log)

	s.EnsurePopulation()
	if s.ActiveCount() < cfg.MinActive {
		t.Fatalf("ActiveCount = %d, want at least %d", s.ActiveCount(), cfg.MinActive)
	}

	s.SetExtraSpawnChance(1)
	for i := 0; i < 50; i++ {
		s.EnsurePopulation()
		if n := s.ActiveCount(); n > cfg.MaxActive {
			t.Fatalf("ActiveCount = %d above %d", n, cfg.MaxActive)
		}
	}
	if s.ActiveCount() != cfg.MaxActive {
		t.Errorf("ActiveCount = %d, want %d with certain extra spawns", s.ActiveCount(), cfg.MaxActive)
	}

	for i := 0; i < s.ActiveCount(); i++ {
		w := s.Wave(i)
		k := w.RadianOffset / math.Pi
		if k < float64(cfg.RadianOffset.Min)-1e-9 || k > float64(cfg.RadianOffset.Max)+1e-9 {
			t.Errorf("wave %d radian multiple %.2f outside %+v", i, k, cfg.RadianOffset)
		}
		if w.Length < cfg.LengthMin || w.Length > testHeight-1 {
			t.Errorf("wave %d length %d outside [%d, %d]", i, w.Length, cfg.LengthMin, testHeight-1)
		}
		if w.Speed < cfg.Speed.Min || w.Speed > cfg.Speed.Max {
			t.Errorf("wave %d speed %d outside %+v", i, w.Speed, cfg.Speed)
		}
		if w.CurY != 0 {
			t.Errorf("wave %d starts at row %d, want 0", i, w.CurY)
		}
	}
	if log.spawned != cfg.MaxActive {
		t.Errorf("spawn events = %d, want %d", log.spawned, cfg.MaxActive)
	}
}

func TestSystemRegistryPhases(t *testing.T) {
	reg := NewSystemRegistry()

	cats := reg.Categories()
	want := map[string]int{"digital": 4, "analog": 1, "output": 2}
	if len(cats) != len(want) || cats[0] != "digital" || cats[1] != "analog" || cats[2] != "output" {
		t.Fatalf("Categories = %v, want [digital analog output]", cats)
	}
	for _, cat := range cats {
		if n := len(reg.ByCategory(cat)); n != want[cat] {
			t.Errorf("ByCategory(%q) = %d phases, want %d", cat, n, want[cat])
		}
	}
	if got := reg.ByCategory("digital")[2]; got.ID != "eyes" || got.Name != "Eyes" {
		t.Errorf("third digital phase = %+v, want eyes", got)
	}
	if n := len(reg.ByCategory("missing")); n != 0 {
		t.Errorf("unknown category has %d phases", n)
	}
}
