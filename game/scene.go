package game

import (
	"math/rand"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
	"github.com/pthm-cable/analogdigital/systems"
	"github.com/pthm-cable/analogdigital/telemetry"
)

// phaseFunc marks the start of a named frame phase for perf tracking.
type phaseFunc func(name string)

func (p phaseFunc) start(name string) {
	if p != nil {
		p(name)
	}
}

// Scene renders one complete frame onto a surface, ending with Show.
type Scene interface {
	Frame(s raster.Surface, phase phaseFunc) error
}

// DigitalScene composites the red background, the binary column, the eyes
// and their ripples.
type DigitalScene struct {
	Background *systems.BackgroundDrift
	Digits     *systems.DigitColumn
	Eyes       *systems.EyeManager
	Ripples    *systems.RippleSystem
}

// NewDigitalScene builds the digital scene with its eyes wired to the ripple
// pool.
func NewDigitalScene(cfg *config.Config, rng *rand.Rand) *DigitalScene {
	w, h := cfg.Screen.Width, cfg.Screen.Height
	ripples := systems.NewRippleSystem(cfg.Ripples, w, h, rng)
	return &DigitalScene{
		Background: systems.NewBackgroundDrift(cfg.Background, rng),
		Digits:     systems.NewDigitColumn(cfg.Digits, h, rng),
		Eyes:       systems.NewEyeManager(cfg.Eyes, w, h, rng, ripples),
		Ripples:    ripples,
	}
}

// Frame runs background, digits, eyes, population, ripples and presents.
func (d *DigitalScene) Frame(s raster.Surface, phase phaseFunc) error {
	phase.start(telemetry.PhaseBackground)
	d.Background.Update()
	d.Background.Draw(s)

	phase.start(telemetry.PhaseDigits)
	d.Digits.Update()
	d.Digits.Draw(s, d.Background.Color())

	phase.start(telemetry.PhaseEyes)
	d.Eyes.Update()
	d.Eyes.Draw(s)
	d.Eyes.EnsurePopulation()

	phase.start(telemetry.PhaseRipples)
	d.Ripples.Update()
	d.Ripples.Draw(s)

	phase.start(telemetry.PhasePresent)
	return s.Show()
}

// AnalogScene draws scrolling waveform traces on black.
type AnalogScene struct {
	Waves *systems.WaveSystem
}

// NewAnalogScene builds the analog scene.
func NewAnalogScene(cfg *config.Config, rng *rand.Rand) *AnalogScene {
	return &AnalogScene{
		Waves: systems.NewWaveSystem(cfg.Waves, cfg.Screen.Width, cfg.Screen.Height, rng),
	}
}

// Frame clears the panel, draws and advances the waves, tops up the pool and
// presents.
func (a *AnalogScene) Frame(s raster.Surface, phase phaseFunc) error {
	phase.start(telemetry.PhaseWaves)
	s.FillScreen(raster.Black)
	a.Waves.Draw(s)
	a.Waves.Update()
	a.Waves.EnsurePopulation()

	phase.start(telemetry.PhasePresent)
	return s.Show()
}
