package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
	"github.com/pthm-cable/analogdigital/systems"
	"github.com/pthm-cable/analogdigital/telemetry"
)

// StatsCallback receives each flushed telemetry window.
type StatsCallback func(telemetry.WindowStats)

// Game holds both scenes and selects which one renders each frame. The scene
// not selected keeps its pools frozen until it is selected again.
type Game struct {
	cfg     *config.Config
	surface raster.Surface
	rng     *rand.Rand
	rngSeed int64

	digital *DigitalScene
	analog  *AnalogScene
	mode    Mode

	// State
	tick        int32
	paused      bool
	speed       int   // frames per Step
	autoSwitch  int32 // frames between mode switches, 0 = never
	sinceSwitch int32

	// Telemetry
	collector        *telemetry.Collector
	lifetimes        *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    StatsCallback
	lastStats        telemetry.WindowStats

	registry *systems.SystemRegistry
}

// NewGame creates a game rendering to surface using the global config.
func NewGame(surface raster.Surface, opts Options) (*Game, error) {
	return NewGameWithConfig(config.Cfg(), surface, opts)
}

// NewGameWithConfig creates a game with an explicit config.
func NewGameWithConfig(cfg *config.Config, surface raster.Surface, opts Options) (*Game, error) {
	if surface.Width() != cfg.Screen.Width || surface.Height() != cfg.Screen.Height {
		return nil, fmt.Errorf("surface is %dx%d, config expects %dx%d",
			surface.Width(), surface.Height(), cfg.Screen.Width, cfg.Screen.Height)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	dt := float32(cfg.Derived.FrameSeconds)

	g := &Game{
		cfg:        cfg,
		surface:    surface,
		rng:        rng,
		rngSeed:    opts.Seed,
		digital:    NewDigitalScene(cfg, rng),
		analog:     NewAnalogScene(cfg, rng),
		mode:       opts.Mode,
		speed:      MinSpeed,
		autoSwitch: cfg.Derived.AutoSwitchTicks,

		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow, dt),
		lifetimes:        telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Eyes.MinActive, cfg.Telemetry.QuietWindows),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
		registry:         systems.NewSystemRegistry(),
	}

	obs := &telemetryObserver{g: g}
	g.digital.Eyes.SetObserver(obs)
	g.digital.Ripples.SetObserver(obs)
	g.analog.Waves.SetObserver(obs)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"mode", g.mode.String(),
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"output_dir", om.Dir(),
	)

	return g, nil
}

// Step renders speed frames unless paused.
func (g *Game) Step() error {
	if g.paused {
		return nil
	}
	for i := 0; i < g.speed; i++ {
		if err := g.frame(); err != nil {
			return err
		}
	}
	return nil
}

// frame renders a single frame of the current scene.
func (g *Game) frame() error {
	g.perfCollector.StartTick()

	if err := g.scene().Frame(g.surface, g.perfCollector.StartPhase); err != nil {
		return fmt.Errorf("frame %d: %w", g.tick, err)
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(g.mode == ModeAnalog)
	g.tick++
	g.flushTelemetry()
	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()

	g.sinceSwitch++
	if g.autoSwitch > 0 && g.sinceSwitch >= g.autoSwitch {
		g.SetMode(g.mode.Next())
	}
	return nil
}

func (g *Game) scene() Scene {
	if g.mode == ModeAnalog {
		return g.analog
	}
	return g.digital
}

// Mode returns the scene currently rendering.
func (g *Game) Mode() Mode {
	return g.mode
}

// SetMode switches scenes. The outgoing scene is left untouched.
func (g *Game) SetMode(m Mode) {
	g.sinceSwitch = 0
	if m == g.mode {
		return
	}
	slog.Info("mode switch", "tick", g.tick, "from", g.mode.String(), "to", m.String())
	g.mode = m
}

// ToggleMode switches to the other scene.
func (g *Game) ToggleMode() {
	g.SetMode(g.mode.Next())
}

// TogglePause pauses or resumes frame rendering.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// Paused reports whether rendering is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Speed returns the frames rendered per Step.
func (g *Game) Speed() int {
	return g.speed
}

// SetSpeed sets the frames rendered per Step, clamped to [MinSpeed, MaxSpeed].
func (g *Game) SetSpeed(n int) {
	g.speed = max(MinSpeed, min(n, MaxSpeed))
}

// Tick returns the number of frames rendered so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Digital returns the digital scene.
func (g *Game) Digital() *DigitalScene {
	return g.digital
}

// Analog returns the analog scene.
func (g *Game) Analog() *AnalogScene {
	return g.analog
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// PerfStats returns the rolling frame timing.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	if err := g.outputManager.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
