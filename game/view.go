package game

import (
	"time"

	"github.com/pthm-cable/analogdigital/systems"
	"github.com/pthm-cable/analogdigital/telemetry"
)

// View is a read-only snapshot of the game for side panels.
type View struct {
	Mode   Mode
	Tick   int32
	Paused bool
	Speed  int

	ActiveEyes    int
	ActiveRipples int
	ActiveWaves   int
	BackgroundRed int

	EyeSpawnChance  int
	WaveSpawnChance int

	Slots []systems.Eye // Every eye slot, active or not

	Stats      telemetry.WindowStats
	Perf       telemetry.PerfStats
	Phases     []PhaseGroup // Timed phases by scene
	PhaseTotal time.Duration
}

// View captures the current state.
func (g *Game) View() View {
	eyes := g.digital.Eyes
	slots := make([]systems.Eye, eyes.Capacity())
	for i := range slots {
		slots[i] = eyes.Eye(i)
	}
	perf := g.perfCollector.Stats()

	return View{
		Mode:            g.mode,
		Tick:            g.tick,
		Paused:          g.paused,
		Speed:           g.speed,
		ActiveEyes:      eyes.ActiveCount(),
		ActiveRipples:   g.digital.Ripples.ActiveCount(),
		ActiveWaves:     g.analog.Waves.ActiveCount(),
		BackgroundRed:   g.digital.Background.Red(),
		EyeSpawnChance:  eyes.ExtraSpawnChance(),
		WaveSpawnChance: g.analog.Waves.ExtraSpawnChance(),
		Slots:           slots,
		Stats:           g.lastStats,
		Perf:            perf,
		Phases:          phaseGroups(g.registry, perf),
		PhaseTotal:      phaseTotal(perf),
	}
}

// SetEyeSpawnChance sets the 1-in-N chance of an extra eye per frame.
func (g *Game) SetEyeSpawnChance(n int) {
	g.digital.Eyes.SetExtraSpawnChance(n)
}

// SetWaveSpawnChance sets the 1-in-N chance of an extra wave per frame.
func (g *Game) SetWaveSpawnChance(n int) {
	g.analog.Waves.SetExtraSpawnChance(n)
}
