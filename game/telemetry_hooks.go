package game

import (
	"log/slog"

	"github.com/pthm-cable/analogdigital/systems"
	"github.com/pthm-cable/analogdigital/telemetry"
)

// telemetryObserver turns pool callbacks into telemetry events.
type telemetryObserver struct {
	g *Game
}

func (o *telemetryObserver) EyeSpawned(slot, x, y int) {
	o.g.lifetimes.Register(slot, o.g.tick, x, y)
	o.g.record(telemetry.NewEyeSpawnEvent(o.g.tick, slot, x, y))
}

func (o *telemetryObserver) EyeSpawnRejected() {
	o.g.record(telemetry.NewSpawnRejectedEvent(o.g.tick))
}

func (o *telemetryObserver) EyeBlinked(slot int) {
	o.g.lifetimes.RecordBlink(slot)
	o.g.record(telemetry.NewBlinkEvent(o.g.tick, slot))
}

func (o *telemetryObserver) EyeRetired(slot int) {
	o.g.lifetimes.Retire(slot, o.g.tick)
	o.g.record(telemetry.NewEyeRetiredEvent(o.g.tick, slot))
}

func (o *telemetryObserver) RippleSpawned(slot int) {
	o.g.record(telemetry.NewRippleSpawnEvent(o.g.tick, slot))
}

func (o *telemetryObserver) RippleDropped() {
	o.g.record(telemetry.NewRippleDropEvent(o.g.tick))
}

func (o *telemetryObserver) WaveSpawned(slot int, form systems.Waveform) {
	o.g.record(telemetry.NewWaveSpawnEvent(o.g.tick, slot, form.String()))
}

func (o *telemetryObserver) WaveRetired(slot int) {
	o.g.record(telemetry.NewWaveRetiredEvent(o.g.tick, slot))
}

func (g *Game) record(e telemetry.Event) {
	g.collector.Record(e)
	slog.Debug("event", "event", e)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	pools := telemetry.PoolCounts{
		Eyes:    g.digital.Eyes.ActiveCount(),
		Ripples: g.digital.Ripples.ActiveCount(),
		Waves:   g.analog.Waves.ActiveCount(),
	}
	stats := g.collector.Flush(g.tick, pools, g.lifetimes.Drain())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
