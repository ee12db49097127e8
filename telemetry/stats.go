package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	TimeSec         float64 `csv:"time"`

	// Frames rendered per scene
	DigitalFrames int `csv:"digital_frames"`
	AnalogFrames  int `csv:"analog_frames"`

	// Pool occupancy at window end
	ActiveEyes    int `csv:"eyes"`
	ActiveRipples int `csv:"ripples"`
	ActiveWaves   int `csv:"waves"`

	// Events during window
	EyeSpawns       int     `csv:"eye_spawns"`
	SpawnRejections int     `csv:"spawn_rejections"`
	RejectRate      float64 `csv:"reject_rate"`
	Blinks          int     `csv:"blinks"`
	EyeRetirements  int     `csv:"eye_retirements"`
	RippleSpawns    int     `csv:"ripple_spawns"`
	RippleDrops     int     `csv:"ripple_drops"`
	WaveSpawns      int     `csv:"wave_spawns"`
	WaveRetirements int     `csv:"wave_retirements"`

	// Lifetime of eyes retired during the window, in frames
	LifetimeMean     float64 `csv:"lifetime_mean"`
	LifetimeStd      float64 `csv:"lifetime_std"`
	LifetimeP10      float64 `csv:"lifetime_p10"`
	LifetimeP50      float64 `csv:"lifetime_p50"`
	LifetimeP90      float64 `csv:"lifetime_p90"`
	BlinksPerEyeMean float64 `csv:"blinks_per_eye"`
}

// ComputeLifetimeStats returns the mean, sample standard deviation and
// empirical 10th/50th/90th percentiles of values. Empty input yields zeros;
// a single value has zero spread.
func ComputeLifetimeStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n == 1 {
		mean = sorted[0]
	} else {
		mean, std = stat.MeanStdDev(sorted, nil)
	}

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("time", s.TimeSec),
		slog.Int("digital_frames", s.DigitalFrames),
		slog.Int("analog_frames", s.AnalogFrames),
		slog.Int("eyes", s.ActiveEyes),
		slog.Int("ripples", s.ActiveRipples),
		slog.Int("waves", s.ActiveWaves),
		slog.Int("eye_spawns", s.EyeSpawns),
		slog.Int("spawn_rejections", s.SpawnRejections),
		slog.Float64("reject_rate", s.RejectRate),
		slog.Int("blinks", s.Blinks),
		slog.Int("eye_retirements", s.EyeRetirements),
		slog.Int("ripple_spawns", s.RippleSpawns),
		slog.Int("ripple_drops", s.RippleDrops),
		slog.Int("wave_spawns", s.WaveSpawns),
		slog.Int("wave_retirements", s.WaveRetirements),
		slog.Float64("lifetime_mean", s.LifetimeMean),
		slog.Float64("lifetime_std", s.LifetimeStd),
		slog.Float64("lifetime_p10", s.LifetimeP10),
		slog.Float64("lifetime_p50", s.LifetimeP50),
		slog.Float64("lifetime_p90", s.LifetimeP90),
		slog.Float64("blinks_per_eye", s.BlinksPerEyeMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
