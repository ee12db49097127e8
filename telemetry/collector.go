package telemetry

import "math"

// Collector accumulates display events within fixed windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	eyeSpawns       int
	spawnRejections int
	blinks          int
	eyeRetirements  int
	rippleSpawns    int
	rippleDrops     int
	waveSpawns      int
	waveRetirements int
	digitalFrames   int
	analogFrames    int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds of frames
// dt: seconds per frame (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordEyeSpawn records an eye entering the pool.
func (c *Collector) RecordEyeSpawn() {
	c.eyeSpawns++
}

// RecordSpawnRejection records a spawn abandoned because no row kept the
// minimum spacing.
func (c *Collector) RecordSpawnRejection() {
	c.spawnRejections++
}

// RecordBlink records a blink.
func (c *Collector) RecordBlink() {
	c.blinks++
}

// RecordEyeRetirement records an eye finishing its final close.
func (c *Collector) RecordEyeRetirement() {
	c.eyeRetirements++
}

// RecordRippleSpawn records a ring entering the pool.
func (c *Collector) RecordRippleSpawn() {
	c.rippleSpawns++
}

// RecordRippleDrop records a ring dropped because the pool was full.
func (c *Collector) RecordRippleDrop() {
	c.rippleDrops++
}

// RecordWaveSpawn records a waveform entering the pool.
func (c *Collector) RecordWaveSpawn() {
	c.waveSpawns++
}

// RecordWaveRetirement records a waveform scrolling off the panel.
func (c *Collector) RecordWaveRetirement() {
	c.waveRetirements++
}

// Record dispatches an event to its counter.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventEyeSpawn:
		c.RecordEyeSpawn()
	case EventSpawnRejected:
		c.RecordSpawnRejection()
	case EventBlink:
		c.RecordBlink()
	case EventEyeRetired:
		c.RecordEyeRetirement()
	case EventRippleSpawn:
		c.RecordRippleSpawn()
	case EventRippleDrop:
		c.RecordRippleDrop()
	case EventWaveSpawn:
		c.RecordWaveSpawn()
	case EventWaveRetired:
		c.RecordWaveRetirement()
	}
}

// RecordFrame counts one rendered frame of the given scene.
func (c *Collector) RecordFrame(analog bool) {
	if analog {
		c.analogFrames++
	} else {
		c.digitalFrames++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// PoolCounts holds live entity counts sampled at window end.
type PoolCounts struct {
	Eyes    int
	Ripples int
	Waves   int
}

// Flush produces a WindowStats and resets counters for the next window.
// lifetimes are the retired eyes of this window, in frames.
func (c *Collector) Flush(currentTick int32, pools PoolCounts, lifetimes []EyeLifetime) WindowStats {
	frames := make([]float64, len(lifetimes))
	var blinks int
	for i, l := range lifetimes {
		frames[i] = float64(l.Frames)
		blinks += l.Blinks
	}
	mean, std, p10, p50, p90 := ComputeLifetimeStats(frames)

	var blinksPerEye float64
	if len(lifetimes) > 0 {
		blinksPerEye = float64(blinks) / float64(len(lifetimes))
	}

	var rejectRate float64
	if attempts := c.eyeSpawns + c.spawnRejections; attempts > 0 {
		rejectRate = float64(c.spawnRejections) / float64(attempts)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		TimeSec:         float64(currentTick) * float64(c.dt),

		DigitalFrames: c.digitalFrames,
		AnalogFrames:  c.analogFrames,

		ActiveEyes:    pools.Eyes,
		ActiveRipples: pools.Ripples,
		ActiveWaves:   pools.Waves,

		EyeSpawns:       c.eyeSpawns,
		SpawnRejections: c.spawnRejections,
		RejectRate:      rejectRate,
		Blinks:          c.blinks,
		EyeRetirements:  c.eyeRetirements,
		RippleSpawns:    c.rippleSpawns,
		RippleDrops:     c.rippleDrops,
		WaveSpawns:      c.waveSpawns,
		WaveRetirements: c.waveRetirements,

		LifetimeMean:     mean,
		LifetimeStd:      std,
		LifetimeP10:      p10,
		LifetimeP50:      p50,
		LifetimeP90:      p90,
		BlinksPerEyeMean: blinksPerEye,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.eyeSpawns = 0
	c.spawnRejections = 0
	c.blinks = 0
	c.eyeRetirements = 0
	c.rippleSpawns = 0
	c.rippleDrops = 0
	c.waveSpawns = 0
	c.waveRetirements = 0
	c.digitalFrames = 0
	c.analogFrames = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
