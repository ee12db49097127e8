package telemetry

// LifetimeStats tracks per-eye statistics from spawn to final close.
type LifetimeStats struct {
	SpawnTick int32
	X, Y      int
	Blinks    int
}

// EyeLifetime is the summary of a retired eye.
type EyeLifetime struct {
	Slot   int
	Frames int32
	Blinks int
}

// LifetimeTracker manages per-slot lifetime statistics. A slot holds at most
// one eye at a time, so slots double as identities.
type LifetimeTracker struct {
	stats   map[int]*LifetimeStats
	retired []EyeLifetime
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[int]*LifetimeStats),
	}
}

// Register starts tracking the eye spawned into slot.
func (lt *LifetimeTracker) Register(slot int, spawnTick int32, x, y int) {
	lt.stats[slot] = &LifetimeStats{
		SpawnTick: spawnTick,
		X:         x,
		Y:         y,
	}
}

// Get returns the lifetime stats for a slot, or nil if not found.
func (lt *LifetimeTracker) Get(slot int) *LifetimeStats {
	return lt.stats[slot]
}

// RecordBlink increments the blink count.
func (lt *LifetimeTracker) RecordBlink(slot int) {
	if s := lt.stats[slot]; s != nil {
		s.Blinks++
	}
}

// Retire stops tracking slot and queues its summary for the next Drain.
// Returns false if the slot was never registered.
func (lt *LifetimeTracker) Retire(slot int, currentTick int32) (EyeLifetime, bool) {
	s := lt.stats[slot]
	if s == nil {
		return EyeLifetime{}, false
	}
	delete(lt.stats, slot)

	l := EyeLifetime{
		Slot:   slot,
		Frames: currentTick - s.SpawnTick,
		Blinks: s.Blinks,
	}
	lt.retired = append(lt.retired, l)
	return l, true
}

// Drain returns the eyes retired since the previous call.
func (lt *LifetimeTracker) Drain() []EyeLifetime {
	out := lt.retired
	lt.retired = nil
	return out
}

// Count returns the number of tracked eyes.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
