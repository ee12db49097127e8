// Package telemetry provides display health tracking, bookmarking and CSV
// output for long unattended runs.
package telemetry

import "log/slog"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventEyeSpawn EventType = iota
	EventSpawnRejected
	EventBlink
	EventEyeRetired
	EventRippleSpawn
	EventRippleDrop
	EventWaveSpawn
	EventWaveRetired
)

var eventNames = [...]string{
	EventEyeSpawn:      "eye_spawn",
	EventSpawnRejected: "spawn_rejected",
	EventBlink:         "blink",
	EventEyeRetired:    "eye_retired",
	EventRippleSpawn:   "ripple_spawn",
	EventRippleDrop:    "ripple_drop",
	EventWaveSpawn:     "wave_spawn",
	EventWaveRetired:   "wave_retired",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Tick int32
	Slot int // pool slot, -1 when the event has none

	// Optional fields depending on event type
	X, Y   int    // eye spawn position
	Detail string // waveform name for wave spawns
}

// NewEyeSpawnEvent creates an eye spawn event.
func NewEyeSpawnEvent(tick int32, slot, x, y int) Event {
	return Event{Type: EventEyeSpawn, Tick: tick, Slot: slot, X: x, Y: y}
}

// NewSpawnRejectedEvent creates an event for a spawn with no valid row.
func NewSpawnRejectedEvent(tick int32) Event {
	return Event{Type: EventSpawnRejected, Tick: tick, Slot: -1}
}

// NewBlinkEvent creates a blink event.
func NewBlinkEvent(tick int32, slot int) Event {
	return Event{Type: EventBlink, Tick: tick, Slot: slot}
}

// NewEyeRetiredEvent creates an event for an eye that finished closing.
func NewEyeRetiredEvent(tick int32, slot int) Event {
	return Event{Type: EventEyeRetired, Tick: tick, Slot: slot}
}

// NewRippleSpawnEvent creates a ripple spawn event.
func NewRippleSpawnEvent(tick int32, slot int) Event {
	return Event{Type: EventRippleSpawn, Tick: tick, Slot: slot}
}

// NewRippleDropEvent creates an event for a ring lost to a full pool.
func NewRippleDropEvent(tick int32) Event {
	return Event{Type: EventRippleDrop, Tick: tick, Slot: -1}
}

// NewWaveSpawnEvent creates a wave spawn event.
func NewWaveSpawnEvent(tick int32, slot int, form string) Event {
	return Event{Type: EventWaveSpawn, Tick: tick, Slot: slot, Detail: form}
}

// NewWaveRetiredEvent creates a wave retirement event.
func NewWaveRetiredEvent(tick int32, slot int) Event {
	return Event{Type: EventWaveRetired, Tick: tick, Slot: slot}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.Int("tick", int(e.Tick)),
	}
	if e.Slot >= 0 {
		attrs = append(attrs, slog.Int("slot", e.Slot))
	}
	if e.Type == EventEyeSpawn {
		attrs = append(attrs, slog.Int("x", e.X), slog.Int("y", e.Y))
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	return slog.GroupValue(attrs...)
}
