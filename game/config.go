package game

// Speed limits for frames per Step.
const (
	MinSpeed = 1
	MaxSpeed = 10
)

// Options holds configuration for game initialization.
type Options struct {
	Seed      int64
	Mode      Mode
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // CSV and config output (empty = disabled)

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback StatsCallback
}
