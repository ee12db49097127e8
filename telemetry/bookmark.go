package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSpawnStarved     BookmarkType = "spawn_starved"
	BookmarkRippleSaturation BookmarkType = "ripple_saturation"
	BookmarkQuietField       BookmarkType = "quiet_field"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in the display.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	eyeFloor     int // minimum eyes the manager tries to keep
	quietWindows int // digital windows without blinks before quiet_field fires

	quietCount int  // consecutive digital windows without blinks
	starved    bool // spawn_starved already reported for the current streak
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize, eyeFloor, quietWindows int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	if quietWindows < 1 {
		quietWindows = 1
	}
	return &BookmarkDetector{
		history:      make([]WindowStats, historySize),
		historySize:  historySize,
		eyeFloor:     eyeFloor,
		quietWindows: quietWindows,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Spawn starved: placement keeps failing while the pool sits below its floor
	if b := bd.checkSpawnStarved(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Ripple saturation: blinks asked for more rings than the pool holds
	if b := bd.checkRippleSaturation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Quiet field: digital scene running with no blinks
	if b := bd.checkQuietField(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkSpawnStarved(stats WindowStats) *Bookmark {
	starved := stats.SpawnRejections > 0 &&
		stats.SpawnRejections >= stats.EyeSpawns &&
		stats.ActiveEyes < bd.eyeFloor
	if !starved {
		bd.starved = false
		return nil
	}
	if bd.starved {
		return nil
	}
	bd.starved = true

	return &Bookmark{
		Type:        BookmarkSpawnStarved,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d rejected vs %d spawned with %d/%d eyes", stats.SpawnRejections, stats.EyeSpawns, stats.ActiveEyes, bd.eyeFloor),
	}
}

func (bd *BookmarkDetector) checkRippleSaturation(stats WindowStats) *Bookmark {
	if stats.RippleDrops == 0 {
		return nil
	}

	// Compare against the rolling mean so a single busy window stands out
	var total int
	history := bd.getHistory()
	for _, h := range history {
		total += h.RippleDrops
	}
	desc := fmt.Sprintf("%d ripples dropped with %d active", stats.RippleDrops, stats.ActiveRipples)
	if len(history) > 0 {
		desc += fmt.Sprintf(" (rolling mean %.1f)", float64(total)/float64(len(history)))
	}

	return &Bookmark{
		Type:        BookmarkRippleSaturation,
		Tick:        stats.WindowEndTick,
		Description: desc,
	}
}

func (bd *BookmarkDetector) checkQuietField(stats WindowStats) *Bookmark {
	if stats.DigitalFrames == 0 {
		// Analog windows neither extend nor break the streak
		return nil
	}
	if stats.Blinks > 0 {
		bd.quietCount = 0
		return nil
	}

	bd.quietCount++
	if bd.quietCount == bd.quietWindows { // trigger once per streak
		return &Bookmark{
			Type:        BookmarkQuietField,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("No blinks for %d digital windows with %d eyes", bd.quietCount, stats.ActiveEyes),
		}
	}

	return nil
}
