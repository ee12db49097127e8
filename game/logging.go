package game

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pthm-cable/analogdigital/systems"
)

// NewLogger builds the JSON logger used for all structured output.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// LogState logs a one-line summary of both scenes.
func (g *Game) LogState() {
	eyes := g.digital.Eyes
	var open, blinking, closing int
	for slot := 0; slot < eyes.Capacity(); slot++ {
		switch eyes.Eye(slot).State {
		case systems.EyeOpen:
			open++
		case systems.EyeBlinkClosing, systems.EyeBlinkOpening:
			blinking++
		case systems.EyeClosing:
			closing++
		}
	}

	slog.Info("state",
		"tick", g.tick,
		"seed", g.rngSeed,
		"mode", g.mode.String(),
		"paused", g.paused,
		"speed", g.speed,
		"eyes", eyes.ActiveCount(),
		"eyes_open", open,
		"eyes_blinking", blinking,
		"eyes_closing", closing,
		"ripples", g.digital.Ripples.ActiveCount(),
		"waves", g.analog.Waves.ActiveCount(),
		"background_red", g.digital.Background.Red(),
	)
}
