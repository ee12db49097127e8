package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/analogdigital/game"
)

// HUD renders the status block at the top of the side panel.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD and returns the Y below it.
func (h *HUD) Draw(x, y, width int32, v game.View) int32 {
	r := h.renderer

	rl.DrawText("ANALOG / DIGITAL", x, y, 14, rl.White)
	y += 20

	status := "Running"
	statusColor := rl.Green
	if v.Paused {
		status = "PAUSED"
		statusColor = rl.Yellow
	}
	rl.DrawText(status, x, y, r.Theme.FontSize, statusColor)
	y += r.Theme.LineHeight

	y = r.DrawLabelValue(x, y, "Mode", v.Mode.String())
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d", v.Tick))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%dx  [</>]", v.Speed))
	if v.Perf.FPS > 0 {
		y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.0f", v.Perf.FPS))
	}

	y += 4
	if v.Mode == game.ModeDigital {
		y = r.DrawLabelValue(x, y, "Eyes", fmt.Sprintf("%d / %d", v.ActiveEyes, len(v.Slots)))
		y = r.DrawLabelValue(x, y, "Ripples", fmt.Sprintf("%d", v.ActiveRipples))
		y = r.DrawLabelValue(x, y, "Red", fmt.Sprintf("%d", v.BackgroundRed))
	} else {
		y = r.DrawLabelValue(x, y, "Waves", fmt.Sprintf("%d", v.ActiveWaves))
	}

	// Last closed stats window
	if v.Stats.WindowEndTick > 0 {
		y += 4
		y = r.DrawSectionHeader(x, y, fmt.Sprintf("Window @ %d", v.Stats.WindowEndTick))
		y = r.DrawLabelValue(x, y, "Blinks", fmt.Sprintf("%d", v.Stats.Blinks))
		y = r.DrawLabelValue(x, y, "Rejects", fmt.Sprintf("%d (%.0f%%)", v.Stats.SpawnRejections, v.Stats.RejectRate*100))
		y = r.DrawLabelValue(x, y, "Dropped", fmt.Sprintf("%d", v.Stats.RippleDrops))
		if v.Stats.EyeRetirements > 0 {
			y = r.DrawLabelValue(x, y, "Lifetime", fmt.Sprintf("%.0f (p90 %.0f)", v.Stats.LifetimeMean, v.Stats.LifetimeP90))
		}
	}

	return y + 6
}

// DrawControls renders the key legend at the bottom of the panel.
func (h *HUD) DrawControls(x, screenHeight int32, controls string) {
	rl.DrawText(controls, x, screenHeight-16, 10, rl.Gray)
}

// PerfPanel renders the frame phase timing panel.
type PerfPanel struct {
	renderer *Renderer
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel() *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
	}
}

// Draw renders the performance panel and returns the Y below it.
func (p *PerfPanel) Draw(x, y int32, v game.View) int32 {
	rl.DrawText("Frame Timing", x, y, 12, rl.White)
	y += 16

	rl.DrawText(fmt.Sprintf("Total: %s", v.PhaseTotal.Round(time.Microsecond)), x, y, 10, rl.Yellow)
	y += 14

	for _, group := range v.Phases {
		rl.DrawText(group.Category, x, y, 10, rl.Gray)
		y += 12

		for _, p := range group.Phases {
			color := rl.LightGray
			if p.Pct > 50 {
				color = rl.Red
			} else if p.Pct > 25 {
				color = rl.Orange
			}

			rl.DrawText(
				fmt.Sprintf("  %-10s %7s %5.1f%%", p.Name, p.Avg.Round(time.Microsecond), p.Pct),
				x, y, 10, color,
			)
			y += 12
		}
	}

	return y + 6
}
