package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/analogdigital/game"
)

// keyLegend lists the game keys handled outside the overlay registry.
const keyLegend = "M:mode  Space:pause  </>:speed  Q:quit"

// Sidebar lays out the enabled panels in a column beside the LED panel.
type Sidebar struct {
	X, Width, Height int32

	Overlays  *OverlayRegistry
	renderer  *Renderer
	hud       *HUD
	controls  *ControlsPanel
	perf      *PerfPanel
	inspector *Inspector
}

// NewSidebar creates a sidebar starting at x.
func NewSidebar(x, width, height int32) *Sidebar {
	return &Sidebar{
		X:         x,
		Width:     width,
		Height:    height,
		Overlays:  NewOverlayRegistry(),
		renderer:  NewRenderer(),
		hud:       NewHUD(),
		controls:  NewControlsPanel(),
		perf:      NewPerfPanel(),
		inspector: NewInspector(),
	}
}

// ShowLEDGrid reports whether the LED grid overlay is on.
func (s *Sidebar) ShowLEDGrid() bool {
	return s.Overlays.IsEnabled(OverlayLEDGrid)
}

// Draw handles overlay keys, renders every enabled panel and returns the
// controls the user touched.
func (s *Sidebar) Draw(v game.View) ControlResult {
	s.Overlays.HandleKeys()

	var res ControlResult
	pad := s.renderer.Theme.Padding
	x := s.X + pad
	inner := s.Width - pad*2
	y := pad

	rl.DrawRectangle(s.X, 0, s.Width, s.Height, s.renderer.Theme.PanelBg)
	rl.DrawLine(s.X, 0, s.X, s.Height, s.renderer.Theme.PanelBorder)

	if s.Overlays.IsEnabled(OverlayHUD) {
		y = s.hud.Draw(x, y, inner, v)
	}
	if s.Overlays.IsEnabled(OverlayControls) {
		y, res = s.controls.Draw(x, y, inner, v)
		y = s.controls.DrawOverlayList(x, y+4, inner, s.Overlays)
	}
	if s.Overlays.IsEnabled(OverlayPerf) {
		y = s.perf.Draw(x, y, v)
	}
	if s.Overlays.IsEnabled(OverlayInspector) && v.Mode == game.ModeDigital {
		s.inspector.Draw(x, y, inner, v.Slots)
	}

	s.hud.DrawControls(x, s.Height, keyLegend)
	return res
}

// Apply forwards the result to the game. It returns false if the game
// should stop.
func (r ControlResult) Apply(g *game.Game) bool {
	running := true
	for _, cmd := range r.Commands {
		if !g.Apply(cmd) {
			running = false
		}
	}
	if r.EyeSpawnChance > 0 {
		g.SetEyeSpawnChance(r.EyeSpawnChance)
	}
	if r.WaveSpawnChance > 0 {
		g.SetWaveSpawnChance(r.WaveSpawnChance)
	}
	return running
}
