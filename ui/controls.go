package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/analogdigital/game"
)

// Slider bounds for the 1-in-N spawn chances.
const (
	minSpawnChance = 1
	maxSpawnChance = 400
)

// ControlResult holds what the user changed on the panel this frame.
type ControlResult struct {
	Commands        []game.Command
	EyeSpawnChance  int // 0 = unchanged
	WaveSpawnChance int // 0 = unchanged
}

// ControlsPanel renders raygui buttons and sliders for the running game.
type ControlsPanel struct {
	renderer *Renderer
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel() *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
	}
}

// Draw renders the controls and returns the Y below them with any changes.
func (c *ControlsPanel) Draw(x, y, width int32, v game.View) (int32, ControlResult) {
	var res ControlResult
	fx, fy, fw := float32(x), float32(y), float32(width)
	half := (fw - 6) / 2

	modeText := "Analog"
	if v.Mode == game.ModeAnalog {
		modeText = "Digital"
	}
	if gui.Button(rl.Rectangle{X: fx, Y: fy, Width: half, Height: 22}, modeText) {
		res.Commands = append(res.Commands, game.CmdToggleMode)
	}
	if gui.Button(rl.Rectangle{X: fx + half + 6, Y: fy, Width: half, Height: 22}, toggleText(v.Paused, "Resume", "Pause")) {
		res.Commands = append(res.Commands, game.CmdTogglePause)
	}
	fy += 28

	if gui.Button(rl.Rectangle{X: fx, Y: fy, Width: half, Height: 22}, "Slower") {
		res.Commands = append(res.Commands, game.CmdSlower)
	}
	if gui.Button(rl.Rectangle{X: fx + half + 6, Y: fy, Width: half, Height: 22}, "Faster") {
		res.Commands = append(res.Commands, game.CmdFaster)
	}
	fy += 32

	res.EyeSpawnChance = c.chanceSlider(fx, &fy, fw, "Extra eye 1 in", v.EyeSpawnChance)
	res.WaveSpawnChance = c.chanceSlider(fx, &fy, fw, "Extra wave 1 in", v.WaveSpawnChance)

	return int32(fy), res
}

// chanceSlider draws one spawn chance slider and returns the new value, or 0
// if it did not move.
func (c *ControlsPanel) chanceSlider(x float32, y *float32, width float32, label string, value int) int {
	rl.DrawText(fmt.Sprintf("%s %d", label, value), int32(x), int32(*y), c.renderer.Theme.FontSize, c.renderer.Theme.LabelColor)
	*y += 14

	newValue := gui.SliderBar(
		rl.Rectangle{X: x + 16, Y: *y, Width: width - 48, Height: 14},
		fmt.Sprint(minSpawnChance), fmt.Sprint(maxSpawnChance),
		float32(value), minSpawnChance, maxSpawnChance,
	)
	*y += 22

	if n := int(newValue); n != value {
		return n
	}
	return 0
}

// DrawOverlayList renders the overlay toggles with their keys.
func (c *ControlsPanel) DrawOverlayList(x, y, width int32, overlays *OverlayRegistry) int32 {
	r := c.renderer

	for _, category := range overlays.Categories() {
		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)

			statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
			nameColor := r.Theme.LabelColor
			if enabled {
				statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
				nameColor = rl.White
			}
			rl.DrawRectangle(x, y+2, 6, 6, statusColor)
			rl.DrawText(desc.Name, x+12, y, r.Theme.FontSize, nameColor)

			keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
			keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
			rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Gray)
			y += 12
		}
		y += 4
	}

	return y
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
