// Package window presents the LED panel in a raylib window with room for
// side panels.
package window

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/analogdigital/raster"
)

// keyRunes maps raylib keys to the characters the game understands.
var keyRunes = []struct {
	key int32
	r   rune
}{
	{rl.KeyM, 'm'},
	{rl.KeySpace, ' '},
	{rl.KeyComma, ','},
	{rl.KeyPeriod, '.'},
	{rl.KeyQ, 'q'},
}

var gridColor = rl.Color{R: 0, G: 0, B: 0, A: 90}

// Window scales the canvas into a point-filtered texture. Show only stages
// the pixels; Present uploads and draws them once per loop iteration.
type Window struct {
	*raster.Canvas
	scale        int32
	sidebarWidth int32
	texture      rl.Texture2D
	staging      []color.RGBA
}

// New opens a window sized for the panel at scale plus a sidebar.
func New(width, height, scale, sidebarWidth, fps int, title string) *Window {
	w := &Window{
		Canvas:       raster.NewCanvas(width, height),
		scale:        int32(scale),
		sidebarWidth: int32(sidebarWidth),
		staging:      make([]color.RGBA, width*height),
	}

	rl.InitWindow(w.PanelWidth()+w.sidebarWidth, w.PanelHeight(), title)
	rl.SetTargetFPS(int32(fps))

	img := rl.GenImageColor(width, height, rl.Black)
	w.texture = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(w.texture, rl.FilterPoint)
	rl.UnloadImage(img)

	return w
}

// PanelWidth returns the scaled panel width in window pixels.
func (w *Window) PanelWidth() int32 {
	return int32(w.Width()) * w.scale
}

// PanelHeight returns the scaled panel height in window pixels.
func (w *Window) PanelHeight() int32 {
	return int32(w.Height()) * w.scale
}

// Raster returns the backing canvas.
func (w *Window) Raster() *raster.Canvas {
	return w.Canvas
}

// Show counts the frame and stages its pixels for the next Present.
func (w *Window) Show() error {
	if err := w.Canvas.Show(); err != nil {
		return err
	}
	for i, px := range w.Pixels() {
		w.staging[i] = px.ToRGBA()
	}
	return nil
}

// Present draws the last shown frame, optionally with LED cell lines, then
// calls overlay to draw anything else before the buffer swap.
func (w *Window) Present(ledGrid bool, overlay func()) {
	rl.UpdateTexture(w.texture, w.staging)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(w.Width()), Height: float32(w.Height())}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: float32(w.PanelWidth()), Height: float32(w.PanelHeight())}
	rl.DrawTexturePro(w.texture, srcRect, dstRect, rl.Vector2{}, 0, rl.White)

	if ledGrid && w.scale >= 2 {
		for x := int32(1); x < int32(w.Width()); x++ {
			rl.DrawLine(x*w.scale, 0, x*w.scale, w.PanelHeight(), gridColor)
		}
		for y := int32(1); y < int32(w.Height()); y++ {
			rl.DrawLine(0, y*w.scale, w.PanelWidth(), y*w.scale, gridColor)
		}
	}

	if overlay != nil {
		overlay()
	}

	rl.EndDrawing()
}

// Keys returns the game keys pressed since the last frame.
func (w *Window) Keys() []rune {
	var keys []rune
	for _, k := range keyRunes {
		if rl.IsKeyPressed(k.key) {
			keys = append(keys, k.r)
		}
	}
	return keys
}

// ShouldClose reports whether the user closed the window.
func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Close releases the texture and closes the window.
func (w *Window) Close() error {
	rl.UnloadTexture(w.texture)
	rl.CloseWindow()
	return nil
}
