// Waveform preview tool - draws one generator down the full panel with
// sliders for its shape.
//
// Usage: go run ./cmd/wavepreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/raster"
	"github.com/pthm-cable/analogdigital/systems"
)

const (
	scale        = 2
	panelWidth   = 300
	windowMargin = 10
)

// PreviewParams holds the trace being previewed.
type PreviewParams struct {
	Form   systems.Waveform
	Radian float32 // Multiple of pi spanning the panel height
	Scroll int32   // Rows the trace is shifted down
}

func main() {
	cfg := config.Default()
	w, h := cfg.Screen.Width, cfg.Screen.Height
	previewW, previewH := int32(w*scale), int32(h*scale)

	rl.InitWindow(previewW+panelWidth+windowMargin*3, previewH+windowMargin*2, "Waveform Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := PreviewParams{
		Form:   systems.WaveSine,
		Radian: float32(cfg.Waves.RadianOffset.Min),
	}

	canvas := raster.NewCanvas(w, h)
	pixels := make([]color.RGBA, w*h)
	img := rl.GenImageColor(w, h, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(texture, rl.FilterPoint)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			drawTrace(canvas, params)
			for i, px := range canvas.Pixels() {
				pixels[i] = px.ToRGBA()
			}
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)},
			rl.Rectangle{X: windowMargin, Y: windowMargin, Width: float32(previewW), Height: float32(previewH)},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(windowMargin, windowMargin, previewW, previewH, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + windowMargin*2)
		panelY := float32(windowMargin)

		rl.DrawText("Waveform", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for i := 0; i < systems.NumWaveforms; i++ {
			form := systems.Waveform(i)
			label := form.String()
			if form == params.Form {
				label = "> " + label
			}
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 20, Height: 22}, label) {
				params.Form = form
				needsRegen = true
			}
			panelY += 28
		}
		panelY += 10

		rl.DrawText("Radians (multiple of pi over the panel)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRadian := gui.SliderBar(
			rl.Rectangle{X: panelX + 20, Y: panelY, Width: panelWidth - 90, Height: 20},
			"1", "60",
			params.Radian, 1, 60,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.Radian), int32(panelX+panelWidth-60), int32(panelY+2), 16, rl.DarkGray)
		if float32(math.Round(float64(newRadian))) != params.Radian {
			params.Radian = float32(math.Round(float64(newRadian)))
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Scroll (rows)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScroll := gui.SliderBar(
			rl.Rectangle{X: panelX + 20, Y: panelY, Width: panelWidth - 90, Height: 20},
			"0", fmt.Sprint(h),
			float32(params.Scroll), 0, float32(h),
		)
		rl.DrawText(fmt.Sprintf("%d", params.Scroll), int32(panelX+panelWidth-60), int32(panelY+2), 16, rl.DarkGray)
		if int32(newScroll) != params.Scroll {
			params.Scroll = int32(newScroll)
			needsRegen = true
		}
		panelY += 35

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+panelWidth-20, int32(panelY), rl.LightGray)
		panelY += 15

		lo, hi := traceRange(params, w, h)
		rl.DrawText(fmt.Sprintf("Columns: %d .. %d", lo, hi), int32(panelX), int32(panelY), 16, rl.DarkGray)

		rl.EndDrawing()
	}
}

// drawTrace draws the waveform as a connected line from top to bottom.
func drawTrace(c *raster.Canvas, p PreviewParams) {
	w, h := c.Width(), c.Height()
	off := float64(p.Radian) * math.Pi
	col := raster.RGB(80, 220, 120)

	c.FillScreen(raster.Black)
	prev := p.Form.X(0, off, w, h)
	for y := 0; y < h; y++ {
		x := p.Form.X(y, off, w, h)
		row := (y + int(p.Scroll)) % h
		if y > 0 && row > 0 {
			c.DrawLine(prev, row-1, x, row, col)
		} else {
			c.DrawPixel(x, row, col)
		}
		prev = x
	}
}

// traceRange returns the leftmost and rightmost columns the trace visits.
func traceRange(p PreviewParams, w, h int) (lo, hi int) {
	off := float64(p.Radian) * math.Pi
	lo, hi = w, -1
	for y := 0; y < h; y++ {
		x := p.Form.X(y, off, w, h)
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return lo, hi
}
