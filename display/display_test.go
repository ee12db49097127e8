package display

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/analogdigital/raster"
)

func TestHeadlessCountsFrames(t *testing.T) {
	h := NewHeadless(8, 4)
	var b Backend = h

	b.DrawPixel(1, 1, raster.White)
	for i := 0; i < 3; i++ {
		if err := b.Show(); err != nil {
			t.Fatalf("Show: %v", err)
		}
	}
	if h.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", h.Frames())
	}
	if b.Raster().Pixel(1, 1) != raster.White {
		t.Error("Raster does not expose the drawn canvas")
	}
}

func TestExporterWritesEveryNthFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	inner := NewHeadless(4, 4)
	e, err := NewExporter(inner, dir, 2)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := e.Show(); err != nil {
			t.Fatalf("Show %d: %v", i, err)
		}
	}

	if inner.Frames() != 5 {
		t.Errorf("inner frames = %d, want 5", inner.Frames())
	}
	if e.Written() != 2 {
		t.Errorf("Written = %d, want 2", e.Written())
	}
	for _, name := range []string{"frame_000002.png", "frame_000004.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_000005.png")); !os.IsNotExist(err) {
		t.Error("exported a frame off the interval")
	}
}

func TestExporterRejectsZeroInterval(t *testing.T) {
	if _, err := NewExporter(NewHeadless(1, 1), t.TempDir(), 0); err == nil {
		t.Error("expected error for interval 0")
	}
}

func TestRenderLEDs(t *testing.T) {
	c := raster.NewCanvas(2, 1)
	c.DrawPixel(0, 0, raster.RGB(255, 0, 0))

	img := RenderLEDs(c).Image()
	if b := img.Bounds(); b.Dx() != 2*ledPitch || b.Dy() != ledPitch {
		t.Fatalf("image is %dx%d", b.Dx(), b.Dy())
	}

	rgb := func(x, y int) (uint32, uint32, uint32) {
		r, g, b, _ := img.At(x, y).RGBA()
		return r >> 8, g >> 8, b >> 8
	}

	// Lit LED centre
	if r, g, _ := rgb(ledPitch/2, ledPitch/2); r < 150 || g > 40 {
		t.Errorf("lit LED = (%d, %d), want red", r, g)
	}
	// Unlit LED centre is dim grey, brighter than the board
	ur, ug, ub := rgb(ledPitch+ledPitch/2, ledPitch/2)
	if ur != ug || ub < ur || ub > ur+5 || ur < 20 || ur > 45 {
		t.Errorf("unlit LED = (%d, %d, %d), want dim grey", ur, ug, ub)
	}
	if br, _, _ := rgb(0, 0); br >= ur {
		t.Errorf("board %d not darker than unlit LED %d", br, ur)
	}
}

func newSimTerminal(t *testing.T, w, h, cols, rows int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminalWithScreen(screen, w, h)
	if err != nil {
		t.Fatalf("NewTerminalWithScreen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(func() { term.Close() })
	return term, screen
}

func TestTerminalHalfBlocks(t *testing.T) {
	term, screen := newSimTerminal(t, 4, 6, 10, 10)

	top := raster.RGB(255, 0, 0)
	bottom := raster.RGB(0, 0, 255)
	term.DrawPixel(2, 2, top)
	term.DrawPixel(2, 3, bottom)
	if err := term.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}

	tests := []struct {
		name     string
		x, row   int
		top, bot raster.Color
	}{
		{"lit pair", 2, 1, top, bottom},
		{"dark", 0, 0, raster.Black, raster.Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mainc, _, style, _ := screen.GetContent(tt.x, tt.row)
			if mainc != halfBlock {
				t.Errorf("cell = %q, want half block", mainc)
			}
			want := tcell.StyleDefault.Foreground(cellColor(tt.top)).Background(cellColor(tt.bot))
			if style != want {
				t.Errorf("style = %v, want %v", style, want)
			}
		})
	}
	if term.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", term.Frames())
	}
}

func TestTerminalClipsToScreen(t *testing.T) {
	term, _ := newSimTerminal(t, 64, 320, 20, 5)
	term.FillScreen(raster.White)
	if err := term.Show(); err != nil {
		t.Fatalf("Show on a small terminal: %v", err)
	}
}

func TestTerminalKeys(t *testing.T) {
	term, screen := newSimTerminal(t, 4, 4, 10, 10)

	screen.InjectKey(tcell.KeyRune, 'm', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	for _, want := range []rune{'m', 'q'} {
		select {
		case got := <-term.Keys():
			if got != want {
				t.Errorf("key = %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}
