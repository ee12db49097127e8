package display

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/analogdigital/raster"
)

// halfBlock lights the top half of a cell; the background lights the bottom.
const halfBlock = '▀'

// Terminal renders the panel with half-block cells, two LED rows per
// terminal row. Rows past the bottom of the terminal are clipped.
type Terminal struct {
	*raster.Canvas
	screen tcell.Screen
	keys   chan rune
	done   chan struct{}
}

// NewTerminal opens the controlling terminal.
func NewTerminal(width, height int) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewTerminalWithScreen(screen, width, height)
}

// NewTerminalWithScreen renders into an existing screen, initialising it.
func NewTerminalWithScreen(screen tcell.Screen, width, height int) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		Canvas: raster.NewCanvas(width, height),
		screen: screen,
		keys:   make(chan rune, 16),
		done:   make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

// pollEvents forwards key presses until the screen is finalised.
func (t *Terminal) pollEvents() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			r := ev.Rune()
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				r = 'q'
			case tcell.KeyRune:
			default:
				continue
			}
			select {
			case t.keys <- r:
			default:
				// Drop keys if the frame loop is not keeping up
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// Keys delivers typed characters. Escape and Ctrl-C arrive as 'q'.
func (t *Terminal) Keys() <-chan rune {
	return t.keys
}

// Raster returns the backing canvas.
func (t *Terminal) Raster() *raster.Canvas {
	return t.Canvas
}

// Show counts the frame and draws it to the terminal.
func (t *Terminal) Show() error {
	if err := t.Canvas.Show(); err != nil {
		return err
	}

	cols, rows := t.screen.Size()
	w := min(t.Width(), cols)
	for row := 0; row < rows && row*2 < t.Height(); row++ {
		for x := 0; x < w; x++ {
			top := t.Pixel(x, row*2)
			bottom := t.Pixel(x, row*2+1)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			t.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Close restores the terminal and waits for the event goroutine.
func (t *Terminal) Close() error {
	t.screen.Fini()
	<-t.done
	return nil
}

func cellColor(c raster.Color) tcell.Color {
	r, g, b := c.RGB8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
