package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/analogdigital/systems"
)

// stateColors tints each eye state in the slot strip and swatch.
var stateColors = map[systems.EyeState]rl.Color{
	systems.EyeInactive:     {R: 50, G: 50, B: 50, A: 255},
	systems.EyeOpening:      {R: 100, G: 150, B: 200, A: 255},
	systems.EyeOpen:         {R: 100, G: 200, B: 100, A: 255},
	systems.EyeBlinkClosing: {R: 230, G: 200, B: 80, A: 255},
	systems.EyeBlinkOpening: {R: 230, G: 160, B: 80, A: 255},
	systems.EyeClosing:      {R: 200, G: 100, B: 100, A: 255},
}

// eyeSections describes the inspector layout for one eye slot.
var eyeSections = []SectionDescriptor{
	{
		Title: "Eye",
		Fields: []FieldDescriptor{
			{Label: "State", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color {
				return stateColors[d.(*systems.Eye).State]
			}},
			{Label: "", Widget: WidgetText, TextGetter: func(d any) string {
				return d.(*systems.Eye).State.String()
			}},
			{Label: "Pos", Widget: WidgetText, TextGetter: func(d any) string {
				e := d.(*systems.Eye)
				return fmt.Sprintf("(%d, %d)", e.X, e.Y)
			}},
			{Label: "Size", Widget: WidgetText, TextGetter: func(d any) string {
				e := d.(*systems.Eye)
				return fmt.Sprintf("%d x %d", e.MaxOpen*2, e.HalfHeight*2)
			}},
		},
	},
	{
		Title:   "Lids",
		Visible: eyeActive,
		Fields: []FieldDescriptor{
			{Label: "Open", Widget: WidgetBar, Getter: func(d any) float32 {
				e := d.(*systems.Eye)
				return ratio(e.Open, e.MaxOpen)
			}},
			{Label: "Timer", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
				return float32(d.(*systems.Eye).Timer)
			}, Visible: func(d any) bool {
				return d.(*systems.Eye).State == systems.EyeOpen
			}},
			{Label: "Blinks", Widget: WidgetText, Format: "%.0f left", Getter: func(d any) float32 {
				return float32(d.(*systems.Eye).BlinksLeft)
			}},
		},
	},
	{
		Title:   "Iris",
		Visible: eyeActive,
		Fields: []FieldDescriptor{
			// Normalised to the widest look an eye of this size can pick
			{Label: "X", Widget: WidgetCenteredBar, Range: FieldRange{Min: -1, Max: 1}, Getter: func(d any) float32 {
				e := d.(*systems.Eye)
				return ratio(e.Iris.X, e.MaxOpen/3)
			}},
			{Label: "Y", Widget: WidgetCenteredBar, Range: FieldRange{Min: -1, Max: 1}, Getter: func(d any) float32 {
				e := d.(*systems.Eye)
				return ratio(e.Iris.Y, e.HalfHeight/5)
			}},
			{Label: "Target", Widget: WidgetText, TextGetter: func(d any) string {
				i := d.(*systems.Eye).Iris
				return fmt.Sprintf("(%d, %d) in %d", i.TargetX, i.TargetY, i.LookTimer)
			}},
		},
	},
}

func ratio(v, limit int) float32 {
	if limit == 0 {
		return 0
	}
	return float32(v) / float32(limit)
}

func eyeActive(d any) bool {
	return d.(*systems.Eye).Active()
}

// Inspector renders the eye pool: a strip of slots and the details of the
// selected one.
type Inspector struct {
	renderer *Renderer
	selected int
}

// NewInspector creates a new inspector panel.
func NewInspector() *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
	}
}

// Selected returns the inspected slot.
func (ins *Inspector) Selected() int {
	return ins.selected
}

// Select changes the inspected slot, wrapping around the pool.
func (ins *Inspector) Select(slot, capacity int) {
	if capacity <= 0 {
		ins.selected = 0
		return
	}
	ins.selected = ((slot % capacity) + capacity) % capacity
}

// Draw renders the inspector and returns the Y below it.
func (ins *Inspector) Draw(x, y, width int32, slots []systems.Eye) int32 {
	r := ins.renderer
	if len(slots) == 0 {
		rl.DrawText("No eye pool", x, y, r.Theme.FontSize, r.Theme.LabelColor)
		return y + r.Theme.LineHeight
	}
	ins.Select(ins.selected, len(slots))

	y = r.DrawSectionHeader(x, y, "Eye Pool")

	// One cell per slot, click to select
	cell := (width - int32(len(slots)-1)*2) / int32(len(slots))
	if cell > 18 {
		cell = 18
	}
	for i := range slots {
		cx := x + int32(i)*(cell+2)
		rl.DrawRectangle(cx, y, cell, cell, stateColors[slots[i].State])
		if i == ins.selected {
			rl.DrawRectangleLines(cx-1, y-1, cell+2, cell+2, rl.White)
		}
		bounds := rl.Rectangle{X: float32(cx), Y: float32(y), Width: float32(cell), Height: float32(cell)}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && rl.CheckCollisionPointRec(rl.GetMousePosition(), bounds) {
			ins.Select(i, len(slots))
		}
	}
	y += cell + 6

	fx := float32(x)
	if gui.Button(rl.Rectangle{X: fx, Y: float32(y), Width: 20, Height: 16}, "<") {
		ins.Select(ins.selected-1, len(slots))
	}
	rl.DrawText(fmt.Sprintf("Slot %d", ins.selected), x+28, y+3, r.Theme.FontSize, rl.White)
	if gui.Button(rl.Rectangle{X: fx + 80, Y: float32(y), Width: 20, Height: 16}, ">") {
		ins.Select(ins.selected+1, len(slots))
	}
	y += 22

	eye := slots[ins.selected]
	for _, section := range eyeSections {
		y = r.DrawSection(x, y, section, &eye, width)
	}

	return y
}
