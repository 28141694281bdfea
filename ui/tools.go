package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
)

// ToolState is the editor state the tool panel shows and edits.
type ToolState struct {
	Tool       int
	BrushSize  int
	BlendRange int
}

// ToolLabel returns labels[i], or "?" when i is out of range.
func ToolLabel(i int, labels []string) string {
	if i < 0 || i >= len(labels) {
		return "?"
	}
	return labels[i]
}

// ToolPanel renders the raygui tool selector and brush sliders.
type ToolPanel struct {
	renderer *Renderer
	labels   []string
	x, y     float32
	width    float32

	BrushMin, BrushMax int
	BlendMax           int
}

const (
	toolButtonHeight = 24
	sliderHeight     = 16
)

// NewToolPanel creates a tool panel with one toggle per label.
func NewToolPanel(x, y, width float32, labels []string) *ToolPanel {
	return &ToolPanel{
		renderer: NewRenderer(),
		labels:   labels,
		x:        x,
		y:        y,
		width:    width,
		BrushMin: 4,
		BrushMax: 200,
		BlendMax: 64,
	}
}

// SetPosition updates the panel position.
func (p *ToolPanel) SetPosition(x, y float32) {
	p.x = x
	p.y = y
}

// Bounds returns the screen area the panel covers.
func (p *ToolPanel) Bounds() rl.Rectangle {
	pad := float32(p.renderer.Theme.Padding)
	h := float32(len(p.labels))*(toolButtonHeight+2) + 2*(sliderHeight+24) + 2*pad + 20
	return rl.Rectangle{X: p.x - pad, Y: p.y - pad, Width: p.width + 2*pad, Height: h}
}

// Contains reports whether the screen point lies on the panel.
func (p *ToolPanel) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, p.Bounds())
}

// Draw renders the panel and returns the state after user interaction.
func (p *ToolPanel) Draw(s ToolState) ToolState {
	r := p.renderer
	b := p.Bounds()
	r.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	y := p.y
	rl.DrawText("Tools (1-5)", int32(p.x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += 20

	s.Tool = int(gui.ToggleGroup(
		rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: toolButtonHeight},
		strings.Join(p.labels, "\n"),
		int32(s.Tool),
	))
	y += float32(len(p.labels)) * (toolButtonHeight + 2)

	rl.DrawText(fmt.Sprintf("Brush %d", s.BrushSize), int32(p.x), int32(y+4), r.Theme.FontSize, r.Theme.LabelColor)
	y += 20
	s.BrushSize = int(gui.SliderBar(
		rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: sliderHeight},
		"", "",
		float32(s.BrushSize), float32(p.BrushMin), float32(p.BrushMax),
	))
	y += sliderHeight + 4

	rl.DrawText(fmt.Sprintf("Blend %d", s.BlendRange), int32(p.x), int32(y+4), r.Theme.FontSize, r.Theme.LabelColor)
	y += 20
	s.BlendRange = int(gui.SliderBar(
		rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: sliderHeight},
		"", "",
		float32(s.BlendRange), 1, float32(p.BlendMax),
	))

	return s
}
