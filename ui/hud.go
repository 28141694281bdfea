package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/carve/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Tool       string
	BrushSize  int
	BlendRange int
	Strategy   string
	EdgePolicy string
	Frame      int64
	Edits      int
	FPS        int32
	Field      telemetry.FieldStats
	LastError  string
	Overlays   bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tool: %s | Brush: %d | Blend: %d | Fast blend: %s | Edges: %s",
			data.Tool, data.BrushSize, data.BlendRange, data.Strategy, data.EdgePolicy),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | Edits: %d | FPS: %d | Mass: %.0f | Solid: %.1f%%",
			data.Frame, data.Edits, data.FPS, data.Field.Mass, data.Field.FullFrac*100),
		10, 55, 16, rl.LightGray,
	)

	if data.LastError != "" {
		rl.DrawText(data.LastError, 10, 75, 16, h.renderer.Theme.WarnColor)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. phases lists the phase names in
// display order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []string) {
	r := p.renderer
	x := p.x
	y := p.y

	height := int32(len(phases)+2)*r.Theme.LineHeight + r.Theme.Padding*2
	r.DrawPanel(x-r.Theme.Padding, y-r.Theme.Padding, 220, height)

	y = r.DrawSectionHeader(x, y, "Frame")
	y = r.DrawLabelValue(x, y, "Update", stats.AvgFrameDuration.Round(time.Microsecond).String())

	for _, name := range phases {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-8s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color,
		)
		y += r.Theme.LineHeight
	}
}
