package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/carve/editor"
	"github.com/pthm-cable/carve/renderer"
	"github.com/pthm-cable/carve/telemetry"
	"github.com/pthm-cable/carve/ui"
)

const controlsLegend = "WASD move (shift sprint) | LMB/RMB edit (ctrl: once) | ctrl+wheel brush | wheel zoom | " +
	"arrows/MMB pan | ctrl+MMB paint | 1-5 tool | G generate | Enter clear | Space overlays | Esc reset view"

// Draw renders the frame.
func (g *Game) Draw() {
	g.perfCollector.RecordPresent()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 26, A: 255})

	g.terrain.Draw(g.camera)

	s := g.session
	if g.showOverlays {
		renderer.DrawOverlay(g.camera, renderer.OverlayData{
			Player:       s.Player(),
			PlayerRadius: float32(g.cfg.Player.Radius),
			Cursor:       s.Cursor(),
			Target:       g.target.Cell.Vec(),
			HasTarget:    g.target.Hit,
			BrushSize:    s.BrushSize(),
			BlendRange:   s.BlendRange(),
			ShowBlend:    s.Tool() == editor.ToolBlendBallFull || s.Tool() == editor.ToolBlendBallFractional,
		})
		g.perfPanel.Draw(g.perfCollector.Stats(), telemetry.PhaseNames())
	} else {
		renderer.DrawPlayer(g.camera, s.Player(), float32(g.cfg.Player.Radius))
	}

	g.hud.Draw(ui.HUDData{
		Title:      "Carve",
		Tool:       ui.ToolLabel(int(s.Tool()), editor.ToolLabels()),
		BrushSize:  s.BrushSize(),
		BlendRange: s.BlendRange(),
		Strategy:   s.Strategy().String(),
		EdgePolicy: s.Config().Brush.Edges.String(),
		Frame:      g.frame,
		Edits:      g.edits,
		FPS:        rl.GetFPS(),
		Field:      g.lastField,
		LastError:  g.lastError,
		Overlays:   g.showOverlays,
	})
	g.drawToolPanel()
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)

	rl.EndDrawing()
}

// drawToolPanel draws the raygui panel and applies any change made on it.
func (g *Game) drawToolPanel() {
	s := g.session
	cur := ui.ToolState{Tool: int(s.Tool()), BrushSize: s.BrushSize(), BlendRange: s.BlendRange()}
	next := g.toolPanel.Draw(cur)

	if next.Tool != cur.Tool {
		if err := s.SelectTool(editor.Tool(next.Tool)); err != nil {
			g.reject(err)
		}
	}
	if next.BrushSize != cur.BrushSize {
		s.SetBrushSize(next.BrushSize)
	}
	if next.BlendRange != cur.BlendRange {
		if err := s.SetBlendRange(next.BlendRange); err != nil {
			g.reject(err)
		}
	}
}
