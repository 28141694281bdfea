package game

import (
	"github.com/pthm-cable/carve/editor"
	"github.com/pthm-cable/carve/vmath"
)

// headlessStroke is one scripted press-and-hold of the headless driver.
type headlessStroke struct {
	frames int
	tool   int // tool key to press on the first frame, 0 for none
	action editor.Action
	aim    vmath.Vec2 // field coordinates
	move   vmath.Vec2
}

// UpdateHeadless runs one frame driven by a seeded script instead of the
// window: random tools, held triggers aimed at random field points and
// occasional player moves. The throttle gates it exactly as it gates a
// human holding a button.
func (g *Game) UpdateHeadless() {
	if g.stroke.frames <= 0 {
		g.nextStroke()
	}

	in := Input{Tool: g.stroke.tool, Move: g.stroke.move}
	in.Buttons.Down[g.stroke.action] = true
	in.Mouse.X, in.Mouse.Y = g.camera.WorldToScreen(g.stroke.aim.X, g.stroke.aim.Y)

	g.stroke.tool = 0
	g.stroke.frames--
	g.step(in, g.dt)
}

func (g *Game) nextStroke() {
	w := float32(g.cfg.Map.Width)
	h := float32(g.cfg.Map.Height)

	s := headlessStroke{
		frames: 10 + g.rng.Intn(50),
		tool:   1 + g.rng.Intn(len(editor.ToolNames())),
		action: editor.Action(g.rng.Intn(2)),
		aim:    vmath.V(g.rng.Float32()*w, g.rng.Float32()*h),
	}

	// Drift back toward the middle now and then so the player stays in the field
	if g.rng.Intn(4) == 0 {
		center := vmath.V(w/2, h/2)
		s.move = center.Sub(g.session.Player()).Norm()
	}
	g.stroke = s
}
